package merge

import "errors"

// Sentinel errors returned by the merge engine's operations.
var (
	ErrNoLeadingCell = errors.New("no leading cell at coordinate")
	ErrOutOfBounds   = errors.New("range outside grid bounds")
	ErrOverlap       = errors.New("merge rectangle partially overlaps an existing merge")
)
