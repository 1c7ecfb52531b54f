package model

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by TableModel mutators and shape validation. They
// let callers branch with errors.Is rather than parsing messages.
var (
	ErrShape            = errors.New("shape error")
	ErrOutOfBounds      = errors.New("bounds error")
	ErrArgument         = errors.New("argument error")
	ErrInteriorMergeCut = errors.New("interior-merge-cut")
)

// ValidateShape performs the basic structural checks a Document must pass
// before it can be loaded into a TableModel: a supported version, positive
// grid dimensions, headerRows within range, matching columnSizes length, all
// cells in bounds with valid spans, unique coordinates, and no overlapping
// merge rectangles.
func ValidateShape(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("%w: nil document", ErrShape)
	}
	if doc.Version != DocumentVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrShape, doc.Version)
	}
	if doc.Grid.Rows < 1 || doc.Grid.Cols < 1 {
		return fmt.Errorf("%w: grid must be at least 1x1, got %dx%d", ErrShape, doc.Grid.Rows, doc.Grid.Cols)
	}
	if doc.Grid.HeaderRows < 0 || doc.Grid.HeaderRows > doc.Grid.Rows {
		return fmt.Errorf("%w: headerRows %d out of range [0,%d]", ErrShape, doc.Grid.HeaderRows, doc.Grid.Rows)
	}
	if doc.Grid.ColumnSizes != nil && len(doc.Grid.ColumnSizes) != doc.Grid.Cols {
		return fmt.Errorf("%w: columnSizes length %d != cols %d", ErrShape, len(doc.Grid.ColumnSizes), doc.Grid.Cols)
	}

	seen := make(map[[2]int]bool, len(doc.Cells))
	var rects []Rect
	for _, cell := range doc.Cells {
		rs, cs := cell.effectiveRowSpan(), cell.effectiveColSpan()
		if rs < 1 || cs < 1 {
			return fmt.Errorf("%w: cell (%d,%d) has non-positive span", ErrShape, cell.R, cell.C)
		}
		if cell.R < 0 || cell.C < 0 || cell.R >= doc.Grid.Rows || cell.C >= doc.Grid.Cols {
			return fmt.Errorf("%w: cell (%d,%d) outside %dx%d grid", ErrShape, cell.R, cell.C, doc.Grid.Rows, doc.Grid.Cols)
		}
		if cell.R+rs > doc.Grid.Rows || cell.C+cs > doc.Grid.Cols {
			return fmt.Errorf("%w: cell (%d,%d) span %dx%d exceeds grid", ErrShape, cell.R, cell.C, rs, cs)
		}
		key := [2]int{cell.R, cell.C}
		if seen[key] {
			return fmt.Errorf("%w: duplicate cell at (%d,%d)", ErrShape, cell.R, cell.C)
		}
		seen[key] = true

		rect := cell.Rect()
		for _, other := range rects {
			if rect.Overlaps(other) {
				return fmt.Errorf("%w: merge overlap at (%d,%d)", ErrShape, cell.R, cell.C)
			}
		}
		rects = append(rects, rect)
	}

	return nil
}
