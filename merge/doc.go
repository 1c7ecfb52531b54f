// Package merge implements the merge/split engine: pure operations over a
// [model.TableModel] that create, dissolve, and bulk-dissolve rectangular
// cell merges while preserving the no-overlap invariant.
//
// MergeRange emits at most one "cell:change"/value for the merged leading
// cell — never one per absorbed cell — followed by one "merge" event;
// SplitCell emits one "split" event. SplitAllInRange snapshots its candidate set before
// splitting so that the splits it performs don't perturb its own iteration.
package merge
