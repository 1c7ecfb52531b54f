// Package model provides the in-memory representation of a table document:
// a rectangular grid of cells with rectangular merges, and the typed
// mutators ([TableModel]) that keep the representation consistent.
//
// # Document shape
//
// A [Document] is the wire-level JSON shape (version 1): grid dimensions,
// header row count, optional column sizing, and a flat list of leading
// cells. Only leading cells — the top-left corner of a merge, or any
// unmerged 1x1 cell — are stored; coordinates covered by a merge but not at
// its top-left are derived, never stored.
//
// # TableModel
//
// [TableModel] wraps a [Document] with an `(r,c) -> *Cell` index and a set of
// mutators (SetCellValue, EnsureSize, InsertRows, DeleteColumns, ...). Every
// mutator that changes the set of cells or their coordinates rebuilds the
// index before returning, and emits an event on the [eventbus.Bus] supplied
// at construction.
//
// # Invariants
//
// After every public TableModel operation:
//
//   - 0 <= r < grid.rows and 0 <= c < grid.cols for every leading cell.
//   - r+rowSpan <= grid.rows and c+colSpan <= grid.cols.
//   - No two leading-cell rectangles overlap.
//   - headerRows <= grid.rows.
//   - If columnSizes is set, len(columnSizes) == grid.cols.
//   - The (r,c) index agrees exactly with the cell list.
package model
