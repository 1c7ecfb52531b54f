package model

import (
	"fmt"

	"github.com/saniainf/tablecore/eventbus"
)

// InsertRows inserts count empty rows starting at index (clamped into
// [0, Rows()]). Leading cells entirely below the insertion point shift down;
// leading cells whose span straddles the insertion point grow to absorb the
// new rows; cells entirely above are untouched. Emits
// "structure:change"/insertRows.
func (m *TableModel) InsertRows(index, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", ErrArgument, count)
	}
	if index < 0 {
		index = 0
	}
	if index > m.doc.Grid.Rows {
		index = m.doc.Grid.Rows
	}

	for i := range m.doc.Cells {
		cell := &m.doc.Cells[i]
		top := cell.R
		bottom := top + cell.effectiveRowSpan() - 1
		switch {
		case top >= index:
			cell.R += count
		case index <= bottom:
			cell.RowSpan = cell.effectiveRowSpan() + count
		}
	}

	m.doc.Grid.Rows += count
	m.rebuildIndex()
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeInsertRows, Index: index, Count: count})
	return nil
}

// InsertColumns is the column-axis mirror of InsertRows. If columnSizes is
// set, count default-sized entries are spliced in at index.
func (m *TableModel) InsertColumns(index, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", ErrArgument, count)
	}
	if index < 0 {
		index = 0
	}
	if index > m.doc.Grid.Cols {
		index = m.doc.Grid.Cols
	}

	for i := range m.doc.Cells {
		cell := &m.doc.Cells[i]
		left := cell.C
		right := left + cell.effectiveColSpan() - 1
		switch {
		case left >= index:
			cell.C += count
		case index <= right:
			cell.ColSpan = cell.effectiveColSpan() + count
		}
	}

	if m.doc.Grid.ColumnSizes != nil {
		insert := make([]ColumnSize, count)
		for i := range insert {
			insert[i] = DefaultColumnSize()
		}
		sizes := make([]ColumnSize, 0, len(m.doc.Grid.ColumnSizes)+count)
		sizes = append(sizes, m.doc.Grid.ColumnSizes[:index]...)
		sizes = append(sizes, insert...)
		sizes = append(sizes, m.doc.Grid.ColumnSizes[index:]...)
		m.doc.Grid.ColumnSizes = sizes
	}

	m.doc.Grid.Cols += count
	m.rebuildIndex()
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeInsertColumns, Index: index, Count: count})
	return nil
}

// DeleteRows removes count rows starting at start. At least one row must
// remain. A leading cell fully inside the deleted band is dropped; a cell
// entirely below shifts up; a cell straddling only the top or only the
// bottom edge of the band shrinks to the surviving piece. A cell that
// straddles the band on both sides (an interior cut through a merge) is
// rejected with ErrInteriorMergeCut and the model is left unchanged.
func (m *TableModel) DeleteRows(start, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", ErrArgument, count)
	}
	if m.doc.Grid.Rows-count < 1 {
		return fmt.Errorf("%w: deleting %d rows would leave fewer than 1 row", ErrArgument, count)
	}
	rFrom, rTo := start, start+count-1

	next := make([]Cell, 0, len(m.doc.Cells))
	for _, cell := range m.doc.Cells {
		top := cell.R
		bottom := top + cell.effectiveRowSpan() - 1

		switch {
		case bottom < rFrom:
			next = append(next, cell)
		case top > rTo:
			cell.R -= count
			next = append(next, cell)
		case top >= rFrom && bottom <= rTo:
			// fully inside the deleted band: dropped
		case top < rFrom && bottom >= rFrom && bottom <= rTo:
			cell.RowSpan = rFrom - top
			next = append(next, cell)
		case top >= rFrom && top <= rTo && bottom > rTo:
			cell.R = rFrom
			cell.RowSpan = bottom - rTo
			next = append(next, cell)
		default:
			return fmt.Errorf("%w: row delete [%d,%d] cuts through merge at (%d,%d)", ErrInteriorMergeCut, rFrom, rTo, cell.R, cell.C)
		}
	}

	m.doc.Cells = next
	m.doc.Grid.Rows -= count
	if m.doc.Grid.HeaderRows > m.doc.Grid.Rows {
		m.doc.Grid.HeaderRows = m.doc.Grid.Rows
	}
	m.rebuildIndex()
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeDeleteRows, Index: start, Count: count})
	return nil
}

// DeleteColumns is the column-axis mirror of DeleteRows. If columnSizes is
// set, the deleted range is spliced out; if that empties the slice, the
// setting is cleared back to nil.
func (m *TableModel) DeleteColumns(start, count int) error {
	if count < 1 {
		return fmt.Errorf("%w: count must be >= 1, got %d", ErrArgument, count)
	}
	if m.doc.Grid.Cols-count < 1 {
		return fmt.Errorf("%w: deleting %d columns would leave fewer than 1 column", ErrArgument, count)
	}
	cFrom, cTo := start, start+count-1

	next := make([]Cell, 0, len(m.doc.Cells))
	for _, cell := range m.doc.Cells {
		left := cell.C
		right := left + cell.effectiveColSpan() - 1

		switch {
		case right < cFrom:
			next = append(next, cell)
		case left > cTo:
			cell.C -= count
			next = append(next, cell)
		case left >= cFrom && right <= cTo:
			// fully inside the deleted band: dropped
		case left < cFrom && right >= cFrom && right <= cTo:
			cell.ColSpan = cFrom - left
			next = append(next, cell)
		case left >= cFrom && left <= cTo && right > cTo:
			cell.C = cFrom
			cell.ColSpan = right - cTo
			next = append(next, cell)
		default:
			return fmt.Errorf("%w: column delete [%d,%d] cuts through merge at (%d,%d)", ErrInteriorMergeCut, cFrom, cTo, cell.R, cell.C)
		}
	}

	if m.doc.Grid.ColumnSizes != nil {
		sizes := make([]ColumnSize, 0, len(m.doc.Grid.ColumnSizes)-count)
		sizes = append(sizes, m.doc.Grid.ColumnSizes[:cFrom]...)
		sizes = append(sizes, m.doc.Grid.ColumnSizes[cTo+1:]...)
		if len(sizes) == 0 {
			m.doc.Grid.ColumnSizes = nil
		} else {
			m.doc.Grid.ColumnSizes = sizes
		}
	}

	m.doc.Cells = next
	m.doc.Grid.Cols -= count
	m.rebuildIndex()
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeDeleteColumns, Index: start, Count: count})
	return nil
}
