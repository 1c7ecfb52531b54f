package model

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/saniainf/tablecore/eventbus"
)

// TableModel owns a [Document] and exposes typed mutators that keep its
// invariants intact and emit events on the bus supplied at construction.
// The zero value is not usable; construct one with [NewTableModel].
type TableModel struct {
	bus   *eventbus.Bus
	doc   *Document
	index map[[2]int]int // (r,c) -> index into doc.Cells
}

// NewTableModel creates a TableModel over a deep copy of doc, so later
// mutation of the caller's doc does not affect the model. bus may be nil, in
// which case mutators run silently (useful for tests that don't care about
// events).
func NewTableModel(doc *Document, bus *eventbus.Bus) *TableModel {
	m := &TableModel{bus: bus, doc: doc.clone()}
	m.rebuildIndex()
	return m
}

// Bus returns the event bus this model emits on. It may be nil.
func (m *TableModel) Bus() *eventbus.Bus {
	return m.bus
}

func (m *TableModel) emit(name string, payload any) {
	if m.bus != nil {
		m.bus.Emit(name, payload)
	}
}

func (m *TableModel) rebuildIndex() {
	m.index = make(map[[2]int]int, len(m.doc.Cells))
	for i, c := range m.doc.Cells {
		m.index[[2]int{c.R, c.C}] = i
	}
}

// Rows returns the grid's row count.
func (m *TableModel) Rows() int { return m.doc.Grid.Rows }

// Cols returns the grid's column count.
func (m *TableModel) Cols() int { return m.doc.Grid.Cols }

// HeaderRows returns the number of header rows.
func (m *TableModel) HeaderRows() int { return m.doc.Grid.HeaderRows }

// Meta returns a copy of the document's metadata.
func (m *TableModel) Meta() Meta { return m.doc.Meta }

// ColumnSizes returns a copy of the column sizes, or nil if unset.
func (m *TableModel) ColumnSizes() []ColumnSize {
	if m.doc.Grid.ColumnSizes == nil {
		return nil
	}
	return append([]ColumnSize(nil), m.doc.Grid.ColumnSizes...)
}

// GetCell returns the leading cell at (r, c) and true, or the zero Cell and
// false if no leading cell exists there (including when (r,c) is merely
// covered by a merge).
func (m *TableModel) GetCell(r, c int) (Cell, bool) {
	idx, ok := m.index[[2]int{r, c}]
	if !ok {
		return Cell{}, false
	}
	return m.doc.Cells[idx], true
}

// IsCovered reports whether (r, c) lies inside some merge rectangle but is
// not that merge's leading cell.
func (m *TableModel) IsCovered(r, c int) bool {
	if _, ok := m.GetCell(r, c); ok {
		return false
	}
	for _, cell := range m.doc.Cells {
		if cell.Rect().Contains(r, c) {
			return true
		}
	}
	return false
}

// LeadingCellAt returns the leading cell whose rectangle contains (r, c),
// whether (r, c) is the leading coordinate itself or merely covered by it.
func (m *TableModel) LeadingCellAt(r, c int) (Cell, bool) {
	if cell, ok := m.GetCell(r, c); ok {
		return cell, true
	}
	for _, cell := range m.doc.Cells {
		if cell.Rect().Contains(r, c) {
			return cell, true
		}
	}
	return Cell{}, false
}

// Cells returns a copy of every leading cell currently stored.
func (m *TableModel) Cells() []Cell {
	return append([]Cell(nil), m.doc.Cells...)
}

// UpsertCell replaces the leading cell at (c.R, c.C), or appends it if
// absent. It does not emit any event; callers orchestrating a higher-level
// operation (merge, paste, split) are responsible for emitting exactly the
// event the operation contract promises.
func (m *TableModel) UpsertCell(c Cell) {
	key := [2]int{c.R, c.C}
	if idx, ok := m.index[key]; ok {
		m.doc.Cells[idx] = c
		return
	}
	m.doc.Cells = append(m.doc.Cells, c)
	m.index[key] = len(m.doc.Cells) - 1
}

// RemoveCell removes the leading cell at (r, c) if one exists, reporting
// whether it did. It does not emit any event.
func (m *TableModel) RemoveCell(r, c int) bool {
	key := [2]int{r, c}
	idx, ok := m.index[key]
	if !ok {
		return false
	}
	last := len(m.doc.Cells) - 1
	if idx != last {
		m.doc.Cells[idx] = m.doc.Cells[last]
		movedKey := [2]int{m.doc.Cells[idx].R, m.doc.Cells[idx].C}
		m.index[movedKey] = idx
	}
	m.doc.Cells = m.doc.Cells[:last]
	delete(m.index, key)
	return true
}

// EnsureLeadingCell returns the leading cell at (r, c), creating an empty
// 1x1 leading cell there first if none exists. It does not emit any event.
func (m *TableModel) EnsureLeadingCell(r, c int) Cell {
	if cell, ok := m.GetCell(r, c); ok {
		return cell
	}
	cell := newLeadingCell(r, c)
	m.UpsertCell(cell)
	return cell
}

// SetCellValue sets the value of the leading cell at (r, c), creating it if
// absent, and emits "cell:change" unless the value is unchanged.
func (m *TableModel) SetCellValue(r, c int, value string) (Cell, error) {
	if err := m.checkBounds(r, c); err != nil {
		return Cell{}, err
	}
	cell := m.EnsureLeadingCell(r, c)
	old := cell.Value
	if old == value {
		return cell, nil
	}
	cell.Value = value
	m.UpsertCell(cell)
	m.emit(eventbus.EventCellChange, CellChangePayload{R: r, C: c, Field: CellChangeValue, OldValue: old, NewValue: value})
	return cell, nil
}

// SetCellClasses replaces the class list of the leading cell at (r, c),
// creating it if absent, and emits "cell:change" unless unchanged.
func (m *TableModel) SetCellClasses(r, c int, classes []string) (Cell, error) {
	if err := m.checkBounds(r, c); err != nil {
		return Cell{}, err
	}
	cell := m.EnsureLeadingCell(r, c)
	old := cell.Classes
	if reflect.DeepEqual(old, classes) {
		return cell, nil
	}
	cell.Classes = append([]string(nil), classes...)
	m.UpsertCell(cell)
	m.emit(eventbus.EventCellChange, CellChangePayload{R: r, C: c, Field: CellChangeClasses, OldValue: old, NewValue: cell.Classes})
	return cell, nil
}

// SetCellData replaces the data-attribute map of the leading cell at (r, c),
// creating it if absent, and emits "cell:change" unless unchanged.
func (m *TableModel) SetCellData(r, c int, data map[string]any) (Cell, error) {
	if err := m.checkBounds(r, c); err != nil {
		return Cell{}, err
	}
	cell := m.EnsureLeadingCell(r, c)
	old := cell.Data
	if reflect.DeepEqual(old, data) {
		return cell, nil
	}
	newData := make(map[string]any, len(data))
	for k, v := range data {
		newData[k] = v
	}
	cell.Data = newData
	m.UpsertCell(cell)
	m.emit(eventbus.EventCellChange, CellChangePayload{R: r, C: c, Field: CellChangeData, OldValue: old, NewValue: newData})
	return cell, nil
}

func (m *TableModel) checkBounds(r, c int) error {
	if r < 0 || r >= m.doc.Grid.Rows || c < 0 || c >= m.doc.Grid.Cols {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d grid", ErrOutOfBounds, r, c, m.doc.Grid.Rows, m.doc.Grid.Cols)
	}
	return nil
}

// EnsureSize grows the grid to at least rows x cols, extending columnSizes
// with default entries for any newly added columns. It never shrinks the
// grid. It emits "structure:change"/resize if the grid actually grew.
func (m *TableModel) EnsureSize(rows, cols int) {
	newRows, newCols := m.doc.Grid.Rows, m.doc.Grid.Cols
	if rows > newRows {
		newRows = rows
	}
	if cols > newCols {
		newCols = cols
	}
	if newRows == m.doc.Grid.Rows && newCols == m.doc.Grid.Cols {
		return
	}

	if newCols > m.doc.Grid.Cols && m.doc.Grid.ColumnSizes != nil {
		for i := m.doc.Grid.Cols; i < newCols; i++ {
			_ = i
			m.doc.Grid.ColumnSizes = append(m.doc.Grid.ColumnSizes, DefaultColumnSize())
		}
	}

	m.doc.Grid.Rows = newRows
	m.doc.Grid.Cols = newCols
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeResize, Rows: newRows, Cols: newCols})
}

// SetHeaderRows clamps n into [0, Rows()] and emits
// "structure:change"/headerRows if the value actually changed.
func (m *TableModel) SetHeaderRows(n int) {
	if n < 0 {
		n = 0
	}
	if n > m.doc.Grid.Rows {
		n = m.doc.Grid.Rows
	}
	if n == m.doc.Grid.HeaderRows {
		return
	}
	m.doc.Grid.HeaderRows = n
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeHeaderRows, HeaderRows: n})
}

// SetTableName trims name and, if non-empty and different from the current
// name, updates it and emits "structure:change"/meta.
func (m *TableModel) SetTableName(name string) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" || trimmed == m.doc.Meta.Name {
		return
	}
	m.doc.Meta.Name = trimmed
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeMeta})
}

// SetColumnSize parses raw as "<digits>px" (pixel width) or "<digits>"
// (ratio weight); anything else resets the column to the default ratio
// size. The columnSizes array is initialized lazily on first use.
func (m *TableModel) SetColumnSize(i int, raw string) error {
	if i < 0 || i >= m.doc.Grid.Cols {
		return fmt.Errorf("%w: column %d outside 0..%d", ErrOutOfBounds, i, m.doc.Grid.Cols-1)
	}
	if m.doc.Grid.ColumnSizes == nil {
		sizes := make([]ColumnSize, m.doc.Grid.Cols)
		for j := range sizes {
			sizes[j] = DefaultColumnSize()
		}
		m.doc.Grid.ColumnSizes = sizes
	}

	m.doc.Grid.ColumnSizes[i] = parseColumnSize(raw)
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeColumnSizes})
	return nil
}

func parseColumnSize(raw string) ColumnSize {
	isDigits := func(s string) bool {
		if s == "" {
			return false
		}
		for _, ch := range s {
			if ch < '0' || ch > '9' {
				return false
			}
		}
		return true
	}
	trimmed := strings.TrimSpace(raw)
	if strings.HasSuffix(trimmed, "px") {
		digits := strings.TrimSpace(strings.TrimSuffix(trimmed, "px"))
		if v, err := strconv.ParseFloat(digits, 64); err == nil && isDigits(digits) {
			return ColumnSize{V: v, U: ColumnSizeUnitPx}
		}
		return DefaultColumnSize()
	}
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && isDigits(trimmed) {
		return ColumnSize{V: v, U: ColumnSizeUnitRatio}
	}
	return DefaultColumnSize()
}

// SetColumnSizes replaces the column sizes wholesale. A non-nil slice is
// only accepted if its length equals Cols(); passing nil clears the setting
// back to the implicit default.
func (m *TableModel) SetColumnSizes(sizes []ColumnSize) error {
	if sizes == nil {
		m.doc.Grid.ColumnSizes = nil
		m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeColumnSizes})
		return nil
	}
	if len(sizes) != m.doc.Grid.Cols {
		return fmt.Errorf("%w: got %d sizes, grid has %d columns", ErrArgument, len(sizes), m.doc.Grid.Cols)
	}
	m.doc.Grid.ColumnSizes = append([]ColumnSize(nil), sizes...)
	m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: StructureChangeColumnSizes})
	return nil
}

// ToJSON produces a Document snapshot with trivially empty cells stripped
// and cells sorted by (r, c) for deterministic serialization.
func (m *TableModel) ToJSON() *Document {
	out := m.doc.clone()
	kept := make([]Cell, 0, len(out.Cells))
	for _, c := range out.Cells {
		if !c.IsTriviallyEmpty() {
			kept = append(kept, c)
		}
	}
	sort.Slice(kept, func(i, j int) bool {
		if kept[i].R != kept[j].R {
			return kept[i].R < kept[j].R
		}
		return kept[i].C < kept[j].C
	})
	out.Cells = kept
	return out
}

// ApplyDocument replaces version, meta, grid, and cells in place, preserving
// the TableModel's external identity (no new instance is returned), rebuilds
// the index, and emits "structure:change"/applyDocument unless emitEvent is
// false. The input is rejected if its shape is invalid.
func (m *TableModel) ApplyDocument(doc *Document, emitEvent bool) error {
	return m.replaceDocument(doc, StructureChangeApplyDocument, emitEvent)
}

// ImportDocument replaces the model's content with doc the same way
// ApplyDocument does, but emits "structure:change"/import instead of
// applyDocument, marking the replacement as sourced from an external format
// conversion (e.g. a spreadsheet sheet) rather than a history restore.
func (m *TableModel) ImportDocument(doc *Document) error {
	return m.replaceDocument(doc, StructureChangeImport, true)
}

func (m *TableModel) replaceDocument(doc *Document, changeType StructureChangeType, emitEvent bool) error {
	if err := ValidateShape(doc); err != nil {
		return err
	}
	m.doc = doc.clone()
	m.rebuildIndex()
	if emitEvent {
		m.emit(eventbus.EventStructureChange, StructureChangePayload{Type: changeType, Rows: m.doc.Grid.Rows, Cols: m.doc.Grid.Cols})
	}
	return nil
}
