package selection

import (
	"errors"
	"fmt"

	"github.com/saniainf/tablecore/eventbus"
	"github.com/saniainf/tablecore/model"
)

// ErrCovered is returned by Select when the target coordinate is covered by
// a merge but is not that merge's leading cell.
var ErrCovered = errors.New("coordinate is covered by a merge")

// Coord is a grid coordinate.
type Coord struct{ R, C int }

// SelectionChangePayload is the payload of a "selection:change" event.
type SelectionChangePayload struct {
	R, C int
	Cell model.Cell
}

// SelectionRangePayload is the payload of a "selection:range" event.
type SelectionRangePayload struct {
	R1, C1, R2, C2 int
	Cells          []model.Cell
}

// Engine tracks the current single-cell selection and an optional
// rectangular range over a [model.TableModel].
type Engine struct {
	model *model.TableModel

	hasSelection bool
	selected     Coord

	rangeMode bool
	anchor    Coord
	active    Coord
}

// New creates an Engine with no selection over m.
func New(m *model.TableModel) *Engine {
	return &Engine{model: m}
}

// Select moves the single-cell selection to (r,c) and clears any range. It
// fails if (r,c) is covered by a merge but is not that merge's leading
// cell.
func (e *Engine) Select(r, c int) error {
	if e.model.IsCovered(r, c) {
		return fmt.Errorf("%w: (%d,%d)", ErrCovered, r, c)
	}
	e.hasSelection = true
	e.selected = Coord{R: r, C: c}
	e.rangeMode = false
	e.anchor = e.selected
	e.active = e.selected

	cell, _ := e.model.GetCell(r, c)
	e.emit(eventbus.EventSelectionChange, SelectionChangePayload{R: r, C: c, Cell: cell})
	return nil
}

// StartRange begins a drag-selected range anchored at (r,c).
func (e *Engine) StartRange(r, c int) {
	e.hasSelection = true
	e.selected = Coord{R: r, C: c}
	e.anchor = Coord{R: r, C: c}
	e.active = Coord{R: r, C: c}
	e.rangeMode = true
	e.emitRange()
}

// UpdateRange moves the active end of an in-progress range, keeping the
// anchor fixed. It is a no-op if no range is active.
func (e *Engine) UpdateRange(r, c int) {
	if !e.rangeMode {
		return
	}
	e.active = Coord{R: r, C: c}
	e.emitRange()
}

// CommitRange finalizes the in-progress range, re-emitting its current
// extent.
func (e *Engine) CommitRange() {
	if !e.rangeMode {
		return
	}
	e.emitRange()
}

// CancelRange abandons the in-progress range, reverting the selection to
// the anchor coordinate.
func (e *Engine) CancelRange() {
	e.rangeMode = false
	e.active = e.anchor
	e.selected = e.anchor
}

// ClearRange drops the range, leaving the current selected coordinate in
// place.
func (e *Engine) ClearRange() {
	e.rangeMode = false
	e.anchor = e.selected
	e.active = e.selected
}

// GetRange returns the normalized rectangle spanning the anchor and active
// coordinates, or false if no range is active.
func (e *Engine) GetRange() (model.Rect, bool) {
	if !e.rangeMode {
		return model.Rect{}, false
	}
	return model.NormalizeRange(e.anchor.R, e.anchor.C, e.active.R, e.active.C), true
}

// HasRange reports whether a range is active and spans more than a single
// cell.
func (e *Engine) HasRange() bool {
	return e.rangeMode && e.anchor != e.active
}

// Selected returns the current single-cell selection, if any.
func (e *Engine) Selected() (Coord, bool) {
	return e.selected, e.hasSelection
}

// SelectFullRow selects the entire row r as a range.
func (e *Engine) SelectFullRow(r int) {
	e.hasSelection = true
	e.selected = Coord{R: r, C: 0}
	e.anchor = Coord{R: r, C: 0}
	e.active = Coord{R: r, C: e.model.Cols() - 1}
	e.rangeMode = true
	e.emitRange()
}

// SelectFullColumn selects the entire column c as a range.
func (e *Engine) SelectFullColumn(c int) {
	e.hasSelection = true
	e.selected = Coord{R: 0, C: c}
	e.anchor = Coord{R: 0, C: c}
	e.active = Coord{R: e.model.Rows() - 1, C: c}
	e.rangeMode = true
	e.emitRange()
}

// MoveSelection moves the single-cell selection one step in dir, honoring
// merge geometry, and clears any active range. It is a no-op if there is no
// current selection or the move would leave the grid.
func (e *Engine) MoveSelection(dir Direction) error {
	if !e.hasSelection {
		return nil
	}
	nr, nc, ok := navigate(e.model, e.selected.R, e.selected.C, dir)
	if !ok {
		return nil
	}
	return e.Select(nr, nc)
}

// ExtendRange moves the active end of the range one step in dir, honoring
// merge geometry, initializing the range from the current selection if none
// is active yet. The anchor stays fixed.
func (e *Engine) ExtendRange(dir Direction) error {
	if !e.hasSelection {
		return nil
	}
	if !e.rangeMode {
		e.anchor = e.selected
		e.active = e.selected
		e.rangeMode = true
	}
	nr, nc, ok := navigate(e.model, e.active.R, e.active.C, dir)
	if !ok {
		return nil
	}
	e.active = Coord{R: nr, C: nc}
	e.emitRange()
	return nil
}

func (e *Engine) emitRange() {
	rect := model.NormalizeRange(e.anchor.R, e.anchor.C, e.active.R, e.active.C)
	var cells []model.Cell
	for _, cell := range e.model.Cells() {
		if rect.Overlaps(cell.Rect()) {
			cells = append(cells, cell)
		}
	}
	e.emit(eventbus.EventSelectionRange, SelectionRangePayload{
		R1: rect.Top(), C1: rect.Left(), R2: rect.Bottom() - 1, C2: rect.Right() - 1, Cells: cells,
	})
}

func (e *Engine) emit(name string, payload any) {
	if bus := e.model.Bus(); bus != nil {
		bus.Emit(name, payload)
	}
}
