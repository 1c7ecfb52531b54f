package merge

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/saniainf/tablecore/eventbus"
	"github.com/saniainf/tablecore/model"
	"github.com/saniainf/tablecore/registry"
)

// SplitMode selects which leading cells SplitAllInRange collects.
type SplitMode string

const (
	// SplitModeOverlap collects every leading cell whose rectangle overlaps
	// the target range, including one that merely touches its border.
	SplitModeOverlap SplitMode = "overlap"
	// SplitModeFully collects only leading cells fully contained in the
	// target range.
	SplitModeFully SplitMode = "fully"
)

// MergePayload is the payload of a "merge" event.
type MergePayload struct {
	R1, C1, R2, C2   int
	RowSpan, ColSpan int
}

// SplitPayload is the payload of a "split" event.
type SplitPayload struct {
	R, C             int
	RowSpan, ColSpan int
}

// MergeRange merges the rectangle spanning (r1,c1)-(r2,c2), inclusive, into
// a single leading cell at its top-left corner. If the rectangle is already
// 1x1 it succeeds as a no-op. Otherwise it defensively re-validates the
// overlap shape (only absorption or containment are legal), concatenates
// every non-empty, whitespace-trimmed, NFC-normalized value found inside the
// rectangle in row-major order into the leading cell's value, removes every
// other cell the merge absorbs, and emits exactly one "cell:change"/value
// (only if the value actually changed) followed by one "merge" event.
func MergeRange(m *model.TableModel, r1, c1, r2, c2 int) (model.Rect, error) {
	rect := model.NormalizeRange(r1, c1, r2, c2)
	if rect.Top() < 0 || rect.Left() < 0 || rect.Bottom() > m.Rows() || rect.Right() > m.Cols() {
		return model.Rect{}, fmt.Errorf("%w: (%d,%d)-(%d,%d)", ErrOutOfBounds, rect.Top(), rect.Left(), rect.Bottom()-1, rect.Right()-1)
	}
	if rect.RowSpan == 1 && rect.ColSpan == 1 {
		return rect, nil
	}

	result := registry.ValidateMergeOperation(m.Cells(), m.Rows(), m.Cols(), r1, c1, r2, c2)
	if !result.OK {
		return model.Rect{}, fmt.Errorf("%w: %s", ErrOverlap, result.ErrorString())
	}

	var parts []string
	for r := rect.Top(); r < rect.Bottom(); r++ {
		for c := rect.Left(); c < rect.Right(); c++ {
			cell, ok := m.GetCell(r, c)
			if !ok {
				continue
			}
			trimmed := strings.TrimSpace(norm.NFC.String(cell.Value))
			if trimmed != "" {
				parts = append(parts, trimmed)
			}
		}
	}

	leading := m.EnsureLeadingCell(rect.Top(), rect.Left())
	oldValue := leading.Value
	leading.RowSpan = rect.RowSpan
	leading.ColSpan = rect.ColSpan
	if len(parts) > 0 {
		leading.Value = strings.Join(parts, " ")
	}
	m.UpsertCell(leading)

	for _, cell := range m.Cells() {
		if cell.R == rect.Top() && cell.C == rect.Left() {
			continue
		}
		if rect.Contains(cell.R, cell.C) {
			m.RemoveCell(cell.R, cell.C)
		}
	}

	if leading.Value != oldValue {
		emit(m, eventbus.EventCellChange, model.CellChangePayload{
			R: rect.Top(), C: rect.Left(), Field: model.CellChangeValue, OldValue: oldValue, NewValue: leading.Value,
		})
	}
	emit(m, eventbus.EventMerge, MergePayload{
		R1: rect.Top(), C1: rect.Left(), R2: rect.Bottom() - 1, C2: rect.Right() - 1,
		RowSpan: rect.RowSpan, ColSpan: rect.ColSpan,
	})
	return rect, nil
}

// emit mirrors model.TableModel's own nil-safe emit helper: m.Bus() may be
// nil for a model built without one, and merge operations must stay usable
// against such a model instead of panicking.
func emit(m *model.TableModel, name string, payload any) {
	if bus := m.Bus(); bus != nil {
		bus.Emit(name, payload)
	}
}

// SplitCell dissolves the merge led by the leading cell at (r,c), creating
// an empty leading cell at every coordinate it used to cover. If there is no
// leading cell there, it fails. If the cell is already 1x1, it succeeds as a
// no-op. Emits "split".
func SplitCell(m *model.TableModel, r, c int) (model.Rect, error) {
	cell, ok := m.GetCell(r, c)
	if !ok {
		return model.Rect{}, fmt.Errorf("%w: (%d,%d)", ErrNoLeadingCell, r, c)
	}
	rect := cell.Rect()
	if rect.RowSpan == 1 && rect.ColSpan == 1 {
		return rect, nil
	}

	cell.RowSpan = 1
	cell.ColSpan = 1
	m.UpsertCell(cell)

	for rr := rect.Top(); rr < rect.Bottom(); rr++ {
		for cc := rect.Left(); cc < rect.Right(); cc++ {
			if rr == r && cc == c {
				continue
			}
			m.EnsureLeadingCell(rr, cc)
		}
	}

	emit(m, eventbus.EventSplit, SplitPayload{R: r, C: c, RowSpan: 1, ColSpan: 1})
	return model.Rect{R: r, C: c, RowSpan: 1, ColSpan: 1}, nil
}

// SplitAllInRange splits every leading cell selected by mode within the
// rectangle (r1,c1)-(r2,c2), inclusive, and returns how many were processed.
// The candidate set is snapshotted before any split runs, so splitting one
// candidate never perturbs the iteration over the rest.
func SplitAllInRange(m *model.TableModel, r1, c1, r2, c2 int, mode SplitMode) (int, error) {
	rect := model.NormalizeRange(r1, c1, r2, c2)

	var candidates []model.Cell
	for _, cell := range m.Cells() {
		cellRect := cell.Rect()
		switch mode {
		case SplitModeFully:
			if rect.ContainsRect(cellRect) {
				candidates = append(candidates, cell)
			}
		default:
			if rect.Overlaps(cellRect) {
				candidates = append(candidates, cell)
			}
		}
	}

	for _, cell := range candidates {
		if _, err := SplitCell(m, cell.R, cell.C); err != nil {
			return 0, err
		}
	}
	return len(candidates), nil
}
