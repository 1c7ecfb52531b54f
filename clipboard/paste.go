package clipboard

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/saniainf/tablecore/eventbus"
	"github.com/saniainf/tablecore/model"
)

// PastePayload is the payload of a "paste" event.
type PastePayload struct {
	StartR, StartC int
	Rows, Cols     int
	HTML           bool
}

// ApplyPaste grows the model to fit matrix at (startR, startC), trims and
// NFC-normalizes each cell's value before writing it, and emits a single
// "paste" event after every cell has been set.
func ApplyPaste(m *model.TableModel, startR, startC int, matrix [][]string) {
	rows := len(matrix)
	cols := 0
	for _, row := range matrix {
		if len(row) > cols {
			cols = len(row)
		}
	}
	m.EnsureSize(startR+rows, startC+cols)

	for i, row := range matrix {
		for j, value := range row {
			_, _ = m.SetCellValue(startR+i, startC+j, strings.TrimSpace(norm.NFC.String(value)))
		}
	}

	emit(m, eventbus.EventPaste, PastePayload{StartR: startR, StartC: startC, Rows: rows, Cols: cols})
}

// ApplyHTMLTablePaste grows the model to fit parsed at (startR, startC),
// clears every existing cell overlapping the target rectangle so no stale
// merge survives, writes every parsed leading cell (assigning its spans
// directly and dropping any cell the new merge would otherwise absorb), and
// emits a single "paste" event with HTML set.
func ApplyHTMLTablePaste(m *model.TableModel, startR, startC int, parsed ParsedTable) {
	if !parsed.Success {
		return
	}
	m.EnsureSize(startR+parsed.Rows, startC+parsed.Cols)

	target := model.Rect{R: startR, C: startC, RowSpan: parsed.Rows, ColSpan: parsed.Cols}
	for _, cell := range m.Cells() {
		if cell.Rect().Overlaps(target) {
			m.RemoveCell(cell.R, cell.C)
		}
	}
	for r := startR; r < startR+parsed.Rows; r++ {
		for c := startC; c < startC+parsed.Cols; c++ {
			m.UpsertCell(model.Cell{R: r, C: c, RowSpan: 1, ColSpan: 1})
		}
	}

	for _, pc := range parsed.Cells {
		absR, absC := startR+pc.R, startC+pc.C
		leading := model.Cell{R: absR, C: absC, Value: pc.Value, RowSpan: pc.RowSpan, ColSpan: pc.ColSpan}
		m.UpsertCell(leading)

		if pc.RowSpan > 1 || pc.ColSpan > 1 {
			rect := leading.Rect()
			for _, other := range m.Cells() {
				if other.R == absR && other.C == absC {
					continue
				}
				if rect.Contains(other.R, other.C) {
					m.RemoveCell(other.R, other.C)
				}
			}
		}
	}

	emit(m, eventbus.EventPaste, PastePayload{StartR: startR, StartC: startC, Rows: parsed.Rows, Cols: parsed.Cols, HTML: true})
}

// emit mirrors model.TableModel's own nil-safe emit helper: m.Bus() may be
// nil for a model built without one, and paste operations must stay usable
// against such a model instead of panicking.
func emit(m *model.TableModel, name string, payload any) {
	if bus := m.Bus(); bus != nil {
		bus.Emit(name, payload)
	}
}
