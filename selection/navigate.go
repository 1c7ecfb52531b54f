package selection

import (
	"github.com/saniainf/tablecore/model"
)

// Direction is a keyboard navigation direction.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

func delta(dir Direction) (int, int) {
	switch dir {
	case DirUp:
		return -1, 0
	case DirDown:
		return 1, 0
	case DirLeft:
		return 0, -1
	case DirRight:
		return 0, 1
	default:
		return 0, 0
	}
}

const maxNavigationHops = 8

// navigate computes the landing coordinate reached by moving from (r,c) in
// dir, honoring merge geometry: leaving your own merge jumps past its far
// edge in one step; landing on someone else's merge lands on its leading
// cell rather than a covered coordinate inside it.
func navigate(m *model.TableModel, r, c int, dir Direction) (int, int, bool) {
	dr, dc := delta(dir)
	nr, nc := r+dr, c+dc
	if nr < 0 || nr >= m.Rows() || nc < 0 || nc >= m.Cols() {
		return 0, 0, false
	}

	for i := 0; i < maxNavigationHops; i++ {
		if _, ok := m.GetCell(nr, nc); ok {
			return nr, nc, true
		}
		if !m.IsCovered(nr, nc) {
			return nr, nc, true
		}

		lead, ok := m.LeadingCellAt(nr, nc)
		if !ok {
			return nr, nc, true
		}
		if lead.R == r && lead.C == c {
			rect := lead.Rect()
			switch dir {
			case DirUp:
				nr = rect.Top() - 1
			case DirDown:
				nr = rect.Bottom()
			case DirLeft:
				nc = rect.Left() - 1
			case DirRight:
				nc = rect.Right()
			}
			if nr < 0 || nr >= m.Rows() || nc < 0 || nc >= m.Cols() {
				return 0, 0, false
			}
			continue
		}

		return lead.R, lead.C, true
	}
	return 0, 0, false
}
