package model

// Rect is an axis-aligned, half-open rectangle in grid coordinates:
// it spans rows [R, R+RowSpan) and columns [C, C+ColSpan). It is the
// merge-geometry primitive every package that reasons about merged regions
// (model, merge, registry, selection) builds on.
type Rect struct {
	R, C             int
	RowSpan, ColSpan int
}

// RectFromCell returns the rectangle occupied by a leading cell, defaulting
// spans below 1 to 1 so a plain cell is always a 1x1 rectangle.
func RectFromCell(c Cell) Rect {
	rs, cs := c.RowSpan, c.ColSpan
	if rs < 1 {
		rs = 1
	}
	if cs < 1 {
		cs = 1
	}
	return Rect{R: c.R, C: c.C, RowSpan: rs, ColSpan: cs}
}

// Top, Left are the rectangle's origin; Bottom, Right are exclusive bounds.
func (r Rect) Top() int    { return r.R }
func (r Rect) Left() int   { return r.C }
func (r Rect) Bottom() int { return r.R + r.RowSpan }
func (r Rect) Right() int  { return r.C + r.ColSpan }

// Contains reports whether (row, col) falls inside the rectangle.
func (r Rect) Contains(row, col int) bool {
	return row >= r.Top() && row < r.Bottom() && col >= r.Left() && col < r.Right()
}

// ContainsRect reports whether other is fully inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Top() >= r.Top() && other.Bottom() <= r.Bottom() &&
		other.Left() >= r.Left() && other.Right() <= r.Right()
}

// Overlaps reports whether r and other share at least one coordinate.
func (r Rect) Overlaps(other Rect) bool {
	return r.Top() < other.Bottom() && other.Top() < r.Bottom() &&
		r.Left() < other.Right() && other.Left() < r.Right()
}

// Equal reports whether two rectangles cover exactly the same coordinates.
func (r Rect) Equal(other Rect) bool {
	return r.R == other.R && r.C == other.C && r.RowSpan == other.RowSpan && r.ColSpan == other.ColSpan
}

// NormalizeRange returns the rectangle spanning two opposite corners,
// regardless of which corner was given first.
func NormalizeRange(r1, c1, r2, c2 int) Rect {
	minR, maxR := r1, r2
	if minR > maxR {
		minR, maxR = maxR, minR
	}
	minC, maxC := c1, c2
	if minC > maxC {
		minC, maxC = maxC, minC
	}
	return Rect{R: minR, C: minC, RowSpan: maxR - minR + 1, ColSpan: maxC - minC + 1}
}
