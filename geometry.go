package termframe

// Point represents a 2D integer coordinate in pixels or cells.
type Point struct {
	X, Y int
}

// Pt is a convenience function to create a Point.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Size represents a 2D extent in pixels or cells.
type Size struct {
	Width, Height int
}

// IsEmpty reports whether the size has no area.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Rect is an integer pixel rectangle. Left/Top are inclusive,
// Right/Bottom exclusive, matching image.Rectangle conventions.
type Rect struct {
	Left, Top, Right, Bottom int
}

// RectFromSize returns the rectangle covering [0, s.Width) x [0, s.Height).
func RectFromSize(s Size) Rect {
	return Rect{Right: s.Width, Bottom: s.Height}
}

// Empty reports whether the rectangle contains no pixels.
func (r Rect) Empty() bool {
	return r.Left >= r.Right || r.Top >= r.Bottom
}

// Dx returns the rectangle's width.
func (r Rect) Dx() int {
	return r.Right - r.Left
}

// Dy returns the rectangle's height.
func (r Rect) Dy() int {
	return r.Bottom - r.Top
}

// Union returns the smallest rectangle containing both r and o.
// Empty rectangles contribute nothing.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	if o.Left < r.Left {
		r.Left = o.Left
	}
	if o.Top < r.Top {
		r.Top = o.Top
	}
	if o.Right > r.Right {
		r.Right = o.Right
	}
	if o.Bottom > r.Bottom {
		r.Bottom = o.Bottom
	}
	return r
}

// Intersect returns the largest rectangle contained in both r and o.
// The result may be empty.
func (r Rect) Intersect(o Rect) Rect {
	if o.Left > r.Left {
		r.Left = o.Left
	}
	if o.Top > r.Top {
		r.Top = o.Top
	}
	if o.Right < r.Right {
		r.Right = o.Right
	}
	if o.Bottom < r.Bottom {
		r.Bottom = o.Bottom
	}
	if r.Empty() {
		return Rect{}
	}
	return r
}

// Contains reports whether the point (x, y) lies inside the rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}

// RowRange is a half-open range of row indices [Start, End).
type RowRange struct {
	Start, End int
}

// Empty reports whether the range covers no rows.
func (r RowRange) Empty() bool {
	return r.Start >= r.End
}

// Len returns the number of rows in the range.
func (r RowRange) Len() int {
	if r.Empty() {
		return 0
	}
	return r.End - r.Start
}

// Contains reports whether row index i lies inside the range.
func (r RowRange) Contains(i int) bool {
	return i >= r.Start && i < r.End
}

// Union returns the smallest range containing both r and o.
// Empty ranges contribute nothing.
func (r RowRange) Union(o RowRange) RowRange {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	if o.Start < r.Start {
		r.Start = o.Start
	}
	if o.End > r.End {
		r.End = o.End
	}
	return r
}
