package geometry

// Point is a position in screen-pixel coordinates, y growing downwards.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned rectangle in screen-pixel coordinates.
// Width and height are never negative.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

func NewRect(x, y, w, h float64) Rect {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return Rect{X: x, Y: y, W: w, H: h}
}

func (r Rect) Left() float64   { return r.X }
func (r Rect) Right() float64  { return r.X + r.W }
func (r Rect) Top() float64    { return r.Y }
func (r Rect) Bottom() float64 { return r.Y + r.H }

func (r Rect) TopLeft() Point     { return Point{r.X, r.Y} }
func (r Rect) TopRight() Point    { return Point{r.X + r.W, r.Y} }
func (r Rect) BottomLeft() Point  { return Point{r.X, r.Y + r.H} }
func (r Rect) BottomRight() Point { return Point{r.X + r.W, r.Y + r.H} }

func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// MidTop is the centre of the rectangle's top edge.
func (r Rect) MidTop() Point {
	return Point{r.X + r.W/2, r.Y}
}

// Move returns a copy of the rectangle translated by (dx, dy).
func (r Rect) Move(dx, dy float64) Rect {
	return Rect{X: r.X + dx, Y: r.Y + dy, W: r.W, H: r.H}
}

// MoveTo returns a copy of the rectangle with its top-left at (x, y).
func (r Rect) MoveTo(x, y float64) Rect {
	return Rect{X: x, Y: y, W: r.W, H: r.H}
}

// ContainsPoint reports whether the point lies inside the rectangle.
// The left and top edges are inclusive, the right and bottom exclusive.
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.Left() && p.X < r.Right() &&
		p.Y >= r.Top() && p.Y < r.Bottom()
}

// ContainsRect reports whether other lies completely inside the rectangle.
func (r Rect) ContainsRect(other Rect) bool {
	return other.Left() >= r.Left() && other.Right() <= r.Right() &&
		other.Top() >= r.Top() && other.Bottom() <= r.Bottom()
}

// Intersects reports whether the two rectangles overlap with positive area.
// Rectangles that merely touch along an edge do not intersect.
func (r Rect) Intersects(other Rect) bool {
	return r.Left() < other.Right() && other.Left() < r.Right() &&
		r.Top() < other.Bottom() && other.Top() < r.Bottom()
}

// CollideList returns the index of the first rectangle in rects that
// intersects r, or -1 when none does.
func (r Rect) CollideList(rects []Rect) int {
	for i, other := range rects {
		if r.Intersects(other) {
			return i
		}
	}
	return -1
}

// CollideListAll returns the indices of every rectangle in rects that
// intersects r, in list order.
func (r Rect) CollideListAll(rects []Rect) []int {
	var indices []int
	for i, other := range rects {
		if r.Intersects(other) {
			indices = append(indices, i)
		}
	}
	return indices
}
