package geom

// Vec2 is a 2D point or extent in pixels.
type Vec2 struct {
	X, Y float32
}

func V(x, y float32) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Rect is an axis-aligned rectangle: origin at (X,Y), extending W right and H down.
type Rect struct {
	X, Y, W, H float32
}

func R(x, y, w, h float32) Rect { return Rect{x, y, w, h} }

func (r Rect) Right() float32  { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }
func (r Rect) Pos() Vec2       { return Vec2{r.X, r.Y} }
func (r Rect) Size() Vec2      { return Vec2{r.W, r.H} }

// Contains reports whether p falls inside r. Half-open on the max edge:
// points on the right/bottom border are outside.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// ContainsXY is Contains without building a Vec2.
func (r Rect) ContainsXY(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Shrink returns r inset by n on all four sides.
func (r Rect) Shrink(n float32) Rect {
	return Rect{r.X + n, r.Y + n, r.W - 2*n, r.H - 2*n}
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Intersect returns the overlap of r and o. The result has non-positive
// W or H when the rectangles do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x0 := maxf(r.X, o.X)
	y0 := maxf(r.Y, o.Y)
	x1 := minf(r.Right(), o.Right())
	y1 := minf(r.Bottom(), o.Bottom())
	return Rect{x0, y0, x1 - x0, y1 - y0}
}

// Overlaps reports whether r and o share any area.
func (r Rect) Overlaps(o Rect) bool { return !r.Intersect(o).Empty() }

// ContainsRect reports whether o lies entirely inside r.
// An empty o is contained anywhere.
func (r Rect) ContainsRect(o Rect) bool {
	if o.Empty() {
		return true
	}
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

func minf(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampInt limits v to [lo, hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
