package tree

// Zoom limits for ZoomAt.
const (
	MinZoom = 0.25
	MaxZoom = 4
)

// Transform is a uniform scale K followed by a translation (X, Y). It is
// applied to the whole drawing, independent of node transitions. The zero
// value behaves like Identity.
type Transform struct {
	X, Y, K float64
}

// Identity leaves points unchanged.
var Identity = Transform{K: 1}

func (t Transform) k() float64 {
	if t.K == 0 {
		return 1
	}
	return t.K
}

// Apply maps a layout point to screen space.
func (t Transform) Apply(p Point) Point {
	k := t.k()
	return Point{X: p.X*k + t.X, Y: p.Y*k + t.Y}
}

// Invert maps a screen point back to layout space.
func (t Transform) Invert(p Point) Point {
	k := t.k()
	return Point{X: (p.X - t.X) / k, Y: (p.Y - t.Y) / k}
}

// Pan translates by (dx, dy) in screen units.
func (t Transform) Pan(dx, dy float64) Transform {
	return t.Then(Transform{X: dx, Y: dy, K: 1})
}

// ZoomAt scales by factor around the screen point p, which stays fixed.
// The resulting scale is clamped to [MinZoom, MaxZoom].
func (t Transform) ZoomAt(p Point, factor float64) Transform {
	if factor <= 0 {
		return t
	}
	k := t.k() * factor
	if k < MinZoom {
		k = MinZoom
	}
	if k > MaxZoom {
		k = MaxZoom
	}
	w := t.Invert(p)
	return Transform{X: p.X - w.X*k, Y: p.Y - w.Y*k, K: k}
}

// Then returns the transform that applies t first and u second.
func (t Transform) Then(u Transform) Transform {
	uk := u.k()
	return Transform{X: t.X*uk + u.X, Y: t.Y*uk + u.Y, K: t.k() * uk}
}
