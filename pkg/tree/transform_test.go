package tree

import (
	"math"
	"testing"
	"time"
)

func timeOf(fraction float64) time.Duration {
	return time.Duration(fraction * float64(Duration))
}

func near(a, b Point) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9
}

func TestTransformApplyInvert(t *testing.T) {
	tr := Transform{X: 5, Y: -3, K: 2}
	p := Point{4, 7}
	screen := tr.Apply(p)
	if screen != (Point{13, 11}) {
		t.Errorf("Apply = %v, want {13 11}", screen)
	}
	if back := tr.Invert(screen); !near(back, p) {
		t.Errorf("Invert = %v, want %v", back, p)
	}
}

func TestTransformZeroValueIsIdentity(t *testing.T) {
	var tr Transform
	p := Point{3, 4}
	if tr.Apply(p) != p || Identity.Apply(p) != p {
		t.Error("zero transform should not move points")
	}
}

func TestPanIsTranslationThen(t *testing.T) {
	base := Transform{X: 3, Y: -1, K: 2}
	if got, want := base.Pan(4, 5), base.Then(Transform{X: 4, Y: 5, K: 1}); got != want {
		t.Errorf("Pan = %+v, want %+v", got, want)
	}
	if got := base.Pan(4, 5); got != (Transform{X: 7, Y: 4, K: 2}) {
		t.Errorf("Pan keeps scale and adds offsets, got %+v", got)
	}
}

func TestTransformPanAndThen(t *testing.T) {
	a := Identity.Pan(10, 0)
	b := Transform{K: 3}
	p := Point{1, 1}
	composed := a.Then(b)
	if got, want := composed.Apply(p), b.Apply(a.Apply(p)); !near(got, want) {
		t.Errorf("Then = %v, want %v", got, want)
	}
}

func TestTransformZoomAtKeepsAnchor(t *testing.T) {
	tr := Identity.Pan(7, 2)
	anchor := Point{20, 10}
	world := tr.Invert(anchor)
	zoomed := tr.ZoomAt(anchor, 2)
	if zoomed.K != 2 {
		t.Errorf("K = %v, want 2", zoomed.K)
	}
	if got := zoomed.Apply(world); !near(got, anchor) {
		t.Errorf("anchor moved to %v", got)
	}
}

func TestTransformZoomClamps(t *testing.T) {
	if k := Identity.ZoomAt(Point{}, 100).K; k != MaxZoom {
		t.Errorf("K = %v, want %v", k, MaxZoom)
	}
	if k := Identity.ZoomAt(Point{}, 0.001).K; k != MinZoom {
		t.Errorf("K = %v, want %v", k, MinZoom)
	}
	if got := Identity.ZoomAt(Point{}, -1); got != Identity {
		t.Errorf("non-positive factor should be ignored, got %v", got)
	}
}
