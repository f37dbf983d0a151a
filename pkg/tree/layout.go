package tree

import "math"

// Layout assigns ids to newly visible nodes and positions every visible
// node. Hidden subtrees are skipped entirely. Calling it again on an
// unchanged tree yields the same positions and ids.
func (t *Tree) Layout() []*Node {
	t.visible = make([]*Node, 0, len(t.visible))
	if t.root == nil {
		return nil
	}
	leaf := 0
	var place func(n *Node)
	place = func(n *Node) {
		if n.ID == 0 {
			n.ID = t.session.NextID()
			t.byID[n.ID] = n
		}
		t.visible = append(t.visible, n)
		n.pos.X = float64(n.Depth) * t.depthSpacing

		kids := n.Children()
		if len(kids) == 0 {
			n.pos.Y = float64(leaf) * t.siblingSpacing
			leaf++
			return
		}
		for _, c := range kids {
			place(c)
		}
		n.pos.Y = (kids[0].pos.Y + kids[len(kids)-1].pos.Y) / 2
	}
	place(t.root)
	return t.visible
}

// Bounds returns the extent of the visible nodes. An empty tree returns two
// zero points.
func (t *Tree) Bounds() (lo, hi Point) {
	if len(t.visible) == 0 {
		return Point{}, Point{}
	}
	lo = Point{math.Inf(1), math.Inf(1)}
	hi = Point{math.Inf(-1), math.Inf(-1)}
	for _, n := range t.visible {
		lo.X = math.Min(lo.X, n.pos.X)
		lo.Y = math.Min(lo.Y, n.pos.Y)
		hi.X = math.Max(hi.X, n.pos.X)
		hi.Y = math.Max(hi.Y, n.pos.Y)
	}
	return lo, hi
}

func (t *Tree) snapshot() map[int]Point {
	out := make(map[int]Point, len(t.visible))
	for _, n := range t.visible {
		out[n.ID] = n.pos
	}
	return out
}
