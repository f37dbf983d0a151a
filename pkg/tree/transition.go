package tree

import (
	"sort"
	"time"
)

// Duration is how long a toggle transition runs.
const Duration = 300 * time.Millisecond

// MotionKind classifies a node's part in a transition.
type MotionKind int

const (
	Update MotionKind = iota // visible before and after
	Enter                    // newly visible, grows out of its parent
	Exit                     // no longer visible, removed when the transition ends
)

func (k MotionKind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	default:
		return "update"
	}
}

// Motion moves one node from From to To.
type Motion struct {
	Node *Node
	Kind MotionKind
	From Point
	To   Point
}

// Transition describes how the visible nodes move after a toggle.
type Transition struct {
	Source   *Node
	Motions  []Motion
	Duration time.Duration
}

// Placed is a node at an interpolated position.
type Placed struct {
	Node *Node
	Kind MotionKind
	At   Point
}

// Empty reports whether the transition moves nothing.
func (tr Transition) Empty() bool { return len(tr.Motions) == 0 }

// Progress converts elapsed time into a clamped [0, 1] progress value.
func (tr Transition) Progress(elapsed time.Duration) float64 {
	if tr.Duration <= 0 {
		return 1
	}
	return clamp01(float64(elapsed) / float64(tr.Duration))
}

// Frame returns node positions at the given progress (0 = start, 1 = end),
// eased with a cubic in-out curve. Exiting nodes are dropped once progress
// reaches 1.
func (tr Transition) Frame(progress float64) []Placed {
	p := easeCubic(clamp01(progress))
	out := make([]Placed, 0, len(tr.Motions))
	for _, m := range tr.Motions {
		if m.Kind == Exit && progress >= 1 {
			continue
		}
		out = append(out, Placed{
			Node: m.Node,
			Kind: m.Kind,
			At: Point{
				X: m.From.X + (m.To.X-m.From.X)*p,
				Y: m.From.Y + (m.To.Y-m.From.Y)*p,
			},
		})
	}
	return out
}

// Positions indexes a frame by node id.
func Positions(frame []Placed) map[int]Point {
	out := make(map[int]Point, len(frame))
	for _, pl := range frame {
		out[pl.Node.ID] = pl.At
	}
	return out
}

// transition compares the previous positions with the current layout.
func (t *Tree) transition(source *Node, before map[int]Point) Transition {
	tr := Transition{Source: source, Duration: Duration}
	seen := make(map[int]bool, len(t.visible))
	for _, n := range t.visible {
		seen[n.ID] = true
		if from, ok := before[n.ID]; ok {
			tr.Motions = append(tr.Motions, Motion{Node: n, Kind: Update, From: from, To: n.pos})
			continue
		}
		tr.Motions = append(tr.Motions, Motion{Node: n, Kind: Enter, From: origin(n, before), To: n.pos})
	}

	var gone []int
	for id := range before {
		if !seen[id] {
			gone = append(gone, id)
		}
	}
	sort.Ints(gone)
	for _, id := range gone {
		n := t.byID[id]
		tr.Motions = append(tr.Motions, Motion{Node: n, Kind: Exit, From: before[id], To: exitTarget(n, seen)})
	}
	return tr
}

// origin is the previous position of the nearest ancestor that was visible.
func origin(n *Node, before map[int]Point) Point {
	for p := n.Parent; p != nil; p = p.Parent {
		if pos, ok := before[p.ID]; ok {
			return pos
		}
	}
	return n.pos
}

// exitTarget is the new position of the nearest ancestor that stays visible.
func exitTarget(n *Node, visible map[int]bool) Point {
	for p := n.Parent; p != nil; p = p.Parent {
		if visible[p.ID] {
			return p.pos
		}
	}
	return n.pos
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

func easeCubic(t float64) float64 {
	t *= 2
	if t <= 1 {
		return t * t * t / 2
	}
	t -= 2
	return (t*t*t + 2) / 2
}
