// Package tree holds the state of a collapsible mindmap tree: which nodes are
// expanded, where the visible ones sit, and how they move when a node is
// toggled. Drawing is left to the callers (the terminal pane and the static
// exporters).
package tree

import (
	"github.com/vanderheijden86/paperhub/pkg/model"
)

// Session is the render-session context for one drawn tree. It owns the node
// id generator so ids stay stable across re-layouts without package state.
type Session struct {
	next int
}

// NewSession returns a session whose first id is 1. Zero is reserved for
// nodes that have not been laid out yet.
func NewSession() *Session {
	return &Session{}
}

// NextID returns a fresh node id.
func (s *Session) NextID() int {
	s.next++
	return s.next
}

// State is the expand/collapse state of a node: Expanded or Collapsed.
type State interface {
	isState()
}

// Expanded holds the children that take part in layout.
type Expanded struct {
	Children []*Node
}

// Collapsed holds children that are kept but not laid out.
type Collapsed struct {
	Hidden []*Node
}

func (Expanded) isState()  {}
func (Collapsed) isState() {}

// Point is a position in layout space. X runs along the depth axis and Y
// along the sibling axis.
type Point struct {
	X, Y float64
}

// Node wraps one hierarchy node.
type Node struct {
	Name   string
	ID     int // assigned on first layout, 0 before that
	Depth  int
	Parent *Node

	state State
	pos   Point
}

// State returns the node's current state.
func (n *Node) State() State { return n.state }

// Expanded reports whether the node's children are laid out.
func (n *Node) Expanded() bool {
	_, ok := n.state.(Expanded)
	return ok
}

// Children returns the visible children (nil when collapsed).
func (n *Node) Children() []*Node {
	if s, ok := n.state.(Expanded); ok {
		return s.Children
	}
	return nil
}

// Hidden returns the collapsed children (nil when expanded).
func (n *Node) Hidden() []*Node {
	if s, ok := n.state.(Collapsed); ok {
		return s.Hidden
	}
	return nil
}

// all returns the children regardless of state.
func (n *Node) all() []*Node {
	switch s := n.state.(type) {
	case Expanded:
		return s.Children
	case Collapsed:
		return s.Hidden
	}
	return nil
}

// IsLeaf reports whether the node has no children at all.
func (n *Node) IsLeaf() bool { return len(n.all()) == 0 }

// Pos returns the node's position from the most recent layout in which it
// was visible.
func (n *Node) Pos() Point { return n.pos }

// Link is a visible parent-child pair.
type Link struct {
	Parent, Child *Node
}

// Tree is a laid-out collapsible tree.
type Tree struct {
	session        *Session
	root           *Node
	byID           map[int]*Node
	visible        []*Node
	depthSpacing   float64
	siblingSpacing float64
}

// Option configures a Tree.
type Option func(*Tree)

// WithDepthSpacing sets the distance between depth levels.
func WithDepthSpacing(d float64) Option {
	return func(t *Tree) {
		if d > 0 {
			t.depthSpacing = d
		}
	}
}

// WithSiblingSpacing sets the distance between neighbouring leaves.
func WithSiblingSpacing(d float64) Option {
	return func(t *Tree) {
		if d > 0 {
			t.siblingSpacing = d
		}
	}
}

// Default spacings, in layout units.
const (
	DefaultDepthSpacing   = 180
	DefaultSiblingSpacing = 40
)

// New builds a tree for h within session s and lays it out. The root starts
// expanded and every node below it collapsed. A nil hierarchy yields an empty
// tree on which every operation is a no-op.
func New(s *Session, h *model.HierarchyNode, opts ...Option) *Tree {
	if s == nil {
		s = NewSession()
	}
	t := &Tree{
		session:        s,
		byID:           make(map[int]*Node),
		depthSpacing:   DefaultDepthSpacing,
		siblingSpacing: DefaultSiblingSpacing,
	}
	for _, opt := range opts {
		opt(t)
	}
	if h == nil {
		return t
	}
	t.root = wrap(h, nil, 0)
	if c, ok := t.root.state.(Collapsed); ok {
		t.root.state = Expanded{Children: c.Hidden}
	}
	t.Layout()
	return t
}

func wrap(h *model.HierarchyNode, parent *Node, depth int) *Node {
	n := &Node{Name: h.Name, Depth: depth, Parent: parent}
	var kids []*Node
	for _, c := range h.Children {
		if c == nil {
			continue
		}
		kids = append(kids, wrap(c, n, depth+1))
	}
	n.state = Collapsed{Hidden: kids}
	return n
}

// Root returns the root node, or nil for an empty tree.
func (t *Tree) Root() *Node { return t.root }

// Session returns the session the tree draws ids from.
func (t *Tree) Session() *Session { return t.session }

// Nodes returns the visible nodes in pre-order.
func (t *Tree) Nodes() []*Node { return t.visible }

// Node looks up a node that has been laid out at least once.
func (t *Tree) Node(id int) *Node { return t.byID[id] }

// Visible reports whether the node with the given id is currently laid out.
func (t *Tree) Visible(id int) bool {
	n := t.byID[id]
	if n == nil {
		return false
	}
	for p := n.Parent; p != nil; p = p.Parent {
		if !p.Expanded() {
			return false
		}
	}
	return true
}

// Links returns one link per visible parent-child pair, in pre-order.
func (t *Tree) Links() []Link {
	var links []Link
	for _, n := range t.visible {
		for _, c := range n.Children() {
			links = append(links, Link{Parent: n, Child: c})
		}
	}
	return links
}

// Toggle flips the node with the given id between expanded and collapsed and
// re-lays out the tree. It reports false, with an empty transition, for
// unknown ids and leaves.
func (t *Tree) Toggle(id int) (Transition, bool) {
	n := t.byID[id]
	if n == nil || n.IsLeaf() || !t.Visible(id) {
		return Transition{}, false
	}
	before := t.snapshot()
	switch s := n.state.(type) {
	case Expanded:
		n.state = Collapsed{Hidden: s.Children}
	case Collapsed:
		n.state = Expanded{Children: s.Hidden}
	}
	t.Layout()
	return t.transition(n, before), true
}

// ExpandAll expands every node.
func (t *Tree) ExpandAll() Transition {
	return t.setAll(true)
}

// CollapseAll collapses every node below the root.
func (t *Tree) CollapseAll() Transition {
	return t.setAll(false)
}

func (t *Tree) setAll(expand bool) Transition {
	if t.root == nil {
		return Transition{}
	}
	before := t.snapshot()
	var walk func(n *Node)
	walk = func(n *Node) {
		kids := n.all()
		if expand || n == t.root {
			n.state = Expanded{Children: kids}
		} else {
			n.state = Collapsed{Hidden: kids}
		}
		for _, c := range kids {
			walk(c)
		}
	}
	walk(t.root)
	t.Layout()
	return t.transition(t.root, before)
}
