package ui

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/paperhub/pkg/debug"
	"github.com/vanderheijden86/paperhub/pkg/mindmap"
	"github.com/vanderheijden86/paperhub/pkg/tree"
)

const (
	panCols    = 4
	zoomFactor = 1.25

	noteUnavailable = "mindmap unavailable"
	noteEmpty       = "no mindmap for this paper"
)

// MindmapLayout sets the terminal spacing of the mindmap: columns per depth
// level and rows per leaf.
type MindmapLayout struct {
	DepthSpacing   int
	SiblingSpacing int
}

// DefaultMindmapLayout fits labels of about twenty cells.
var DefaultMindmapLayout = MindmapLayout{DepthSpacing: 24, SiblingSpacing: 2}

type mindmapMode int

const (
	modeCanvas mindmapMode = iota
	modeOutline
)

func (m mindmapMode) String() string {
	if m == modeOutline {
		return "outline"
	}
	return "canvas"
}

// mindmapFrameMsg advances the transition of the tree owned by session.
type mindmapFrameMsg struct {
	session *tree.Session
	at      time.Time
}

// MindmapPane draws a collapsible tree either on a character canvas with
// elbow connectors or as an indented outline.
type MindmapPane struct {
	theme  Theme
	keys   mindmapKeys
	layout MindmapLayout

	tree  *tree.Tree
	total int
	note  string
	warn  string

	cursor    int
	transform tree.Transform
	homed     bool
	mode      mindmapMode

	transition tree.Transition
	animating  bool
	started    time.Time
	progress   float64
	now        func() time.Time

	width  int
	height int
}

// NewMindmapPane parses a mindmap payload and lays out its tree. Payload
// problems never fail: they are logged and shown as a note in the pane.
func NewMindmapPane(theme Theme, raw []byte, layout MindmapLayout) MindmapPane {
	if layout.DepthSpacing <= 0 {
		layout.DepthSpacing = DefaultMindmapLayout.DepthSpacing
	}
	if layout.SiblingSpacing <= 0 {
		layout.SiblingSpacing = DefaultMindmapLayout.SiblingSpacing
	}
	p := MindmapPane{
		theme:     theme,
		keys:      defaultMindmapKeys,
		layout:    layout,
		transform: tree.Identity,
		now:       time.Now,
		width:     60,
		height:    16,
	}

	h, err := mindmap.ParsePayload(raw)
	if err != nil {
		debug.Log("mindmap: %v", err)
		if errors.Is(err, mindmap.ErrNoPayload) {
			p.note = noteEmpty
		} else {
			p.note = noteUnavailable
		}
	}
	p.tree = tree.New(tree.NewSession(), h,
		tree.WithDepthSpacing(float64(layout.DepthSpacing)),
		tree.WithSiblingSpacing(float64(layout.SiblingSpacing)),
	)
	if root := p.tree.Root(); root != nil {
		p.cursor = root.ID
		p.total = h.Count()
	}

	if err == nil {
		if g, gerr := mindmap.ParseGraph(raw); gerr == nil {
			d := mindmap.Diagnose(g)
			var warns []string
			if n := len(d.DanglingEdges); n > 0 {
				warns = append(warns, fmt.Sprintf("%d dangling edge(s) ignored", n))
			}
			if n := len(d.Unreachable); n > 0 {
				warns = append(warns, fmt.Sprintf("%d unreachable node(s) omitted", n))
			}
			p.warn = strings.Join(warns, ", ")
		}
	}
	return p
}

// SetTheme restyles the pane.
func (p *MindmapPane) SetTheme(t Theme) { p.theme = t }

// SetSize sets the pane area. The view is centred on the root the first
// time a usable size arrives.
func (p *MindmapPane) SetSize(width, height int) {
	p.width = max(0, width)
	p.height = max(0, height)
	if !p.homed && p.width > 0 && p.height > 1 {
		p.transform = p.home()
		p.homed = true
	}
}

// Tree returns the underlying tree.
func (p MindmapPane) Tree() *tree.Tree { return p.tree }

// Note returns the inline message shown instead of the tree, if any.
func (p MindmapPane) Note() string { return p.note }

// Selected returns the selected node, or nil for an empty tree.
func (p MindmapPane) Selected() *tree.Node { return p.tree.Node(p.cursor) }

// Animating reports whether a transition is running.
func (p MindmapPane) Animating() bool { return p.animating }

// Transform returns the current pan/zoom transform.
func (p MindmapPane) Transform() tree.Transform { return p.transform }

func (p MindmapPane) canvasHeight() int { return max(0, p.height-1) }

// home places the root one cell from the left edge, vertically centred.
func (p MindmapPane) home() tree.Transform {
	root := p.tree.Root()
	if root == nil {
		return tree.Identity
	}
	// root to the origin, then to the left edge of the middle row
	toOrigin := tree.Transform{X: -root.Pos().X, Y: -root.Pos().Y, K: 1}
	return toOrigin.Then(tree.Transform{X: 1, Y: float64(p.canvasHeight() / 2), K: 1})
}

// Update handles keys while the pane is focused and animation frames at
// any time.
func (p MindmapPane) Update(msg tea.Msg) (MindmapPane, tea.Cmd) {
	switch msg := msg.(type) {
	case mindmapFrameMsg:
		if msg.session != p.tree.Session() || !p.animating {
			return p, nil
		}
		p.progress = p.transition.Progress(msg.at.Sub(p.started))
		if p.progress >= 1 {
			p.animating = false
			return p, nil
		}
		return p, p.tick()

	case tea.KeyMsg:
		return p.updateKeys(msg)
	}
	return p, nil
}

func (p MindmapPane) updateKeys(msg tea.KeyMsg) (MindmapPane, tea.Cmd) {
	if p.tree.Root() == nil {
		return p, nil
	}
	visible := p.tree.Nodes()
	idx := p.cursorIndex()

	switch {
	case key.Matches(msg, p.keys.Up):
		if idx > 0 {
			p.cursor = visible[idx-1].ID
			p.follow()
		}
	case key.Matches(msg, p.keys.Down):
		if idx >= 0 && idx < len(visible)-1 {
			p.cursor = visible[idx+1].ID
			p.follow()
		}
	case key.Matches(msg, p.keys.Parent):
		if n := p.Selected(); n != nil && n.Parent != nil {
			p.cursor = n.Parent.ID
			p.follow()
		}
	case key.Matches(msg, p.keys.Child):
		n := p.Selected()
		if n == nil || n.IsLeaf() {
			return p, nil
		}
		var cmd tea.Cmd
		if !n.Expanded() {
			tr, _ := p.tree.Toggle(n.ID)
			p, cmd = p.start(tr)
		}
		if kids := n.Children(); len(kids) > 0 {
			p.cursor = kids[0].ID
			p.follow()
		}
		return p, cmd
	case key.Matches(msg, p.keys.Toggle):
		tr, ok := p.tree.Toggle(p.cursor)
		if !ok {
			return p, nil
		}
		return p.start(tr)
	case key.Matches(msg, p.keys.ExpandAll):
		return p.start(p.tree.ExpandAll())
	case key.Matches(msg, p.keys.CollapseAll):
		tr := p.tree.CollapseAll()
		p.reselect()
		return p.start(tr)
	case key.Matches(msg, p.keys.PanLeft):
		p.transform = p.transform.Pan(panCols, 0)
	case key.Matches(msg, p.keys.PanRight):
		p.transform = p.transform.Pan(-panCols, 0)
	case key.Matches(msg, p.keys.PanUp):
		p.transform = p.transform.Pan(0, float64(p.layout.SiblingSpacing))
	case key.Matches(msg, p.keys.PanDown):
		p.transform = p.transform.Pan(0, -float64(p.layout.SiblingSpacing))
	case key.Matches(msg, p.keys.ZoomIn):
		p.transform = p.transform.ZoomAt(p.center(), zoomFactor)
	case key.Matches(msg, p.keys.ZoomOut):
		p.transform = p.transform.ZoomAt(p.center(), 1/zoomFactor)
	case key.Matches(msg, p.keys.Reset):
		p.transform = p.home()
	case key.Matches(msg, p.keys.Outline):
		if p.mode == modeCanvas {
			p.mode = modeOutline
		} else {
			p.mode = modeCanvas
		}
	}
	return p, nil
}

func (p MindmapPane) center() tree.Point {
	return tree.Point{X: float64(p.width) / 2, Y: float64(p.canvasHeight()) / 2}
}

func (p MindmapPane) cursorIndex() int {
	for i, n := range p.tree.Nodes() {
		if n.ID == p.cursor {
			return i
		}
	}
	return -1
}

// reselect moves the cursor to the nearest visible ancestor after a
// collapse hid the selected node.
func (p *MindmapPane) reselect() {
	n := p.Selected()
	for n != nil && !p.tree.Visible(n.ID) {
		n = n.Parent
	}
	if n == nil {
		if root := p.tree.Root(); root != nil {
			n = root
		}
	}
	if n != nil {
		p.cursor = n.ID
	}
}

// follow pans just enough to keep the selected node on the canvas.
func (p *MindmapPane) follow() {
	n := p.Selected()
	if n == nil || p.width == 0 {
		return
	}
	s := p.transform.Apply(n.Pos())
	h := float64(p.canvasHeight())
	w := float64(p.width)
	labelRoom := math.Min(float64(p.labelWidth()+2), w/2)
	switch {
	case s.Y < 0:
		p.transform = p.transform.Pan(0, -s.Y)
	case s.Y > h-1:
		p.transform = p.transform.Pan(0, h-1-s.Y)
	}
	switch {
	case s.X < 0:
		p.transform = p.transform.Pan(-s.X, 0)
	case s.X+labelRoom > w:
		p.transform = p.transform.Pan(w-labelRoom-s.X, 0)
	}
}

func (p MindmapPane) start(tr tree.Transition) (MindmapPane, tea.Cmd) {
	if tr.Empty() {
		return p, nil
	}
	p.transition = tr
	p.started = p.now()
	p.progress = 0
	p.animating = true
	return p, p.tick()
}

func (p MindmapPane) tick() tea.Cmd {
	s := p.tree.Session()
	return tea.Tick(frameInterval, func(at time.Time) tea.Msg {
		return mindmapFrameMsg{session: s, at: at}
	})
}

// placed returns the nodes at their current drawing positions.
func (p MindmapPane) placed() []tree.Placed {
	if p.animating {
		return p.transition.Frame(p.progress)
	}
	nodes := p.tree.Nodes()
	out := make([]tree.Placed, len(nodes))
	for i, n := range nodes {
		out[i] = tree.Placed{Node: n, Kind: tree.Update, At: n.Pos()}
	}
	return out
}

func (p MindmapPane) labelWidth() int {
	k := p.transform.K
	if k == 0 {
		k = 1
	}
	return max(1, int(float64(p.layout.DepthSpacing)*k)-4)
}

// View draws the pane: the tree and a one-line status.
func (p MindmapPane) View() string {
	t := p.theme
	if p.width <= 0 || p.height <= 0 {
		return ""
	}
	if p.tree.Root() == nil {
		note := p.note
		if note == "" {
			note = noteEmpty
		}
		return t.Renderer.NewStyle().
			Width(p.width).Height(p.height).
			Align(lipgloss.Center, lipgloss.Center).
			Render(t.MutedText.Render(note))
	}

	var body string
	if p.mode == modeOutline {
		body = p.viewOutline()
	} else {
		body = p.viewCanvas().render(p.styleFor)
	}
	return body + "\n" + p.statusLine()
}

func (p MindmapPane) statusLine() string {
	t := p.theme
	parts := []string{
		fmt.Sprintf("nodes %d/%d", len(p.tree.Nodes()), p.total),
		fmt.Sprintf("zoom %.2f×", p.transform.K),
		p.mode.String(),
	}
	if n := p.Selected(); n != nil {
		parts = append(parts, "› "+n.Name)
	}
	line := t.MutedText.Render(truncate(strings.Join(parts, "  "), p.width))
	if p.warn != "" {
		line += "  " + t.ErrorText.Render(p.warn)
	}
	return line
}

// viewCanvas rasterises the current frame.
func (p MindmapPane) viewCanvas() *canvas {
	c := newCanvas(p.width, p.canvasHeight())
	placed := p.placed()
	pos := tree.Positions(placed)

	screen := func(pt tree.Point) (int, int) {
		s := p.transform.Apply(pt)
		return int(math.Round(s.X)), int(math.Round(s.Y))
	}

	lw := p.labelWidth()
	labels := make(map[int]string, len(placed))
	for _, pl := range placed {
		labels[pl.Node.ID] = truncate(pl.Node.Name, lw)
	}

	// Links leave the parent after its label and enter the child's marker.
	for _, pl := range placed {
		parent := pl.Node.Parent
		if parent == nil {
			continue
		}
		pp, ok := pos[parent.ID]
		if !ok {
			continue
		}
		px, py := screen(pp)
		cx, cy := screen(pl.At)
		c.elbow(px+2+runewidth.StringWidth(labels[parent.ID]), py, cx, cy)
	}

	for _, pl := range placed {
		n := pl.Node
		x, y := screen(pl.At)
		marker, mk := nodeMarker(n)
		c.text(x, y, marker, mk)

		kind := cellLabel
		switch {
		case n.ID == p.cursor:
			kind = cellSelected
		case n.Parent == nil:
			kind = cellRoot
		}
		c.text(x+2, y, labels[n.ID], kind)
	}
	return c
}

// nodeMarker returns the indicator drawn at a node's position.
func nodeMarker(n *tree.Node) (string, cellKind) {
	switch {
	case n.IsLeaf():
		return "•", cellMarker
	case n.Expanded():
		return "▾", cellMarker
	default:
		return "▸", cellCollapsed
	}
}

func (p MindmapPane) styleFor(k cellKind) lipgloss.Style {
	t := p.theme
	switch k {
	case cellLink:
		return t.MutedText
	case cellMarker:
		return t.SecondaryText
	case cellCollapsed:
		return t.PrimaryBold
	case cellRoot:
		return t.Title
	case cellSelected:
		return t.Renderer.NewStyle().Reverse(true).Bold(true)
	default:
		return t.Base
	}
}

// viewOutline renders the visible nodes as an indented tree, windowed
// around the selection.
func (p MindmapPane) viewOutline() string {
	t := p.theme
	nodes := p.tree.Nodes()
	h := p.canvasHeight()

	start := 0
	if idx := p.cursorIndex(); idx >= h && h > 0 {
		start = idx - h + 1
	}
	end := min(len(nodes), start+h)

	rows := make([]string, 0, h)
	for _, n := range nodes[start:end] {
		prefix := outlinePrefix(n)
		marker, _ := nodeMarker(n)
		label := truncate(n.Name, max(1, p.width-len([]rune(prefix))-3))
		var row string
		switch {
		case n.ID == p.cursor:
			row = t.MutedText.Render(prefix) + marker + " " + p.styleFor(cellSelected).Render(label)
		case n.Parent == nil:
			row = marker + " " + t.Title.Render(label)
		default:
			row = t.MutedText.Render(prefix) + marker + " " + t.Base.Render(label)
		}
		rows = append(rows, row)
	}
	for len(rows) < h {
		rows = append(rows, "")
	}
	return strings.Join(rows, "\n")
}

// outlinePrefix builds the branch glyphs in front of a node: one column per
// ancestor below the root, then the node's own connector.
func outlinePrefix(n *tree.Node) string {
	if n.Parent == nil {
		return ""
	}
	var cols []string
	for a := n.Parent; a != nil && a.Parent != nil; a = a.Parent {
		if isLastChild(a) {
			cols = append(cols, "    ")
		} else {
			cols = append(cols, "│   ")
		}
	}
	var sb strings.Builder
	for i := len(cols) - 1; i >= 0; i-- {
		sb.WriteString(cols[i])
	}
	if isLastChild(n) {
		sb.WriteString("└── ")
	} else {
		sb.WriteString("├── ")
	}
	return sb.String()
}

func isLastChild(n *tree.Node) bool {
	if n.Parent == nil {
		return true
	}
	kids := n.Parent.Children()
	return len(kids) > 0 && kids[len(kids)-1] == n
}
