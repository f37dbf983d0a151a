// Package export writes static renderings of a paper's mindmap.
package export

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	svg "github.com/ajstarks/svgo"
	"golang.org/x/image/font/basicfont"

	"github.com/vanderheijden86/paperhub/pkg/model"
	"github.com/vanderheijden86/paperhub/pkg/tree"
)

// Formats accepted by SaveMindmapSnapshot.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
)

// MindmapSnapshotOptions controls mindmap snapshot export.
type MindmapSnapshotOptions struct {
	Path      string               // Output path; format inferred from extension when Format empty
	Format    string               // "svg" or "png" (case-insensitive). If empty, inferred from Path.
	Title     string               // Optional title rendered in the header
	Hierarchy *model.HierarchyNode // Tree to draw
	Expanded  bool                 // Draw every node instead of the initial collapsed view
}

// SaveMindmapSnapshot renders the hierarchy as a horizontal tree (SVG or PNG).
func SaveMindmapSnapshot(opts MindmapSnapshotOptions) error {
	if opts.Hierarchy == nil {
		return fmt.Errorf("no mindmap to export")
	}
	format, path, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteMindmap(f, format, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteMindmap renders to w in the given format.
func WriteMindmap(w io.Writer, format string, opts MindmapSnapshotOptions) error {
	if opts.Hierarchy == nil {
		return fmt.Errorf("no mindmap to export")
	}
	layout := buildMindmapLayout(opts)
	switch strings.ToLower(format) {
	case FormatSVG:
		return renderMindmapSVG(w, layout)
	case FormatPNG:
		return renderMindmapPNG(w, layout)
	default:
		return fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
}

func resolveFormat(format, path string) (string, string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".svg":
			format = FormatSVG
		case ".png":
			format = FormatPNG
		default:
			format = FormatSVG
			if path != "" && filepath.Ext(path) == "" {
				path += ".svg"
			}
		}
	}
	if format != FormatSVG && format != FormatPNG {
		return "", "", fmt.Errorf("unsupported format %q (want svg or png)", format)
	}
	if path == "" {
		return "", "", fmt.Errorf("output path is required")
	}
	return format, path, nil
}

// --- layout computation ----------------------------------------------------

const (
	nodeW        = 170.0
	nodeH        = 28.0
	colGap       = 50.0
	rowGap       = 14.0
	padding      = 36.0
	headerHeight = 70.0
	markerR      = 5.0
	labelRunes   = 24
)

type mindmapNode struct {
	ID        int
	Label     string
	X, Y      float64 // top-left of the label box
	Collapsed bool    // has hidden children
}

type mindmapLink struct {
	From, To int
}

type mindmapLayout struct {
	Nodes  []mindmapNode
	Links  []mindmapLink
	Width  int
	Height int
	Title  string
	Total  int
}

func buildMindmapLayout(opts MindmapSnapshotOptions) mindmapLayout {
	t := tree.New(tree.NewSession(), opts.Hierarchy,
		tree.WithDepthSpacing(nodeW+colGap),
		tree.WithSiblingSpacing(nodeH+rowGap),
	)
	if opts.Expanded {
		t.ExpandAll()
	}

	lo, hi := t.Bounds()
	var out mindmapLayout
	for _, n := range t.Nodes() {
		p := n.Pos()
		out.Nodes = append(out.Nodes, mindmapNode{
			ID:        n.ID,
			Label:     truncate(n.Name, labelRunes),
			X:         padding + p.X - lo.X,
			Y:         padding + headerHeight + p.Y - lo.Y,
			Collapsed: len(n.Hidden()) > 0,
		})
	}
	for _, l := range t.Links() {
		out.Links = append(out.Links, mindmapLink{From: l.Parent.ID, To: l.Child.ID})
	}

	out.Width = int(padding*2 + hi.X - lo.X + nodeW)
	if out.Width < 480 {
		out.Width = 480
	}
	out.Height = int(padding*2 + headerHeight + hi.Y - lo.Y + nodeH)
	if out.Height < 240 {
		out.Height = 240
	}
	out.Title = opts.Title
	if strings.TrimSpace(out.Title) == "" {
		out.Title = "Mindmap"
	}
	out.Total = opts.Hierarchy.Count()
	return out
}

// linkCurve returns the endpoints and control points of the horizontal
// S-curve joining a parent's right edge to a child's left edge.
func linkCurve(from, to mindmapNode) (x1, y1, cx1, cy1, cx2, cy2, x2, y2 float64) {
	x1, y1 = from.X+nodeW, from.Y+nodeH/2
	x2, y2 = to.X, to.Y+nodeH/2
	mid := (x1 + x2) / 2
	return x1, y1, mid, y1, mid, y2, x2, y2
}

// --- rendering -------------------------------------------------------------

var (
	colorBackdrop  = color.RGBA{0xf9, 0xfa, 0xfb, 0xff}
	colorHeaderBG  = color.RGBA{0xf3, 0xf4, 0xf6, 0xff}
	colorNodeBG    = color.RGBA{0xff, 0xff, 0xff, 0xff}
	colorStroke    = color.RGBA{0x46, 0x82, 0xb4, 0xff}
	colorCollapsed = color.RGBA{0xb0, 0xc4, 0xde, 0xff}
	colorLink      = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
	colorText      = color.RGBA{0x11, 0x11, 0x11, 0xff}
	colorSubtle    = color.RGBA{0x66, 0x66, 0x66, 0xff}
)

func markerColor(n mindmapNode) color.RGBA {
	if n.Collapsed {
		return colorCollapsed
	}
	return colorNodeBG
}

func indexNodes(nodes []mindmapNode) map[int]mindmapNode {
	out := make(map[int]mindmapNode, len(nodes))
	for _, n := range nodes {
		out[n.ID] = n
	}
	return out
}

func renderMindmapSVG(w io.Writer, layout mindmapLayout) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, layout.Width-32, int(headerHeight-16), 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(32, 42, layout.Title, fmt.Sprintf("fill:%s;font-size:16px;font-family:monospace;font-weight:bold", css(colorText)))
	canvas.Text(32, 60, headerSummary(layout), fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle)))

	byID := indexNodes(layout.Nodes)
	canvas.Gid("links")
	for _, l := range layout.Links {
		x1, y1, cx1, cy1, cx2, cy2, x2, y2 := linkCurve(byID[l.From], byID[l.To])
		d := fmt.Sprintf("M%.1f,%.1f C%.1f,%.1f %.1f,%.1f %.1f,%.1f", x1, y1, cx1, cy1, cx2, cy2, x2, y2)
		canvas.Path(d, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", css(colorLink)))
	}
	canvas.Gend()

	canvas.Gid("nodes")
	for _, n := range layout.Nodes {
		x, y := int(n.X), int(n.Y)
		canvas.Roundrect(x, y, int(nodeW), int(nodeH), 6, 6,
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.2", css(colorNodeBG), css(colorStroke)))
		canvas.Circle(x+12, y+int(nodeH/2), int(markerR),
			fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5", css(markerColor(n)), css(colorStroke)))
		canvas.Text(x+24, y+int(nodeH/2)+4, n.Label, fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorText)))
	}
	canvas.Gend()

	canvas.End()
	return nil
}

func renderMindmapPNG(w io.Writer, layout mindmapLayout) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, headerHeight-16, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(layout.Title, 32, 38, 0, 0.5)
	dc.SetColor(colorSubtle)
	dc.DrawStringAnchored(headerSummary(layout), 32, 56, 0, 0.5)

	byID := indexNodes(layout.Nodes)
	dc.SetColor(colorLink)
	dc.SetLineWidth(1.5)
	for _, l := range layout.Links {
		x1, y1, cx1, cy1, cx2, cy2, x2, y2 := linkCurve(byID[l.From], byID[l.To])
		dc.MoveTo(x1, y1)
		dc.CubicTo(cx1, cy1, cx2, cy2, x2, y2)
		dc.Stroke()
	}

	for _, n := range layout.Nodes {
		dc.SetColor(colorNodeBG)
		dc.DrawRoundedRectangle(n.X, n.Y, nodeW, nodeH, 6)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.SetLineWidth(1.2)
		dc.DrawRoundedRectangle(n.X, n.Y, nodeW, nodeH, 6)
		dc.Stroke()

		dc.SetColor(markerColor(n))
		dc.DrawCircle(n.X+12, n.Y+nodeH/2, markerR)
		dc.Fill()
		dc.SetColor(colorStroke)
		dc.DrawCircle(n.X+12, n.Y+nodeH/2, markerR)
		dc.Stroke()

		dc.SetColor(colorText)
		dc.DrawStringAnchored(n.Label, n.X+24, n.Y+nodeH/2, 0, 0.5)
	}

	return dc.EncodePNG(w)
}

func headerSummary(layout mindmapLayout) string {
	return fmt.Sprintf("nodes shown: %d of %d  links: %d", len(layout.Nodes), layout.Total, len(layout.Links))
}

// --- helpers ---------------------------------------------------------------

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
