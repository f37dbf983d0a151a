package export

import (
	"bytes"
	"encoding/xml"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vanderheijden86/paperhub/pkg/model"
)

func sampleHierarchy() *model.HierarchyNode {
	return &model.HierarchyNode{Name: "Attention Is All You Need", Children: []*model.HierarchyNode{
		{Name: "Problem", Children: []*model.HierarchyNode{{Name: "Sequential RNNs"}}},
		{Name: "Approach", Children: []*model.HierarchyNode{{Name: "Self-attention"}, {Name: "Multi-head"}}},
		{Name: "Results & <BLEU>"},
	}}
}

type svgDoc struct {
	XMLName xml.Name `xml:"svg"`
	Groups  []struct {
		ID    string `xml:"id,attr"`
		Paths []struct {
			D string `xml:"d,attr"`
		} `xml:"path"`
		Texts   []string `xml:"text"`
		Circles []struct {
			Style string `xml:"style,attr"`
		} `xml:"circle"`
	} `xml:"g"`
	Texts []string `xml:"text"`
}

func parseSVG(t *testing.T, data []byte) svgDoc {
	t.Helper()
	var doc svgDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("SVG is not valid XML: %v\n%s", err, data)
	}
	return doc
}

func group(doc svgDoc, id string) (paths, texts, circles int) {
	for _, g := range doc.Groups {
		if g.ID == id {
			return len(g.Paths), len(g.Texts), len(g.Circles)
		}
	}
	return 0, 0, 0
}

func TestWriteMindmapSVG_InitialView(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMindmap(&buf, FormatSVG, MindmapSnapshotOptions{Title: "Paper 7", Hierarchy: sampleHierarchy()})
	if err != nil {
		t.Fatalf("WriteMindmap: %v", err)
	}
	doc := parseSVG(t, buf.Bytes())

	// root plus three collapsed children
	if paths, _, _ := group(doc, "links"); paths != 3 {
		t.Errorf("links = %d, want 3", paths)
	}
	if _, texts, circles := group(doc, "nodes"); texts != 4 || circles != 4 {
		t.Errorf("nodes texts=%d circles=%d, want 4", texts, circles)
	}
	if !strings.Contains(buf.String(), "Results &amp; &lt;BLEU&gt;") {
		t.Error("labels should be XML-escaped")
	}
	if len(doc.Texts) < 2 || doc.Texts[0] != "Paper 7" {
		t.Errorf("header texts = %v", doc.Texts)
	}
	if !strings.Contains(doc.Texts[1], "nodes shown: 4 of 7") {
		t.Errorf("summary = %q", doc.Texts[1])
	}
}

func TestWriteMindmapSVG_Expanded(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMindmap(&buf, "SVG", MindmapSnapshotOptions{Hierarchy: sampleHierarchy(), Expanded: true})
	if err != nil {
		t.Fatalf("WriteMindmap: %v", err)
	}
	doc := parseSVG(t, buf.Bytes())
	if paths, _, _ := group(doc, "links"); paths != 6 {
		t.Errorf("links = %d, want 6", paths)
	}
	if doc.Texts[0] != "Mindmap" {
		t.Errorf("default title = %q", doc.Texts[0])
	}
	for _, g := range doc.Groups {
		for _, p := range g.Paths {
			if !strings.HasPrefix(p.D, "M") || !strings.Contains(p.D, " C") {
				t.Errorf("link should be a cubic curve, got %q", p.D)
			}
		}
	}
}

func TestWriteMindmapPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteMindmap(&buf, FormatPNG, MindmapSnapshotOptions{Hierarchy: sampleHierarchy(), Expanded: true}); err != nil {
		t.Fatalf("WriteMindmap: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("invalid PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() < 480 || b.Dy() < 240 {
		t.Errorf("image too small: %v", b)
	}
}

func TestSaveMindmapSnapshot_InfersFormat(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		path   string
		format string
		want   string
		magic  string
	}{
		{filepath.Join(dir, "a.svg"), "", "a.svg", "<?xml"},
		{filepath.Join(dir, "b.png"), "", "b.png", "\x89PNG"},
		{filepath.Join(dir, "nested", "c"), "", "c.svg", "<?xml"},
		{filepath.Join(dir, "d.out"), "png", "d.out", "\x89PNG"},
	}
	for _, tt := range tests {
		err := SaveMindmapSnapshot(MindmapSnapshotOptions{Path: tt.path, Format: tt.format, Hierarchy: sampleHierarchy()})
		if err != nil {
			t.Fatalf("SaveMindmapSnapshot(%s): %v", tt.path, err)
		}
		written := filepath.Join(filepath.Dir(tt.path), tt.want)
		data, err := os.ReadFile(written)
		if err != nil {
			t.Fatalf("read %s: %v", written, err)
		}
		if !strings.HasPrefix(string(data), tt.magic) {
			t.Errorf("%s starts with %q, want %q", written, data[:8], tt.magic)
		}
	}
}

func TestSaveMindmapSnapshot_Errors(t *testing.T) {
	if err := SaveMindmapSnapshot(MindmapSnapshotOptions{Path: "x.svg"}); err == nil {
		t.Error("expected error without a hierarchy")
	}
	if err := SaveMindmapSnapshot(MindmapSnapshotOptions{Path: "x.gif", Format: "gif", Hierarchy: sampleHierarchy()}); err == nil {
		t.Error("expected error for unsupported format")
	}
	if err := SaveMindmapSnapshot(MindmapSnapshotOptions{Hierarchy: sampleHierarchy()}); err == nil {
		t.Error("expected error without a path")
	}
	if err := WriteMindmap(&bytes.Buffer{}, "pdf", MindmapSnapshotOptions{Hierarchy: sampleHierarchy()}); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("abcdefghij", 6); got != "abc..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abc", 0); got != "" {
		t.Errorf("truncate = %q", got)
	}
}
