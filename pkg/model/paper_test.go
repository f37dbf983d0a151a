package model

import (
	"testing"
	"time"

	json "github.com/goccy/go-json"
)

func TestPaperPublished(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-05", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{" 2024-03-05 ", time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)},
		{"2024-03-05T10:00:00Z", time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)},
		{"", time.Time{}},
		{"last tuesday", time.Time{}},
	}
	for _, tt := range tests {
		got := Paper{PublishedDate: tt.in}.Published()
		if !got.Equal(tt.want) {
			t.Errorf("Published(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestPaperDetailDecode(t *testing.T) {
	raw := `{
	  "id": 7,
	  "paper": {"title": "Attention", "authors": "A, B", "pdf_url": "http://x/7.pdf", "published_date": "2023-01-02"},
	  "summaries": {"short": "s", "long": "l"},
	  "facts": [{"type": "Method", "value": "Transformer"}],
	  "entities": [{"entity": "BERT", "type": "Model"}],
	  "mindmap_json": "{\"nodes\": []}"
	}`
	var d PaperDetail
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.ID != 7 || d.Paper.Title != "Attention" || d.Paper.PDFURL != "http://x/7.pdf" {
		t.Errorf("unexpected paper: %+v", d)
	}
	if len(d.Facts) != 1 || d.Facts[0].Type != "Method" {
		t.Errorf("unexpected facts: %+v", d.Facts)
	}
	if len(d.Entities) != 1 || d.Entities[0].Entity != "BERT" {
		t.Errorf("unexpected entities: %+v", d.Entities)
	}
	if !d.HasMindmap() {
		t.Error("expected mindmap payload to be present")
	}
}

func TestPaperDetailHasMindmap(t *testing.T) {
	for _, raw := range []string{"", "null", " null ", `""`} {
		d := PaperDetail{Mindmap: json.RawMessage(raw)}
		if d.HasMindmap() {
			t.Errorf("HasMindmap(%q) = true, want false", raw)
		}
	}
}

func TestHierarchyCountDepth(t *testing.T) {
	h := &HierarchyNode{Name: "A", Children: []*HierarchyNode{
		{Name: "B", Children: []*HierarchyNode{{Name: "C"}}},
		{Name: "D"},
	}}
	if h.Count() != 4 {
		t.Errorf("Count = %d, want 4", h.Count())
	}
	if h.Depth() != 3 {
		t.Errorf("Depth = %d, want 3", h.Depth())
	}
	var nilNode *HierarchyNode
	if nilNode.Count() != 0 || nilNode.Depth() != 0 {
		t.Error("nil hierarchy should have zero count and depth")
	}
}
