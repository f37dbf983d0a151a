package mindmap

import (
	"errors"
	"testing"
)

func TestParsePayloadForms(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "graph object",
			raw:  `{"nodes":[{"id":"n1","label":"Root"},{"id":"n2","label":"Problem"}],"edges":[{"from":"n1","to":"n2"}]}`,
			want: "Root{Problem}",
		},
		{
			name: "serialized graph string",
			raw:  `"{\"nodes\":[{\"id\":\"n1\",\"label\":\"Root\"},{\"id\":\"n2\",\"label\":\"Approach\"}],\"edges\":[{\"from\":\"n1\",\"to\":\"n2\"}]}"`,
			want: "Root{Approach}",
		},
		{
			name: "fenced graph",
			raw:  "```json\n{\"nodes\":[{\"id\":\"a\",\"label\":\"A\"}],\"edges\":[]}\n```",
			want: "A",
		},
		{
			name: "fenced graph inside string",
			raw:  `"` + "```json\\n{\\\"nodes\\\":[{\\\"id\\\":\\\"a\\\",\\\"label\\\":\\\"A\\\"}]}\\n```" + `"`,
			want: "A",
		},
		{
			name: "hierarchy",
			raw:  `{"name":"Paper","children":[{"name":"Results","children":[{"name":"SOTA"}]},{"name":"Limits"}]}`,
			want: "Paper{Results{SOTA},Limits}",
		},
		{
			name: "hierarchy with label keys",
			raw:  `{"label":"Paper","children":[{"label":"Method"}]}`,
			want: "Paper{Method}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := ParsePayload([]byte(tt.raw))
			if err != nil {
				t.Fatalf("ParsePayload: %v", err)
			}
			if got := shape(h); got != tt.want {
				t.Errorf("shape = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParsePayloadErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want error
	}{
		{"empty", "", ErrNoPayload},
		{"null", "null", ErrNoPayload},
		{"not json", "{nodes: oops", ErrMalformedPayload},
		{"string of garbage", `"definitely not json"`, ErrMalformedPayload},
		{"unknown object", `{"foo": 1}`, ErrMalformedPayload},
		{"empty graph", `{"nodes": [], "edges": []}`, ErrEmptyGraph},
		{"cyclic graph", `{"nodes":[{"id":"a"},{"id":"b"}],"edges":[{"from":"a","to":"b"},{"from":"b","to":"a"}]}`, ErrCycleDetected},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePayload([]byte(tt.raw))
			if !errors.Is(err, tt.want) {
				t.Errorf("ParsePayload(%q) error = %v, want %v", tt.raw, err, tt.want)
			}
		})
	}
}

func TestParseGraph(t *testing.T) {
	g, err := ParseGraph([]byte(`"{\"nodes\":[{\"id\":\"a\"}],\"edges\":[{\"from\":\"a\",\"to\":\"b\"}]}"`))
	if err != nil {
		t.Fatalf("ParseGraph: %v", err)
	}
	if len(g.Nodes) != 1 || len(g.Edges) != 1 {
		t.Errorf("unexpected graph: %+v", g)
	}
	if _, err := ParseGraph([]byte("null")); !errors.Is(err, ErrNoPayload) {
		t.Errorf("expected ErrNoPayload, got %v", err)
	}
}
