package mindmap

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/vanderheijden86/paperhub/pkg/model"
)

var (
	// ErrNoPayload is returned for an empty or null mindmap payload.
	ErrNoPayload = errors.New("no mindmap payload")

	// ErrMalformedPayload is returned when a payload cannot be parsed as a
	// graph or a hierarchy.
	ErrMalformedPayload = errors.New("malformed mindmap payload")
)

// payloadProbe decodes the union of the graph and hierarchy shapes so the
// payload kind can be told apart in one pass.
type payloadProbe struct {
	Nodes    []model.GraphNode `json:"nodes"`
	Edges    []model.GraphEdge `json:"edges"`
	Name     *string           `json:"name"`
	Label    *string           `json:"label"`
	Children []rawHierarchy    `json:"children"`
}

type rawHierarchy struct {
	Name     string         `json:"name"`
	Label    string         `json:"label"`
	Children []rawHierarchy `json:"children"`
}

func (r rawHierarchy) convert() *model.HierarchyNode {
	name := r.Name
	if name == "" {
		name = r.Label
	}
	node := &model.HierarchyNode{Name: name}
	for _, c := range r.Children {
		node.Children = append(node.Children, c.convert())
	}
	return node
}

// ParsePayload turns a stored mindmap into a hierarchy.
//
// Accepted forms: a graph object ({"nodes": [...], "edges": [...]}), a
// pre-built hierarchy ({"name": ..., "children": [...]}, "label" accepted for
// "name"), or a JSON string holding either. Markdown code fences around the
// JSON are ignored.
func ParsePayload(raw []byte) (*model.HierarchyNode, error) {
	return parsePayload(raw, true)
}

func parsePayload(raw []byte, allowString bool) (*model.HierarchyNode, error) {
	data := stripFences(bytes.TrimSpace(raw))
	if len(data) == 0 || string(data) == "null" {
		return nil, ErrNoPayload
	}

	if data[0] == '"' {
		if !allowString {
			return nil, fmt.Errorf("%w: doubly encoded string", ErrMalformedPayload)
		}
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		return parsePayload([]byte(inner), false)
	}

	var probe payloadProbe
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	switch {
	case len(probe.Nodes) > 0:
		return Normalize(model.Graph{Nodes: probe.Nodes, Edges: probe.Edges})
	case probe.Name != nil || probe.Label != nil:
		h := rawHierarchy{Children: probe.Children}
		if probe.Name != nil {
			h.Name = *probe.Name
		}
		if probe.Label != nil {
			h.Label = *probe.Label
		}
		return h.convert(), nil
	case probe.Nodes != nil:
		return nil, ErrEmptyGraph
	default:
		return nil, fmt.Errorf("%w: neither a graph nor a hierarchy", ErrMalformedPayload)
	}
}

// ParseGraph decodes a payload that must be in node/edge form. It is used by
// diagnostics, which need the raw graph rather than the normalized tree.
func ParseGraph(raw []byte) (model.Graph, error) {
	data := stripFences(bytes.TrimSpace(raw))
	if len(data) > 0 && data[0] == '"' {
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return model.Graph{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
		}
		data = stripFences(bytes.TrimSpace([]byte(inner)))
	}
	if len(data) == 0 || string(data) == "null" {
		return model.Graph{}, ErrNoPayload
	}
	var g model.Graph
	if err := json.Unmarshal(data, &g); err != nil {
		return model.Graph{}, fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return g, nil
}

// stripFences removes a surrounding ``` or ```json fence.
func stripFences(data []byte) []byte {
	s := string(data)
	if !strings.HasPrefix(s, "```") {
		return data
	}
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return []byte(strings.TrimSpace(s))
}
