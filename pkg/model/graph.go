package model

// GraphNode is a mindmap node before normalization.
type GraphNode struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// GraphEdge links two GraphNodes by id.
type GraphEdge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Graph is the node/edge form of a mindmap as produced upstream.
type Graph struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}

// HierarchyNode is one node of a single-rooted mindmap tree.
type HierarchyNode struct {
	Name     string           `json:"name"`
	Children []*HierarchyNode `json:"children,omitempty"`
}

// Count returns the number of nodes in the subtree rooted at h.
func (h *HierarchyNode) Count() int {
	if h == nil {
		return 0
	}
	n := 1
	for _, c := range h.Children {
		n += c.Count()
	}
	return n
}

// Depth returns the number of levels in the subtree rooted at h.
func (h *HierarchyNode) Depth() int {
	if h == nil {
		return 0
	}
	deepest := 0
	for _, c := range h.Children {
		if d := c.Depth(); d > deepest {
			deepest = d
		}
	}
	return deepest + 1
}
