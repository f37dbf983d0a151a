// Package mindmap turns the node/edge mindmaps stored by the catalog into a
// single-rooted hierarchy that the tree renderer can lay out.
package mindmap

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vanderheijden86/paperhub/pkg/model"
)

var (
	// ErrEmptyGraph is returned when a graph has no nodes to root a tree on.
	ErrEmptyGraph = errors.New("mindmap graph has no nodes")

	// ErrCycleDetected is returned when a cycle is reachable from the root.
	ErrCycleDetected = errors.New("mindmap graph contains a cycle")

	// ErrTooLarge is returned when expanding shared subtrees exceeds MaxNodes.
	ErrTooLarge = errors.New("mindmap hierarchy too large")
)

// MaxNodes bounds the materialised hierarchy. Nodes with several parents are
// copied under each of them, so a dense DAG can grow quickly.
const MaxNodes = 5000

// CycleError names the path that closed a cycle. It matches ErrCycleDetected.
type CycleError struct {
	Path []string // node ids, first and last are the same node
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%v: %s", ErrCycleDetected, strings.Join(e.Path, " -> "))
}

// Is lets errors.Is(err, ErrCycleDetected) match.
func (e *CycleError) Is(target error) bool {
	return target == ErrCycleDetected
}

// index is the id lookup shared by Normalize and Diagnose.
type index struct {
	order    []string            // node ids in declaration order, duplicates dropped
	labels   map[string]string   // id -> label
	children map[string][]string // id -> child ids, in edge order
	targets  map[string]bool     // every edge target, including dangling edges
	dangling []model.GraphEdge
	edges    int // edges with both endpoints known
}

func buildIndex(g model.Graph) *index {
	ix := &index{
		labels:   make(map[string]string, len(g.Nodes)),
		children: make(map[string][]string),
		targets:  make(map[string]bool, len(g.Edges)),
	}
	for _, n := range g.Nodes {
		if _, dup := ix.labels[n.ID]; dup {
			continue // first declaration wins
		}
		label := n.Label
		if strings.TrimSpace(label) == "" {
			label = n.ID
		}
		ix.labels[n.ID] = label
		ix.order = append(ix.order, n.ID)
	}
	for _, e := range g.Edges {
		ix.targets[e.To] = true
		_, okFrom := ix.labels[e.From]
		_, okTo := ix.labels[e.To]
		if !okFrom || !okTo {
			ix.dangling = append(ix.dangling, e)
			continue
		}
		ix.children[e.From] = append(ix.children[e.From], e.To)
		ix.edges++
	}
	return ix
}

// root returns the first declared node that is never an edge target, falling
// back to the first declared node when every node has an incoming edge.
func (ix *index) root() string {
	for _, id := range ix.order {
		if !ix.targets[id] {
			return id
		}
	}
	return ix.order[0]
}

// Normalize converts a node/edge graph into exactly one rooted tree.
//
// Edges whose endpoints are unknown are dropped silently. A cycle reachable
// from the root fails with a *CycleError; nodes that are not reachable from
// the root are not part of the result.
func Normalize(g model.Graph) (*model.HierarchyNode, error) {
	ix := buildIndex(g)
	if len(ix.order) == 0 {
		return nil, ErrEmptyGraph
	}

	onPath := make(map[string]bool)
	var path []string
	count := 0

	var build func(id string) (*model.HierarchyNode, error)
	build = func(id string) (*model.HierarchyNode, error) {
		if onPath[id] {
			start := 0
			for i, p := range path {
				if p == id {
					start = i
					break
				}
			}
			cycle := append(append([]string(nil), path[start:]...), id)
			return nil, &CycleError{Path: cycle}
		}
		count++
		if count > MaxNodes {
			return nil, fmt.Errorf("%w: more than %d nodes", ErrTooLarge, MaxNodes)
		}

		onPath[id] = true
		path = append(path, id)
		defer func() {
			onPath[id] = false
			path = path[:len(path)-1]
		}()

		node := &model.HierarchyNode{Name: ix.labels[id]}
		for _, childID := range ix.children[id] {
			child, err := build(childID)
			if err != nil {
				return nil, err
			}
			node.Children = append(node.Children, child)
		}
		return node, nil
	}

	return build(ix.root())
}
