package mindmap

import (
	"sort"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
	"gonum.org/v1/gonum/graph/traverse"

	"github.com/vanderheijden86/paperhub/pkg/model"
)

// Diagnosis summarises structural problems of a mindmap graph that the
// normalizer would otherwise only report one at a time, or drop silently.
type Diagnosis struct {
	Root          string
	NodeCount     int
	EdgeCount     int               // edges with both endpoints known
	DanglingEdges []model.GraphEdge // edges referencing unknown node ids
	Cycles        [][]string        // strongly connected components with a cycle
	Unreachable   []string          // nodes not reachable from Root
}

// OK reports whether the graph normalizes into a tree that covers every node.
func (d Diagnosis) OK() bool {
	return d.NodeCount > 0 && len(d.Cycles) == 0 && len(d.Unreachable) == 0
}

// Diagnose inspects g using the same root selection as Normalize.
func Diagnose(g model.Graph) Diagnosis {
	ix := buildIndex(g)
	d := Diagnosis{
		NodeCount:     len(ix.order),
		EdgeCount:     ix.edges,
		DanglingEdges: ix.dangling,
	}
	if len(ix.order) == 0 {
		return d
	}
	d.Root = ix.root()

	ids := make(map[string]int64, len(ix.order))
	names := make(map[int64]string, len(ix.order))
	dg := simple.NewDirectedGraph()
	for i, id := range ix.order {
		ids[id] = int64(i)
		names[int64(i)] = id
		dg.AddNode(simple.Node(i))
	}

	selfLoops := make(map[string]bool)
	for from, tos := range ix.children {
		for _, to := range tos {
			if from == to {
				// simple graphs reject self loops; they are cycles on their own
				selfLoops[from] = true
				continue
			}
			dg.SetEdge(dg.NewEdge(simple.Node(ids[from]), simple.Node(ids[to])))
		}
	}

	for _, scc := range topo.TarjanSCC(dg) {
		if len(scc) < 2 {
			if len(scc) == 1 && selfLoops[names[scc[0].ID()]] {
				d.Cycles = append(d.Cycles, []string{names[scc[0].ID()]})
			}
			continue
		}
		cycle := make([]string, 0, len(scc))
		for _, n := range scc {
			cycle = append(cycle, names[n.ID()])
		}
		sort.Strings(cycle)
		d.Cycles = append(d.Cycles, cycle)
	}
	sort.Slice(d.Cycles, func(i, j int) bool { return d.Cycles[i][0] < d.Cycles[j][0] })

	reached := make(map[int64]bool, len(ix.order))
	bfs := traverse.BreadthFirst{
		Visit: func(n graph.Node) { reached[n.ID()] = true },
	}
	bfs.Walk(dg, simple.Node(ids[d.Root]), nil)
	reached[ids[d.Root]] = true
	for _, id := range ix.order {
		if !reached[ids[id]] {
			d.Unreachable = append(d.Unreachable, id)
		}
	}

	return d
}
