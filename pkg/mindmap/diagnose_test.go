package mindmap

import (
	"fmt"
	"testing"

	"github.com/vanderheijden86/paperhub/pkg/model"
)

func TestDiagnoseCleanTree(t *testing.T) {
	g := model.Graph{
		Nodes: nodes("r", "a", "b"),
		Edges: []model.GraphEdge{edge("r", "a"), edge("r", "b")},
	}
	d := Diagnose(g)
	if !d.OK() {
		t.Fatalf("expected clean diagnosis, got %+v", d)
	}
	if d.Root != "r" || d.NodeCount != 3 || d.EdgeCount != 2 {
		t.Errorf("unexpected diagnosis: %+v", d)
	}
}

func TestDiagnoseFindsProblems(t *testing.T) {
	g := model.Graph{
		Nodes: nodes("r", "a", "x", "y", "island", "loop"),
		Edges: []model.GraphEdge{
			edge("r", "a"),
			edge("x", "y"), edge("y", "x"),
			edge("loop", "loop"),
			edge("a", "ghost"),
		},
	}
	d := Diagnose(g)
	if d.OK() {
		t.Fatal("expected problems to be reported")
	}
	if d.Root != "r" {
		t.Errorf("root = %q, want r", d.Root)
	}
	if len(d.DanglingEdges) != 1 || d.DanglingEdges[0].To != "ghost" {
		t.Errorf("dangling = %+v", d.DanglingEdges)
	}
	if got := fmt.Sprint(d.Cycles); got != "[[loop] [x y]]" {
		t.Errorf("cycles = %s, want [[loop] [x y]]", got)
	}
	if got := fmt.Sprint(d.Unreachable); got != "[x y island loop]" {
		t.Errorf("unreachable = %s, want [x y island loop]", got)
	}
}

func TestDiagnoseEmpty(t *testing.T) {
	d := Diagnose(model.Graph{})
	if d.OK() || d.Root != "" {
		t.Errorf("empty graph should not be OK: %+v", d)
	}
}
