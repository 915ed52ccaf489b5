package render

import (
	"strings"
	"testing"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

func TestToDOT(t *testing.T) {
	g, err := kpartite.New(2, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.AddEdge(0, 0, 1, 0)
	g.AddEdge(0, 1, 1, 1)

	dot := ToDOT(g, Options{})

	if !strings.HasPrefix(dot, "graph G {") {
		t.Errorf("output is not an undirected graph: %q", dot[:20])
	}
	for _, want := range []string{`"L0"`, `"L1"`, `"R0"`, `"R1"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("output missing node %s", want)
		}
	}
	if !strings.Contains(dot, `"L0" -- "R0";`) {
		t.Error("output missing edge L0--R0")
	}
	if strings.Contains(dot, `"L0" -- "R1"`) {
		t.Error("output contains an edge the graph does not have")
	}

	// Both partitions get a rank group.
	if strings.Count(dot, "rank=same") != 2 {
		t.Errorf("output has %d rank groups, want 2", strings.Count(dot, "rank=same"))
	}
}

func TestToDOTEdgeIDs(t *testing.T) {
	g, err := kpartite.New(2, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.ConnectPartitions(0, 1)

	dot := ToDOT(g, Options{EdgeIDs: true})
	if !strings.Contains(dot, `"L0" -- "R0" [label="1"];`) {
		t.Error("first edge not labeled with id 1")
	}
	if !strings.Contains(dot, `"L1" -- "R1" [label="4"];`) {
		t.Error("last edge not labeled with id 4")
	}
}
