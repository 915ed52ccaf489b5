package cnf

import "github.com/satbench/bipartgen/pkg/kpartite"

// VarID returns the 1-based DIMACS variable for the potential edge between
// node n1 of partition p1 and node n2 of partition p2. Unlike
// [kpartite.Graph.EdgeID] the numbering covers every node pair whether or
// not the edge is present, so it is stable under graph mutation.
//
// With p1 < p2 the variable is 1 + n2 + |p2|*n1: row-major over the
// (n1, n2) grid.
func VarID(g *kpartite.Graph, p1, n1, p2, n2 int) int {
	if p1 > p2 {
		p1, n1, p2, n2 = p2, n2, p1, n1
	}
	return 1 + n2 + g.PartitionSize(p2)*n1
}

// NumEdgeVars returns the count of edge variables between partitions 0
// and 1. Auxiliary variables introduced by clause encodings are numbered
// above this.
func NumEdgeVars(g *kpartite.Graph) int {
	return g.PartitionSize(0) * g.PartitionSize(1)
}

// neighborVars collects the variables of node n's present edges toward
// partition q, in ascending neighbor order.
func neighborVars(g *kpartite.Graph, p, n, q int) []int {
	nbrs := g.Neighbors(p, n, q)
	vars := make([]int, len(nbrs))
	for i, m := range nbrs {
		vars[i] = VarID(g, p, n, q, m)
	}
	return vars
}

// absentVars collects the variables of every node pair with no edge, in
// ascending variable order.
func absentVars(g *kpartite.Graph) []int {
	var vars []int
	for n1 := 0; n1 < g.PartitionSize(0); n1++ {
		for n2 := 0; n2 < g.PartitionSize(1); n2++ {
			if !g.HasEdge(0, n1, 1, n2) {
				vars = append(vars, VarID(g, 0, n1, 1, n2))
			}
		}
	}
	return vars
}
