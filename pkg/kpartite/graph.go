package kpartite

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrPartitionCount is returned by [New] when fewer than two partition
	// sizes are given. A k-partite graph needs at least two partitions to
	// hold any edge.
	ErrPartitionCount = errors.New("graph needs at least two partitions")

	// ErrPartitionSize is returned by [New] when a partition size is below
	// one. Partitions are fixed at construction and never resized, so an
	// empty partition would stay empty forever.
	ErrPartitionSize = errors.New("partition size must be at least 1")
)

// Graph is a k-partite graph with byte-packed adjacency rows and parallel
// neighbor counters. Nodes are addressed as (partition, index) pairs.
//
// The zero value is not usable - use New. Graph is not safe for concurrent
// use without external synchronization.
type Graph struct {
	sizes []int

	// adj[i][j][n] is the bit row of edges from node n of partition i into
	// partition j. adj[i][i] is nil.
	adj [][][]bitrow

	// counts[i][j][n] is the number of neighbors node n of partition i has
	// in partition j. Maintained alongside the bits so degree queries never
	// rescan rows.
	counts [][][]int

	// pairEdges[i] counts edges between partition i and every partition
	// j > i. The asymmetry is deliberate: EdgeID sums these for all
	// partitions below the canonical (smaller) endpoint.
	pairEdges []int
}

// New creates an empty k-partite graph with the given partition sizes.
// Returns ErrPartitionCount for fewer than two sizes and ErrPartitionSize
// for any size below one.
func New(sizes ...int) (*Graph, error) {
	if len(sizes) < 2 {
		return nil, ErrPartitionCount
	}
	for _, s := range sizes {
		if s < 1 {
			return nil, ErrPartitionSize
		}
	}

	k := len(sizes)
	g := &Graph{
		sizes:     slices.Clone(sizes),
		adj:       make([][][]bitrow, k),
		counts:    make([][][]int, k),
		pairEdges: make([]int, k),
	}
	for i := 0; i < k; i++ {
		g.adj[i] = make([][]bitrow, k)
		g.counts[i] = make([][]int, k)
		for j := 0; j < k; j++ {
			if i == j {
				continue
			}
			rows := make([]bitrow, sizes[i])
			for n := range rows {
				rows[n] = newBitrow(sizes[j])
			}
			g.adj[i][j] = rows
			g.counts[i][j] = make([]int, sizes[i])
		}
	}
	return g, nil
}

// Partitions returns the number of partitions, k.
func (g *Graph) Partitions() int { return len(g.sizes) }

// PartitionSizes returns a copy of the per-partition node counts.
func (g *Graph) PartitionSizes() []int { return slices.Clone(g.sizes) }

// PartitionSize returns the node count of one partition.
func (g *Graph) PartitionSize(p int) int {
	g.checkPartition(p)
	return g.sizes[p]
}

// HasEdge reports whether an edge exists between (p1, n1) and (p2, n2).
func (g *Graph) HasEdge(p1, n1, p2, n2 int) bool {
	g.checkNode(p1, n1)
	g.checkNode(p2, n2)
	g.checkDistinct(p1, p2)
	return g.adj[p1][p2][n1].get(n2)
}

// NeighborCount returns the number of neighbors node (p1, n1) has in
// partition p2.
func (g *Graph) NeighborCount(p1, n1, p2 int) int {
	g.checkNode(p1, n1)
	g.checkPartition(p2)
	g.checkDistinct(p1, p2)
	return g.counts[p1][p2][n1]
}

// Neighbors returns the ascending indices of all nodes in partition p2
// adjacent to (p1, n1). Returns nil when there are none.
func (g *Graph) Neighbors(p1, n1, p2 int) []int {
	count := g.NeighborCount(p1, n1, p2)
	if count == 0 {
		return nil
	}
	out := make([]int, 0, count)
	row := g.adj[p1][p2][n1]
	for n2 := 0; n2 < g.sizes[p2]; n2++ {
		if row.get(n2) {
			out = append(out, n2)
		}
	}
	return out
}

// AddEdge adds the edge between (p1, n1) and (p2, n2) in both directions.
// Adding an existing edge is a no-op.
func (g *Graph) AddEdge(p1, n1, p2, n2 int) {
	if g.HasEdge(p1, n1, p2, n2) {
		return
	}
	g.counts[p1][p2][n1]++
	g.counts[p2][p1][n2]++
	g.pairEdges[min(p1, p2)]++
	g.adj[p1][p2][n1].set(n2)
	g.adj[p2][p1][n2].set(n1)
}

// RemoveEdge removes the edge between (p1, n1) and (p2, n2) from both
// directions. Removing an absent edge is a no-op.
func (g *Graph) RemoveEdge(p1, n1, p2, n2 int) {
	if !g.HasEdge(p1, n1, p2, n2) {
		return
	}
	g.counts[p1][p2][n1]--
	g.counts[p2][p1][n2]--
	g.pairEdges[min(p1, p2)]--
	g.adj[p1][p2][n1].clear(n2)
	g.adj[p2][p1][n2].clear(n1)
}

// ConnectNode adds edges from (p1, n1) to every node of partition p2.
func (g *Graph) ConnectNode(p1, n1, p2 int) {
	g.checkNode(p1, n1)
	g.checkPartition(p2)
	for n2 := 0; n2 < g.sizes[p2]; n2++ {
		g.AddEdge(p1, n1, p2, n2)
	}
}

// ConnectPartitions adds every edge between partitions p1 and p2.
func (g *Graph) ConnectPartitions(p1, p2 int) {
	g.checkPartition(p1)
	for n1 := 0; n1 < g.sizes[p1]; n1++ {
		g.ConnectNode(p1, n1, p2)
	}
}

// EdgeCount returns the total number of edges in the graph.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, e := range g.pairEdges {
		total += e
	}
	return total
}

// EdgeID returns the 1-indexed position of the edge in the global
// lexicographic ordering (partition pair, left node, right node), or 0 when
// the edge is absent.
//
// The numbering is dense and gapless over the current edge set but unstable
// under mutation: any AddEdge or RemoveEdge shifts IDs, so callers must
// recompute rather than cache across mutations.
func (g *Graph) EdgeID(p1, n1, p2, n2 int) int {
	if p1 > p2 {
		return g.EdgeID(p2, n2, p1, n1)
	}
	if !g.HasEdge(p1, n1, p2, n2) {
		return 0
	}

	// Every edge attributed to a partition below p1 precedes this one.
	id := 0
	for i := 0; i < p1; i++ {
		id += g.pairEdges[i]
	}

	// Within p1, every edge of a lower node toward any higher partition.
	for n := 0; n < n1; n++ {
		for p := p1 + 1; p < len(g.sizes); p++ {
			id += g.counts[p1][p][n]
		}
	}

	// Within node n1, every neighbor below n2 in p2.
	row := g.adj[p1][p2][n1]
	for n := 0; n < n2; n++ {
		if row.get(n) {
			id++
		}
	}

	return id + 1
}

// sharedNeighborhood intersects the p2-adjacency rows of the given p1 nodes
// and returns the result. The returned row is freshly allocated.
func (g *Graph) sharedNeighborhood(p1, p2 int, nodes []int) bitrow {
	shared := newBitrow(g.sizes[p2])
	copy(shared, g.adj[p1][p2][nodes[0]])
	for _, n := range nodes[1:] {
		intersect(shared, shared, g.adj[p1][p2][n])
	}
	return shared
}

// SharedNeighborhoodSize returns the number of nodes in partition p2
// adjacent to every one of the given p1 nodes.
func (g *Graph) SharedNeighborhoodSize(p1, p2 int, nodes []int) int {
	for _, n := range nodes {
		g.checkNode(p1, n)
	}
	g.checkPartition(p2)
	g.checkDistinct(p1, p2)
	return g.sharedNeighborhood(p1, p2, nodes).popcount()
}

// MinPairwiseSharedSize returns the smallest pairwise shared-neighborhood
// size over all pairs of the given p1 nodes.
func (g *Graph) MinPairwiseSharedSize(p1, p2 int, nodes []int) int {
	minSize := g.sizes[p2] + 1
	for i := 0; i < len(nodes); i++ {
		for j := i + 1; j < len(nodes); j++ {
			size := g.SharedNeighborhoodSize(p1, p2, []int{nodes[i], nodes[j]})
			if size < minSize {
				minSize = size
			}
		}
	}
	return minSize
}

// Index bounds are programmer errors, not runtime conditions: the partition
// shape is fixed at construction, so a bad index means the caller computed
// it wrong. Fail fast instead of degrading.

func (g *Graph) checkPartition(p int) {
	if p < 0 || p >= len(g.sizes) {
		panic(fmt.Sprintf("kpartite: partition %d out of range [0,%d)", p, len(g.sizes)))
	}
}

func (g *Graph) checkNode(p, n int) {
	g.checkPartition(p)
	if n < 0 || n >= g.sizes[p] {
		panic(fmt.Sprintf("kpartite: node %d out of range [0,%d) in partition %d", n, g.sizes[p], p))
	}
}

func (g *Graph) checkDistinct(p1, p2 int) {
	if p1 == p2 {
		panic(fmt.Sprintf("kpartite: partitions must differ, got %d twice", p1))
	}
}
