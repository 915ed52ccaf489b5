// Package kpartite implements a k-partite graph store optimized for
// bipartite benchmark generation.
//
// A k-partite graph partitions its nodes into k disjoint groups such that no
// two nodes within a group share an edge. Partition sizes are fixed at
// construction; nodes are addressed as (partition, index) pairs and exist for
// the lifetime of the graph.
//
// # Representation
//
// Adjacency is stored as byte-packed bit rows: for every ordered partition
// pair (i, j) and every node in i, one row of ceil(size[j]/8) bytes. Edge
// presence is symmetric and is always written to both directions. A neighbor
// counter per (i, j, node) is maintained alongside the bits so degree queries
// never rescan rows.
//
// # Edge IDs
//
// EdgeID assigns every present edge a dense, 1-indexed position in the
// lexicographic ordering (partition pair, left node, right node). The
// numbering is only stable while the edge set is unchanged - recompute it
// after any mutation, never cache it across mutations.
//
// # Usage
//
//	g, err := kpartite.New(5, 4)
//	if err != nil { ... }
//	g.AddEdge(0, 0, 1, 2)
//	g.ConnectPartitions(0, 1)
//	id := g.EdgeID(0, 0, 1, 2)
//
// Graph is not safe for concurrent use without external synchronization.
package kpartite
