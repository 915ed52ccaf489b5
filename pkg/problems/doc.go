// Package problems builds the bipartite graphs behind the benchmark
// families: pigeonhole instances, mutilated chessboards in three board
// geometries, and seeded random graphs grown over a spanning tree.
//
// Every constructor returns a two-partition [kpartite.Graph] ready for
// matching enumeration and CNF encoding.
package problems
