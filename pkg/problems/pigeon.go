package problems

import "github.com/satbench/bipartgen/pkg/kpartite"

// Pigeonhole builds the complete bipartite graph of a pigeonhole problem
// with the given number of holes. Partition 0 holds the holes+1 pigeons,
// partition 1 the holes, and every pigeon connects to every hole.
func Pigeonhole(holes int) (*kpartite.Graph, error) {
	g, err := kpartite.New(holes+1, holes)
	if err != nil {
		return nil, err
	}
	g.ConnectPartitions(0, 1)
	return g, nil
}
