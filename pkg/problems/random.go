package problems

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

// RandomConfig describes a seeded random bipartite graph. Exactly one of
// Density and EdgeCount bounds the edge total; EdgeCount wins when both
// are set, matching a nonzero EdgeCount overriding the density.
type RandomConfig struct {
	// Nodes is the size of partition 1.
	Nodes int

	// Cardinality is added to Nodes to size partition 0.
	Cardinality int

	// Density is the target fraction of all possible edges, in [0, 1].
	Density float64

	// EdgeCount, when positive, bounds the total edge count directly.
	EdgeCount int

	// Seed drives edge placement. Equal seeds yield equal graphs.
	Seed int64
}

// ErrRandomNodes reports a nonpositive partition size.
var ErrRandomNodes = errors.New("problems: random graph needs at least one node per partition")

// Random builds a connected random bipartite graph: a spanning tree
// first, then edges drawn without replacement from a shuffled pool of
// the remaining pairs until the density or edge-count bound is met. The
// bound is best effort, the spanning tree may already exceed it and a
// saturated graph stops early.
func Random(cfg RandomConfig) (*kpartite.Graph, error) {
	if cfg.Nodes < 1 || cfg.Nodes+cfg.Cardinality < 1 {
		return nil, fmt.Errorf("%w: nodes=%d cardinality=%d", ErrRandomNodes, cfg.Nodes, cfg.Cardinality)
	}
	s0, s1 := cfg.Nodes+cfg.Cardinality, cfg.Nodes
	g, err := kpartite.New(s0, s1)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	limit := int(cfg.Density * float64(s0*s1))
	count := 0

	// Spanning tree: pair node i across where possible, and tie every
	// node of partition 0 to an already-reached node of partition 1.
	for i := 0; i < s0; i++ {
		var r int
		if i < s1 {
			g.AddEdge(0, i, 1, i)
			limit--
			count++
			if i > 0 {
				r = rng.Intn(i)
			}
		} else {
			r = rng.Intn(s1)
		}
		g.AddEdge(0, i, 1, r)
		if i > 0 {
			limit--
			count++
		}
	}

	pool := make([][2]int, 0, s0*s1)
	for i := 0; i < s0; i++ {
		for j := 0; j < s1; j++ {
			pool = append(pool, [2]int{i, j})
		}
	}
	rng.Shuffle(len(pool), func(a, b int) { pool[a], pool[b] = pool[b], pool[a] })

	for _, e := range pool {
		if cfg.EdgeCount > 0 {
			if count >= cfg.EdgeCount {
				break
			}
		} else if limit <= 0 {
			break
		}
		if !g.HasEdge(0, e[0], 1, e[1]) {
			g.AddEdge(0, e[0], 1, e[1])
			limit--
			count++
		}
	}
	return g, nil
}
