package blocking

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/satbench/bipartgen/pkg/kpartite"
	"github.com/satbench/bipartgen/pkg/matching"
)

// Policy selects how a record's orderings are split into blocked and kept.
type Policy int

const (
	// PolicyAll blocks every ordering except the first in generation order.
	PolicyAll Policy = iota
	// PolicyProb blocks each non-first ordering independently with a
	// configured probability.
	PolicyProb
	// PolicyCount was meant to block only the first N orderings per record.
	// It currently behaves exactly like PolicyAll; see the package comment.
	PolicyCount
)

// String returns the policy name used in CLI flags and logs.
func (p Policy) String() string {
	switch p {
	case PolicyAll:
		return "all"
	case PolicyProb:
		return "prob"
	case PolicyCount:
		return "count"
	default:
		return fmt.Sprintf("policy(%d)", int(p))
	}
}

// ParsePolicy maps a command-line name to a [Policy].
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "all":
		return PolicyAll, nil
	case "prob":
		return PolicyProb, nil
	case "count":
		return PolicyCount, nil
	}
	return 0, fmt.Errorf("blocking: unknown policy %q", s)
}

// Config parameterizes a selection run.
type Config struct {
	Policy Policy
	// Prob is the per-ordering blocking probability for PolicyProb.
	Prob float64
	// Count is the PolicyCount threshold. Currently ignored.
	Count int
	// AvoidOverlap enables the witness/blocked grid algorithm.
	AvoidOverlap bool
	// Seed feeds the random source; both passes reseed from it.
	Seed int64
}

// Block is one blocking decision: negating the edges
// (Left[t], Right[Perm[t]]) for all t forbids exactly this realization.
type Block struct {
	Size  int
	Left  []int
	Right []int
	Perm  []int
}

// Selector walks a matching repository and emits blocking decisions.
// A Selector is stateless between passes; the same instance runs both the
// count pass and the emit pass.
type Selector struct {
	cfg    Config
	logger *log.Logger
}

// New creates a selector. A nil logger falls back to log.Default().
func New(cfg Config, logger *log.Logger) *Selector {
	if logger == nil {
		logger = log.Default()
	}
	if cfg.Policy == PolicyCount {
		logger.Warn("count blocking policy is not yet distinct from all; blocking every non-first ordering",
			"count", cfg.Count)
	}
	return &Selector{cfg: cfg, logger: logger}
}

// Count runs a full selection pass and returns the number of blocks that
// Emit will produce for the same repository.
func (s *Selector) Count(g *kpartite.Graph, repo *matching.Repository) int {
	n := 0
	s.run(g, repo, func(Block) { n++ })
	return n
}

// Emit runs the selection pass again, handing each blocking decision to fn
// in a deterministic order. With an unchanged repository this emits exactly
// Count blocks.
func (s *Selector) Emit(g *kpartite.Graph, repo *matching.Repository, fn func(Block)) {
	s.run(g, repo, fn)
}

// run is the single implementation behind both passes. The random source
// and the edge grids are created fresh here, which is what makes the two
// passes agree.
func (s *Selector) run(g *kpartite.Graph, repo *matching.Repository, emit func(Block)) {
	const p1, p2 = 0, 1

	rng := rand.New(rand.NewSource(s.cfg.Seed))
	blocked := newGrid(g.PartitionSize(p1), g.PartitionSize(p2))
	witness := newGrid(g.PartitionSize(p1), g.PartitionSize(p2))

	for root := 0; root < g.PartitionSize(p1); root++ {
		for _, rec := range repo.Bucket(p1, p2, root).Records() {
			switch {
			case s.cfg.AvoidOverlap:
				s.selectAvoiding(rec, blocked, witness, emit)
			case s.cfg.Policy == PolicyProb:
				for i := 1; i < rec.NumOrderings(); i++ {
					if rng.Float64() < s.cfg.Prob {
						emit(makeBlock(rec, i))
					}
				}
			default:
				// PolicyAll, and PolicyCount until its semantics exist.
				for i := 1; i < rec.NumOrderings(); i++ {
					emit(makeBlock(rec, i))
				}
			}
		}
	}
}

// selectAvoiding implements the witness-avoiding mode. The first ordering
// whose edges are all clear of the blocked grid becomes the record's
// witness and is never blocked; every other ordering is blocked only if it
// touches no witness edge - from this record or any earlier one. A record
// with no viable witness is left entirely untouched.
func (s *Selector) selectAvoiding(rec *matching.Record, blocked, witness grid, emit func(Block)) {
	witnessIdx := -1
	for i := 0; i < rec.NumOrderings(); i++ {
		if gridClear(blocked, rec, i) {
			witnessIdx = i
			break
		}
	}
	if witnessIdx < 0 {
		return
	}
	gridMark(witness, rec, witnessIdx)

	for i := 0; i < rec.NumOrderings(); i++ {
		if i == witnessIdx {
			continue
		}
		if !gridClear(witness, rec, i) {
			// Shares an edge with some witness; blocking it could cut off
			// a kept realization elsewhere, so skip conservatively.
			continue
		}
		gridMark(blocked, rec, i)
		emit(makeBlock(rec, i))
	}
}

func makeBlock(rec *matching.Record, i int) Block {
	return Block{
		Size:  rec.Size,
		Left:  rec.Left,
		Right: rec.Right,
		Perm:  rec.Ordering(i),
	}
}

// grid is a per-run (p1-node x p2-node) edge marker shared across every
// record of one selection pass.
type grid [][]bool

func newGrid(rows, cols int) grid {
	g := make(grid, rows)
	for i := range g {
		g[i] = make([]bool, cols)
	}
	return g
}

// gridClear reports whether every edge of the i-th ordering is unmarked.
func gridClear(g grid, rec *matching.Record, i int) bool {
	perm := rec.Ordering(i)
	for t := 0; t < rec.Size; t++ {
		if g[rec.Left[t]][rec.Right[perm[t]]] {
			return false
		}
	}
	return true
}

// gridMark marks every edge of the i-th ordering.
func gridMark(g grid, rec *matching.Record, i int) {
	perm := rec.Ordering(i)
	for t := 0; t < rec.Size; t++ {
		g[rec.Left[t]][rec.Right[perm[t]]] = true
	}
}
