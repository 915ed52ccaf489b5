package cnf

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

// Encoding selects how at-most-one constraints are rendered as clauses.
type Encoding string

const (
	// EncodingDirect emits a binary clause for every pair of edge
	// variables. Quadratic in clauses, no auxiliary variables.
	EncodingDirect Encoding = "direct"

	// EncodingSinz emits the sequential-counter encoding. Linear in
	// clauses with one auxiliary signal variable per edge but the last.
	EncodingSinz Encoding = "sinz"

	// EncodingLinear emits the commander-style recursion over windows of
	// four variables, chaining windows through auxiliary variables.
	EncodingLinear Encoding = "linear"

	// EncodingMixed picks one of the other encodings per node, driven by
	// the builder's seed.
	EncodingMixed Encoding = "mixed"
)

// ErrUnknownEncoding reports an encoding name outside the supported set.
var ErrUnknownEncoding = errors.New("cnf: unknown encoding")

// ParseEncoding maps a command-line name to an [Encoding].
func ParseEncoding(s string) (Encoding, error) {
	switch Encoding(s) {
	case EncodingDirect, EncodingSinz, EncodingLinear, EncodingMixed:
		return Encoding(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEncoding, s)
}

// Ordering selects which BDD ordering file the formula is built for. The
// choice shifts how sinz signal variables map back to edge variables, so
// it must be fixed before encoding.
type Ordering int

const (
	// OrderingNone builds no ordering metadata.
	OrderingNone Ordering = iota

	// OrderingVariable maps each signal to its own edge variable, for
	// variable-order files.
	OrderingVariable

	// OrderingBucket maps each signal to the following edge variable,
	// for bucket-order files.
	OrderingBucket
)

// Options configures [Build].
type Options struct {
	// Encoding picks the at-most-one rendering.
	Encoding Encoding

	// AtMostBoth applies at-most-one constraints to both partitions
	// instead of only the larger one.
	AtMostBoth bool

	// AtLeastBoth applies at-least-one constraints to both partitions
	// instead of only the smaller one.
	AtLeastBoth bool

	// Seed drives the per-node encoding choice under [EncodingMixed].
	Seed int64

	// Ordering fixes the signal-to-edge mapping for ordering files.
	Ordering Ordering
}

// Formula holds the constraint clauses of an encoded graph. Blocking
// clauses are appended at write time and never stored here.
type Formula struct {
	// NumVars is the highest variable in use, edge and auxiliary alike.
	NumVars int

	// Clauses lists the at-least-one and at-most-one clauses. Literals
	// are signed DIMACS variables without the terminating zero.
	Clauses [][]int

	// AuxFor maps an edge variable to the auxiliary variable tied to it
	// by the encoding, or 0. Indexed by edge variable.
	AuxFor []int
}

// Build encodes the edge constraints of g between partitions 0 and 1.
//
// At-least-one clauses cover every node of the larger partition that has
// neighbors; at-most-one clauses cover every node of the smaller partition.
// Options widen either side to both partitions.
func Build(g *kpartite.Graph, opts Options) *Formula {
	f := &Formula{
		NumVars: NumEdgeVars(g),
		AuxFor:  make([]int, NumEdgeVars(g)+1),
	}
	atMost := 0
	if g.PartitionSize(0) > g.PartitionSize(1) {
		atMost = 1
	}
	atLeast := 1 - atMost

	for _, p := range partitionSet(atLeast, opts.AtLeastBoth) {
		for n := 0; n < g.PartitionSize(p); n++ {
			if vars := neighborVars(g, p, n, 1-p); len(vars) > 0 {
				f.Clauses = append(f.Clauses, vars)
			}
		}
	}

	rng := rand.New(rand.NewSource(opts.Seed))
	for _, p := range partitionSet(atMost, opts.AtMostBoth) {
		for n := 0; n < g.PartitionSize(p); n++ {
			vars := neighborVars(g, p, n, 1-p)
			if len(vars) < 2 {
				continue
			}
			enc := opts.Encoding
			if enc == EncodingMixed {
				enc = pickEncoding(rng)
			}
			switch enc {
			case EncodingSinz:
				f.encodeSinz(vars, opts.Ordering)
			case EncodingLinear:
				f.encodeLinear(vars)
			default:
				f.encodeDirect(vars)
			}
		}
	}
	return f
}

func partitionSet(first int, both bool) []int {
	if both {
		return []int{first, 1 - first}
	}
	return []int{first}
}

func pickEncoding(rng *rand.Rand) Encoding {
	switch rng.Intn(3) {
	case 0:
		return EncodingDirect
	case 1:
		return EncodingSinz
	default:
		return EncodingLinear
	}
}

// encodeDirect forbids every pair of variables directly.
func (f *Formula) encodeDirect(vars []int) {
	for i := 0; i < len(vars); i++ {
		for j := i + 1; j < len(vars); j++ {
			f.Clauses = append(f.Clauses, []int{-vars[i], -vars[j]})
		}
	}
}

// encodeSinz chains a signal variable s_i between consecutive edge
// variables: setting x_i raises s_i, a raised s_{i-1} forbids x_i, and
// signals propagate forward.
func (f *Formula) encodeSinz(vars []int, ord Ordering) {
	n := len(vars)
	if n == 2 && ord == OrderingNone {
		// A bare pair needs no counter. With an ordering file requested the
		// chain below keeps its signal, so every chained node has a mapped
		// auxiliary.
		f.Clauses = append(f.Clauses, []int{-vars[0], -vars[1]})
		return
	}
	signals := make([]int, n-1)
	for i := range signals {
		f.NumVars++
		signals[i] = f.NumVars
		switch ord {
		case OrderingBucket:
			f.AuxFor[vars[i+1]] = signals[i]
		case OrderingVariable:
			f.AuxFor[vars[i]] = signals[i]
		}
	}
	for i := 0; i < n; i++ {
		if i < n-1 {
			f.Clauses = append(f.Clauses, []int{-vars[i], signals[i]})
		}
		if i > 0 {
			f.Clauses = append(f.Clauses, []int{-vars[i], -signals[i-1]})
			if i < n-1 {
				f.Clauses = append(f.Clauses, []int{-signals[i-1], signals[i]})
			}
		}
	}
}

// encodeLinear applies the direct encoding to sliding windows of four
// literals, replacing the tail of each full window with a fresh negated
// auxiliary that carries the constraint into the next window.
func (f *Formula) encodeLinear(vars []int) {
	lits := make([]int, len(vars))
	copy(lits, vars)
	cur := 0
	for len(lits)-cur > 4 {
		f.NumVars++
		ex := f.NumVars
		window := []int{lits[cur], lits[cur+1], lits[cur+2], ex}
		f.encodeDirect(window)
		cur += 2
		lits[cur] = -ex
	}
	f.encodeDirect(lits[cur:])
}
