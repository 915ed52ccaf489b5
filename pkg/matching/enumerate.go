package matching

import (
	"errors"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

// ErrMaxSizeTooSmall is returned by [Enumerate] when maxSize is below 2.
// A size-1 matching is a single edge with nothing to permute, so there is
// nothing to discover below size 2.
var ErrMaxSizeTooSmall = errors.New("matching size bound must be at least 2")

// Enumerate discovers every perfect matching of size 2..maxSize between
// every ordered partition pair of g and files the results into repo.
// Records holding a single ordering are pruned before returning.
//
// Runtime grows exponentially with maxSize and with partition sizes; the
// caller bounds the blast radius through maxSize alone - there is no
// internal cancellation.
func Enumerate(g *kpartite.Graph, repo *Repository, maxSize int) error {
	if maxSize < 2 {
		return ErrMaxSizeTooSmall
	}

	for m := 2; m <= maxSize; m++ {
		for p1 := 0; p1 < g.Partitions(); p1++ {
			for p2 := p1 + 1; p2 < g.Partitions(); p2++ {
				s := &search{
					g:    g,
					repo: repo,
					p1:   p1,
					p2:   p2,
					m:    m,
					left: make([]int, m),
					// right and perm are sized in run once the left
					// subset survives pruning.
					right: make([]int, m),
					perm:  make([]int, m),
				}
				s.run()
			}
		}
	}

	repo.pruneSingletons()
	return nil
}

// search carries the state of one (p1, p2, m) sweep. Keeping it per call,
// rather than in shared scratch buffers, makes Enumerate re-entrant and the
// pieces testable in isolation.
type search struct {
	g    *kpartite.Graph
	repo *Repository

	p1, p2 int
	m      int

	left  []int // current left subset, ascending
	right []int // current right subset, ascending
	perm  []int // candidate ordering under construction
}

func (s *search) run() {
	p1Size := s.g.PartitionSize(s.p1)
	p2Size := s.g.PartitionSize(s.p2)
	if p1Size < s.m || p2Size < s.m {
		return
	}

	firstCombination(s.left)
	for {
		if s.leftViable() {
			firstCombination(s.right)
			for {
				firstCombination(s.perm)
				s.permute(0)
				if !nextCombination(s.right, p2Size) {
					break
				}
			}
		}
		if !nextCombination(s.left, p1Size) {
			return
		}
	}
}

// leftViable applies the necessary-condition prunes. These are filters, not
// feasibility tests: a false positive costs time in the permutation search,
// a false negative would lose matchings, so both bounds stay conservative.
func (s *search) leftViable() bool {
	switch s.m {
	case 2:
		// A K_{2,2} needs two common neighbors.
		return s.g.SharedNeighborhoodSize(s.p1, s.p2, s.left) >= 2
	case 3:
		// A K_{3,3} needs three common neighbors; failing that, a C6 still
		// needs every pair of left nodes to share at least one.
		return s.g.SharedNeighborhoodSize(s.p1, s.p2, s.left) >= 3 ||
			s.g.MinPairwiseSharedSize(s.p1, s.p2, s.left) >= 1
	default:
		return true
	}
}

// permute extends the candidate ordering one position at a time, swapping
// right-subset indices into place. A branch is abandoned the moment the
// newly placed pair is not an edge; a full-length assignment is a valid
// ordering and is handed to the repository, which deep-copies it out of the
// scratch buffer.
func (s *search) permute(lo int) {
	if lo == s.m {
		s.repo.add(s.p1, s.p2, s.left, s.right, s.perm)
		return
	}
	for i := lo; i < s.m; i++ {
		s.perm[lo], s.perm[i] = s.perm[i], s.perm[lo]
		if s.g.HasEdge(s.p1, s.left[lo], s.p2, s.right[s.perm[lo]]) {
			s.permute(lo + 1)
		}
		s.perm[lo], s.perm[i] = s.perm[i], s.perm[lo]
	}
}

// firstCombination resets c to the lexicographically first m-subset,
// {0, 1, ..., m-1}.
func firstCombination(c []int) {
	for i := range c {
		c[i] = i
	}
}

// nextCombination advances c to the next m-subset of [0, n) in ascending
// combinatorial order, returning false once the last subset has been
// consumed.
func nextCombination(c []int, n int) bool {
	m := len(c)
	i := m - 1
	for i >= 0 && c[i] == n-m+i {
		i--
	}
	if i < 0 {
		return false
	}
	c[i]++
	for j := i + 1; j < m; j++ {
		c[j] = c[j-1] + 1
	}
	return true
}
