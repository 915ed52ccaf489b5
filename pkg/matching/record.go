package matching

import "slices"

// Record groups every discovered perfect matching that shares one left and
// right vertex set. Left and Right hold ascending node indices of the two
// partitions; each ordering is a permutation σ of [0,Size) such that
// edge(Left[t], Right[σ[t]]) holds for all t.
//
// Orderings are stored by value in generation order. Callers iterate with
// plain indices; there is no embedded cursor, so any number of traversals
// can be in flight.
type Record struct {
	Size      int
	Left      []int
	Right     []int
	orderings [][]int
}

// NumOrderings returns how many distinct orderings the record holds.
func (r *Record) NumOrderings() int { return len(r.orderings) }

// Ordering returns the i-th ordering in generation order. The returned slice
// is owned by the record and must not be modified.
func (r *Record) Ordering(i int) []int { return r.orderings[i] }

// matches reports whether the record covers exactly this vertex set.
func (r *Record) matches(size int, left, right []int) bool {
	return r.Size == size &&
		slices.Equal(r.Left, left) &&
		slices.Equal(r.Right, right)
}

// hasOrdering reports whether an identical permutation is already stored.
// Duplicates arise because distinct backtracking paths can reconstruct the
// same final permutation.
func (r *Record) hasOrdering(perm []int) bool {
	for _, o := range r.orderings {
		if slices.Equal(o, perm) {
			return true
		}
	}
	return false
}

// appendOrdering deep-copies perm into the record. The copy matters: perm is
// the enumerator's scratch buffer and will be rewritten by backtracking.
func (r *Record) appendOrdering(perm []int) {
	r.orderings = append(r.orderings, slices.Clone(perm))
}

// removeOrdering deletes the i-th ordering, preserving generation order of
// the rest.
func (r *Record) removeOrdering(i int) {
	r.orderings = slices.Delete(r.orderings, i, i+1)
}
