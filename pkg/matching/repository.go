package matching

import (
	"slices"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

// Bucket holds every record of one (p1, p2, root) triple in generation
// order. Because enumeration proceeds with non-decreasing size and, for a
// fixed size, non-decreasing (L, R), the slice is implicitly sorted by
// (size, L, R).
type Bucket struct {
	records []*Record

	// live counts orderings, not records: it is incremented once per stored
	// ordering and decremented once per removal.
	live int
}

// Records returns the bucket's records in generation order.
func (b *Bucket) Records() []*Record { return b.records }

// Matchings returns the number of live orderings across all records.
func (b *Bucket) Matchings() int { return b.live }

// Repository files matching records into buckets indexed by ordered
// partition pair and root node, where root is the smallest left node of the
// record's vertex set.
type Repository struct {
	buckets [][][]*Bucket // [p1][p2][root]
}

// NewRepository creates an empty repository shaped for the graph: one bucket
// per (ordered partition pair, node of the first partition).
func NewRepository(g *kpartite.Graph) *Repository {
	k := g.Partitions()
	r := &Repository{buckets: make([][][]*Bucket, k)}
	for p1 := 0; p1 < k; p1++ {
		r.buckets[p1] = make([][]*Bucket, k)
		for p2 := 0; p2 < k; p2++ {
			if p1 == p2 {
				continue
			}
			bs := make([]*Bucket, g.PartitionSize(p1))
			for n := range bs {
				bs[n] = &Bucket{}
			}
			r.buckets[p1][p2] = bs
		}
	}
	return r
}

// Bucket returns the bucket for partition pair (p1, p2) rooted at node root
// of p1.
func (r *Repository) Bucket(p1, p2, root int) *Bucket {
	return r.buckets[p1][p2][root]
}

// add files one completed ordering for the vertex set (left, right) under
// partition pair (p1, p2).
//
// Identity is resolved against the bucket's tail record only. That is an
// invariant of the enumeration order, not an optimization to second-guess:
// subsets are generated in ascending (size, L, R), so every ordering for a
// given vertex set arrives while its record is still last in the bucket.
// Identical permutations are discarded silently.
func (r *Repository) add(p1, p2 int, left, right, perm []int) {
	size := len(left)
	b := r.buckets[p1][p2][left[0]]

	if n := len(b.records); n > 0 {
		tail := b.records[n-1]
		if tail.matches(size, left, right) {
			if tail.hasOrdering(perm) {
				return
			}
			tail.appendOrdering(perm)
			b.live++
			return
		}
	}

	rec := &Record{
		Size:  size,
		Left:  slices.Clone(left),
		Right: slices.Clone(right),
	}
	rec.appendOrdering(perm)
	b.records = append(b.records, rec)
	b.live++
}

// Remove deletes the i-th ordering of rec from its bucket, dropping the
// record entirely once its last ordering is gone.
func (b *Bucket) Remove(rec *Record, i int) {
	rec.removeOrdering(i)
	if rec.NumOrderings() == 0 {
		b.records = slices.DeleteFunc(b.records, func(r *Record) bool { return r == rec })
	}
	b.live--
}

// pruneSingletons removes every record holding exactly one ordering.
// A lone realization must never be blocked - doing so would forbid the only
// way to match that vertex set - so such records are useless to the
// selector and are dropped wholesale.
func (r *Repository) pruneSingletons() {
	for p1 := range r.buckets {
		for p2 := range r.buckets[p1] {
			if p1 == p2 {
				continue
			}
			for _, b := range r.buckets[p1][p2] {
				kept := b.records[:0]
				for _, rec := range b.records {
					if rec.NumOrderings() >= 2 {
						kept = append(kept, rec)
						continue
					}
					b.live -= rec.NumOrderings()
				}
				b.records = kept
			}
		}
	}
}
