package matching

import (
	"errors"
	"testing"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

func completeBipartite(t *testing.T, n int) *kpartite.Graph {
	t.Helper()
	g, err := kpartite.New(n, n)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.ConnectPartitions(0, 1)
	return g
}

func TestEnumerateMaxSizeTooSmall(t *testing.T) {
	g := completeBipartite(t, 2)
	if err := Enumerate(g, NewRepository(g), 1); !errors.Is(err, ErrMaxSizeTooSmall) {
		t.Fatalf("Enumerate(maxSize=1) error = %v, want ErrMaxSizeTooSmall", err)
	}
}

func TestEnumerateK22(t *testing.T) {
	g := completeBipartite(t, 2)
	repo := NewRepository(g)
	if err := Enumerate(g, repo, 2); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	recs := repo.Bucket(0, 1, 0).Records()
	if len(recs) != 1 {
		t.Fatalf("got %d records rooted at 0, want 1", len(recs))
	}
	rec := recs[0]
	if rec.Size != 2 {
		t.Errorf("record size = %d, want 2", rec.Size)
	}
	wantNodes := []int{0, 1}
	for i := range wantNodes {
		if rec.Left[i] != wantNodes[i] || rec.Right[i] != wantNodes[i] {
			t.Errorf("record vertex sets = %v/%v, want [0 1]/[0 1]", rec.Left, rec.Right)
		}
	}
	if rec.NumOrderings() != 2 {
		t.Errorf("NumOrderings() = %d, want 2", rec.NumOrderings())
	}

	// No record can be rooted at the last left node: the root is the
	// smallest member of the left subset.
	if n := len(repo.Bucket(0, 1, 1).Records()); n != 0 {
		t.Errorf("got %d records rooted at 1, want 0", n)
	}
}

// factorial orderings in the complete case is the completeness check: every
// permutation is a valid matching of K_{n,n}, and none may be missed.
func TestEnumerateCompleteGraphCounts(t *testing.T) {
	tests := []struct {
		n, maxSize int
		// per root: total orderings across all records.
		wantPerRoot []int
	}{
		// K_{3,3}, sizes 2 and 3. Rooted at 0: size-2 subsets {0,1},{0,2}
		// against 3 right subsets (2 orderings each) plus the size-3 set
		// with 3! orderings. Rooted at 1: {1,2} against 3 right subsets.
		{3, 3, []int{2*3*2 + 6, 3 * 2, 0}},
		// Size 2 only.
		{3, 2, []int{2 * 3 * 2, 3 * 2, 0}},
	}
	for _, tt := range tests {
		g := completeBipartite(t, tt.n)
		repo := NewRepository(g)
		if err := Enumerate(g, repo, tt.maxSize); err != nil {
			t.Fatalf("Enumerate: %v", err)
		}
		for root, want := range tt.wantPerRoot {
			if got := repo.Bucket(0, 1, root).Matchings(); got != want {
				t.Errorf("n=%d maxSize=%d root %d: Matchings() = %d, want %d",
					tt.n, tt.maxSize, root, got, want)
			}
		}
	}
}

func TestEnumerateSoundness(t *testing.T) {
	g, err := kpartite.New(4, 4)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	// An uneven graph: a dense block plus a pendant edge.
	edges := [][2]int{
		{0, 0}, {0, 1}, {0, 2},
		{1, 0}, {1, 1},
		{2, 1}, {2, 2},
		{3, 3},
	}
	for _, e := range edges {
		g.AddEdge(0, e[0], 1, e[1])
	}

	repo := NewRepository(g)
	if err := Enumerate(g, repo, 3); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	for root := 0; root < 4; root++ {
		for _, rec := range repo.Bucket(0, 1, root).Records() {
			if rec.Left[0] != root {
				t.Errorf("record %v filed under root %d", rec.Left, root)
			}
			for i := 0; i < rec.NumOrderings(); i++ {
				perm := rec.Ordering(i)
				for t2 := 0; t2 < rec.Size; t2++ {
					if !g.HasEdge(0, rec.Left[t2], 1, rec.Right[perm[t2]]) {
						t.Errorf("ordering %v of %v/%v uses a non-edge",
							perm, rec.Left, rec.Right)
					}
				}
			}
			if rec.NumOrderings() < 2 {
				t.Errorf("singleton record %v/%v survived pruning", rec.Left, rec.Right)
			}
		}
	}
}

// A perfect-matching-unique graph must end up with an empty repository:
// every vertex set admits exactly one realization, and lone realizations
// are pruned.
func TestEnumeratePrunesSingletons(t *testing.T) {
	g, err := kpartite.New(3, 3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	for i := 0; i < 3; i++ {
		g.AddEdge(0, i, 1, i)
	}
	repo := NewRepository(g)
	if err := Enumerate(g, repo, 3); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}
	for root := 0; root < 3; root++ {
		b := repo.Bucket(0, 1, root)
		if n := len(b.Records()); n != 0 {
			t.Errorf("root %d: %d records after pruning, want 0", root, n)
		}
		if b.Matchings() != 0 {
			t.Errorf("root %d: Matchings() = %d, want 0", root, b.Matchings())
		}
	}
}

func TestBucketRemove(t *testing.T) {
	g := completeBipartite(t, 2)
	repo := NewRepository(g)
	if err := Enumerate(g, repo, 2); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	b := repo.Bucket(0, 1, 0)
	rec := b.Records()[0]
	if b.Matchings() != 2 {
		t.Fatalf("Matchings() = %d, want 2", b.Matchings())
	}

	b.Remove(rec, 1)
	if b.Matchings() != 1 {
		t.Errorf("Matchings() after remove = %d, want 1", b.Matchings())
	}
	if rec.NumOrderings() != 1 {
		t.Errorf("NumOrderings() = %d, want 1", rec.NumOrderings())
	}

	// Removing the last ordering drops the record from the bucket.
	b.Remove(rec, 0)
	if len(b.Records()) != 0 {
		t.Errorf("record survived removal of its last ordering")
	}
	if b.Matchings() != 0 {
		t.Errorf("Matchings() = %d, want 0", b.Matchings())
	}
}

func TestEnumerateMultiplePartitionPairs(t *testing.T) {
	g, err := kpartite.New(2, 2, 2)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	g.ConnectPartitions(0, 1)
	g.ConnectPartitions(1, 2)

	repo := NewRepository(g)
	if err := Enumerate(g, repo, 2); err != nil {
		t.Fatalf("Enumerate: %v", err)
	}

	if got := repo.Bucket(0, 1, 0).Matchings(); got != 2 {
		t.Errorf("pair (0,1): Matchings() = %d, want 2", got)
	}
	if got := repo.Bucket(1, 2, 0).Matchings(); got != 2 {
		t.Errorf("pair (1,2): Matchings() = %d, want 2", got)
	}
	// No edges between partitions 0 and 2.
	if got := repo.Bucket(0, 2, 0).Matchings(); got != 0 {
		t.Errorf("pair (0,2): Matchings() = %d, want 0", got)
	}
}
