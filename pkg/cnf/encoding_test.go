package cnf

import (
	"errors"
	"reflect"
	"testing"

	"github.com/satbench/bipartgen/pkg/kpartite"
)

func mustGraph(t *testing.T, sizes ...int) *kpartite.Graph {
	t.Helper()
	g, err := kpartite.New(sizes...)
	if err != nil {
		t.Fatalf("New(%v): %v", sizes, err)
	}
	return g
}

func fullGraph(t *testing.T, sizes ...int) *kpartite.Graph {
	t.Helper()
	g := mustGraph(t, sizes...)
	g.ConnectPartitions(0, 1)
	return g
}

func TestVarID(t *testing.T) {
	g := fullGraph(t, 3, 2)

	// Row-major over (left node, right node), 1-based.
	id := 1
	for n1 := 0; n1 < 3; n1++ {
		for n2 := 0; n2 < 2; n2++ {
			if got := VarID(g, 0, n1, 1, n2); got != id {
				t.Errorf("VarID(0,%d,1,%d) = %d, want %d", n1, n2, got, id)
			}
			// Endpoint order is canonicalized.
			if got := VarID(g, 1, n2, 0, n1); got != id {
				t.Errorf("VarID(1,%d,0,%d) = %d, want %d", n2, n1, got, id)
			}
			id++
		}
	}

	if got := NumEdgeVars(g); got != 6 {
		t.Errorf("NumEdgeVars() = %d, want 6", got)
	}

	// Unlike edge IDs, variables do not shift when edges are removed.
	g.RemoveEdge(0, 0, 1, 0)
	if got := VarID(g, 0, 2, 1, 1); got != 6 {
		t.Errorf("VarID after removal = %d, want 6", got)
	}
}

func TestParseEncoding(t *testing.T) {
	for _, valid := range []string{"direct", "sinz", "linear", "mixed"} {
		enc, err := ParseEncoding(valid)
		if err != nil {
			t.Errorf("ParseEncoding(%q) error: %v", valid, err)
		}
		if string(enc) != valid {
			t.Errorf("ParseEncoding(%q) = %q", valid, enc)
		}
	}
	if _, err := ParseEncoding("pairwise"); !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("ParseEncoding(pairwise) error = %v, want ErrUnknownEncoding", err)
	}
}

func TestBuildDirect(t *testing.T) {
	// Full 3x2: three at-least clauses over the larger partition, and each
	// of the two smaller-partition nodes contributes C(3,2) pair clauses.
	g := fullGraph(t, 3, 2)
	f := Build(g, Options{Encoding: EncodingDirect})

	if f.NumVars != 6 {
		t.Errorf("NumVars = %d, want 6", f.NumVars)
	}
	if len(f.Clauses) != 3+2*3 {
		t.Errorf("clause count = %d, want 9", len(f.Clauses))
	}

	// First clause: pigeon 0 takes hole 0 or hole 1.
	if !reflect.DeepEqual(f.Clauses[0], []int{1, 2}) {
		t.Errorf("first at-least clause = %v, want [1 2]", f.Clauses[0])
	}

	// No auxiliaries under the direct encoding.
	for v, aux := range f.AuxFor {
		if aux != 0 {
			t.Errorf("AuxFor[%d] = %d, want 0", v, aux)
		}
	}
}

func TestBuildSinz(t *testing.T) {
	// Full 4x3: at-most side is the 3-node partition, each node with four
	// neighbors. Sequential counter with n=4 yields 3 signals and 3n-4
	// clauses per node.
	g := fullGraph(t, 4, 3)
	f := Build(g, Options{Encoding: EncodingSinz, Ordering: OrderingVariable})

	wantClauses := 4 + 3*(3*4-4)
	if len(f.Clauses) != wantClauses {
		t.Errorf("clause count = %d, want %d", len(f.Clauses), wantClauses)
	}
	wantVars := 12 + 3*3
	if f.NumVars != wantVars {
		t.Errorf("NumVars = %d, want %d", f.NumVars, wantVars)
	}

	// Under OrderingVariable each signal hangs off its own edge variable:
	// for every at-most node, all neighbor variables but the last.
	mapped := 0
	for v := 1; v <= 12; v++ {
		if f.AuxFor[v] > 12 {
			mapped++
		} else if f.AuxFor[v] != 0 {
			t.Errorf("AuxFor[%d] = %d, not an auxiliary", v, f.AuxFor[v])
		}
	}
	if mapped != 9 {
		t.Errorf("%d edge variables carry a signal, want 9", mapped)
	}
}

func TestBuildSinzTwoVars(t *testing.T) {
	// With exactly two neighbors the counter degenerates to one binary
	// clause and no signals.
	g := fullGraph(t, 2, 2)
	f := Build(g, Options{Encoding: EncodingSinz})

	if f.NumVars != 4 {
		t.Errorf("NumVars = %d, want 4", f.NumVars)
	}
	if len(f.Clauses) != 2+2 {
		t.Errorf("clause count = %d, want 4", len(f.Clauses))
	}
}

// With an ordering file requested the two-variable counter keeps its signal,
// so the order output maps an auxiliary for every chained node.
func TestBuildSinzTwoVarsKeepsSignals(t *testing.T) {
	g := fullGraph(t, 2, 2)
	f := Build(g, Options{Encoding: EncodingSinz, Ordering: OrderingVariable})

	if f.NumVars != 4+2 {
		t.Errorf("NumVars = %d, want 6", f.NumVars)
	}
	if len(f.Clauses) != 2+4 {
		t.Errorf("clause count = %d, want 6", len(f.Clauses))
	}
	if f.AuxFor[1] != 5 || f.AuxFor[3] != 6 {
		t.Errorf("AuxFor = %v, want signal 5 on edge var 1 and 6 on edge var 3", f.AuxFor)
	}
	order := VariableOrder(g, f)
	if len(order) != f.NumVars {
		t.Errorf("order length = %d, want %d", len(order), f.NumVars)
	}
}

func TestBuildLinear(t *testing.T) {
	// One at-most node with five neighbors: one full window of four plus a
	// three-literal remainder chained through a single auxiliary.
	g := fullGraph(t, 5, 1)
	f := Build(g, Options{Encoding: EncodingLinear})

	// Five unit at-least clauses, then 6 window clauses plus 3 remainder
	// clauses for the single hole.
	if len(f.Clauses) != 5+6+3 {
		t.Errorf("clause count = %d, want 14", len(f.Clauses))
	}
	if f.NumVars != 5+1 {
		t.Errorf("NumVars = %d, want 6", f.NumVars)
	}
}

func TestBuildBothSides(t *testing.T) {
	g := fullGraph(t, 2, 2)
	f := Build(g, Options{Encoding: EncodingDirect, AtLeastBoth: true, AtMostBoth: true})

	// Four at-least clauses and one pair clause per node of each side.
	if len(f.Clauses) != 4+4 {
		t.Errorf("clause count = %d, want 8", len(f.Clauses))
	}
}

func TestBuildSkipsIsolatedNodes(t *testing.T) {
	g := mustGraph(t, 3, 2)
	g.AddEdge(0, 0, 1, 0)
	g.AddEdge(0, 1, 1, 0)

	f := Build(g, Options{Encoding: EncodingDirect})

	// Pigeon 2 has no neighbors, so no empty at-least clause; hole 1 has
	// none either, and hole 0's two neighbors give one pair clause.
	if len(f.Clauses) != 2+1 {
		t.Errorf("clause count = %d, want 3", len(f.Clauses))
	}
	for _, cl := range f.Clauses {
		if len(cl) == 0 {
			t.Fatal("empty clause emitted for isolated node")
		}
	}
}

func TestBuildMixedDeterminism(t *testing.T) {
	g := fullGraph(t, 6, 5)

	a := Build(g, Options{Encoding: EncodingMixed, Seed: 42})
	b := Build(g, Options{Encoding: EncodingMixed, Seed: 42})
	if !reflect.DeepEqual(a.Clauses, b.Clauses) || a.NumVars != b.NumVars {
		t.Error("same seed produced different formulas")
	}
}
