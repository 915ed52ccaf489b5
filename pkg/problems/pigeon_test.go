package problems

import "testing"

func TestPigeonhole(t *testing.T) {
	g, err := Pigeonhole(4)
	if err != nil {
		t.Fatalf("Pigeonhole: %v", err)
	}
	sizes := g.PartitionSizes()
	if sizes[0] != 5 || sizes[1] != 4 {
		t.Errorf("partition sizes = %v, want [5 4]", sizes)
	}
	if g.EdgeCount() != 20 {
		t.Errorf("EdgeCount() = %d, want 20", g.EdgeCount())
	}
	for p := 0; p < 5; p++ {
		for h := 0; h < 4; h++ {
			if !g.HasEdge(0, p, 1, h) {
				t.Errorf("pigeon %d not connected to hole %d", p, h)
			}
		}
	}
}

func TestPigeonholeNoHoles(t *testing.T) {
	if _, err := Pigeonhole(0); err == nil {
		t.Error("Pigeonhole(0) should fail")
	}
}
