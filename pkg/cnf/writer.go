package cnf

import (
	"bufio"
	"fmt"
	"io"

	"github.com/satbench/bipartgen/pkg/blocking"
	"github.com/satbench/bipartgen/pkg/kpartite"
	"github.com/satbench/bipartgen/pkg/matching"
)

// WriteDIMACS writes f and the selector's blocking clauses to w in DIMACS
// CNF format. The selector's count pass runs first so the header states
// the exact clause total; the emit pass then streams the blocking clauses
// after a banner comment. Returns the number of blocking clauses written.
//
// Comment lines are emitted verbatim before the header, each prefixed
// with "c ".
func WriteDIMACS(w io.Writer, f *Formula, sel *blocking.Selector, g *kpartite.Graph, repo *matching.Repository, comments []string) (int, error) {
	bw := bufio.NewWriter(w)
	for _, c := range comments {
		fmt.Fprintf(bw, "c %s\n", c)
	}

	blocked := sel.Count(g, repo)
	fmt.Fprintf(bw, "p cnf %d %d\n", f.NumVars, len(f.Clauses)+blocked)
	for _, cl := range f.Clauses {
		writeClause(bw, cl)
	}

	fmt.Fprintf(bw, "c %d blocked clauses\n", blocked)
	sel.Emit(g, repo, func(b blocking.Block) {
		cl := make([]int, b.Size)
		for t := 0; t < b.Size; t++ {
			cl[t] = -VarID(g, 0, b.Left[t], 1, b.Right[b.Perm[t]])
		}
		writeClause(bw, cl)
	})
	return blocked, bw.Flush()
}

func writeClause(w *bufio.Writer, lits []int) {
	for _, l := range lits {
		fmt.Fprintf(w, "%d ", l)
	}
	w.WriteString("0\n")
}
