package cnf

import (
	"github.com/go-air/gini"
	"github.com/go-air/gini/z"
)

// Solve runs a SAT solver over the formula and reports satisfiability.
// Unbalanced families like pigeonhole and the mutilated chessboard are
// unsatisfiable by construction, so a true result for one of those
// signals an encoding defect.
func Solve(f *Formula) bool {
	g := gini.New()
	for _, clause := range f.Clauses {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(0)
	}
	return g.Solve() == 1
}
