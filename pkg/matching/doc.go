// Package matching discovers and stores perfect matchings between the
// partitions of a k-partite graph.
//
// A perfect matching of size m between partitions p1 and p2 is a set of m
// node pairs, every pair an edge - equivalently, a K_{m,m} complete bipartite
// subgraph spanning m chosen nodes on each side. When a CNF encoding blocks
// all but one realization of such a matching, equivalent solutions collapse
// into one and the instance gets harder for resolution-style reasoning
// without changing satisfiability.
//
// # Records and orderings
//
// All matchings sharing one sorted left set L and sorted right set R are
// grouped into a single [Record]; each concrete pairing is an ordering, a
// permutation σ with edge(L[t], R[σ[t]]) for all t. Records are filed into
// per-(p1, p2, root) buckets in a [Repository], where root is the smallest
// left node; a matching is never filed under any other member of its left
// set.
//
// # Enumeration
//
//	repo := matching.NewRepository(g)
//	if err := matching.Enumerate(g, repo, maxSize); err != nil { ... }
//
// Enumerate walks sizes 2..maxSize in ascending combinatorial order of
// (L, R), backtracking over permutations with prefix-validity pruning. The
// search is exponential in maxSize; the caller bounds runtime with it.
// After enumeration, records with a single ordering are pruned: blocking the
// lone realization of a vertex set would make the region unsatisfiable.
package matching
