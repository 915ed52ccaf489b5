// Package cnf turns a bipartite benchmark graph into a DIMACS CNF formula.
//
// Every possible edge between partitions 0 and 1 owns one variable (see
// [VarID]); the formula constrains how edges may be selected:
//
//   - at-least-one clauses: each node with neighbors must keep an edge
//   - at-most-one clauses: each node keeps at most one edge, encoded by
//     one of [EncodingDirect], [EncodingSinz], [EncodingLinear], or a
//     seeded per-node [EncodingMixed]
//   - blocking clauses: symmetry-breaking clauses supplied by
//     package blocking, each forbidding one matching realization
//
// [Build] assembles the constraint clauses in memory; [WriteDIMACS] writes
// the header, constraints, and blocking section in one pass, running the
// selector's count pass first so the header's clause total is exact.
//
// Sinz and linear encodings allocate auxiliary variables. Their mapping to
// edge variables is retained so [VariableOrder] and [BucketOrder] can emit
// the ordering files consumed by BDD-based proof tooling.
package cnf
