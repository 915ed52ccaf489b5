// Package blocking selects which matching realizations become
// symmetry-breaking clauses.
//
// Given the matching repository produced by package matching, a [Selector]
// decides per record which orderings to block - negate into a CNF clause
// forbidding that exact edge combination - and which to keep. At least one
// ordering always survives per record, so blocking never removes the last
// way to realize a vertex set.
//
// # Two-pass contract
//
// DIMACS headers need the clause count before any clause is written, so the
// selector runs twice: [Selector.Count] first, [Selector.Emit] second. Both
// passes reseed their random source and zero their edge grids, so with the
// same configuration they make identical decisions; the count always equals
// the number of blocks emitted.
//
// # Policies
//
//   - [PolicyAll]: block every ordering in a record except the first.
//   - [PolicyProb]: block each non-first ordering independently with the
//     configured probability; survivors are intentionally left unblocked.
//   - [PolicyCount]: currently equivalent to PolicyAll regardless of the
//     threshold. The intended cutoff semantics were never pinned down in
//     the generator this package descends from; a warning is logged rather
//     than guessing.
//
// The optional AvoidOverlap mode maintains global witness/blocked edge
// grids across all records of a run, guaranteeing that each blocked
// record's witness ordering shares no edge with any blocked ordering.
package blocking
