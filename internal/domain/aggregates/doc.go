// Package aggregates defines domain-facing aggregate contracts for the music
// catalog: artists, release groups, releases, works and products.
//
// These contracts intentionally avoid persistence/transport implementation details
// and represent semantic write boundaries where invariants must be enforced atomically.
// Child collections are always passed as whole ordered sets (full replacement
// semantics), never as deltas.
package aggregates
