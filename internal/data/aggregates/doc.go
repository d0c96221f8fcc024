// Package aggregates contains infrastructure implementations of the catalog
// aggregate contracts.
//
// Implementations in this package compose table-level repos from
// internal/data/repos, own transaction boundaries for invariant-critical
// writes, and run the child-collection reconcilers that keep persisted
// collections identical to the submitted snapshots.
package aggregates
