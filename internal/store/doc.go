// Package store persists lenslab run history in SQLite.
//
// Simulations themselves are stateless; the store only records their
// results. A run row holds the checksums and the canonical JSON snapshot
// of the final box layout for one input line. Benchmark rows reference
// the run they measured.
//
// Reads are deterministic: runs are returned in seq order, benchmarks in
// insertion order within a run.
package store
