// Package primitives provides the foundational, zero-dependency data structures
// for the ADIS automaton engine.
//
// This package and all `internal/*` packages use ONLY the Go standard library.
// No external dependencies are permitted in the core engine to achieve:
// - Minimal binary size
// - Zero vendor bloat
// - Deterministic builds
//
// Core invariants:
// - Palette rules only activate on colors generated before them
// - Grid cells always hold a palette color
// - TimeState owns the iteration counter (no ambient process state)
package primitives
