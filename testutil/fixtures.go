// Package testutil provides seeded fixtures shared by engine and
// collaborator tests.
package testutil

import (
	"math/rand/v2"
	"testing"

	"github.com/comalice/adis"
)

// Rand returns a deterministic random source for the given seed.
func Rand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, 0))
}

// SeededInstance builds a reproducible instance; identical arguments always
// produce an identical palette and grid.
func SeededInstance(t *testing.T, resolution, depth int, speed int64, seed uint64, opts ...adis.Option) *adis.Instance {
	t.Helper()
	opts = append([]adis.Option{adis.WithSeed(seed)}, opts...)
	inst, err := adis.New(adis.Config{
		ID:             "test-instance",
		Resolution:     resolution,
		ColorDepth:     depth,
		IterationSpeed: speed,
	}, opts...)
	if err != nil {
		t.Fatalf("SeededInstance failed: %v", err)
	}
	return inst
}
