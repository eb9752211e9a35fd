// Package benchmarks provides shared helpers for benchmark tests.
package benchmarks

import (
	"fmt"
	"math/rand/v2"

	"github.com/comalice/adis/internal/core"
	"github.com/comalice/adis/internal/primitives"
)

// GenWorld builds a seeded palette and grid at the given scale. Identical
// arguments always produce identical fixtures, so runs are comparable.
func GenWorld(resolution, depth int, seed uint64) (*primitives.Grid, *primitives.Palette) {
	rng := rand.New(rand.NewPCG(seed, 0))
	palette, err := primitives.BuildPalette(depth, rng)
	if err != nil {
		panic(fmt.Sprintf("BuildPalette(%d): %v", depth, err))
	}
	grid, err := primitives.NewGrid(resolution, palette, rng)
	if err != nil {
		panic(fmt.Sprintf("NewGrid(%d): %v", resolution, err))
	}
	return grid, palette
}

// GenInstance builds a seeded instance ready for Encrypt/Decrypt benchmarks.
func GenInstance(resolution, depth int, seed uint64) *core.Instance {
	inst, err := core.NewInstance(core.Config{
		ID:             fmt.Sprintf("bench_%dx%d", resolution, resolution),
		Resolution:     resolution,
		ColorDepth:     depth,
		IterationSpeed: 1,
	}, core.WithSeed(seed))
	if err != nil {
		panic(fmt.Sprintf("NewInstance: %v", err))
	}
	return inst
}
