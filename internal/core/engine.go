// Package core provides the runtime core tier of the ADIS engine: the
// automaton step, the time scheduler, key derivation, the XOR cipher, and the
// Instance runtime that ties them together.
// Dependencies: internal/primitives.
// Stdlib-only implementation.
package core

import (
	"github.com/comalice/adis/internal/primitives"
)

// ScanOrder enumerates the cell coordinates visited during one update pass.
// The visitation order is part of the automaton contract, not an
// implementation detail: when two swaps in the same pass write to a shared
// coordinate, the later-visited pair wins. Alternate orders exist only so
// tests can demonstrate that divergence.
type ScanOrder func(resolution int) [][2]int

// RowMajor is the canonical scan order: outer index x ascending, inner index
// y ascending. All grid evolution, and therefore all derived keys, are
// defined against this order.
func RowMajor(resolution int) [][2]int {
	coords := make([][2]int, 0, resolution*resolution)
	for x := 0; x < resolution; x++ {
		for y := 0; y < resolution; y++ {
			coords = append(coords, [2]int{x, y})
		}
	}
	return coords
}

// ColumnMajor visits cells with y as the outer index. Not used by the
// engine; it exists to let tests show that scan order changes evolution.
func ColumnMajor(resolution int) [][2]int {
	coords := make([][2]int, 0, resolution*resolution)
	for y := 0; y < resolution; y++ {
		for x := 0; x < resolution; x++ {
			coords = append(coords, [2]int{x, y})
		}
	}
	return coords
}

// Step applies one automaton iteration and returns the successor grid. The
// input grid is not modified.
//
// Every cell reads the pre-step state: the rule for the cell's color is
// looked up, the neighbor in the rule's direction is read from the original
// grid, and if the neighbor color is in the rule's activation set the swap is
// written into the successor. A cell whose color has no palette rule (only
// possible with externally corrupted data) is skipped.
func Step(grid *primitives.Grid, palette *primitives.Palette) *primitives.Grid {
	return stepOrdered(grid, palette, RowMajor)
}

func stepOrdered(grid *primitives.Grid, palette *primitives.Palette, order ScanOrder) *primitives.Grid {
	resolution := grid.Resolution()
	next := grid.Clone()

	for _, xy := range order(resolution) {
		x, y := xy[0], xy[1]
		rule, ok := palette.Rule(grid.At(x, y))
		if !ok {
			continue
		}
		nx, ny := rule.Direction.Neighbor(x, y, resolution)
		neighbor := grid.At(nx, ny)
		if rule.Activates(neighbor) {
			// Later-visited pairs may overwrite these cells again;
			// last write wins.
			next.Set(x, y, neighbor)
			next.Set(nx, ny, grid.At(x, y))
		}
	}

	return next
}
