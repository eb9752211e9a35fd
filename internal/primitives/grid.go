package primitives

import (
	"fmt"
	"math/rand/v2"
)

// Grid is a resolution x resolution toroidal array of palette colors.
//
// Cells are stored row-major: cell (x, y) lives at x*resolution + y, with x
// the row (outer) index and y the column (inner) index. The automaton engine
// mutates grids only by whole-step replacement; Clone produces the deep,
// independently owned copies used for key imprints and persistence.
type Grid struct {
	resolution int
	cells      []RGB
}

// NewGrid creates a grid with every cell drawn independently and uniformly
// from the palette's colors.
func NewGrid(resolution int, palette *Palette, rng *rand.Rand) (*Grid, error) {
	if resolution < 1 {
		return nil, fmt.Errorf("%w: resolution %d, must be >= 1", ErrConfig, resolution)
	}
	g := &Grid{
		resolution: resolution,
		cells:      make([]RGB, resolution*resolution),
	}
	for i := range g.cells {
		g.cells[i] = palette.At(rng.IntN(palette.Len())).RGB
	}
	return g, nil
}

// NewGridFromRows reconstructs a grid from its serialized row-major rows.
func NewGridFromRows(rows [][]RGB) (*Grid, error) {
	resolution := len(rows)
	if resolution < 1 {
		return nil, fmt.Errorf("%w: grid has no rows", ErrConfig)
	}
	g := &Grid{
		resolution: resolution,
		cells:      make([]RGB, 0, resolution*resolution),
	}
	for x, row := range rows {
		if len(row) != resolution {
			return nil, fmt.Errorf("%w: grid row %d has %d cells, want %d", ErrConfig, x, len(row), resolution)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Resolution returns the side length.
func (g *Grid) Resolution() int {
	return g.resolution
}

// At returns the color of cell (x, y).
func (g *Grid) At(x, y int) RGB {
	return g.cells[x*g.resolution+y]
}

// Set overwrites the color of cell (x, y).
func (g *Grid) Set(x, y int, c RGB) {
	g.cells[x*g.resolution+y] = c
}

// Clone returns a deep copy sharing no storage with g.
func (g *Grid) Clone() *Grid {
	return &Grid{
		resolution: g.resolution,
		cells:      append([]RGB(nil), g.cells...),
	}
}

// Rows returns the cells as row-major rows, for serialization.
func (g *Grid) Rows() [][]RGB {
	rows := make([][]RGB, g.resolution)
	for x := 0; x < g.resolution; x++ {
		rows[x] = append([]RGB(nil), g.cells[x*g.resolution:(x+1)*g.resolution]...)
	}
	return rows
}

// Census returns the count of each color on the grid. Used by tests to check
// color conservation and by callers inspecting automaton evolution.
func (g *Grid) Census() map[RGB]int {
	counts := make(map[RGB]int)
	for _, c := range g.cells {
		counts[c]++
	}
	return counts
}

// Equal reports whether g and other have identical resolution and cells.
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.resolution != other.resolution {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}
