package core

import (
	"github.com/comalice/adis/internal/primitives"
)

// UpdateTicks folds an external tick reading into the time window.
//
// The first call (LastTick == 0) bootstraps the window to owe exactly one
// iteration: LastTick takes the reading and NowTick is set one iteration
// speed ahead. Every later call shifts the window forward: LastTick takes the
// previous NowTick and NowTick takes the new reading.
func UpdateTicks(state *primitives.TimeState, externalTick int64) {
	if state.LastTick == 0 {
		state.LastTick = externalTick
		state.NowTick = state.LastTick + state.IterationSpeed
		return
	}
	state.LastTick = state.NowTick
	state.NowTick = externalTick
}

// RunDueIterations applies the automaton step once per pending iteration in
// the current tick window and returns the evolved grid and the number of
// steps run. Zero or negative elapsed time runs nothing.
//
// The window itself is not advanced: calling RunDueIterations again without
// an intervening UpdateTicks re-applies the same pending count to the grid.
// IterationCount increments once per step.
func RunDueIterations(state *primitives.TimeState, grid *primitives.Grid, palette *primitives.Palette) (*primitives.Grid, uint64) {
	pending := state.Pending()
	if pending <= 0 {
		return grid, 0
	}
	for i := int64(0); i < pending; i++ {
		grid = Step(grid, palette)
		state.IterationCount++
	}
	return grid, uint64(pending)
}
