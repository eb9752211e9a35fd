package primitives

import "fmt"

// TimeState tracks the external tick window and iteration accounting for one
// ADIS instance.
//
// LastTick == 0 means uninitialized; the scheduler's first UpdateTicks call
// bootstraps the window. IterationCount is monotonic and never reset, and is
// scoped here rather than as process-wide state so independent instances do
// not interfere.
type TimeState struct {
	LastTick       int64  `json:"lastTick" yaml:"lastTick"`
	NowTick        int64  `json:"nowTick" yaml:"nowTick"`
	IterationSpeed int64  `json:"iterationSpeed" yaml:"iterationSpeed"`
	IterationCount uint64 `json:"iterationCount" yaml:"iterationCount"`
}

// Validate checks the iteration speed (tick units per automaton step).
func (t *TimeState) Validate() error {
	if t.IterationSpeed < 1 {
		return fmt.Errorf("%w: iteration speed %d, must be >= 1", ErrConfig, t.IterationSpeed)
	}
	return nil
}

// Pending returns how many automaton iterations the current tick window owes:
// floor((NowTick - LastTick) / IterationSpeed). Negative elapsed time (a
// non-monotonic tick source) clamps to zero.
func (t *TimeState) Pending() int64 {
	elapsed := t.NowTick - t.LastTick
	if elapsed <= 0 {
		return 0
	}
	return elapsed / t.IterationSpeed
}
