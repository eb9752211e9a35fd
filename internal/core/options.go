package core

import "math/rand/v2"

// WithTickSource configures the Instance with an external tick source.
func WithTickSource(s TickSource) Option {
	return func(i *Instance) {
		i.tickSource = s
	}
}

// WithPersister configures the Instance with a snapshot persister.
func WithPersister(p Persister) Option {
	return func(i *Instance) {
		i.persister = p
	}
}

// WithRenderer configures the Instance with a grid renderer.
func WithRenderer(r Renderer) Option {
	return func(i *Instance) {
		i.renderer = r
	}
}

// WithRand configures the random source used for palette and grid
// construction. Injecting a fixed-seed source makes construction fully
// reproducible.
func WithRand(rng *rand.Rand) Option {
	return func(i *Instance) {
		i.rng = rng
	}
}

// WithSeed is shorthand for WithRand with a PCG source seeded from seed.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, 0)))
}
