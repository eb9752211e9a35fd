// Package adis derives reproducible symmetric keys from a time-driven 2D
// cellular automaton and uses them in a cyclic XOR stream cipher.
//
// One Instance is a Palette (colors plus swap rules), a toroidal Grid of
// palette colors, and a TimeState. An external tick source (minutes since
// epoch, typically) decides how many automaton iterations are due; the grid
// state is then serialized, run-length compressed, and consumed as keystream
// bytes. A frozen grid copy taken at encryption time (the key imprint) keeps
// decryption stable while the live grid continues to evolve.
//
// This is deliberately not a secure cipher. The automaton is pseudo-random
// and the goal is reproducibility: the same grid always yields the same key.
package adis

import (
	"github.com/google/uuid"

	"github.com/comalice/adis/internal/core"
	"github.com/comalice/adis/internal/primitives"
)

// Re-exported engine types. The internal tiers carry the implementations;
// this package is the public surface.
type (
	Instance  = core.Instance
	Config    = core.Config
	Snapshot  = core.Snapshot
	Option    = core.Option
	RGB       = primitives.RGB
	Direction = primitives.Direction
	ColorRule = primitives.ColorRule
	Palette   = primitives.Palette
	Grid      = primitives.Grid
	TimeState = primitives.TimeState
)

// Collaborator interfaces implemented outside the core.
type (
	TickSource = core.TickSource
	Persister  = core.Persister
	Renderer   = core.Renderer
)

// Error sentinels, matched with errors.Is.
var (
	ErrConfig        = primitives.ErrConfig
	ErrColorNotFound = primitives.ErrColorNotFound
	ErrDecode        = core.ErrDecode
	ErrEncoding      = core.ErrEncoding
	ErrNoKeyImprint  = core.ErrNoKeyImprint
	ErrNoCiphertext  = core.ErrNoCiphertext
)

// Options re-exported from the core.
var (
	WithTickSource = core.WithTickSource
	WithPersister  = core.WithPersister
	WithRenderer   = core.WithRenderer
	WithRand       = core.WithRand
	WithSeed       = core.WithSeed
)

// New creates an instance with a fresh palette and grid. An empty cfg.ID is
// filled with a generated UUID so the instance is immediately persistable.
func New(cfg Config, opts ...Option) (*Instance, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.NewString()
	}
	return core.NewInstance(cfg, opts...)
}

// Restore reconstructs an instance from a persisted snapshot, re-validating
// the palette and grid invariants.
func Restore(snapshot Snapshot, opts ...Option) (*Instance, error) {
	return core.Restore(snapshot, opts...)
}
