package core

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/comalice/adis/internal/primitives"
)

// Pluggable collaborator interfaces. Implementations live outside the core
// (internal/extensibility, internal/production); nil means unconfigured.

// TickSource supplies the external monotonic tick count (e.g. minutes since
// epoch). Implementations recover their own failures (network fallback etc.)
// and never surface errors to the core.
type TickSource interface {
	NowTicks() int64
}

// Persister stores and retrieves instance snapshots by ID.
type Persister interface {
	Save(ctx context.Context, snapshot Snapshot) error
	Load(ctx context.Context, id string) (Snapshot, error)
}

// Renderer turns a read-only grid snapshot into an encoded image of the
// given pixel size. The core makes no assumption about the scaling
// algorithm.
type Renderer interface {
	Render(grid *primitives.Grid, sizePx int) ([]byte, error)
}

var (
	// ErrNoKeyImprint reports a decryption attempt before any encryption has
	// frozen a key imprint.
	ErrNoKeyImprint = errors.New("no key imprint captured")

	// ErrNoCiphertext reports DecryptStored with no ciphertext on the
	// instance.
	ErrNoCiphertext = errors.New("no stored ciphertext")
)

// Config holds the construction parameters of an instance.
type Config struct {
	ID             string
	Resolution     int
	ColorDepth     int
	IterationSpeed int64
}

// Validate checks all numeric parameters are positive.
func (c Config) Validate() error {
	if c.Resolution < 1 {
		return fmt.Errorf("%w: resolution %d, must be >= 1", primitives.ErrConfig, c.Resolution)
	}
	if c.ColorDepth < 1 {
		return fmt.Errorf("%w: color depth %d, must be >= 1", primitives.ErrConfig, c.ColorDepth)
	}
	if c.IterationSpeed < 1 {
		return fmt.Errorf("%w: iteration speed %d, must be >= 1", primitives.ErrConfig, c.IterationSpeed)
	}
	return nil
}

// Snapshot is the serializable document for one instance. It round-trips
// losslessly through the persisters: Restore on a loaded snapshot rebuilds
// byte-identical rules and grids.
type Snapshot struct {
	ID             string                 `json:"id" yaml:"id"`
	Resolution     int                    `json:"resolution" yaml:"resolution"`
	ColorDepth     int                    `json:"colorDepth" yaml:"colorDepth"`
	IterationSpeed int64                  `json:"iterationSpeed" yaml:"iterationSpeed"`
	LastTick       int64                  `json:"lastTick" yaml:"lastTick"`
	NowTick        int64                  `json:"nowTick" yaml:"nowTick"`
	IterationCount uint64                 `json:"iterationCount" yaml:"iterationCount"`
	Grid           [][]primitives.RGB     `json:"grid" yaml:"grid"`
	KeyImprint     [][]primitives.RGB     `json:"keyImprint,omitempty" yaml:"keyImprint,omitempty"`
	Ciphertext     string                 `json:"ciphertext,omitempty" yaml:"ciphertext,omitempty"`
	Palette        []primitives.ColorRule `json:"palette" yaml:"palette"`
}

// Validate checks the snapshot shape before reconstruction.
func (s Snapshot) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("%w: snapshot has no ID", primitives.ErrConfig)
	}
	cfg := Config{ID: s.ID, Resolution: s.Resolution, ColorDepth: s.ColorDepth, IterationSpeed: s.IterationSpeed}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(s.Palette) != s.ColorDepth {
		return fmt.Errorf("%w: snapshot has %d palette rules, color depth %d", primitives.ErrConfig, len(s.Palette), s.ColorDepth)
	}
	if len(s.Grid) != s.Resolution {
		return fmt.Errorf("%w: snapshot grid has %d rows, resolution %d", primitives.ErrConfig, len(s.Grid), s.Resolution)
	}
	return nil
}

// Option applies configuration to an Instance via functional options.
type Option func(*Instance)

// Instance is one ADIS unit: a Palette, a live Grid, a TimeState, and the
// optional frozen key imprint plus stored ciphertext.
//
// Instances are single-owner and not safe for concurrent use; callers that
// share one across goroutines (see package realtime) must serialize access
// themselves. The automaton step is synchronous: no dependent read observes
// a grid mid-step.
type Instance struct {
	id             string
	resolution     int
	colorDepth     int
	iterationSpeed int64

	palette *primitives.Palette
	grid    *primitives.Grid
	time    primitives.TimeState

	keyImprint *primitives.Grid
	ciphertext string

	rng *rand.Rand
	// Pluggable collaborators (nil = unconfigured)
	tickSource TickSource
	persister  Persister
	renderer   Renderer
}

// NewInstance creates an instance: builds a fresh palette of ColorDepth
// rules, fills a Resolution x Resolution grid uniformly from it, and zeroes
// the time window so the first tick update bootstraps one pending iteration.
func NewInstance(cfg Config, opts ...Option) (*Instance, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	inst := &Instance{
		id:             cfg.ID,
		resolution:     cfg.Resolution,
		colorDepth:     cfg.ColorDepth,
		iterationSpeed: cfg.IterationSpeed,
		time:           primitives.TimeState{IterationSpeed: cfg.IterationSpeed},
	}
	for _, opt := range opts {
		opt(inst)
	}
	if inst.rng == nil {
		inst.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	palette, err := primitives.BuildPalette(cfg.ColorDepth, inst.rng)
	if err != nil {
		return nil, err
	}
	grid, err := primitives.NewGrid(cfg.Resolution, palette, inst.rng)
	if err != nil {
		return nil, err
	}

	inst.palette = palette
	inst.grid = grid
	return inst, nil
}

// Restore reconstructs an instance from a persisted snapshot. Palette and
// grid invariants are re-validated so corrupted documents fail here rather
// than during evolution.
func Restore(snapshot Snapshot, opts ...Option) (*Instance, error) {
	if err := snapshot.Validate(); err != nil {
		return nil, err
	}

	palette, err := primitives.NewPalette(snapshot.Palette)
	if err != nil {
		return nil, fmt.Errorf("restore palette: %w", err)
	}
	grid, err := primitives.NewGridFromRows(snapshot.Grid)
	if err != nil {
		return nil, fmt.Errorf("restore grid: %w", err)
	}

	inst := &Instance{
		id:             snapshot.ID,
		resolution:     snapshot.Resolution,
		colorDepth:     snapshot.ColorDepth,
		iterationSpeed: snapshot.IterationSpeed,
		palette:        palette,
		grid:           grid,
		ciphertext:     snapshot.Ciphertext,
		time: primitives.TimeState{
			LastTick:       snapshot.LastTick,
			NowTick:        snapshot.NowTick,
			IterationSpeed: snapshot.IterationSpeed,
			IterationCount: snapshot.IterationCount,
		},
	}
	if snapshot.KeyImprint != nil {
		imprint, err := primitives.NewGridFromRows(snapshot.KeyImprint)
		if err != nil {
			return nil, fmt.Errorf("restore key imprint: %w", err)
		}
		inst.keyImprint = imprint
	}

	for _, opt := range opts {
		opt(inst)
	}
	if inst.rng == nil {
		inst.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return inst, nil
}

// ID returns the instance's persistence key.
func (i *Instance) ID() string {
	return i.id
}

// Time returns a copy of the current time state.
func (i *Instance) Time() primitives.TimeState {
	return i.time
}

// Palette returns the instance's palette. Palettes are immutable.
func (i *Instance) Palette() *primitives.Palette {
	return i.palette
}

// Grid returns a deep copy of the live grid. The live grid is never handed
// out by alias, so later automaton steps cannot mutate a caller's view.
func (i *Instance) Grid() *primitives.Grid {
	return i.grid.Clone()
}

// KeyImprint returns a deep copy of the frozen key imprint, or nil if no
// encryption has happened yet.
func (i *Instance) KeyImprint() *primitives.Grid {
	if i.keyImprint == nil {
		return nil
	}
	return i.keyImprint.Clone()
}

// Ciphertext returns the stored hex ciphertext ("" if none).
func (i *Instance) Ciphertext() string {
	return i.ciphertext
}

// AdvanceTo folds the given external tick into the time window and runs the
// iterations it owes. Returns the number of automaton steps applied.
func (i *Instance) AdvanceTo(externalTick int64) uint64 {
	UpdateTicks(&i.time, externalTick)
	return i.RunDue()
}

// Advance reads the configured tick source and advances to its value.
func (i *Instance) Advance() (uint64, error) {
	if i.tickSource == nil {
		return 0, fmt.Errorf("%w: no tick source configured", primitives.ErrConfig)
	}
	return i.AdvanceTo(i.tickSource.NowTicks()), nil
}

// RunDue runs the iterations the current tick window owes without updating
// the window. Calling it repeatedly re-applies the same pending count.
func (i *Instance) RunDue() uint64 {
	grid, ran := RunDueIterations(&i.time, i.grid, i.palette)
	i.grid = grid
	return ran
}

// Key derives the keystream from the live grid.
func (i *Instance) Key() []byte {
	return DeriveKey(i.grid)
}

// Encrypt encrypts plaintext against the live grid's keystream, freezes the
// grid as the key imprint, and stores the ciphertext. The imprint is a deep
// copy: the live grid keeps evolving without invalidating the key.
func (i *Instance) Encrypt(plaintext string) (string, error) {
	ciphertext, err := Encrypt(plaintext, DeriveKey(i.grid))
	if err != nil {
		return "", err
	}
	i.keyImprint = i.grid.Clone()
	i.ciphertext = ciphertext
	return ciphertext, nil
}

// Decrypt decrypts a hex ciphertext against the key imprint's keystream.
func (i *Instance) Decrypt(ciphertext string) (string, error) {
	if i.keyImprint == nil {
		return "", ErrNoKeyImprint
	}
	return Decrypt(ciphertext, DeriveKey(i.keyImprint))
}

// DecryptStored decrypts the ciphertext retained from the last Encrypt.
func (i *Instance) DecryptStored() (string, error) {
	if i.ciphertext == "" {
		return "", ErrNoCiphertext
	}
	return i.Decrypt(i.ciphertext)
}

// Render renders the live grid through the configured renderer.
func (i *Instance) Render(sizePx int) ([]byte, error) {
	if i.renderer == nil {
		return nil, fmt.Errorf("%w: no renderer configured", primitives.ErrConfig)
	}
	return i.renderer.Render(i.grid.Clone(), sizePx)
}

// Snapshot captures the full persistable state as a deep copy.
func (i *Instance) Snapshot() Snapshot {
	s := Snapshot{
		ID:             i.id,
		Resolution:     i.resolution,
		ColorDepth:     i.colorDepth,
		IterationSpeed: i.iterationSpeed,
		LastTick:       i.time.LastTick,
		NowTick:        i.time.NowTick,
		IterationCount: i.time.IterationCount,
		Grid:           i.grid.Rows(),
		Ciphertext:     i.ciphertext,
		Palette:        i.palette.Rules(),
	}
	if i.keyImprint != nil {
		s.KeyImprint = i.keyImprint.Rows()
	}
	return s
}

// Save persists the current snapshot through the configured persister.
func (i *Instance) Save(ctx context.Context) error {
	if i.persister == nil {
		return fmt.Errorf("%w: no persister configured", primitives.ErrConfig)
	}
	return i.persister.Save(ctx, i.Snapshot())
}
