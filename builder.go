package adis

// Builder provides a fluent API for assembling an Instance, as an
// alternative to filling in Config and passing options by hand.
type Builder struct {
	cfg  Config
	opts []Option
}

// NewBuilder creates a builder for an instance named id. An empty id gets a
// generated UUID at Build time.
func NewBuilder(id string) *Builder {
	return &Builder{cfg: Config{ID: id}}
}

// Resolution sets the grid side length.
func (b *Builder) Resolution(resolution int) *Builder {
	b.cfg.Resolution = resolution
	return b
}

// ColorDepth sets the number of palette rules.
func (b *Builder) ColorDepth(depth int) *Builder {
	b.cfg.ColorDepth = depth
	return b
}

// IterationSpeed sets the tick units per automaton step.
func (b *Builder) IterationSpeed(speed int64) *Builder {
	b.cfg.IterationSpeed = speed
	return b
}

// Seed fixes the random source so palette and grid construction is
// reproducible.
func (b *Builder) Seed(seed uint64) *Builder {
	b.opts = append(b.opts, WithSeed(seed))
	return b
}

// TickSource wires the external tick source.
func (b *Builder) TickSource(s TickSource) *Builder {
	b.opts = append(b.opts, WithTickSource(s))
	return b
}

// Persister wires the snapshot persister.
func (b *Builder) Persister(p Persister) *Builder {
	b.opts = append(b.opts, WithPersister(p))
	return b
}

// Renderer wires the grid renderer.
func (b *Builder) Renderer(r Renderer) *Builder {
	b.opts = append(b.opts, WithRenderer(r))
	return b
}

// Build validates the accumulated configuration and creates the instance.
func (b *Builder) Build() (*Instance, error) {
	return New(b.cfg, b.opts...)
}
