package realtime

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/comalice/adis/internal/core"
)

// Config configures the realtime runtime.
type Config struct {
	Interval  time.Duration    // poll interval; default 1 minute
	Source    core.TickSource  // required external tick source
	OnAdvance func(ran uint64) // optional, called after a poll that ran steps
	Logger    *slog.Logger     // optional; nil disables logging
}

// Runtime drives one instance from a wall-clock ticker.
type Runtime struct {
	inst *core.Instance
	cfg  Config

	mu      sync.Mutex
	started bool

	ticker  *time.Ticker
	cancel  context.CancelFunc
	stopped chan struct{}
}

// NewRuntime creates a runtime owning inst.
func NewRuntime(inst *core.Instance, cfg Config) *Runtime {
	if cfg.Interval == 0 {
		cfg.Interval = time.Minute
	}
	return &Runtime{
		inst: inst,
		cfg:  cfg,
	}
}

// Start begins the poll loop. It performs one immediate advance so a freshly
// created instance bootstraps its tick window without waiting a full
// interval.
func (rt *Runtime) Start(ctx context.Context) error {
	if rt.cfg.Source == nil {
		return errors.New("realtime: no tick source configured")
	}

	rt.mu.Lock()
	if rt.started {
		rt.mu.Unlock()
		return errors.New("realtime: already started")
	}
	rt.started = true
	rt.mu.Unlock()

	var loopCtx context.Context
	loopCtx, rt.cancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.cfg.Interval)
	rt.stopped = make(chan struct{})

	go rt.loop(loopCtx)
	return nil
}

// Stop halts the poll loop and waits for it to exit. Safe to call once after
// a successful Start.
func (rt *Runtime) Stop() {
	if rt.cancel != nil {
		rt.cancel()
	}
	if rt.ticker != nil {
		rt.ticker.Stop()
	}
	if rt.stopped != nil {
		<-rt.stopped
	}

	rt.mu.Lock()
	rt.started = false
	rt.mu.Unlock()
}

func (rt *Runtime) loop(ctx context.Context) {
	defer close(rt.stopped)

	rt.poll()
	for {
		select {
		case <-ctx.Done():
			return
		case <-rt.ticker.C:
			rt.poll()
		}
	}
}

// poll reads the tick source outside the mutex, then folds the reading into
// the instance under it.
func (rt *Runtime) poll() {
	tick := rt.cfg.Source.NowTicks()

	rt.mu.Lock()
	ran := rt.inst.AdvanceTo(tick)
	count := rt.inst.Time().IterationCount
	rt.mu.Unlock()

	if rt.cfg.Logger != nil {
		rt.cfg.Logger.Debug("advanced instance",
			"id", rt.inst.ID(), "tick", tick, "ran", ran, "iterations", count)
	}
	if ran > 0 && rt.cfg.OnAdvance != nil {
		rt.cfg.OnAdvance(ran)
	}
}

// Do runs f with exclusive access to the owned instance. Use it for
// encryption, persistence, or rendering while the poll loop is live.
func (rt *Runtime) Do(f func(*core.Instance)) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	f(rt.inst)
}

// Iterations returns the instance's total iteration count.
func (rt *Runtime) Iterations() uint64 {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.inst.Time().IterationCount
}
