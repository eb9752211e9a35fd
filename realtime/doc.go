// Package realtime provides a ticker-driven runtime that owns one ADIS
// instance and keeps it advancing against an external tick source.
//
// The core engine is synchronous and single-owner: nothing advances unless a
// caller folds in a tick reading. This runtime adds the wall-clock loop the
// original application ran around the engine:
//   - A fixed-interval ticker polls the tick source
//   - The tick source is polled on the runtime's own goroutine, so a slow or
//     failing time API never blocks callers working with other instances
//   - All instance access is serialized through the runtime's mutex
//
// # Example Usage
//
//	inst, _ := adis.New(adis.Config{Resolution: 64, ColorDepth: 8, IterationSpeed: 1})
//	rt := realtime.NewRuntime(inst, realtime.Config{
//		Interval: time.Minute,
//		Source:   &extensibility.HTTPTickSource{},
//	})
//	rt.Start(ctx)
//	defer rt.Stop()
//
//	rt.Do(func(i *core.Instance) {
//		hex, _ = i.Encrypt("attack at dawn")
//	})
//
// Determinism is unchanged: the runtime only decides when ticks are folded
// in, and grid evolution is a pure function of (palette, grid, tick window).
package realtime
