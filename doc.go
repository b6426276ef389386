// Package nightsky is a procedural night-sky animation layer for
// [Ebitengine] and other raster hosts.
//
// It keeps three independent populations and redraws them every frame:
// twinkling stars spread over the viewport, meteors that spawn at random and
// fade as they cross it, and radial bursts spawned by pointer clicks. The
// layer is meant to sit behind or over other content and composite with an
// additive blend.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	cfg := nightsky.DefaultConfig()
//	nightsky.Run(nightsky.RunConfig{
//		Title: "Happy birthday", Width: 800, Height: 600, Config: &cfg,
//	})
//
// For terminals, see the term sub-package.
//
// # Hosts
//
// The [Engine] only talks to a [Surface] (pixel size and a few drawing
// primitives) and a [Scheduler] (one callback per display frame). Hosts
// forward viewport resizes to [Engine.Resize] and clicks to [Engine.Click];
// both are queued and applied at the start of the next frame, so hosts may
// call them from any goroutine.
//
//	sched := &nightsky.ManualScheduler{}
//	e := nightsky.NewEngine(surface, sched, nightsky.DefaultConfig())
//	e.Start()
//	for running {
//		sched.Step(time.Now())
//	}
//	e.Stop()
//
// A missing surface turns the engine into a permanent no-op rather than an
// error.
//
// # Configuration
//
// Every constant (star density, twinkle ranges, meteor spawn chance and
// decay, burst particle count and terminal age) lives in [Config]. Load a
// YAML override with [LoadConfig]; omitted fields keep their defaults. Set
// Config.Seed for reproducible runs.
//
// [Ebitengine]: https://ebitengine.org
package nightsky
