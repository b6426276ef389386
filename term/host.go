// Package term runs the nightsky engine inside a terminal using tcell.
//
// Each terminal cell stands for a block of viewport pixels, so the engine's
// density and speed constants apply unchanged. Mouse clicks spawn bursts and
// terminal resizes rebuild the star field. Escape, q or Ctrl-C quits.
package term

import (
	"context"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/nightsky"
)

// Options configures a terminal run.
type Options struct {
	Config nightsky.Config

	// CellWidth and CellHeight are viewport pixels per cell.
	CellWidth, CellHeight int

	// FrameInterval is the tick period. Defaults to 1/60 s.
	FrameInterval time.Duration

	Debug  bool
	Logger *slog.Logger
}

// Host binds an engine to a tcell screen. The caller owns the screen and is
// responsible for Init and Fini.
type Host struct {
	screen   tcell.Screen
	surface  *Surface
	sched    *nightsky.ManualScheduler
	engine   *nightsky.Engine
	pointer  *nightsky.PointerTracker
	interval time.Duration
	log      *slog.Logger
}

// New prepares a host for an initialized screen.
func New(screen tcell.Screen, opts Options) *Host {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	interval := opts.FrameInterval
	if interval <= 0 {
		interval = time.Second / 60
	}

	surface := NewSurface(screen, opts.CellWidth, opts.CellHeight)
	sched := &nightsky.ManualScheduler{}
	e := nightsky.NewEngine(surface, sched, opts.Config)
	e.SetLogger(logger)
	e.SetDebugMode(opts.Debug)

	return &Host{
		screen:   screen,
		surface:  surface,
		sched:    sched,
		engine:   e,
		pointer:  nightsky.NewPointerTracker(opts.Config.Bursts.DragDeadZone),
		interval: interval,
		log:      logger,
	}
}

// Engine returns the engine driven by the host. Only inspect it after Run
// has returned.
func (h *Host) Engine() *nightsky.Engine {
	return h.engine
}

// Run animates until ctx is done or the user quits. Events and frames are
// handled on the calling goroutine.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseButtonEvents)
	h.screen.HideCursor()

	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go h.screen.ChannelEvents(events, quit)
	defer close(quit)

	h.engine.Start()
	defer h.engine.Stop()

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.handle(ev) {
				return nil
			}
		case now := <-ticker.C:
			if h.sched.Step(now) {
				h.surface.Present()
			}
		}
	}
}

// handle dispatches one terminal event and reports whether to quit.
func (h *Host) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.screen.Sync()
		w, hgt := h.surface.Size()
		h.engine.Resize(w, hgt)
		h.log.Info("nightsky: terminal resized", "cols", w/int(h.surface.cellW), "rows", hgt/int(h.surface.cellH))
	case *tcell.EventMouse:
		col, row := ev.Position()
		x, y := h.surface.CellToViewport(col, row)
		if h.pointer.Update(x, y, ev.Buttons()&tcell.ButtonPrimary != 0) {
			h.engine.Click(x, y)
		}
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return true
			}
		}
	}
	return false
}
