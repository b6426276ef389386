package nightsky

import (
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/tanema/gween/ease"
)

// State is the lifecycle state of an Engine.
type State uint8

const (
	StateIdle    State = iota // created, no frame scheduled yet
	StateRunning              // self-scheduling frame loop active
	StateStopped              // torn down; nothing scheduled, input detached
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

const defaultEntityCap = 16

// Engine owns the star, meteor and burst collections and runs the frame loop.
//
// Resize and Click may be called from any goroutine. They only enqueue; the
// queue is drained at the start of each frame so every collection is mutated
// on the frame callback alone.
type Engine struct {
	surface   Surface
	scheduler Scheduler
	cfg       Config
	fade      ease.TweenFunc
	rng       *rand.Rand
	log       *slog.Logger
	debug     bool

	state    State
	disabled bool
	cancel   func()

	width, height int
	stars         []Star
	meteors       []Meteor
	bursts        []Burst

	stats      FrameStats
	testRunner *TestRunner

	// Guarded by mu: written by host event handlers, drained by the frame.
	mu              sync.Mutex
	events          []hostEvent
	detached        bool
	screenshotQueue []string
}

// NewEngine creates an idle engine. A nil surface or scheduler is allowed;
// Start then does nothing. cfg is not validated here; use Config.Validate or
// LoadConfig first.
func NewEngine(surface Surface, scheduler Scheduler, cfg Config) *Engine {
	// Unknown names come back nil, the linear fade.
	fade, _ := EaseByName(cfg.Bursts.Fade)
	return &Engine{
		surface:   surface,
		scheduler: scheduler,
		cfg:       cfg,
		fade:      fade,
		rng:       NewRand(cfg.Seed),
		log:       slog.Default(),
		meteors:   make([]Meteor, 0, defaultEntityCap),
		bursts:    make([]Burst, 0, defaultEntityCap),
	}
}

// SetLogger replaces the engine's logger. nil restores slog.Default.
func (e *Engine) SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	e.log = l
}

// SetDebugMode enables per-frame stats logging at debug level.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	return e.state
}

// Start moves the engine from idle to running: it builds the star field for
// the surface's current size and requests the first frame. When the surface
// or scheduler is missing the engine stays idle permanently, renders nothing
// and schedules nothing. Calling Start in any state other than idle does
// nothing.
func (e *Engine) Start() {
	if e.state != StateIdle || e.disabled {
		return
	}
	if e.surface == nil || e.scheduler == nil {
		e.log.Warn("nightsky: no drawing surface available, animation disabled")
		e.disabled = true
		e.mu.Lock()
		e.detached = true
		e.mu.Unlock()
		return
	}
	w, h := e.surface.Size()
	e.resize(w, h)
	e.state = StateRunning
	e.log.Info("nightsky: started", "width", w, "height", h, "stars", len(e.stars))
	e.schedule()
}

// Stop cancels the pending frame and detaches input. Safe to call repeatedly.
func (e *Engine) Stop() {
	if e.state == StateStopped {
		return
	}
	if e.cancel != nil {
		e.cancel()
		e.cancel = nil
	}
	e.mu.Lock()
	e.detached = true
	e.events = nil
	e.mu.Unlock()
	if e.state == StateRunning {
		e.log.Info("nightsky: stopped", "frames", e.stats.Frame)
	}
	e.state = StateStopped
}

// Resize notifies the engine that the viewport is now w×h. At the start of
// the next frame a ResizableSurface is resized to match and the star field is
// regenerated for the surface's size.
func (e *Engine) Resize(w, h int) {
	e.enqueue(hostEvent{kind: eventResize, w: w, h: h})
}

// Click notifies the engine of a pointer click at viewport coordinates (x, y).
// A burst appears at the start of the next frame.
func (e *Engine) Click(x, y float64) {
	e.enqueue(hostEvent{kind: eventClick, x: x, y: y})
}

// Viewport returns the dimensions the current star field was built for.
func (e *Engine) Viewport() (w, h int) {
	return e.width, e.height
}

// Stars returns a copy of the current star field.
func (e *Engine) Stars() []Star {
	return append([]Star(nil), e.stars...)
}

// Meteors returns a copy of the live meteors.
func (e *Engine) Meteors() []Meteor {
	return append([]Meteor(nil), e.meteors...)
}

// Bursts returns a copy of the live bursts. Particle slices are shared and
// must not be mutated.
func (e *Engine) Bursts() []Burst {
	return append([]Burst(nil), e.bursts...)
}

// Stats returns the counters recorded by the most recent frame.
func (e *Engine) Stats() FrameStats {
	return e.stats
}

// SetTestRunner attaches a scripted runner. Its step runs at the start of
// each frame, before queued events are drained.
func (e *Engine) SetTestRunner(r *TestRunner) {
	e.testRunner = r
}

func (e *Engine) schedule() {
	e.cancel = e.scheduler.RequestFrame(e.frame)
}

// frame is one tick of the loop: drain events, clear, stars, meteors,
// bursts, then request the next tick.
func (e *Engine) frame(now time.Time) {
	if e.state != StateRunning {
		return
	}
	start := time.Now()

	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.drainEvents()

	st := FrameStats{Frame: e.stats.Frame + 1}
	nowMillis := float64(now.UnixNano()) / float64(time.Millisecond)

	e.surface.Clear()

	drawStars(e.surface, e.stars, nowMillis, e.cfg.Stars.Color)

	w, h := e.surface.Size()
	if m, ok := spawnMeteor(w, h, e.cfg.Meteors, e.rng); ok {
		e.meteors = append(e.meteors, m)
		st.MeteorsSpawned = 1
	}
	bounds := meteorBounds(float64(w), float64(h), e.cfg.Meteors)
	e.meteors, st.MeteorsRemoved = updateMeteors(e.surface, e.meteors, bounds, e.cfg.Meteors)

	e.bursts, st.BurstsRemoved = updateBursts(e.surface, e.bursts, e.cfg.Bursts, e.fade)

	st.Stars = len(e.stars)
	st.Meteors = len(e.meteors)
	st.Bursts = len(e.bursts)
	st.Duration = time.Since(start)
	e.stats = st
	if e.debug {
		e.debugLog(st)
	}

	if e.state == StateRunning {
		e.schedule()
	}
}

// resize replaces the star field for a w×h viewport.
func (e *Engine) resize(w, h int) {
	e.width, e.height = w, h
	e.stars = GenerateStars(w, h, e.cfg.Stars, e.rng)
}

// addBurst appends a burst at (x, y).
func (e *Engine) addBurst(x, y float64) {
	e.bursts = append(e.bursts, newBurst(x, y, e.cfg.Bursts, e.rng))
}
