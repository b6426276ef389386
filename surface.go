package nightsky

import (
	"sync"
	"time"
)

// Surface is the host raster the engine draws into. Coordinates are
// viewport pixels with the origin at the top-left.
type Surface interface {
	// Size returns the current pixel dimensions.
	Size() (w, h int)
	// Clear erases the whole surface to transparent.
	Clear()
	FillCircle(x, y, r float64, c Color)
	StrokeCircle(x, y, r, width float64, c Color)
	// StrokeLine strokes seg, coloring each point from g.
	StrokeLine(seg Segment, g Gradient)
}

// ResizableSurface is a Surface the engine may resize itself when told of a
// new viewport size, as scripted runs do. Other surfaces keep whatever size
// the host gives them and the engine follows Size.
type ResizableSurface interface {
	Surface
	SetSize(w, h int)
}

// FrameFunc is called once per host frame with the current wall-clock time.
type FrameFunc func(now time.Time)

// Scheduler delivers frame callbacks. Each RequestFrame schedules exactly one
// call; the returned cancel func withdraws it if it has not run yet.
type Scheduler interface {
	RequestFrame(fn FrameFunc) (cancel func())
}

// ManualScheduler runs frames only when Step is called. It is used by tests
// and scripted runs, and by hosts whose own loop owns the cadence.
type ManualScheduler struct {
	mu      sync.Mutex
	pending FrameFunc
	seq     uint64
}

// RequestFrame implements Scheduler. A second request before Step replaces
// the first.
func (m *ManualScheduler) RequestFrame(fn FrameFunc) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	id := m.seq
	m.pending = fn
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.seq == id {
			m.pending = nil
		}
	}
}

// Pending reports whether a frame is waiting to run.
func (m *ManualScheduler) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

// Step runs the pending frame, if any, and reports whether one ran.
func (m *ManualScheduler) Step(now time.Time) bool {
	m.mu.Lock()
	fn := m.pending
	m.pending = nil
	m.mu.Unlock()
	if fn == nil {
		return false
	}
	fn(now)
	return true
}
