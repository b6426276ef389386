package nightsky

type eventKind uint8

const (
	eventResize eventKind = iota
	eventClick
)

// hostEvent is one queued notification from a host event handler.
type hostEvent struct {
	kind eventKind
	x, y float64 // click position
	w, h int     // new viewport size
}

// enqueue appends an event unless input has been detached by Stop.
func (e *Engine) enqueue(ev hostEvent) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.detached {
		return
	}
	e.events = append(e.events, ev)
}

// pendingEvents reports how many events wait for the next frame.
func (e *Engine) pendingEvents() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.events)
}

// drainEvents applies every queued event in arrival order. Consecutive
// resizes collapse into one star-field rebuild using the last size. The star
// field is always built for the surface's actual size, which only follows the
// requested one when the surface is resizable.
func (e *Engine) drainEvents() {
	e.mu.Lock()
	events := e.events
	e.events = nil
	e.mu.Unlock()

	for i, ev := range events {
		switch ev.kind {
		case eventResize:
			if i+1 < len(events) && events[i+1].kind == eventResize {
				continue
			}
			if rs, ok := e.surface.(ResizableSurface); ok {
				rs.SetSize(ev.w, ev.h)
			}
			w, h := e.surface.Size()
			e.resize(w, h)
			e.log.Debug("nightsky: resized", "width", w, "height", h, "stars", len(e.stars))
		case eventClick:
			e.addBurst(ev.x, ev.y)
		}
	}
}
