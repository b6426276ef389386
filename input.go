package nightsky

import "math"

const defaultDragDeadZone = 4.0 // pixels

// PointerTracker turns raw pointer samples into clicks. A press followed by a
// release is a click unless the pointer strayed further than DeadZone from
// the press point in between, which makes it a drag.
type PointerTracker struct {
	DeadZone float64

	down           bool
	dragging       bool
	startX, startY float64
}

// NewPointerTracker returns a tracker with the given drag dead zone. A
// non-positive value selects the default of 4 pixels.
func NewPointerTracker(deadZone float64) *PointerTracker {
	if deadZone <= 0 {
		deadZone = defaultDragDeadZone
	}
	return &PointerTracker{DeadZone: deadZone}
}

// Update feeds one sample and reports whether it completed a click.
func (p *PointerTracker) Update(x, y float64, pressed bool) bool {
	switch {
	case pressed && !p.down:
		p.down = true
		p.dragging = false
		p.startX, p.startY = x, y
	case pressed && p.down:
		if !p.dragging && math.Hypot(x-p.startX, y-p.startY) > p.DeadZone {
			p.dragging = true
		}
	case !pressed && p.down:
		p.down = false
		click := !p.dragging && math.Hypot(x-p.startX, y-p.startY) <= p.DeadZone
		p.dragging = false
		return click
	}
	return false
}
