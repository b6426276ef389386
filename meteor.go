package nightsky

import (
	"math"
	"math/rand/v2"
)

// Meteor is a moving streak that fades linearly until removal.
type Meteor struct {
	X, Y    float64
	VX, VY  float64
	Length  float64 // trail length; the trail spans velocity*Length/10
	Opacity float64
}

// spawnMeteor rolls the per-frame spawn chance and, on success, returns a new
// meteor entering from the top edge or the upper half of the right edge.
func spawnMeteor(w, h int, cfg MeteorConfig, rng *rand.Rand) (Meteor, bool) {
	if rng.Float64() >= cfg.SpawnChance {
		return Meteor{}, false
	}
	return newMeteor(float64(w), float64(h), cfg, rng), true
}

func newMeteor(w, h float64, cfg MeteorConfig, rng *rand.Rand) Meteor {
	var x, y float64
	if rng.Float64() < 0.5 {
		x = rng.Float64() * w
		y = -cfg.SpawnOffset
	} else {
		x = w + cfg.SpawnOffset
		y = rng.Float64() * h * 0.5
	}

	angle := math.Pi/4 + (rng.Float64()-0.5)*cfg.AngleJitter
	speed := cfg.Speed.Random(rng)

	return Meteor{
		X:       x,
		Y:       y,
		VX:      -math.Cos(angle) * speed,
		VY:      math.Sin(angle) * speed,
		Length:  cfg.Length.Random(rng),
		Opacity: 1,
	}
}

// meteorBounds is the region a meteor may occupy in a w×h viewport: from the
// spawn band SpawnOffset outside the top and right edges to Margin past the
// left and bottom edges. Meteors only travel down and left, so in practice
// only the left and bottom sides remove them.
func meteorBounds(w, h float64, cfg MeteorConfig) Rect {
	return Rect{
		X:      -cfg.Margin,
		Y:      -cfg.SpawnOffset,
		Width:  w + cfg.SpawnOffset + cfg.Margin,
		Height: h + cfg.SpawnOffset + cfg.Margin,
	}
}

// step advances the meteor one frame and reports whether it is still alive
// inside bounds.
func (m *Meteor) step(bounds Rect, cfg MeteorConfig) bool {
	m.X += m.VX
	m.Y += m.VY
	m.Opacity -= cfg.Decay
	return m.Opacity > 0 && bounds.Contains(m.X, m.Y)
}

// Tail returns the far end of the visible trail.
func (m Meteor) Tail() Vec2 {
	k := m.Length / 10
	return Vec2{m.X - m.VX*k, m.Y - m.VY*k}
}

// draw strokes the fading trail and the head dot.
func (m Meteor) draw(surface Surface, cfg MeteorConfig) {
	alpha := clamp01(m.Opacity)
	head := Vec2{m.X, m.Y}
	surface.StrokeLine(
		Segment{From: head, To: m.Tail(), Width: cfg.LineWidth, RoundCap: true},
		Gradient{
			Start:      head,
			End:        Vec2{m.X - m.VX*cfg.GradientScale, m.Y - m.VY*cfg.GradientScale},
			StartColor: cfg.Color.WithAlpha(alpha),
			EndColor:   cfg.Color.WithAlpha(0),
		},
	)
	surface.FillCircle(m.X, m.Y, cfg.HeadRadius, cfg.Color.WithAlpha(alpha))
}

// updateMeteors steps every meteor, drops the dead ones in place, and draws
// the survivors. It returns the live slice and how many were removed.
func updateMeteors(surface Surface, meteors []Meteor, bounds Rect, cfg MeteorConfig) ([]Meteor, int) {
	live := meteors[:0]
	for i := range meteors {
		m := meteors[i]
		if !m.step(bounds, cfg) {
			continue
		}
		m.draw(surface, cfg)
		live = append(live, m)
	}
	removed := len(meteors) - len(live)
	clear(meteors[len(live):])
	return live, removed
}
