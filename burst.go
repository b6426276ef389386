package nightsky

import (
	"math"
	"math/rand/v2"

	"github.com/tanema/gween/ease"
)

// BurstParticle is one fragment of a click burst. Velocity and size are
// fixed at creation.
type BurstParticle struct {
	VX, VY float64
	Size   float64
}

// Burst is the radial explosion spawned by a pointer click.
type Burst struct {
	X, Y      float64
	Age       int
	Particles []BurstParticle
}

// newBurst creates a burst at (x, y) with cfg.Particles particles spread
// evenly around the circle. Only particle speed and size are random. A
// negative particle count yields an empty burst.
func newBurst(x, y float64, cfg BurstConfig, rng *rand.Rand) Burst {
	n := max(cfg.Particles, 0)
	ps := make([]BurstParticle, n)
	for i := range ps {
		angle := 2 * math.Pi * float64(i) / float64(n)
		speed := cfg.Speed.Random(rng)
		ps[i] = BurstParticle{
			VX:   math.Cos(angle) * speed,
			VY:   math.Sin(angle) * speed,
			Size: cfg.Size.Random(rng),
		}
	}
	return Burst{X: x, Y: y, Particles: ps}
}

// ParticlePos returns the position of particle i at the burst's current age.
func (b Burst) ParticlePos(i int) Vec2 {
	p := b.Particles[i]
	age := float64(b.Age)
	return Vec2{b.X + p.VX*age, b.Y + p.VY*age}
}

// RingRadius returns the radius of the expanding outline.
func (b Burst) RingRadius(growth float64) float64 {
	return float64(b.Age) * growth
}

// Opacity evaluates the fade curve at the burst's age: 1 at age 0 and 0 at
// terminalAge, clamped to [0, 1]. A nil fade is the linear 1 - age/terminalAge
// in float64. gween curves work in float32 and may be off by about 1e-7.
func (b Burst) Opacity(terminalAge int, fade ease.TweenFunc) float64 {
	if terminalAge <= 0 {
		return 0
	}
	age := min(b.Age, terminalAge)
	if fade == nil {
		return clamp01(1 - float64(age)/float64(terminalAge))
	}
	return clamp01(float64(fade(float32(age), 1, -1, float32(terminalAge))))
}

// draw renders the ring and the particles.
func (b Burst) draw(surface Surface, cfg BurstConfig, fade ease.TweenFunc) {
	opacity := b.Opacity(cfg.TerminalAge, fade)
	surface.StrokeCircle(b.X, b.Y, b.RingRadius(cfg.RingGrowth), cfg.RingWidth, cfg.Color.WithAlpha(opacity*cfg.RingAlpha))
	pc := cfg.Color.WithAlpha(opacity * cfg.ParticleAlpha)
	for i := range b.Particles {
		pos := b.ParticlePos(i)
		surface.FillCircle(pos.X, pos.Y, b.Particles[i].Size, pc)
	}
}

// updateBursts ages every burst, drops those past terminal age, and draws the
// rest. It returns the live slice and how many were removed.
func updateBursts(surface Surface, bursts []Burst, cfg BurstConfig, fade ease.TweenFunc) ([]Burst, int) {
	live := bursts[:0]
	for i := range bursts {
		b := bursts[i]
		b.Age++
		if b.Age > cfg.TerminalAge {
			continue
		}
		b.draw(surface, cfg, fade)
		live = append(live, b)
	}
	removed := len(bursts) - len(live)
	clear(bursts[len(live):])
	return live, removed
}
