package nightsky

import (
	"math"
	"math/rand/v2"
)

// Star is a fixed-position background dot. Every field is set once by
// GenerateStars; only the opacity derived by Opacity varies over time.
type Star struct {
	X, Y        float64
	Radius      float64
	BaseOpacity float64
	Phase       float64 // twinkle phase offset in radians
	Speed       float64 // twinkle angular speed in radians per millisecond
	Amplitude   float64 // opacity swing of the twinkle
}

// StarCount returns how many stars a w×h viewport holds.
func StarCount(w, h, areaPerStar int) int {
	if w <= 0 || h <= 0 || areaPerStar <= 0 {
		return 0
	}
	return w * h / areaPerStar
}

// GenerateStars builds a complete star field for a w×h viewport. The result
// always replaces the previous field; it is never adjusted incrementally.
func GenerateStars(w, h int, cfg StarConfig, rng *rand.Rand) []Star {
	n := StarCount(w, h, cfg.AreaPerStar)
	stars := make([]Star, n)
	fw, fh := float64(w), float64(h)
	for i := range stars {
		stars[i] = Star{
			X:           rng.Float64() * fw,
			Y:           rng.Float64() * fh,
			Radius:      cfg.Radius.Random(rng),
			BaseOpacity: cfg.Opacity.Random(rng),
			Phase:       rng.Float64() * 2 * math.Pi,
			Speed:       cfg.TwinkleSpeed.Random(rng),
			Amplitude:   cfg.TwinkleAmplitude,
		}
	}
	return stars
}

// Opacity returns the star's twinkled opacity at wall-clock time nowMillis,
// clamped to [0, 1].
func (s Star) Opacity(nowMillis float64) float64 {
	twinkle := math.Sin(nowMillis*s.Speed + s.Phase)
	return clamp01(s.BaseOpacity + twinkle*s.Amplitude)
}

// drawStars renders every star as a filled circle in a single color.
func drawStars(surface Surface, stars []Star, nowMillis float64, c Color) {
	for i := range stars {
		s := &stars[i]
		surface.FillCircle(s.X, s.Y, s.Radius, c.WithAlpha(s.Opacity(nowMillis)))
	}
}
