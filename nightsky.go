package nightsky

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"strconv"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"gopkg.in/yaml.v3"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the meteor color.
var ColorWhite = Color{1, 1, 1, 1}

// ColorStone is the warm off-white used for stars and bursts (#e7e5e4).
var ColorStone = Color{231.0 / 255, 229.0 / 255, 228.0 / 255, 1}

// WithAlpha returns c with its alpha replaced by a, clamped to [0, 1].
func (c Color) WithAlpha(a float64) Color {
	c.A = clamp01(a)
	return c
}

// RGBA returns the premultiplied 8-bit form of c, suitable for image/color APIs.
func (c Color) RGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// lerpColor interpolates every channel of a toward b by t.
func lerpColor(a, b Color, t float64) Color {
	return Color{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

// ParseColor parses "#rrggbb" or "#rrggbbaa".
func ParseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("parse color %q: want #rrggbb or #rrggbbaa", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler for hex color strings.
func (c *Color) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Vec2 is a 2D vector used for positions and directions.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned region in viewport pixels, Y pointing down. Meteors
// live while their head is inside one.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) is inside r, edges included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a general-purpose min/max range used by every generator.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Random returns a value in [Min, Max) drawn from rng.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + rng.Float64()*(r.Max-r.Min)
}

// Segment is a stroked line from From to To.
type Segment struct {
	From, To Vec2
	Width    float64
	RoundCap bool
}

// Gradient is a linear color gradient between two points. Colors before Start
// take StartColor and colors past End take EndColor.
type Gradient struct {
	Start, End           Vec2
	StartColor, EndColor Color
}

// At returns the gradient color at point p, projected onto the gradient axis.
func (g Gradient) At(p Vec2) Color {
	dx := g.End.X - g.Start.X
	dy := g.End.Y - g.Start.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return g.StartColor
	}
	t := ((p.X-g.Start.X)*dx + (p.Y-g.Start.Y)*dy) / l2
	return lerpColor(g.StartColor, g.EndColor, clamp01(t))
}

// BlendMode selects how the animation layer is composited over host content.
type BlendMode uint8

const (
	BlendAdd    BlendMode = iota // additive / lighter
	BlendScreen                  // screen (1 - (1-src)*(1-dst); only brightens)
	BlendNormal                  // source-over (standard alpha blending)
)

// String returns the config name of the blend mode.
func (b BlendMode) String() string {
	switch b {
	case BlendAdd:
		return "add"
	case BlendScreen:
		return "screen"
	case BlendNormal:
		return "normal"
	default:
		return fmt.Sprintf("BlendMode(%d)", uint8(b))
	}
}

// ParseBlendMode maps a config name to a BlendMode.
func ParseBlendMode(s string) (BlendMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "add", "additive", "lighter":
		return BlendAdd, nil
	case "screen":
		return BlendScreen, nil
	case "normal", "over":
		return BlendNormal, nil
	}
	return 0, fmt.Errorf("unknown blend mode %q", s)
}

// UnmarshalYAML implements yaml.Unmarshaler for blend mode names.
func (b *BlendMode) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	mode, err := ParseBlendMode(s)
	if err != nil {
		return err
	}
	*b = mode
	return nil
}

// EbitenBlend returns the ebiten.Blend value corresponding to this BlendMode.
func (b BlendMode) EbitenBlend() ebiten.Blend {
	switch b {
	case BlendAdd:
		return ebiten.BlendLighter
	case BlendScreen:
		return ebiten.Blend{
			BlendFactorSourceRGB:        ebiten.BlendFactorOne,
			BlendFactorSourceAlpha:      ebiten.BlendFactorOne,
			BlendFactorDestinationRGB:   ebiten.BlendFactorOneMinusSourceColor,
			BlendFactorDestinationAlpha: ebiten.BlendFactorOneMinusSourceAlpha,
			BlendOperationRGB:           ebiten.BlendOperationAdd,
			BlendOperationAlpha:         ebiten.BlendOperationAdd,
		}
	default:
		return ebiten.BlendSourceOver
	}
}

// NewRand returns the engine's random source. A zero seed draws from entropy.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
