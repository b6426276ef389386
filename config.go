package nightsky

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/tanema/gween/ease"
	"gopkg.in/yaml.v3"
)

// Config controls every tunable of the animation. DefaultConfig reproduces
// the greeting-card look; config files override individual fields.
//
// Config file location is chosen by the caller (cmd/nightsky uses -config).
type Config struct {
	// Seed for the random source. Zero seeds from entropy.
	Seed uint64 `yaml:"seed"`

	// Blend is how the layer is composited over host content.
	Blend BlendMode `yaml:"blend"`

	Stars   StarConfig   `yaml:"stars"`
	Meteors MeteorConfig `yaml:"meteors"`
	Bursts  BurstConfig  `yaml:"bursts"`
}

// StarConfig controls the ambient star field.
type StarConfig struct {
	// AreaPerStar is the viewport area in square pixels that yields one star.
	AreaPerStar int `yaml:"areaPerStar"`

	Radius       Range `yaml:"radius"`
	Opacity      Range `yaml:"opacity"`
	TwinkleSpeed Range `yaml:"twinkleSpeed"`

	// TwinkleAmplitude scales the sine term added to base opacity.
	TwinkleAmplitude float64 `yaml:"twinkleAmplitude"`

	Color Color `yaml:"color"`
}

// MeteorConfig controls meteor spawning, motion and fade.
type MeteorConfig struct {
	// SpawnChance is the per-frame probability of spawning one meteor.
	SpawnChance float64 `yaml:"spawnChance"`

	// AngleJitter is the full width in radians of the spread around 45°.
	AngleJitter float64 `yaml:"angleJitter"`

	Speed  Range `yaml:"speed"`
	Length Range `yaml:"length"`

	// Decay is subtracted from opacity every frame.
	Decay float64 `yaml:"decay"`

	// SpawnOffset is how far outside the viewport meteors start.
	SpawnOffset float64 `yaml:"spawnOffset"`

	// Margin is how far past the left or bottom edge a meteor may travel
	// before removal.
	Margin float64 `yaml:"margin"`

	LineWidth  float64 `yaml:"lineWidth"`
	HeadRadius float64 `yaml:"headRadius"`

	// GradientScale sets the gradient end at head - velocity*GradientScale.
	GradientScale float64 `yaml:"gradientScale"`

	Color Color `yaml:"color"`
}

// BurstConfig controls click bursts.
type BurstConfig struct {
	Particles int   `yaml:"particles"`
	Speed     Range `yaml:"speed"`
	Size      Range `yaml:"size"`

	// TerminalAge is the frame count after which a burst is removed.
	TerminalAge int `yaml:"terminalAge"`

	RingGrowth    float64 `yaml:"ringGrowth"`
	RingWidth     float64 `yaml:"ringWidth"`
	RingAlpha     float64 `yaml:"ringAlpha"`
	ParticleAlpha float64 `yaml:"particleAlpha"`

	// Fade names a gween easing curve for opacity over age ("linear" default).
	Fade string `yaml:"fade"`

	// DragDeadZone is how far a pointer may move between press and release
	// and still count as a click.
	DragDeadZone float64 `yaml:"dragDeadZone"`

	Color Color `yaml:"color"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		Blend: BlendAdd,
		Stars: StarConfig{
			AreaPerStar:      4000,
			Radius:           Range{0.3, 1.5},
			Opacity:          Range{0.1, 0.5},
			TwinkleSpeed:     Range{0.0002, 0.0012},
			TwinkleAmplitude: 0.1,
			Color:            ColorStone,
		},
		Meteors: MeteorConfig{
			SpawnChance:   0.008,
			AngleJitter:   0.5,
			Speed:         Range{5, 15},
			Length:        Range{20, 100},
			Decay:         0.01,
			SpawnOffset:   50,
			Margin:        100,
			LineWidth:     1.5,
			HeadRadius:    1,
			GradientScale: 3,
			Color:         ColorWhite,
		},
		Bursts: BurstConfig{
			Particles:     8,
			Speed:         Range{1, 3},
			Size:          Range{0.5, 2},
			TerminalAge:   50,
			RingGrowth:    1.5,
			RingWidth:     1,
			RingAlpha:     0.5,
			ParticleAlpha: 0.8,
			Fade:          "linear",
			DragDeadZone:  4,
			Color:         ColorStone,
		},
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes YAML over DefaultConfig and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks ranges and counts. All problems are reported together.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	checkRange := func(name string, r Range, lo float64) {
		check(r.Min <= r.Max, "%s: min %v > max %v", name, r.Min, r.Max)
		check(r.Min >= lo, "%s: min %v < %v", name, r.Min, lo)
	}

	check(c.Stars.AreaPerStar > 0, "stars.areaPerStar must be positive, got %d", c.Stars.AreaPerStar)
	checkRange("stars.radius", c.Stars.Radius, 0)
	checkRange("stars.opacity", c.Stars.Opacity, 0)
	checkRange("stars.twinkleSpeed", c.Stars.TwinkleSpeed, 0)

	m := c.Meteors
	check(m.SpawnChance >= 0 && m.SpawnChance <= 1, "meteors.spawnChance must be in [0,1], got %v", m.SpawnChance)
	check(m.Decay > 0, "meteors.decay must be positive, got %v", m.Decay)
	check(m.AngleJitter >= 0 && m.AngleJitter < math.Pi/2, "meteors.angleJitter must be in [0,π/2), got %v", m.AngleJitter)
	check(m.SpawnOffset >= 0, "meteors.spawnOffset must not be negative, got %v", m.SpawnOffset)
	check(m.Margin >= 0, "meteors.margin must not be negative, got %v", m.Margin)
	checkRange("meteors.speed", m.Speed, 0)
	checkRange("meteors.length", m.Length, 0)

	b := c.Bursts
	check(b.Particles > 0, "bursts.particles must be positive, got %d", b.Particles)
	check(b.TerminalAge > 0, "bursts.terminalAge must be positive, got %d", b.TerminalAge)
	checkRange("bursts.speed", b.Speed, 0)
	checkRange("bursts.size", b.Size, 0)
	if _, err := EaseByName(b.Fade); err != nil {
		errs = append(errs, fmt.Errorf("bursts.fade: %w", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

var easings = map[string]ease.TweenFunc{
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
	"inexpo":     ease.InExpo,
	"outexpo":    ease.OutExpo,
}

// EaseByName returns the gween easing function for a config name. Names are
// case-insensitive and may contain '-' or '_'. Empty and "linear" return nil,
// which Burst.Opacity evaluates as an exact linear fade.
func EaseByName(name string) (ease.TweenFunc, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "", " ", "").Replace(name))
	if key == "" || key == "linear" {
		return nil, nil
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q", name)
	}
	return fn, nil
}
