package nightsky

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestParseConfigOverridesDefaults(t *testing.T) {
	data := []byte(`
seed: 12
blend: screen
stars:
  areaPerStar: 2000
  color: "#ffffff"
meteors:
  spawnChance: 0.05
  speed: {min: 2, max: 4}
bursts:
  particles: 12
  fade: out-quad
`)
	cfg, err := ParseConfig(data)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Seed != 12 {
		t.Errorf("seed = %d, want 12", cfg.Seed)
	}
	if cfg.Blend != BlendScreen {
		t.Errorf("blend = %v, want screen", cfg.Blend)
	}
	if cfg.Stars.AreaPerStar != 2000 {
		t.Errorf("areaPerStar = %d, want 2000", cfg.Stars.AreaPerStar)
	}
	if cfg.Stars.Color != ColorWhite {
		t.Errorf("star color = %+v, want white", cfg.Stars.Color)
	}
	if cfg.Meteors.Speed != (Range{2, 4}) {
		t.Errorf("meteor speed = %+v, want {2 4}", cfg.Meteors.Speed)
	}
	if cfg.Bursts.Particles != 12 || cfg.Bursts.Fade != "out-quad" {
		t.Errorf("bursts = %+v", cfg.Bursts)
	}

	// Untouched fields keep their defaults.
	def := DefaultConfig()
	if cfg.Stars.Radius != def.Stars.Radius {
		t.Errorf("star radius = %+v, want default %+v", cfg.Stars.Radius, def.Stars.Radius)
	}
	if cfg.Meteors.Decay != def.Meteors.Decay {
		t.Errorf("decay = %v, want default %v", cfg.Meteors.Decay, def.Meteors.Decay)
	}
	if cfg.Bursts.TerminalAge != 50 {
		t.Errorf("terminalAge = %d, want 50", cfg.Bursts.TerminalAge)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad yaml", "stars: [", "parse config"},
		{"bad color", `stars: {color: "#12"}`, "parse color"},
		{"bad blend", "blend: multiply", "unknown blend mode"},
		{"zero area", "stars: {areaPerStar: 0}", "areaPerStar"},
		{"inverted range", "stars: {radius: {min: 2, max: 1}}", "stars.radius"},
		{"chance above one", "meteors: {spawnChance: 1.5}", "spawnChance"},
		{"no decay", "meteors: {decay: 0}", "decay"},
		{"negative margin", "meteors: {margin: -1}", "meteors.margin"},
		{"no particles", "bursts: {particles: 0}", "particles"},
		{"bad fade", "bursts: {fade: wobble}", "unknown easing"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestValidateReportsAllProblems(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Stars.AreaPerStar = -1
	cfg.Bursts.TerminalAge = 0
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"areaPerStar", "terminalAge"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sky.yaml")
	if err := os.WriteFile(path, []byte("meteors:\n  spawnChance: 0.02\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "spawnChance", cfg.Meteors.SpawnChance, 0.02)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil || !strings.Contains(err.Error(), "read config") {
		t.Errorf("err = %v, want read config error", err)
	}
}

func TestEaseByName(t *testing.T) {
	for _, name := range []string{"", "linear", "Linear", "in_quad", "out-cubic", "InOutSine"} {
		if _, err := EaseByName(name); err != nil {
			t.Errorf("EaseByName(%q): %v", name, err)
		}
	}
	for _, name := range []string{"", "linear", "LINEAR"} {
		if fn, _ := EaseByName(name); fn != nil {
			t.Errorf("EaseByName(%q) should be nil (exact linear)", name)
		}
	}
	if _, err := EaseByName("elastic-bounce"); err == nil {
		t.Error("expected error for unknown easing")
	}
}
