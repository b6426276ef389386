package nightsky

import (
	"log/slog"
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestNewBurstParticles(t *testing.T) {
	cfg := DefaultConfig().Bursts
	b := newBurst(100, 100, cfg, NewRand(11))

	if len(b.Particles) != 8 {
		t.Fatalf("particles = %d, want 8", len(b.Particles))
	}
	if b.Age != 0 {
		t.Errorf("age = %d, want 0", b.Age)
	}
	for i, p := range b.Particles {
		speed := math.Hypot(p.VX, p.VY)
		if speed < 1-epsilon || speed > 3+epsilon {
			t.Errorf("particle %d speed = %v, want [1, 3]", i, speed)
		}
		want := 2 * math.Pi * float64(i) / 8
		assertNear(t, "cos", p.VX/speed, math.Cos(want))
		assertNear(t, "sin", p.VY/speed, math.Sin(want))
		if p.Size < 0.5 || p.Size > 2 {
			t.Errorf("particle %d size = %v, want [0.5, 2]", i, p.Size)
		}
	}
}

func TestBurstParticlePosition(t *testing.T) {
	b := Burst{
		X: 40, Y: -10,
		Particles: []BurstParticle{{VX: 1.5, VY: 0}, {VX: -2, VY: 0.25}, {VX: 0, VY: -3}},
	}
	for age := 0; age <= 60; age++ {
		b.Age = age
		for i, p := range b.Particles {
			pos := b.ParticlePos(i)
			assertNear(t, "x", pos.X, 40+p.VX*float64(age))
			assertNear(t, "y", pos.Y, -10+p.VY*float64(age))
		}
	}
}

func TestBurstOpacity(t *testing.T) {
	tests := []struct {
		age  int
		want float64
	}{
		{0, 1},
		{10, 0.8},
		{25, 0.5},
		{49, 0.02},
		{50, 0},
		{51, 0},
	}
	for _, tt := range tests {
		b := Burst{Age: tt.age}
		assertNear(t, "opacity", b.Opacity(50, ease.Linear), tt.want)
	}
}

func TestBurstOpacityLinearExact(t *testing.T) {
	for age := 0; age <= 50; age++ {
		want := 1 - float64(age)/float64(50)
		if got := (Burst{Age: age}).Opacity(50, nil); got != want {
			t.Errorf("opacity at %d = %v, want exactly %v", age, got, want)
		}
	}
	if got := (Burst{Age: 70}).Opacity(50, nil); got != 0 {
		t.Errorf("opacity past terminal age = %v, want 0", got)
	}
}

func TestNewBurstNegativeParticles(t *testing.T) {
	cfg := DefaultConfig().Bursts
	cfg.Particles = -3
	b := newBurst(10, 10, cfg, NewRand(1))
	if len(b.Particles) != 0 {
		t.Errorf("particles = %d, want 0", len(b.Particles))
	}
}

func TestEngineClickWithNegativeParticles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 1
	cfg.Meteors.SpawnChance = 0
	cfg.Bursts.Particles = -1
	surf := newRecordingSurface(200, 200)
	sched := &ManualScheduler{}
	e := NewEngine(surf, sched, cfg)
	e.SetLogger(slog.New(slog.DiscardHandler))
	e.Start()

	e.Click(50, 50)
	sched.Step(testNow)
	if bursts := e.Bursts(); len(bursts) != 1 || len(bursts[0].Particles) != 0 {
		t.Errorf("bursts = %+v, want one empty burst", bursts)
	}
}

func TestBurstOpacityEasing(t *testing.T) {
	for _, name := range []string{"inquad", "outcubic", "inoutsine", "outexpo"} {
		fn, err := EaseByName(name)
		if err != nil {
			t.Fatal(err)
		}
		assertNear(t, name+" at 0", Burst{Age: 0}.Opacity(50, fn), 1)
		assertNear(t, name+" at 50", Burst{Age: 50}.Opacity(50, fn), 0)
		for age := 0; age <= 60; age++ {
			o := Burst{Age: age}.Opacity(50, fn)
			if o < 0 || o > 1 {
				t.Fatalf("%s opacity at %d = %v, want [0, 1]", name, age, o)
			}
		}
	}
}

func TestUpdateBurstsTerminalAge(t *testing.T) {
	cfg := DefaultConfig().Bursts
	surf := newRecordingSurface(800, 600)
	bursts := []Burst{newBurst(100, 100, cfg, NewRand(1))}

	for frame := 1; frame <= 50; frame++ {
		var removed int
		bursts, removed = updateBursts(surf, bursts, cfg, ease.Linear)
		if len(bursts) != 1 || removed != 0 {
			t.Fatalf("frame %d: burst removed early (age %d)", frame, frame)
		}
		if bursts[0].Age != frame {
			t.Fatalf("frame %d: age = %d", frame, bursts[0].Age)
		}
	}
	assertNear(t, "opacity at 50", bursts[0].Opacity(cfg.TerminalAge, ease.Linear), 0)

	bursts, removed := updateBursts(surf, bursts, cfg, ease.Linear)
	if len(bursts) != 0 || removed != 1 {
		t.Errorf("after frame 51: live=%d removed=%d, want 0 and 1", len(bursts), removed)
	}
}

func TestBurstDraw(t *testing.T) {
	cfg := DefaultConfig().Bursts
	surf := newRecordingSurface(800, 600)
	b := newBurst(10, 20, cfg, NewRand(2))
	b.Age = 10

	b.draw(surf, cfg, ease.Linear)

	if surf.count(opStroke) != 1 || surf.count(opFill) != 8 {
		t.Fatalf("strokes=%d fills=%d, want 1 and 8", surf.count(opStroke), surf.count(opFill))
	}
	ring := surf.ops[0]
	assertNear(t, "ring radius", ring.r, 15)
	assertNear(t, "ring width", ring.width, 1)
	assertNear(t, "ring alpha", ring.color.A, 0.8*0.5)
	for i, op := range surf.ops[1:] {
		pos := b.ParticlePos(i)
		assertNear(t, "particle x", op.x, pos.X)
		assertNear(t, "particle y", op.y, pos.Y)
		assertNear(t, "particle alpha", op.color.A, 0.8*0.8)
	}
}
