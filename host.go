package nightsky

import (
	"log/slog"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title         string
	Width, Height int

	// Config is the engine configuration. Zero value means DefaultConfig.
	Config *Config

	// Background is the content the layer is composited over.
	Background Color

	// ShowFPS draws an FPS/TPS and entity-count overlay.
	ShowFPS bool

	// Debug logs per-frame stats.
	Debug bool

	// Script, when set, drives the engine from a JSON test script and ends
	// the run once the script is done.
	Script *TestRunner

	// ScreenshotDir receives PNG captures. Defaults to "screenshots".
	ScreenshotDir string

	Logger *slog.Logger
}

// Run opens a resizable window and animates the sky until it is closed.
func Run(rc RunConfig) error {
	g := newGame(rc)

	ebiten.SetWindowSize(rc.Width, rc.Height)
	ebiten.SetWindowTitle(rc.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// Frames follow the display refresh, one engine frame per Update.
	ebiten.SetTPS(ebiten.SyncWithFPS)

	g.engine.Start()
	defer g.engine.Stop()

	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		return err
	}
	return nil
}

// game implements ebiten.Game around an Engine. The engine draws into an
// offscreen layer during Update; Draw composites that layer over the
// background with the configured blend mode.
type game struct {
	engine    *Engine
	sched     *ManualScheduler
	surface   *ImageSurface
	pointer   *PointerTracker
	overlay   *statsOverlay
	log       *slog.Logger
	bg        Color
	blend     ebiten.Blend
	script    *TestRunner
	shotDir   string
	wantW     int
	wantH     int
	seenW     int // last window size forwarded to the engine
	seenH     int
	layerW    int // last layer size the window was matched to
	layerH    int
	finishing bool
}

func newGame(rc RunConfig) *game {
	cfg := DefaultConfig()
	if rc.Config != nil {
		cfg = *rc.Config
	}
	if rc.Width <= 0 {
		rc.Width = 800
	}
	if rc.Height <= 0 {
		rc.Height = 600
	}
	logger := rc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	dir := rc.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}

	sched := &ManualScheduler{}
	surface := NewImageSurface(ebiten.NewImage(rc.Width, rc.Height))
	e := NewEngine(surface, sched, cfg)
	e.SetLogger(logger)
	e.SetDebugMode(rc.Debug)
	if rc.Script != nil {
		e.SetTestRunner(rc.Script)
	}

	g := &game{
		engine:  e,
		sched:   sched,
		surface: surface,
		pointer: NewPointerTracker(cfg.Bursts.DragDeadZone),
		log:     logger,
		bg:      rc.Background,
		blend:   cfg.Blend.EbitenBlend(),
		script:  rc.Script,
		shotDir: dir,
		wantW:   rc.Width,
		wantH:   rc.Height,
		seenW:   rc.Width,
		seenH:   rc.Height,
		layerW:  rc.Width,
		layerH:  rc.Height,
	}
	if rc.ShowFPS {
		g.overlay = newStatsOverlay()
	}
	return g
}

func (g *game) Update() error {
	if g.finishing {
		return ebiten.Termination
	}
	g.applyLayout()

	mx, my := ebiten.CursorPosition()
	x, y := float64(mx), float64(my)
	if g.pointer.Update(x, y, ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)) {
		g.engine.Click(x, y)
	}

	g.sched.Step(time.Now())
	g.followLayer()

	if g.script != nil && g.script.Done() {
		// Let Draw flush any screenshot queued by the final step first.
		g.finishing = true
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg.RGBA())
	screen.DrawImage(g.surface.Image(), &ebiten.DrawImageOptions{Blend: g.blend})
	if g.overlay != nil {
		g.overlay.draw(screen, g.engine.Stats())
	}

	labels := g.engine.TakeScreenshots()
	paths, err := flushScreenshots(g.shotDir, labels, screen)
	if err != nil {
		g.log.Error("nightsky: screenshot failed", "error", err)
	}
	for _, p := range paths {
		g.log.Info("nightsky: screenshot written", "path", p)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.wantW, g.wantH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// applyLayout forwards a window size change to the engine, which resizes the
// layer at the start of its next frame.
func (g *game) applyLayout() {
	if g.wantW == g.seenW && g.wantH == g.seenH || g.wantW <= 0 || g.wantH <= 0 {
		return
	}
	g.seenW, g.seenH = g.wantW, g.wantH
	g.engine.Resize(g.wantW, g.wantH)
	g.log.Info("nightsky: window resized", "width", g.wantW, "height", g.wantH)
}

// followLayer resizes the window when the layer was resized from inside the
// engine, e.g. by a scripted resize step.
func (g *game) followLayer() {
	w, h := g.surface.Size()
	if w == g.layerW && h == g.layerH {
		return
	}
	g.layerW, g.layerH = w, h
	if w != g.seenW || h != g.seenH {
		ebiten.SetWindowSize(w, h)
		g.log.Info("nightsky: window follows layer", "width", w, "height", h)
	}
}
