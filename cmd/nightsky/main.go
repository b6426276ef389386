// Command nightsky shows the animated star, meteor and click-burst sky in a
// window, or in the terminal with -term.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/nightsky"
	"github.com/phanxgames/nightsky/term"
)

func main() {
	var (
		configPath = flag.String("config", "", "YAML config file (defaults built in)")
		seed       = flag.Uint64("seed", 0, "random seed; 0 picks one")
		width      = flag.Int("width", 800, "window width")
		height     = flag.Int("height", 600, "window height")
		useTerm    = flag.Bool("term", false, "render in the terminal instead of a window")
		debug      = flag.Bool("debug", false, "log per-frame stats")
		showFPS    = flag.Bool("fps", false, "show the FPS overlay")
		scriptPath = flag.String("script", "", "JSON test script to drive the window")
		shotDir    = flag.String("screenshots", "screenshots", "directory for script screenshots")
		logPath    = flag.String("log", "", "log file; in -term mode logs are dropped unless set")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger, closeLog, err := newLogger(*logPath, level, *useTerm)
	if err != nil {
		fmt.Fprintf(os.Stderr, "nightsky: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}

	if *useTerm {
		err = runTerminal(cfg, *debug, logger)
	} else {
		err = runWindow(cfg, *width, *height, *debug, *showFPS, *scriptPath, *shotDir, logger)
	}
	if err != nil {
		slog.Error("nightsky exited", "error", err)
		closeLog()
		os.Exit(1)
	}
}

// newLogger logs to path when given, otherwise to stderr. The terminal host
// owns the tty, so without a path its logs are discarded.
func newLogger(path string, level slog.Level, terminal bool) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: level}
	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		return slog.New(slog.NewTextHandler(f, opts)), func() { f.Close() }, nil
	case terminal:
		return slog.New(slog.DiscardHandler), func() {}, nil
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, opts)), func() {}, nil
	}
}

func loadConfig(path string) (nightsky.Config, error) {
	if path == "" {
		return nightsky.DefaultConfig(), nil
	}
	return nightsky.LoadConfig(path)
}

func runWindow(cfg nightsky.Config, w, h int, debug, showFPS bool, scriptPath, shotDir string, logger *slog.Logger) error {
	var runner *nightsky.TestRunner
	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		runner, err = nightsky.LoadTestScript(data)
		if err != nil {
			return err
		}
	}

	return nightsky.Run(nightsky.RunConfig{
		Title:         "nightsky",
		Width:         w,
		Height:        h,
		Config:        &cfg,
		Background:    nightsky.Color{R: 0.047, G: 0.039, B: 0.035, A: 1},
		ShowFPS:       showFPS,
		Debug:         debug,
		Script:        runner,
		ScreenshotDir: shotDir,
		Logger:        logger,
	})
}

func runTerminal(cfg nightsky.Config, debug bool, logger *slog.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer screen.Fini()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	host := term.New(screen, term.Options{
		Config: cfg,
		Debug:  debug,
		Logger: logger,
	})
	return host.Run(ctx)
}
