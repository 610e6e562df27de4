// FourPlay - connect four against a minimax or MCTS engine, built with Ebitengine
package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/hailam/fourplay/internal/engine"
	"github.com/hailam/fourplay/internal/storage"
	"github.com/hailam/fourplay/internal/ui"
)

var (
	configPath = flag.String("config", "", "YAML engine config file")
	debug      = flag.Bool("debug", false, "log engine diagnostics")
)

func main() {
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("fourplay stopped", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	cfg, err := engine.LoadConfig(*configPath)
	if err != nil {
		return err
	}

	store, err := storage.OpenDefault()
	if err != nil {
		logger.Warn("storage unavailable, statistics will not be saved", "error", err)
		store = nil
	}

	game := ui.NewGame(ui.Options{Config: cfg, Storage: store, Logger: logger})
	defer game.Close()

	ebiten.SetWindowSize(ui.ScreenWidth, ui.ScreenHeight)
	ebiten.SetWindowTitle("FourPlay")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	return ebiten.RunGame(game)
}
