package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/skyrunner/config"
)

func main() {
	configDir := flag.String("config", ".", "directory holding skyrunner.yaml")
	seed := flag.Int64("seed", 0, "level seed (0 keeps the configured seed)")
	watch := flag.Bool("watch", false, "reload prefabs/ when scene files or scripts change")
	autoScroll := flag.Float64("autoscroll", 0, "scroll the camera at this speed instead of following the player")
	flag.Parse()

	if err := config.Load(*configDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	settings, err := config.Get()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *seed != 0 {
		settings.Level.Seed = *seed
	}
	if *watch {
		settings.Prefabs.Watch = true
	}

	log := config.NewLogger(settings.Log, nil)

	game, err := NewGame(settings, log, *autoScroll)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to start")
	}
	defer game.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(settings.Screen.Width, settings.Screen.Height)
	ebiten.SetWindowTitle("skyrunner")

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Error().Err(err).Msg("game loop exited")
	}
}
