package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/milk9111/skyrunner/config"
	"github.com/milk9111/skyrunner/prefabs"
	"github.com/milk9111/skyrunner/scoreboard"
	"github.com/milk9111/skyrunner/session"
	"github.com/rs/zerolog"
)

// frameMs is one frame at 60 TPS.
const frameMs = 1000.0 / 60

func main() {
	configDir := flag.String("config", ".", "directory holding skyrunner.yaml")
	frames := flag.Int("frames", 3600, "frames to simulate per run")
	runs := flag.Int("runs", 1, "number of runs")
	seed := flag.Int64("seed", 0, "level seed (0 keeps the configured seed)")
	record := flag.Bool("record", false, "store finished runs in the scoreboard")
	jsonLogs := flag.Bool("json", false, "log as JSON")
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
	if *jsonLogs {
		settings.Log.JSON = true
	}
	log := config.NewLogger(settings.Log, nil)

	if err := run(settings, log, *frames, *runs, *record); err != nil {
		log.Fatal().Err(err).Msg("simulation failed")
	}
}

func run(settings config.Settings, log zerolog.Logger, frames, runs int, record bool) error {
	// headless: layers keep their placeholder colours
	setup, err := prefabs.LoadSetup(settings.Level.Spec, prefabs.BuildOptions{Logger: log})
	if err != nil {
		return err
	}

	var board *scoreboard.Store
	if record {
		board, err = scoreboard.Open(settings.Scoreboard.Path, log)
		if err != nil {
			return err
		}
		defer closeLogged(log, board, "closing scoreboard")
	}

	sess := session.New(session.Options{
		Settings:   settings,
		Setup:      setup,
		Logger:     log,
		Scoreboard: board,
		Source:     "levelsim",
	})
	pilot := newAutopilot()

	for i := 0; i < runs; i++ {
		if i > 0 {
			sess.Restart()
		}
		simulate(sess, pilot, frames)
		r := sess.LastRun()
		log.Info().
			Int("run", i+1).
			Int("frames", sess.Frames()).
			Int("score", r.Score).
			Float64("distance", r.Distance).
			Int("scenes", r.Scenes).
			Msg("simulation finished")
	}

	if board != nil {
		best, ok, err := board.Best()
		if err != nil {
			return err
		}
		if ok {
			log.Info().Int("score", best.Score).Float64("distance", best.Distance).Str("run", best.ID.String()).Msg("best run")
		}
	}
	return nil
}

// simulate steps sess until the player dies or the frame budget runs out.
func simulate(sess *session.Session, pilot *autopilot, frames int) {
	for sess.Frames() < frames && !sess.Over() {
		sess.Step(pilot.Input(sess), frameMs)
	}
	sess.Finish()
}

// closeLogged closes c and logs a failure as a warning.
func closeLogged(log zerolog.Logger, c io.Closer, msg string) {
	if err := c.Close(); err != nil {
		log.Warn().Err(err).Msg(msg)
	}
}
