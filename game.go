package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/skyrunner/config"
	"github.com/milk9111/skyrunner/player"
	"github.com/milk9111/skyrunner/prefabs"
	"github.com/milk9111/skyrunner/render"
	"github.com/milk9111/skyrunner/scoreboard"
	"github.com/milk9111/skyrunner/session"
	"github.com/rs/zerolog"
)

type Game struct {
	log      zerolog.Logger
	settings config.Settings

	session *session.Session
	screen  *render.Screen
	board   *scoreboard.Store
	watcher *prefabs.Watcher
	build   prefabs.BuildOptions

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI
	overUI  *ebitenui.UI
}

func NewGame(settings config.Settings, log zerolog.Logger, autoScroll float64) (*Game, error) {
	g := &Game{
		log:      log,
		settings: settings,
		build:    prefabs.BuildOptions{Images: render.LevelImage, Logger: log},
	}

	setup, err := prefabs.LoadSetup(settings.Level.Spec, g.build)
	if err != nil {
		return nil, err
	}

	if settings.Scoreboard.Enabled {
		board, err := scoreboard.Open(settings.Scoreboard.Path, log)
		if err != nil {
			// runs still play without history
			log.Warn().Err(err).Msg("scoreboard disabled")
		} else {
			g.board = board
		}
	}

	if settings.Prefabs.Watch {
		w, err := prefabs.NewWatcher(log, "prefabs", "prefabs/scripts")
		if err != nil {
			log.Warn().Err(err).Msg("prefab hot reload disabled")
		} else {
			g.watcher = w
		}
	}

	g.session = session.New(session.Options{
		Settings:   settings,
		Setup:      setup,
		Logger:     log,
		Scoreboard: g.board,
		Source:     "game",
		AutoScroll: autoScroll,
	})

	w, h := settings.Screen.Width, settings.Screen.Height
	g.pauseUI = newMenuUI("Paused", w, h,
		menuButton{Label: "Resume", OnClick: func() { g.paused = false }},
		menuButton{Label: "Restart", OnClick: g.restart},
		menuButton{Label: "Quit", OnClick: func() { g.quit = true }},
	)
	g.overUI = newMenuUI("Game Over", w, h,
		menuButton{Label: "Restart", OnClick: g.restart},
		menuButton{Label: "Quit", OnClick: func() { g.quit = true }},
	)
	return g, nil
}

func (g *Game) restart() {
	g.paused = false
	g.session.Restart()
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.reloadPrefabs()

	if g.session.Over() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) || inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
			g.restart()
			return nil
		}
		g.overUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	g.session.Step(player.PollInput(), 1000/float64(ebiten.TPS()))
	return nil
}

// reloadPrefabs rebuilds the level when the watcher saw an edit. A broken
// file keeps the current level.
func (g *Game) reloadPrefabs() {
	if g.watcher == nil {
		return
	}
	changed := g.watcher.Drain()
	if len(changed) == 0 {
		return
	}
	setup, err := prefabs.LoadSetup(g.settings.Level.Spec, g.build)
	if err != nil {
		g.log.Error().Err(err).Strs("files", changed).Msg("prefab reload failed")
		return
	}
	g.session.Reload(setup)
	g.log.Info().Strs("files", changed).Msg("prefabs reloaded")
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.screen == nil {
		g.screen = render.NewScreen(screen)
	}
	g.screen.Target = screen
	g.session.Render(g.screen)

	lvl := g.session.Level
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Score: %d    Distance: %.0f    Scene: %d    FPS: %.2f",
		lvl.Score(), lvl.TotalDistance(), lvl.CurrentSceneIndex(), ebiten.ActualFPS()))

	switch {
	case g.session.Over():
		g.overUI.Draw(screen)
	case g.paused:
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.settings.Screen.Width, g.settings.Screen.Height
}

func (g *Game) Close() {
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			g.log.Warn().Err(err).Msg("closing prefab watcher")
		}
	}
	if g.board != nil {
		if err := g.board.Close(); err != nil {
			g.log.Warn().Err(err).Msg("closing scoreboard")
		}
	}
}
