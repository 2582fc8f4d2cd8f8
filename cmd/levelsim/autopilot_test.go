package main

import (
	"testing"

	"github.com/milk9111/skyrunner/config"
	"github.com/milk9111/skyrunner/level"
	"github.com/milk9111/skyrunner/player"
	"github.com/milk9111/skyrunner/session"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simSettings() config.Settings {
	return config.Settings{
		Screen: config.ScreenConfig{Width: 800, Height: 450},
		Level:  config.LevelConfig{BlockSize: 32, SceneChangeDistance: 2400, Seed: 5, Spec: "scenes.yaml"},
		Player: config.PlayerConfig{Speed: 5},
	}
}

func TestGroundAt(t *testing.T) {
	ground := level.NewBasePlatform(0, 450, 320, 32)
	ledge := level.NewFloatingPlatform(400, 200, 128, 32)
	platforms := []*level.Platform{ground, ledge}

	assert.True(t, groundAt(platforms, 100, 300))
	assert.False(t, groundAt(platforms, 350, 300), "gap between ground and ledge")
	assert.True(t, groundAt(platforms, 450, 150))
	assert.False(t, groundAt(platforms, 450, 420), "ledge is above the feet")
}

func TestEnemyAhead(t *testing.T) {
	pl := player.New(100, 300)
	near := level.NewEnemy("test", pl.Right()+50, 310, 20, 20, nil)
	behind := level.NewEnemy("test", 10, 310, 20, 20, nil)
	high := level.NewEnemy("test", pl.Right()+50, 100, 20, 20, nil)

	assert.True(t, enemyAhead([]*level.Enemy{near}, pl))
	assert.False(t, enemyAhead([]*level.Enemy{behind, high}, pl))
}

func TestSinking(t *testing.T) {
	pm := level.NewPlatformManager(32, 800, 450, level.NewRand(1))
	falling := level.NewFallingPlatform(0, 300, 32)
	floating := level.NewFloatingPlatform(200, 300, 128, 32)
	pm.AddPlatform(falling)
	pm.AddPlatform(floating)

	pl := player.New(0, 0)
	pl.CurrentPlatform = uint64(falling.ID)
	assert.False(t, sinking(pm, pl), "not moving yet")

	falling.Osc.VelocityY = 2
	assert.True(t, sinking(pm, pl))

	falling.Osc.VelocityY = -2
	assert.False(t, sinking(pm, pl), "rising")

	pl.CurrentPlatform = uint64(floating.ID)
	assert.False(t, sinking(pm, pl))

	pl.CurrentPlatform = 0
	assert.False(t, sinking(pm, pl))
}

func TestAutopilotReleasesJump(t *testing.T) {
	sess := session.New(session.Options{Settings: simSettings(), Logger: zerolog.Nop()})
	pilot := newAutopilot()
	pl := sess.Player
	pl.Grounded = true
	// far past the generated terrain
	pl.Pos.X = 1e6

	first := pilot.Input(sess)
	second := pilot.Input(sess)
	assert.True(t, first.Right)
	assert.True(t, first.Jump)
	assert.False(t, second.Jump)
}

func TestRunSimulation(t *testing.T) {
	settings := simSettings()
	settings.Scoreboard.Path = ""

	require.NoError(t, run(settings, zerolog.Nop(), 600, 2, true))
}

func TestSimulateAdvances(t *testing.T) {
	sess := session.New(session.Options{Settings: simSettings(), Logger: zerolog.Nop()})

	simulate(sess, newAutopilot(), 300)
	assert.True(t, sess.Over())
	assert.LessOrEqual(t, sess.Frames(), 300)
	assert.Greater(t, sess.LastRun().Distance, 400.0)
}
