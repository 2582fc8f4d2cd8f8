package session

import (
	"image/color"
	"path/filepath"
	"testing"

	"github.com/milk9111/skyrunner/config"
	"github.com/milk9111/skyrunner/level"
	"github.com/milk9111/skyrunner/player"
	"github.com/milk9111/skyrunner/prefabs"
	"github.com/milk9111/skyrunner/scoreboard"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSettings() config.Settings {
	return config.Settings{
		Screen: config.ScreenConfig{Width: 800, Height: 450},
		Level: config.LevelConfig{
			BlockSize:           32,
			SceneChangeDistance: 2400,
			Seed:                99,
		},
		Player: config.PlayerConfig{Speed: 5},
	}
}

type countingSurface struct {
	fills, images int
}

func (c *countingSurface) Size() (float64, float64)                        { return 800, 450 }
func (c *countingSurface) FillRect(_, _, _, _ float64, _ color.Color)      { c.fills++ }
func (c *countingSurface) StrokeRect(_, _, _, _, _ float64, _ color.Color) {}
func (c *countingSurface) Line(_, _, _, _, _ float64, _ color.Color)       {}
func (c *countingSurface) FillCircle(_, _, _ float64, _ color.Color)       {}
func (c *countingSurface) StrokeCircle(_, _, _, _ float64, _ color.Color)  {}
func (c *countingSurface) DrawImage(_ level.Image, _, _, _, _, _ float64)  { c.images++ }

func TestCameraFollowsPlayer(t *testing.T) {
	s := New(Options{Settings: testSettings(), Logger: zerolog.Nop()})
	assert.Equal(t, int64(99), s.Seed())
	assert.Equal(t, 0.0, s.CameraX)

	for i := 0; i < 30; i++ {
		s.Step(player.Input{Right: true}, 16)
	}
	assert.Equal(t, 30, s.Frames())
	assert.Greater(t, s.Player.Pos.X, 800.0/3)
	assert.InDelta(t, s.Player.Pos.X-800.0/3, s.CameraX, 1e-9)
	assert.Greater(t, s.Level.TotalDistance(), 0.0)
}

func TestAutoScroll(t *testing.T) {
	s := New(Options{Settings: testSettings(), Logger: zerolog.Nop(), AutoScroll: 2})

	s.Step(player.Input{}, 16)
	s.Step(player.Input{}, 16)
	assert.Equal(t, 4.0, s.CameraX)
}

func TestDeathEndsRunAndRecords(t *testing.T) {
	store, err := scoreboard.Open(filepath.Join(t.TempDir(), "runs.db"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s := New(Options{Settings: testSettings(), Logger: zerolog.Nop(), Scoreboard: store, Source: "test"})
	for i := 0; i < 10; i++ {
		s.Step(player.Input{Right: true}, 16)
	}
	s.Player.Die()
	s.Step(player.Input{Right: true}, 16)

	require.True(t, s.Over())
	frames := s.Frames()
	s.Step(player.Input{Right: true}, 16)
	assert.Equal(t, frames, s.Frames(), "no frames run after death")

	best, ok, err := store.Best()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, s.LastRun().ID, best.ID)
	assert.Equal(t, int64(99), best.Seed)
	assert.Equal(t, "test", best.Source)
	assert.Greater(t, best.Distance, 0.0)

	s.Restart()
	assert.False(t, s.Over())
	assert.False(t, s.Player.Dead)
	assert.Zero(t, s.Level.TotalDistance())
	assert.Zero(t, s.Frames())
}

func TestReloadUsesSceneFile(t *testing.T) {
	s := New(Options{Settings: testSettings(), Logger: zerolog.Nop()})
	assert.Equal(t, 1, s.Level.SceneManager().SceneCount())

	setup, err := prefabs.LoadSetup(prefabs.DefaultSceneFile, prefabs.BuildOptions{Logger: zerolog.Nop()})
	require.NoError(t, err)
	s.Reload(setup)
	assert.Equal(t, 2, s.Level.SceneManager().SceneCount())
	assert.Zero(t, s.Frames())
}

func TestRenderDrawsLevelAndPlayer(t *testing.T) {
	s := New(Options{Settings: testSettings(), Logger: zerolog.Nop()})
	surf := &countingSurface{}

	s.Render(surf)
	// background clear, terrain fills and the player box
	assert.Greater(t, surf.fills, 2)
}

func TestFinishRecordsOnce(t *testing.T) {
	store, err := scoreboard.Open("", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	s := New(Options{Settings: testSettings(), Logger: zerolog.Nop(), Scoreboard: store})
	s.Step(player.Input{Right: true}, 16)
	s.Finish()
	s.Finish()
	s.Player.Die()
	s.Step(player.Input{}, 16)

	runs, err := store.Recent(10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}
