package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, 800, s.Screen.Width)
	assert.Equal(t, 450, s.Screen.Height)
	assert.Equal(t, 32.0, s.Level.BlockSize)
	assert.Equal(t, 2400.0, s.Level.SceneChangeDistance)
	assert.Equal(t, int64(0), s.Level.Seed)
	assert.Equal(t, "scenes.yaml", s.Level.Spec)
	assert.Equal(t, 5.0, s.Player.Speed)
	assert.Equal(t, "info", s.Log.Level)
	assert.False(t, s.Log.JSON)
	assert.True(t, s.Scoreboard.Enabled)
	assert.Equal(t, "skyrunner.db", s.Scoreboard.Path)
	assert.False(t, s.Prefabs.Watch)
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := "screen:\n  width: 1280\nlevel:\n  seed: 42\nlog:\n  level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skyrunner.yaml"), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	s, err := Get()
	require.NoError(t, err)
	assert.Equal(t, 1280, s.Screen.Width)
	assert.Equal(t, 450, s.Screen.Height, "unset keys keep their defaults")
	assert.Equal(t, "debug", s.Log.Level)
	assert.Equal(t, int64(42), s.Level.Seed)
}

func TestLoad_BadFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skyrunner.yaml"), []byte("screen: [\n"), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("SKYRUNNER_PREFABS_WATCH", "true")
	t.Setenv("SKYRUNNER_SCOREBOARD_PATH", "/tmp/runs.db")

	require.NoError(t, Load(t.TempDir()))

	s, err := Get()
	require.NoError(t, err)
	assert.True(t, s.Prefabs.Watch)
	assert.Equal(t, "/tmp/runs.db", s.Scoreboard.Path)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zerolog.Disabled, ParseLevel("off"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("nonsense"))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(LogConfig{Level: "warn", JSON: true}, &buf)

	log.Info().Msg("hidden")
	log.Warn().Str("scene", "green").Msg("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"scene":"green"`)
}
