package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsPrefabEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(zerolog.Nop(), dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	spec := filepath.Join(dir, "scenes.yaml")
	require.NoError(t, os.WriteFile(spec, []byte("scenes: []\n"), 0o644))

	var changed []string
	require.Eventually(t, func() bool {
		changed = append(changed, w.Drain()...)
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)

	assert.Contains(t, changed, spec)
	assert.NotContains(t, changed, filepath.Join(dir, "notes.txt"))
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(zerolog.Nop(), t.TempDir())
	require.NoError(t, err)

	require.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	assert.Empty(t, w.Drain())
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(zerolog.Nop(), filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestPrefabFileFilters(t *testing.T) {
	assert.True(t, isSpecFile("a/scenes.YAML"))
	assert.True(t, isSpecFile("b.yml"))
	assert.False(t, isSpecFile("c.json"))
	assert.True(t, isScriptFile("d.tengo"))
	assert.False(t, isScriptFile("e.lua"))
}
