package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, 80, cfg.RoundSeconds)
	assert.Equal(t, 6, cfg.RoundsPerGame)
	assert.Equal(t, 6, cfg.RevealSeconds)
	assert.Equal(t, 100, cfg.PointsCorrectGuess)
	assert.Equal(t, 50, cfg.PointsDrawingBonus)
	assert.Equal(t, 8, cfg.DefaultMaxPlayers)
	assert.Equal(t, 4, cfg.CodeBytes)
	assert.Equal(t, time.Minute, cfg.SweepInterval)
	assert.Equal(t, 30*time.Minute, cfg.InactivityTimeout)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "round_seconds: 45\nrounds_per_game: 3\nlog_level: debug\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sketchparty.yaml"), []byte(yaml), 0o644))
	t.Chdir(dir)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.RoundSeconds)
	assert.Equal(t, 3, cfg.RoundsPerGame)
	assert.Equal(t, "debug", cfg.LogLevel)
	// Untouched knobs keep their defaults.
	assert.Equal(t, 100, cfg.PointsCorrectGuess)
}
