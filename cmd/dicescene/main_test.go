package main

import (
	"DiceScene/internal/config"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTunablesFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Spin.Decay = 0.5
	cfg.Sway.Frequency = 0.002

	got := tunables(cfg)
	assert.Equal(t, float32(0.5), got.Spin.Decay)
	assert.Equal(t, cfg.Spin.Threshold, got.Spin.Threshold)
	assert.Equal(t, cfg.Spin.MaxSpeed, got.Spin.MaxSpeed)
	assert.Equal(t, cfg.Sway.Amplitude, got.Sway.Amplitude)
	assert.Equal(t, 0.002, got.Sway.Frequency)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	path := t.TempDir() + "/bad.toml"
	assert.NoError(t, writeFile(path, "[spin]\ndecay = 1.5\n"))
	err := run(path)
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}
