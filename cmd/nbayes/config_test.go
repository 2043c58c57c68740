package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ezoic/nbayes/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nbayes.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
seed: 7
data:
  samples: 30
model:
  alpha: 0.5
alphas: [0.1, 1]
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, uint64(7), cfg.Seed)
	assert.Equal(t, 30, cfg.Data.Samples)
	assert.Equal(t, 0.5, cfg.Model.Alpha)
	assert.Equal(t, []float64{0.1, 1}, cfg.Alphas)

	// Keys absent from the file keep their defaults
	assert.Equal(t, DefaultConfig().Data.Features, cfg.Data.Features)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("data: [unterminated"), 0644))
	_, err = LoadConfig(bad)
	assert.Error(t, err)

	negative := filepath.Join(dir, "negative.yaml")
	require.NoError(t, os.WriteFile(negative, []byte("model:\n  alpha: -1\n"), 0644))
	_, err = LoadConfig(negative)
	assert.True(t, errors.Is(err, errors.ErrInvalidInput))
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"one class", func(c *Config) { c.Data.Classes = 1 }},
		{"fewer features than classes", func(c *Config) { c.Data.Features = 2 }},
		{"no samples", func(c *Config) { c.Data.Samples = 0 }},
		{"empty documents", func(c *Config) { c.Data.DocLength = 0 }},
		{"signal above one", func(c *Config) { c.Data.Signal = 1.5 }},
		{"no test split", func(c *Config) { c.Data.TestFraction = 0 }},
		{"no alphas", func(c *Config) { c.Alphas = nil }},
		{"negative sweep alpha", func(c *Config) { c.Alphas = []float64{1, -2} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			assert.True(t, errors.Is(err, errors.ErrInvalidInput), "got %v", err)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "nbayes.yaml")

	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.Alphas = []float64{0.25, 4}
	require.NoError(t, cfg.SaveConfig(path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
