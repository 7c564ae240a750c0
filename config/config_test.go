package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "exsub.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 1, cfg.MinSupport)
	assert.Equal(t, FormatAuto, cfg.Format)
	assert.GreaterOrEqual(t, cfg.Workers, 1)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
min_support: 3
format: nexus
workers: 2
strict: true
report: species.yaml
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.MinSupport)
	assert.Equal(t, FormatNexus, cfg.Format)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.Strict)
	assert.Equal(t, "species.yaml", cfg.Report)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, "\n"))
	require.NoError(t, err)
	assert.Equal(t, Default().MinSupport, cfg.MinSupport)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "min_suport: 3\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EXSUB_MIN_SUPPORT", "7")
	t.Setenv("EXSUB_WORKERS", "3")
	t.Setenv("EXSUB_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, "min_support: 2\n"))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.MinSupport)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("EXSUB_WORKERS", "many")
	_, err = FromEnv()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"negative min support", func(c *Config) { c.MinSupport = -1 }},
		{"no workers", func(c *Config) { c.Workers = 0 }},
		{"unknown format", func(c *Config) { c.Format = "phylip" }},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}
