// Package config holds the settings of an exsub run, loaded from an optional
// YAML file and overridden by the environment and the command line.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Input formats.
const (
	FormatAuto   = "auto"
	FormatNewick = "newick"
	FormatNexus  = "nexus"
)

// ErrInvalid is returned by Validate.
var ErrInvalid = errors.New("invalid configuration")

// Config is the configuration of a single run.
type Config struct {
	// Minimum summed support for a clade to delimit a species.
	MinSupport int `yaml:"min_support"`

	// Input format: auto, newick or nexus.
	Format string `yaml:"format"`

	// Number of trees processed concurrently during collection.
	Workers int `yaml:"workers"`

	// Reject internal nodes without a support label.
	Strict bool `yaml:"strict"`

	// Path of the YAML report of retained clades. Empty disables it.
	Report string `yaml:"report"`

	// Log level: debug, info, warn or error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing else is given.
func Default() *Config {
	return &Config{
		MinSupport: 1,
		Format:     FormatAuto,
		Workers:    runtime.NumCPU(),
		LogLevel:   "info",
	}
}

// Load reads the YAML file at `path` over the defaults. Unknown keys are an
// error. Environment overrides are applied afterwards.
func Load(path string) (*Config, error) {
	cfg := Default()
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	defer f.Close()

	if err := cfg.decode(f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv returns the defaults with environment overrides applied.
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decode(r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	return dec.Decode(c)
}

// applyEnvOverrides reads EXSUB_MIN_SUPPORT, EXSUB_WORKERS and
// EXSUB_LOG_LEVEL.
func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("EXSUB_MIN_SUPPORT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EXSUB_MIN_SUPPORT: %w", err)
		}
		c.MinSupport = n
	}
	if v := os.Getenv("EXSUB_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("EXSUB_WORKERS: %w", err)
		}
		c.Workers = n
	}
	if v := os.Getenv("EXSUB_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.MinSupport < 0 {
		return fmt.Errorf("%w: min_support must not be negative, got %d",
			ErrInvalid, c.MinSupport)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d",
			ErrInvalid, c.Workers)
	}
	switch strings.ToLower(c.Format) {
	case FormatAuto, FormatNewick, FormatNexus:
	default:
		return fmt.Errorf("%w: unknown format %q", ErrInvalid, c.Format)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: unknown log level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}
