// Package config loads heapctl settings from an optional YAML file and the
// environment.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/joshuapare/fixheap/alloc"
	"github.com/joshuapare/fixheap/internal/logger"
)

const (
	envVarPrefix = "HEAPCTL"
	appName      = "heapctl"
)

// Config holds heapctl settings. Environment variables override the file,
// which overrides Default.
type Config struct {
	Capacity   int    `envconfig:"HEAPCTL_CAPACITY"    yaml:"capacity"`
	FreePolicy string `envconfig:"HEAPCTL_FREE_POLICY" yaml:"freePolicy"`
	LogLevel   string `envconfig:"HEAPCTL_LOG_LEVEL"   yaml:"logLevel"`
	LogFile    string `envconfig:"HEAPCTL_LOG_FILE"    yaml:"logFile"`
}

// Default returns the settings used when neither file nor environment set a
// field.
func Default() Config {
	return Config{
		Capacity:   alloc.DefaultCapacity,
		FreePolicy: alloc.FreeStrict.String(),
		LogLevel:   "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/heapctl.yaml, or the
// HEAPCTL_CONFIG_FILE environment variable when it is set.
func DefaultPath() string {
	if p := os.Getenv(envVarPrefix + "_CONFIG_FILE"); p != "" {
		return p
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, appName+".yaml")
}

// Load reads path if it exists, applies environment overrides and validates
// the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	c := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("reading config file: %w", err)
		default:
			dec := yaml.NewDecoder(bytes.NewReader(data))
			dec.KnownFields(true)
			if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("unmarshaling config file: %w", err)
			}
		}
	}

	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks capacity range, free policy and log level.
func (c *Config) Validate() error {
	if c.Capacity <= alloc.HeaderSize || c.Capacity > alloc.MaxCapacity {
		return fmt.Errorf("config: capacity %d outside (%d, %d]", c.Capacity, alloc.HeaderSize, alloc.MaxCapacity)
	}
	if _, err := alloc.ParseFreePolicy(c.FreePolicy); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// AllocOptions converts the config into allocator options using log.
func (c *Config) AllocOptions(log *slog.Logger) *alloc.Options {
	policy, _ := alloc.ParseFreePolicy(c.FreePolicy)
	return &alloc.Options{FreePolicy: policy, Logger: log}
}

// Level returns the parsed log level.
func (c *Config) Level() slog.Level {
	level, _ := logger.ParseLevel(c.LogLevel)
	return level
}
