// Package config loads editor settings from defaults, an optional TOML file,
// an optional .env file and SNAPEDIT_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/Fepozopo/snapedit/pkg/history"
	"github.com/Fepozopo/snapedit/pkg/store"
)

const (
	// BaseConfigFile is read from the working directory when present.
	BaseConfigFile = "snapedit.toml"

	EnvConfigFile   = "SNAPEDIT_CONFIG"
	EnvHistoryDepth = "SNAPEDIT_HISTORY_DEPTH"
	EnvPermissive   = "SNAPEDIT_PERMISSIVE"
	EnvJPEGQuality  = "SNAPEDIT_JPEG_QUALITY"
	EnvPreview      = "SNAPEDIT_PREVIEW"
	EnvLogLevel     = "SNAPEDIT_LOG_LEVEL"
	EnvLogFormat    = "SNAPEDIT_LOG_FORMAT"
	// EnvPreviewBackend keeps the name the preview code has always honoured.
	EnvPreviewBackend = "PREVIEW_BACKEND"
)

// Config is the root configuration.
type Config struct {
	History    HistoryConfig    `toml:"history"`
	Transforms TransformsConfig `toml:"transforms"`
	Codec      CodecConfig      `toml:"codec"`
	Preview    PreviewConfig    `toml:"preview"`
	Logging    LoggingConfig    `toml:"logging"`
}

type HistoryConfig struct {
	MaxDepth int `toml:"max_depth"`
}

type TransformsConfig struct {
	// Permissive turns invalid rotate/flip arguments into no-op copies.
	Permissive bool `toml:"permissive"`
}

type CodecConfig struct {
	JPEGQuality int `toml:"jpeg_quality"`
}

type PreviewConfig struct {
	Enabled bool   `toml:"enabled"`
	Backend string `toml:"backend"`
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		History:    HistoryConfig{MaxDepth: history.DefaultMaxDepth},
		Transforms: TransformsConfig{Permissive: false},
		Codec:      CodecConfig{JPEGQuality: store.DefaultJPEGQuality},
		Preview:    PreviewConfig{Enabled: true},
		Logging:    LoggingConfig{Level: "warn", Format: "text"},
	}
}

// Load builds the configuration. path may be empty, in which case
// SNAPEDIT_CONFIG and then BaseConfigFile are tried; a missing default file is
// not an error, a missing explicit file is.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()
	explicit := path != ""
	if !explicit {
		if p := os.Getenv(EnvConfigFile); p != "" {
			path, explicit = p, true
		} else {
			path = BaseConfigFile
		}
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	if err := cfg.loadEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) loadEnv() error {
	if v := os.Getenv(EnvHistoryDepth); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvHistoryDepth, err)
		}
		c.History.MaxDepth = n
	}
	if v := os.Getenv(EnvPermissive); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPermissive, err)
		}
		c.Transforms.Permissive = b
	}
	if v := os.Getenv(EnvJPEGQuality); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvJPEGQuality, err)
		}
		c.Codec.JPEGQuality = n
	}
	if v := os.Getenv(EnvPreview); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvPreview, err)
		}
		c.Preview.Enabled = b
	}
	if v := os.Getenv(EnvPreviewBackend); v != "" {
		c.Preview.Backend = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	return nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.History.MaxDepth < 1 {
		return fmt.Errorf("history.max_depth must be at least 1, got %d", c.History.MaxDepth)
	}
	if c.Codec.JPEGQuality < 1 || c.Codec.JPEGQuality > 100 {
		return fmt.Errorf("codec.jpeg_quality must be in 1..100, got %d", c.Codec.JPEGQuality)
	}
	c.Preview.Backend = strings.ToLower(c.Preview.Backend)
	switch c.Preview.Backend {
	case "", "kitty", "inline", "chafa":
	default:
		return fmt.Errorf("preview.backend %q is not one of kitty, inline, chafa", c.Preview.Backend)
	}
	c.Logging.Format = strings.ToLower(c.Logging.Format)
	if c.Logging.Format != "text" && c.Logging.Format != "json" {
		return fmt.Errorf("logging.format %q is not text or json", c.Logging.Format)
	}
	return nil
}

// StoreOptions maps the configuration onto store.Options.
func (c *Config) StoreOptions() store.Options {
	return store.Options{Permissive: c.Transforms.Permissive, JPEGQuality: c.Codec.JPEGQuality}
}
