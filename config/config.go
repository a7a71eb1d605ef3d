package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix marks environment variables that override the config file.
const EnvPrefix = "PLAYGROUND_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (PLAYGROUND_*). A missing file is not an
// error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	// PLAYGROUND_STORE_PATH -> store_path, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.DebounceMS < 0 {
		return fmt.Errorf("debounce_ms must be non-negative")
	}
	if c.RefreshDelayMS < 0 {
		return fmt.Errorf("refresh_delay_ms must be non-negative")
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// Debounce is the preview settle time for script edits.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMS) * time.Millisecond
}

// RefreshDelay is the wait before re-laying out a resized editor.
func (c *Config) RefreshDelay() time.Duration {
	return time.Duration(c.RefreshDelayMS) * time.Millisecond
}

// IdleTimeout is how long a session outlives its last browser. Zero or less
// keeps sessions until they are killed.
func (c *Config) IdleTimeout() time.Duration {
	if c.IdleTimeoutS <= 0 {
		return -1
	}
	return time.Duration(c.IdleTimeoutS) * time.Second
}

// NewLogger builds the process logger: human-readable in dev mode, JSON
// otherwise.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	zc := zap.NewProductionConfig()
	if c.Dev {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}
