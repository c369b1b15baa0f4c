// Package config loads the corekeeper configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/iudanet/corekeeper/internal/authstore"
)

// Переменные окружения, переопределяющие файл
const (
	EnvDataDir  = "COREKEEPER_DATA_DIR"
	EnvLogLevel = "COREKEEPER_LOG_LEVEL"
)

// Имена файлов внутри DataDir
const (
	StateFile = "corekeeper.db"
	AuditFile = "audit.db"
)

// Config - настройки устройства
type Config struct {
	DataDir      string   `toml:"data_dir"`
	LogLevel     string   `toml:"log_level"`
	LogFormat    string   `toml:"log_format"`
	PendingLimit int      `toml:"pending_limit"`
	PendingTTL   Duration `toml:"pending_ttl"`
}

// Duration is a time.Duration written as "10m" in TOML.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		DataDir:      defaultDataDir(),
		LogLevel:     "info",
		LogFormat:    "text",
		PendingLimit: authstore.DefaultMaxPending,
		PendingTTL:   Duration{authstore.DefaultPendingTTL},
	}
}

func defaultDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".corekeeper"
	}
	return filepath.Join(dir, "corekeeper")
}

// Load reads path on top of the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		_, err := toml.DecodeFile(path, cfg)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.ApplyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies COREKEEPER_* environment variables.
func (c *Config) ApplyEnvOverrides() {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data_dir cannot be empty")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("unknown log_format %q", c.LogFormat)
	}
	if c.PendingLimit <= 0 {
		return fmt.Errorf("pending_limit must be positive, got %d", c.PendingLimit)
	}
	if c.PendingTTL.Duration < 0 {
		return fmt.Errorf("pending_ttl cannot be negative")
	}
	return nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

// StatePath is the bbolt file with cores, sealed key and metadata.
func (c *Config) StatePath() string {
	return filepath.Join(c.DataDir, StateFile)
}

// AuditPath is the sqlite statement audit index.
func (c *Config) AuditPath() string {
	return filepath.Join(c.DataDir, AuditFile)
}
