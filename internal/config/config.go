package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config holds all flow configuration.
type Config struct {
	Root   string       `toml:"root"`
	Ledger LedgerConfig `toml:"ledger"`
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`
	Log    LogConfig    `toml:"log"`
}

type LedgerConfig struct {
	Path    string  `toml:"path"`    // empty: store.DefaultPath()
	Ceiling float64 `toml:"ceiling"` // total score that triggers decay
}

type SearchConfig struct {
	Depth        int     `toml:"depth"`         // listing depth below root
	ProjectScore float64 `toml:"project_score"` // frecency of listed dirs in project mode
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error, silent
}

// Default returns a Config with sensible defaults. Root is $HOME/src when
// the home directory is known.
func Default() Config {
	root := ""
	if home, err := os.UserHomeDir(); err == nil {
		root = filepath.Join(home, "src")
	}
	return Config{
		Root: root,
		Ledger: LedgerConfig{
			Path:    "", // resolved at runtime via store.DefaultPath()
			Ceiling: 9000,
		},
		Search: SearchConfig{
			Depth:        2,
			ProjectScore: 999,
		},
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 37778,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// DefaultPath returns the config file path: $FLOW_CONFIG, or
// $XDG_CONFIG_HOME/flow/config.toml.
func DefaultPath() (string, error) {
	if p := os.Getenv("FLOW_CONFIG"); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get config dir: %w", err)
	}
	return filepath.Join(dir, "flow", "config.toml"), nil
}

// Load reads the TOML file at path over the defaults, then applies the
// environment. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return cfg, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides file values with FLOW_ROOT and FLOW_CACHE.
func (c *Config) ApplyEnv() {
	if v := os.Getenv("FLOW_ROOT"); v != "" {
		c.Root = v
	}
	if v := os.Getenv("FLOW_CACHE"); v != "" {
		c.Ledger.Path = v
	}
}

// Validate rejects values the engine cannot work with.
func (c *Config) Validate() error {
	if c.Search.Depth < 0 {
		return fmt.Errorf("search.depth must be >= 0, got %d", c.Search.Depth)
	}
	if c.Ledger.Ceiling < 0 {
		return fmt.Errorf("ledger.ceiling must be >= 0, got %v", c.Ledger.Ceiling)
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port out of range: %d", c.Server.Port)
	}
	return nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
