package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"promptdeck/internal/catalog"
	"promptdeck/internal/nav"
	"promptdeck/internal/store"
)

const fileName = "config.yaml"

// Config is the on-disk configuration. Flags override it, and it overrides
// the built-in defaults.
type Config struct {
	DB      string        `yaml:"db"`
	Actor   string        `yaml:"actor"`
	Format  string        `yaml:"format"`
	Server  ServerConfig  `yaml:"server"`
	Catalog CatalogConfig `yaml:"catalog"`
	Redis   RedisConfig   `yaml:"redis"`
	Logging LoggingConfig `yaml:"logging"`
	TUI     TUIConfig     `yaml:"tui"`
}

type ServerConfig struct {
	Addr             string        `yaml:"addr"`
	AutoAdvanceDelay time.Duration `yaml:"auto_advance_delay"`
	SessionTTL       time.Duration `yaml:"session_ttl"`
	ShutdownTimeout  time.Duration `yaml:"shutdown_timeout"`
}

type CatalogConfig struct {
	PageSize int `yaml:"page_size"`
	// NoPlaceholders shows an empty catalog instead of the sample tasks.
	NoPlaceholders bool `yaml:"no_placeholders"`
}

// RedisConfig enables the shared session store when URL is set.
type RedisConfig struct {
	URL string `yaml:"url"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

type TUIConfig struct {
	// GlamourStyle is a glamour standard style name (dark, light, notty, ...).
	GlamourStyle string `yaml:"glamour_style"`
}

func Default() *Config {
	return &Config{
		Format: "json",
		Server: ServerConfig{
			Addr:             "127.0.0.1:8501",
			AutoAdvanceDelay: nav.DefaultAutoAdvanceDelay,
			SessionTTL:       24 * time.Hour,
			ShutdownTimeout:  5 * time.Second,
		},
		Catalog: CatalogConfig{PageSize: catalog.DefaultPageSize},
		Logging: LoggingConfig{Level: "info", Format: "text"},
		TUI:     TUIConfig{GlamourStyle: "dark"},
	}
}

// DefaultPath is config.yaml next to the default database.
func DefaultPath() (string, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads path over the defaults, then applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := strings.TrimSpace(os.Getenv("PROMPTDECK_DB")); v != "" {
		c.DB = v
	}
	if v := strings.TrimSpace(os.Getenv("PROMPTDECK_ACTOR")); v != "" {
		c.Actor = v
	}
	if v := strings.TrimSpace(os.Getenv("PROMPTDECK_FORMAT")); v != "" {
		c.Format = v
	}
	if v := strings.TrimSpace(os.Getenv("PROMPTDECK_REDIS_URL")); v != "" {
		c.Redis.URL = v
	}
	if v := strings.TrimSpace(os.Getenv("PROMPTDECK_LOG_LEVEL")); v != "" {
		c.Logging.Level = v
	}
	if os.Getenv("DEBUG") != "" {
		c.Logging.Level = "debug"
	}
}

func (c *Config) normalize() error {
	c.Format = strings.ToLower(strings.TrimSpace(c.Format))
	switch c.Format {
	case "":
		c.Format = "json"
	case "json", "text":
	default:
		return fmt.Errorf("invalid format %q (want json or text)", c.Format)
	}
	if c.Catalog.PageSize <= 0 {
		c.Catalog.PageSize = catalog.DefaultPageSize
	}
	if c.Server.AutoAdvanceDelay <= 0 {
		c.Server.AutoAdvanceDelay = nav.DefaultAutoAdvanceDelay
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if strings.TrimSpace(c.Server.Addr) == "" {
		c.Server.Addr = Default().Server.Addr
	}
	return nil
}

// DBPath returns the configured database path, or the default one.
func (c *Config) DBPath() (string, error) {
	if p := strings.TrimSpace(c.DB); p != "" {
		return p, nil
	}
	return store.DefaultPath()
}
