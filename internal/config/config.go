// Package config loads the pagebuilder TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Environment overrides.
const (
	EnvDBPassword    = "PAGEBUILDER_DB_PASSWORD"
	EnvStorageDriver = "PAGEBUILDER_STORAGE_DRIVER"
)

// Config is the full configuration file.
type Config struct {
	Storage  Storage  `toml:"storage"`
	Editor   Editor   `toml:"editor"`
	Autosave Autosave `toml:"autosave"`
	Watch    Watch    `toml:"watch"`

	// DataDir anchors relative storage paths. Not read from the file.
	DataDir string `toml:"-"`
}

type Storage struct {
	Driver     string `toml:"driver"`
	Path       string `toml:"path"`
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Database   string `toml:"database"`
	Username   string `toml:"username"`
	Password   string `toml:"password"`
	SSLMode    string `toml:"sslmode"`
	URI        string `toml:"uri"`
	Collection string `toml:"collection"`
}

type Editor struct {
	DefaultSlug   string `toml:"default_slug"`
	DefaultLang   string `toml:"default_lang"`
	MaxHistory    int    `toml:"max_history"`
	RevisionsKept int    `toml:"revisions_kept"`
}

// Autosave holds a robfig/cron schedule such as "@every 30s". Empty disables it.
type Autosave struct {
	Schedule string `toml:"schedule"`
}

// Watch enables reloading the page when another process changes it. The
// JSON store is watched on disk; other drivers are polled every
// PollInterval ("" disables polling).
type Watch struct {
	Enabled      bool   `toml:"enabled"`
	PollInterval string `toml:"poll_interval"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Storage: Storage{Driver: "sqlite"},
		Editor: Editor{
			DefaultSlug:   "home",
			DefaultLang:   "en",
			MaxHistory:    100,
			RevisionsKept: 40,
		},
		Watch:   Watch{Enabled: true, PollInterval: "5s"},
		DataDir: DefaultDataDir(),
	}
}

// DefaultDataDir is ~/.local/share/pagebuilder, or a relative directory when
// the home directory is unknown.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pagebuilder"
	}
	return filepath.Join(home, ".local", "share", "pagebuilder")
}

// DefaultPath is the config file looked up when none is given.
func DefaultPath() string {
	return filepath.Join(DefaultDataDir(), "config.toml")
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvDBPassword); v != "" {
		c.Storage.Password = v
	}
	if v := os.Getenv(EnvStorageDriver); v != "" {
		c.Storage.Driver = v
	}
}

// Validate checks values that would otherwise fail late.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case "", "sqlite", "postgres", "mysql", "mongodb", "json":
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	if c.Editor.MaxHistory < 0 {
		return fmt.Errorf("editor.max_history must not be negative")
	}
	if c.Editor.RevisionsKept < 0 {
		return fmt.Errorf("editor.revisions_kept must not be negative")
	}
	if _, err := c.Watch.Poll(); err != nil {
		return err
	}
	return nil
}

// Poll parses PollInterval. Zero means no polling.
func (w Watch) Poll() (time.Duration, error) {
	if w.PollInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(w.PollInterval)
	if err != nil {
		return 0, fmt.Errorf("watch.poll_interval: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("watch.poll_interval must not be negative")
	}
	return d, nil
}
