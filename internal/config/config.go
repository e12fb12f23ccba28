package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/jorgeparavicini/lazycloud/internal/theme"
)

// Config holds the persisted user settings.
type Config struct {
	Theme       string `toml:"theme"`
	LastContext string `toml:"last_context"`

	// Keybindings maps layer name to action name to key string, e.g.
	// Keybindings["global"]["quit"] = "ctrl+q". Only overrides are
	// stored; unlisted actions keep their defaults.
	Keybindings map[string]map[string]string `toml:"keybindings"`
}

const (
	appDir     = "lazycloud"
	configFile = "config.toml"
)

// Default returns the compiled-in settings.
func Default() Config {
	return Config{Theme: theme.DefaultName}
}

// Dir returns the lazycloud config directory under the platform config
// root.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configFile), nil
}

// Load reads the config at path. A missing or unreadable file yields
// the defaults; settings persistence must never block startup.
func Load(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}

	bytes, err := os.ReadFile(path)
	if err != nil {
		return Default()
	}
	if err := toml.Unmarshal(bytes, &cfg); err != nil {
		return Default()
	}
	if cfg.Theme == "" {
		cfg.Theme = theme.DefaultName
	}
	return cfg
}

// Store writes settings changes back to disk. It keeps the full config
// in memory so partial updates preserve the other fields, including
// keybinding overrides. The config file is only touched from the event
// loop, so Store does no locking.
type Store struct {
	path string
	cfg  Config
}

// NewStore wraps the loaded config for persistence at path.
func NewStore(path string, cfg Config) *Store {
	return &Store{path: path, cfg: cfg}
}

// Path returns the file the store writes to.
func (s *Store) Path() string { return s.path }

// SaveTheme persists the selected theme name.
func (s *Store) SaveTheme(name string) error {
	s.cfg.Theme = name
	return s.write()
}

// SaveLastContext persists the most recently selected context.
func (s *Store) SaveLastContext(name string) error {
	s.cfg.LastContext = name
	return s.write()
}

func (s *Store) write() error {
	if s.path == "" {
		return errors.New("no config path")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	bytes, err := toml.Marshal(s.cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(s.path, bytes, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
