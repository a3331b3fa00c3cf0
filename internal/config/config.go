package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dshills/githuntr/internal/match"
)

// Config represents a scan run's configuration. The repository URL and
// output path are per-invocation and never persisted; everything else may be
// defaulted from the config file.
type Config struct {
	RepoURL    string `json:"-"`
	OutputPath string `json:"-"`

	FilenamePattern string `json:"filenamePattern,omitempty"`
	ContentPattern  string `json:"contentPattern,omitempty"`
	Entropy         bool   `json:"entropy"`
	History         bool   `json:"history"`
	MaxCommits      int    `json:"maxCommits"`
	Workers         int    `json:"workers"`
	Format          string `json:"format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Workers: 4,
		Format:  "json",
	}
}

// Compile validates both patterns and returns the compiled matcher. Called
// before any scanning starts so invalid patterns fail fast.
func (c Config) Compile() (*match.Matcher, error) {
	return match.Compile(c.FilenamePattern, c.ContentPattern)
}

// ConfigDir returns the platform-appropriate config directory for githuntr.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "githuntr"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "githuntr"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "githuntr"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "githuntr"), nil
	default:
		return filepath.Join(home, ".config", "githuntr"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load returns the defaults overlaid with the config file, when one exists.
func Load() (Config, error) {
	cfg := Default()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config file: %w", err)
	}
	if cfg.Workers < 1 {
		cfg.Workers = Default().Workers
	}
	if cfg.Format == "" {
		cfg.Format = Default().Format
	}
	return cfg, nil
}

// Save writes the config to the config file, creating the directory as
// needed.
func (c Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
