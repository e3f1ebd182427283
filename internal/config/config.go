package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// General contains tool-wide defaults.
type General struct {
	// DefaultFormat is the format used when an output path has no
	// recognizable extension hint, e.g. writing to stdout.
	DefaultFormat string `toml:"default_format"`
}

// History contains configuration for the conversion history database.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for recue.
type Config struct {
	General General `toml:"general"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/recue/config.toml")
}

// Load locates, parses, and validates a configuration file. An empty path
// falls back to the default location; a missing file at the default location
// yields the built-in defaults rather than an error.
func Load(path string) (*Config, error) {
	resolved, explicit, err := resolveConfigPath(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			if err := cfg.normalize(); err != nil {
				return nil, err
			}
			return &cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", resolved, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", resolved, err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", resolved, err)
	}
	return &cfg, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if strings.TrimSpace(path) != "" {
		expanded, err := ExpandPath(path)
		return expanded, true, err
	}
	fallback, err := DefaultConfigPath()
	return fallback, false, err
}

func (c *Config) normalize() error {
	c.General.DefaultFormat = strings.ToLower(strings.TrimSpace(c.General.DefaultFormat))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.History.Path != "" {
		expanded, err := ExpandPath(c.History.Path)
		if err != nil {
			return fmt.Errorf("history path: %w", err)
		}
		c.History.Path = expanded
	}
	return nil
}

// ExpandPath resolves a leading "~" against the current user's home
// directory and returns an absolute path.
func ExpandPath(pathValue string) (string, error) {
	value := strings.TrimSpace(pathValue)
	if value == "" {
		return "", errors.New("empty path")
	}
	if value == "~" || strings.HasPrefix(value, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		value = filepath.Join(home, strings.TrimPrefix(value, "~"))
	}
	return filepath.Abs(value)
}

// CreateSample writes the annotated sample configuration to path, refusing to
// overwrite an existing file.
func CreateSample(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if _, err := os.Stat(expanded); err == nil {
		return fmt.Errorf("config file already exists at %s", expanded)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("stat %s: %w", expanded, err)
	}
	if err := os.MkdirAll(filepath.Dir(expanded), 0o755); err != nil {
		return fmt.Errorf("ensure config directory: %w", err)
	}
	if err := os.WriteFile(expanded, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
