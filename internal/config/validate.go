package config

import "fmt"

var knownFormats = map[string]bool{
	"srt": true,
	"vtt": true,
}

var knownLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

var knownLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks loaded values against the sets the tool accepts.
func (c *Config) Validate() error {
	if c.General.DefaultFormat != "" && !knownFormats[c.General.DefaultFormat] {
		return fmt.Errorf("general.default_format: unsupported value %q", c.General.DefaultFormat)
	}
	if c.Logging.Format != "" && !knownLogFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	if c.Logging.Level != "" && !knownLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	if c.History.Enabled && c.History.Path == "" {
		return fmt.Errorf("history.path: required when history is enabled")
	}
	return nil
}
