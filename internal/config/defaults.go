package config

const (
	defaultFormat      = "srt"
	defaultHistoryPath = "~/.local/share/recue/history.db"
	defaultLogFormat   = "console"
	defaultLogLevel    = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		General: General{
			DefaultFormat: defaultFormat,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
