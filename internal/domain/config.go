package domain

// Config is the optional user configuration loaded from config.toml.
// All fields have sensible defaults; the file is not required.
type Config struct {
	Author       string    // Overrides the resolved author identity
	DisplayLimit int       // Default display limit for new projects
	Log          LogConfig // [log] settings
	Warnings     []string  // Unknown keys found while loading
}

// LogConfig holds logging settings from the [log] section.
type LogConfig struct {
	Level string // Log level: debug, info, warn, error
}

// NewDefaultConfig returns the configuration used when no config file
// exists.
func NewDefaultConfig() *Config {
	return &Config{
		DisplayLimit: DefaultDisplayLimit,
		Log:          LogConfig{Level: "warn"},
	}
}
