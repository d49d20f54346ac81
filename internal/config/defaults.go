package config

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		MinConfidence: 0,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}
