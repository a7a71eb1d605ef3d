package config

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() *Config {
	return &Config{
		Addr:           ":8080",
		StorePath:      "data/playground.db",
		Templates:      "static/templates.json",
		DebounceMS:     300,
		RefreshDelayMS: 200,
		IdleTimeoutS:   600,
		LogLevel:       "info",
	}
}
