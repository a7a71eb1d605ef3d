package config

// Config is the playground server configuration, corresponding to
// playground.yml.
type Config struct {
	Addr           string   `yaml:"addr" koanf:"addr"`
	StorePath      string   `yaml:"store_path" koanf:"store_path"`
	Templates      string   `yaml:"templates" koanf:"templates"`
	WatchTemplates bool     `yaml:"watch_templates" koanf:"watch_templates"`
	DebounceMS     int      `yaml:"debounce_ms" koanf:"debounce_ms"`
	RefreshDelayMS int      `yaml:"refresh_delay_ms" koanf:"refresh_delay_ms"`
	IdleTimeoutS   int      `yaml:"idle_timeout_s" koanf:"idle_timeout_s"`
	AllowedOrigins []string `yaml:"allowed_origins" koanf:"allowed_origins"`
	LogLevel       string   `yaml:"log_level" koanf:"log_level"`
	Dev            bool     `yaml:"dev" koanf:"dev"`
}
