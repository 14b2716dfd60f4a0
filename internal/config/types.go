package config

import "time"

// Config is the top-level slidedeck configuration, corresponding to slidedeck.yml.
type Config struct {
	Server       ServerConfig       `yaml:"server" koanf:"server"`
	Presentation PresentationConfig `yaml:"presentation" koanf:"presentation"`
	Annotate     AnnotateConfig     `yaml:"annotate" koanf:"annotate"`
	Log          LogConfig          `yaml:"log" koanf:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr" koanf:"addr"`
	ReadTimeout    time.Duration `yaml:"read_timeout" koanf:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout" koanf:"write_timeout"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" koanf:"idle_timeout"`
	AllowedOrigins []string      `yaml:"allowed_origins" koanf:"allowed_origins"`
}

// PresentationConfig holds timing for the talk itself.
type PresentationConfig struct {
	Target           time.Duration `yaml:"target" koanf:"target"`
	AutoplayInterval time.Duration `yaml:"autoplay_interval" koanf:"autoplay_interval"`
	TickInterval     time.Duration `yaml:"tick_interval" koanf:"tick_interval"`
}

// AnnotateConfig holds ink settings.
type AnnotateConfig struct {
	PenWidth float64 `yaml:"pen_width" koanf:"pen_width"`
}

// LogConfig selects the log level (debug, info, warn, error).
type LogConfig struct {
	Level string `yaml:"level" koanf:"level"`
}
