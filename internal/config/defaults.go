package config

import "time"

// DefaultConfig returns a Config with the presenter defaults: a 12 minute
// talk, 18 seconds per slide in rehearsal autoplay and a 250ms clock tick.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:           ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   10 * time.Second,
			IdleTimeout:    60 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Presentation: PresentationConfig{
			Target:           12 * time.Minute,
			AutoplayInterval: 18 * time.Second,
			TickInterval:     250 * time.Millisecond,
		},
		Annotate: AnnotateConfig{
			PenWidth: 4,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
