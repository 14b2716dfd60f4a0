package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "SLIDEDECK_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (SLIDEDECK_*, with __ separating nested
// keys: SLIDEDECK_PRESENTATION__TARGET=15m). A .env file in the working
// directory is loaded first. PORT is honoured when server.addr is not set.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	cfg := DefaultConfig()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" && !k.Exists("server.addr") {
		cfg.Server.Addr = ":" + port
	}
	return cfg, nil
}

var validLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Presentation.Target <= 0 {
		return fmt.Errorf("presentation.target must be positive")
	}
	if c.Presentation.AutoplayInterval <= 0 {
		return fmt.Errorf("presentation.autoplay_interval must be positive")
	}
	if c.Presentation.TickInterval <= 0 {
		return fmt.Errorf("presentation.tick_interval must be positive")
	}
	if c.Annotate.PenWidth <= 0 {
		return fmt.Errorf("annotate.pen_width must be positive")
	}
	if c.Log.Level != "" && !validLevels[c.Log.Level] {
		return fmt.Errorf("invalid log.level %q: must be one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}
