package logtree

import (
	"fmt"

	"github.com/on-site/logtree/internal/config"
	"github.com/on-site/logtree/pkg/zapbackend"
)

// Config is the file schema for a registry and its backend.
type Config struct {
	Prefix  string                  `koanf:"prefix"`
	Backend zapbackend.Config       `koanf:"backend"`
	Loggers map[string]LoggerConfig `koanf:"loggers"`
}

// LoggerConfig holds the attributes of one logical name.
// Empty fields leave the logger inheriting.
type LoggerConfig struct {
	Level   string `koanf:"level"`
	Tracing *bool  `koanf:"tracing"`
}

// NewDefaultConfig returns the default prefix over the default backend.
func NewDefaultConfig() *Config {
	return &Config{
		Prefix:  DefaultPrefix,
		Backend: *zapbackend.NewDefaultConfig(),
	}
}

// LoadConfig reads path (YAML, optional) and LOGTREE_ environment
// variables over the defaults, then validates the result.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()
	if err := config.Load(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate checks the backend section and every logger level.
func (c *Config) Validate() error {
	if err := c.Backend.Validate(); err != nil {
		return fmt.Errorf("backend: %w", err)
	}
	for name, lc := range c.Loggers {
		if lc.Level == "" {
			continue
		}
		if _, err := ParseLevel(lc.Level); err != nil {
			return fmt.Errorf("logger %q: %w", name, err)
		}
	}
	return nil
}

// Attributes converts the entry to attributes. Unset fields are omitted.
func (c LoggerConfig) Attributes() Attributes {
	attrs := Attributes{}
	if c.Level != "" {
		attrs[AttrLevel] = c.Level
	}
	if c.Tracing != nil {
		attrs[AttrTracing] = *c.Tracing
	}
	return attrs
}

// Apply assigns the attributes of every configured logger.
func (r *Registry) Apply(loggers map[string]LoggerConfig) {
	for name, lc := range loggers {
		r.Get(name, lc.Attributes())
	}
}
