package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is looked up in the working directory when no --config flag is given.
const DefaultFile = "automata.yaml"

// Backends lists the loader implementations selectable with "backend".
var Backends = []string{"file", "loam", "redis"}

// Config holds the settings shared by every command.
type Config struct {
	// Source is a description file or a directory of descriptions (file and loam backends).
	Source       string `yaml:"source"`
	Backend      string `yaml:"backend"`
	Format       string `yaml:"format"`
	LogLevel     string `yaml:"log_level"`
	MaxInputSize int    `yaml:"max_input_size"`
	Validate     bool   `yaml:"validate"`

	Redis RedisConfig `yaml:"redis"`
	HTTP  HTTPConfig  `yaml:"http"`
}

// RedisConfig configures the redis backend and the push command.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Prefix   string `yaml:"prefix"`
}

// HTTPConfig configures the serve command.
type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		Source:  ".",
		Backend: "file",
		Format:  "text",
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "automata:dfa:",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// Load reads path over the defaults.
// A missing file is only an error when explicit is true; otherwise defaults are returned.
func Load(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	// YAML is a superset of JSON, so automata.json works too.
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Check(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Check rejects values no command can work with.
func (c Config) Check() error {
	known := false
	for _, b := range Backends {
		if c.Backend == b {
			known = true
		}
	}
	if !known {
		return fmt.Errorf("unknown backend %q (want one of %v)", c.Backend, Backends)
	}
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("unknown format %q (want text or json)", c.Format)
	}
	if c.MaxInputSize < 0 {
		return fmt.Errorf("max_input_size must not be negative")
	}
	return nil
}
