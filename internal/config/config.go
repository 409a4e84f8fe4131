// Package config loads the optional mdu configuration file.
package config

import (
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idelchi/mdu/internal/du"
)

// EnvVar names the environment variable holding the config file path.
const EnvVar = "MDU_CONFIG"

// EngineAuto picks the parallel engine when a job count is given and the
// sequential engine otherwise.
const EngineAuto = "auto"

// Config holds the settings that can be kept in a file instead of passed as flags.
type Config struct {
	// Jobs is the default worker count. Unset means no default -j.
	Jobs *int `yaml:"jobs"`
	// Engine is one of auto, sequential, parallel or fastwalk.
	Engine string `yaml:"engine"`
	// Debug enables debug logging.
	Debug bool `yaml:"debug"`
	// Progress enables the progress line on a terminal.
	Progress bool `yaml:"progress"`
	// ProgressInterval controls how often the progress line is redrawn.
	ProgressInterval time.Duration `yaml:"progress_interval"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)

	return cfg
}

// ApplyDefaults fills unset fields.
func ApplyDefaults(cfg *Config) {
	if cfg.Engine == "" {
		cfg.Engine = EngineAuto
	}

	if cfg.ProgressInterval <= 0 {
		cfg.ProgressInterval = du.DefaultProgressInterval
	}
}

// Validate checks the values a file may set.
func (c *Config) Validate() error {
	if c.Engine != EngineAuto && !slices.Contains(du.Engines, du.Engine(c.Engine)) {
		return fmt.Errorf("invalid engine %q: must be one of %s or %v", c.Engine, EngineAuto, du.Engines)
	}

	if c.Jobs != nil && *c.Jobs < 0 {
		return fmt.Errorf("jobs cannot be negative: %d", *c.Jobs)
	}

	return nil
}

// Locate returns the config file to load: path if set, else $MDU_CONFIG.
// An empty result means no file.
func Locate(path string) string {
	if path != "" {
		return path
	}

	return os.Getenv(EnvVar)
}

// Load reads and parses the config file at path and applies defaults.
// An empty path yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	return &cfg, nil
}
