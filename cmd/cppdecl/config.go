package main

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/appsworld/go-cppdecl/pkg/simplify"
)

const defaultCacheSize = 4096

// Config is the YAML file named by --config.
type Config struct {
	// Simplify lists preset or flag names, e.g. [common, stdlib_libcpp].
	Simplify  []string               `yaml:"simplify"`
	Traits    *simplify.ConfigTraits `yaml:"traits"`
	CacheSize int                    `yaml:"cache_size"`
}

func defaultConfig() *Config {
	return &Config{
		Simplify:  []string{"all"},
		CacheSize: defaultCacheSize,
	}
}

// loadConfig reads path over the defaults. An empty path gives the defaults.
func loadConfig(path string) (*Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config %s", path)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse config %s", path)
	}
	if cfg.CacheSize <= 0 {
		cfg.CacheSize = defaultCacheSize
	}
	if _, err := cfg.Flags(); err != nil {
		return nil, errors.Wrapf(err, "config %s", path)
	}
	return cfg, nil
}

func (c *Config) Flags() (simplify.Flags, error) {
	return simplify.ParseFlags(strings.Join(c.Simplify, ","))
}

// SimplifyTraits is nil when the config has no traits section, which
// selects the built-in ones.
func (c *Config) SimplifyTraits() simplify.Traits {
	if c.Traits == nil {
		return nil
	}
	return simplify.NewConfigTraits(*c.Traits)
}
