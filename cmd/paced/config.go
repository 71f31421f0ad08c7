package main

import (
	"fmt"
	"os"

	"github.com/erinpentecost/pace"
	"gopkg.in/yaml.v3"
)

// Config controls the paced loop.
type Config struct {
	// MaxUpdateHz is the update rate cap. Zero or less runs uncapped.
	MaxUpdateHz int `yaml:"max_update_hz"`
	// AlwaysYield controls whether frames with no timed wait still
	// yield the processor.
	AlwaysYield bool `yaml:"always_yield"`
}

// DefaultConfig returns the loop defaults.
func DefaultConfig() Config {
	return Config{
		MaxUpdateHz: pace.DefaultMaxUpdateHz,
		AlwaysYield: true,
	}
}

// LoadConfig reads a YAML config file, filling unset fields with the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
