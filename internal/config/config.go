package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultProblem     = "transmission"
	DefaultSweepFrom   = 0.0
	DefaultSweepTo     = 2.0
	DefaultSweepPoints = 81
)

type Config struct {
	Problem  string             `yaml:"problem"`
	Bindings map[string]float64 `yaml:"bindings"`
	Sweep    SweepConfig        `yaml:"sweep"`
}

// SweepConfig selects the numeric range a coefficient sweep is evaluated
// over. An empty Param falls back to the problem's own sweep parameter.
type SweepConfig struct {
	Param  string  `yaml:"param"`
	From   float64 `yaml:"from"`
	To     float64 `yaml:"to"`
	Points int     `yaml:"points"`
}

func DefaultConfig() *Config {
	return &Config{
		Problem:  DefaultProblem,
		Bindings: map[string]float64{},
		Sweep: SweepConfig{
			From:   DefaultSweepFrom,
			To:     DefaultSweepTo,
			Points: DefaultSweepPoints,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Problem == "" {
		return fmt.Errorf("problem must be set")
	}
	if c.Sweep.Points < 2 {
		return fmt.Errorf("sweep points must be at least 2, got %d", c.Sweep.Points)
	}
	if c.Sweep.From >= c.Sweep.To {
		return fmt.Errorf("sweep range is empty: from %.4f to %.4f", c.Sweep.From, c.Sweep.To)
	}
	return nil
}
