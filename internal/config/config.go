package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	DefaultStages      = 4
	DefaultVoltage     = 1.0
	DefaultSteps       = 200
	DefaultValueFormat = "%.3e"
	DefaultPlotWidth   = 80
	DefaultPlotHeight  = 15
)

var ErrInvalidConfig = errors.New("config: invalid value")

type Config struct {
	Stages  int          `yaml:"stages" toml:"stages"`
	Voltage float64      `yaml:"voltage" toml:"voltage"`
	Steps   int          `yaml:"steps" toml:"steps"`
	Plot    PlotConfig   `yaml:"plot" toml:"plot"`
	Render  RenderConfig `yaml:"render" toml:"render"`
}

type PlotConfig struct {
	From          int   `yaml:"from" toml:"from"`
	To            int   `yaml:"to" toml:"to"`
	OnlyOddSteps  bool  `yaml:"only_odd_steps" toml:"only_odd_steps"`
	MaxVoltage    bool  `yaml:"max_voltage" toml:"max_voltage"`
	SumVoltage    bool  `yaml:"sum_voltage" toml:"sum_voltage"`
	Upper         []int `yaml:"upper" toml:"upper"`
	Lower         []int `yaml:"lower" toml:"lower"`
	AllCapacitors bool  `yaml:"all_capacitors" toml:"all_capacitors"`
	Width         int   `yaml:"width" toml:"width"`
	Height        int   `yaml:"height" toml:"height"`
}

type RenderConfig struct {
	ValueFormat string `yaml:"value_format" toml:"value_format"`
}

func DefaultConfig() *Config {
	return &Config{
		Stages:  DefaultStages,
		Voltage: DefaultVoltage,
		Steps:   DefaultSteps,
		Plot: PlotConfig{
			OnlyOddSteps: true,
			MaxVoltage:   true,
			SumVoltage:   true,
			Width:        DefaultPlotWidth,
			Height:       DefaultPlotHeight,
		},
		Render: RenderConfig{
			ValueFormat: DefaultValueFormat,
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a yaml or toml (by extension) config over the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if isTOML(path) {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, err
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	if isTOML(path) {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		return toml.NewEncoder(f).Encode(cfg)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Stages < 1 {
		return fmt.Errorf("stages must be at least 1, got %d: %w", c.Stages, ErrInvalidConfig)
	}
	if math.IsNaN(c.Voltage) || math.IsInf(c.Voltage, 0) {
		return fmt.Errorf("voltage must be finite, got %v: %w", c.Voltage, ErrInvalidConfig)
	}
	if c.Steps < 0 {
		return fmt.Errorf("steps must be non-negative, got %d: %w", c.Steps, ErrInvalidConfig)
	}
	if c.Plot.Width < 0 || c.Plot.Height < 0 {
		return fmt.Errorf("plot size must be non-negative: %w", ErrInvalidConfig)
	}
	return nil
}
