package sched

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	yaml "github.com/goccy/go-yaml"
)

// EnhancedConfig holds the Enhanced RR parameters.
type EnhancedConfig struct {
	AdjustmentFactor float64 `yaml:"adjustment_factor"` // 1.5 (by default)
	AgingThreshold   int     `yaml:"aging_threshold"`   // 3 (by default)
}

// Config mirrors rrsim.yml
type Config struct {
	Enhanced          EnhancedConfig `yaml:"enhanced"`
	TraditionalQuanta []int          `yaml:"traditional_quanta"` // [4, 2] (by default), the first one is the comparison baseline
	CSVPath           string         `yaml:"csv_path"`
	TracePath         string         `yaml:"trace_path"`
	Listen            string         `yaml:"listen"`
	WorkloadPath      string         `yaml:"workload_path"`

	// limits on requests served over HTTP
	MaxSweepWidth  int `yaml:"max_sweep_width"`  // 1000 (by default), quanta per sweep
	MaxArrivalTime int `yaml:"max_arrival_time"` // 1_000_000 (by default)
}

// DefaultConfig returns the values used when rrsim.yml is absent or silent.
func DefaultConfig() Config {
	return Config{
		Enhanced: EnhancedConfig{
			AdjustmentFactor: DefaultAdjustmentFactor,
			AgingThreshold:   DefaultAgingThreshold,
		},
		TraditionalQuanta: []int{4, 2},
		CSVPath:           "scheduling_results.csv",
		Listen:            ":9095",
		MaxSweepWidth:     1000,
		MaxArrivalTime:    1_000_000,
	}
}

// Load reads YAML and overrides defaults; empty path or missing file = defaults only
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate checks every policy parameter without building anything.
func (c Config) Validate() error {
	if _, err := NewEnhanced(c.Enhanced.AdjustmentFactor, c.Enhanced.AgingThreshold); err != nil {
		return err
	}
	if len(c.TraditionalQuanta) == 0 {
		return fmt.Errorf("%w: at least one traditional quantum is required", ErrConfiguration)
	}
	for _, q := range c.TraditionalQuanta {
		if _, err := NewTraditional(q); err != nil {
			return err
		}
	}
	if c.MaxSweepWidth <= 0 {
		return fmt.Errorf("%w: max sweep width must be > 0, got %d", ErrConfiguration, c.MaxSweepWidth)
	}
	if c.MaxArrivalTime < 0 {
		return fmt.Errorf("%w: max arrival time must be >= 0, got %d", ErrConfiguration, c.MaxArrivalTime)
	}
	return nil
}

// Policies builds the Enhanced policy followed by one Traditional policy per quantum.
func (c Config) Policies() ([]Policy, error) {
	enh, err := NewEnhanced(c.Enhanced.AdjustmentFactor, c.Enhanced.AgingThreshold)
	if err != nil {
		return nil, err
	}
	policies := []Policy{enh}
	for _, q := range c.TraditionalQuanta {
		t, err := NewTraditional(q)
		if err != nil {
			return nil, err
		}
		policies = append(policies, t)
	}
	return policies, nil
}
