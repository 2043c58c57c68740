package main

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ezoic/nbayes/core/model"
	"github.com/ezoic/nbayes/pkg/errors"
)

// Config represents the demo configuration
type Config struct {
	// Seed for data generation, splitting and oversampling
	Seed uint64 `yaml:"seed"`

	// Synthetic corpus settings
	Data DataConfig `yaml:"data"`

	// Hyperparameters of the reported models
	Model model.Params `yaml:"model"`

	// Alpha values tried by the sweep
	Alphas []float64 `yaml:"alphas"`

	// Logging settings
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig controls the synthetic word-count corpus
type DataConfig struct {
	Classes      int     `yaml:"classes"`
	Features     int     `yaml:"features"`
	Samples      int     `yaml:"samples"`       // rows of the largest class
	DocLength    int     `yaml:"doc_length"`    // tokens drawn per row
	Signal       float64 `yaml:"signal"`        // share of tokens drawn from the class vocabulary
	TestFraction float64 `yaml:"test_fraction"` // held out per class
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Seed: 42,
		Data: DataConfig{
			Classes:      3,
			Features:     12,
			Samples:      60,
			DocLength:    20,
			Signal:       0.7,
			TestFraction: 0.25,
		},
		Model:   model.DefaultParams(),
		Alphas:  []float64{0, 0.01, 0.1, 0.5, 1, 2, 5},
		Logging: LoggingConfig{Level: "info"},
	}
}

// LoadConfig loads configuration from file. An empty path returns the
// defaults; keys missing from the file keep their default values.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", configPath)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", configPath)
	}

	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return config, nil
}

// SaveConfig saves configuration to file
func (c *Config) SaveConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return errors.Wrap(err, "failed to write config file")
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	d := c.Data
	if d.Classes < 2 {
		return errors.NewValidationError("data.classes", "must be at least 2", d.Classes)
	}
	if d.Features < d.Classes {
		return errors.NewValidationError("data.features", fmt.Sprintf("must be at least data.classes (%d)", d.Classes), d.Features)
	}
	if d.Samples < 2 {
		return errors.NewValidationError("data.samples", "must be at least 2", d.Samples)
	}
	if d.DocLength < 1 {
		return errors.NewValidationError("data.doc_length", "must be positive", d.DocLength)
	}
	if d.Signal < 0 || d.Signal > 1 {
		return errors.NewValidationError("data.signal", "must be between 0 and 1", d.Signal)
	}
	if d.TestFraction <= 0 || d.TestFraction >= 1 {
		return errors.NewValidationError("data.test_fraction", "must be between 0 and 1 exclusive", d.TestFraction)
	}
	if err := c.Model.Validate(); err != nil {
		return err
	}
	if len(c.Alphas) == 0 {
		return errors.NewValidationError("alphas", "must not be empty", c.Alphas)
	}
	for _, alpha := range c.Alphas {
		if err := (model.Params{Alpha: alpha}).Validate(); err != nil {
			return err
		}
	}
	return nil
}
