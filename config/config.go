// Package config loads and validates the simulation configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rustyeddy/scalper/backtest"
	"gopkg.in/yaml.v3"
)

const dateLayout = "2006-01-02"

// Config represents the complete simulation configuration
type Config struct {
	Run       RunConfig       `json:"run" yaml:"run"`
	Strategy  backtest.Params `json:"strategy" yaml:"strategy"`
	Predictor PredictorConfig `json:"predictor" yaml:"predictor"`
	Journal   JournalConfig   `json:"journal" yaml:"journal"`
}

// RunConfig contains the backtest run parameters
type RunConfig struct {
	Instrument string  `json:"instrument" yaml:"instrument"`
	Start      string  `json:"start" yaml:"start"` // inclusive, "2006-01-02"
	End        string  `json:"end" yaml:"end"`     // exclusive
	Balance    float64 `json:"balance" yaml:"balance"`
	Seed       int64   `json:"seed" yaml:"seed"`
	StartPrice int64   `json:"start_price" yaml:"start_price"`
}

// StartTime parses the inclusive start date.
func (r RunConfig) StartTime() (time.Time, error) {
	return time.Parse(dateLayout, r.Start)
}

// EndTime parses the exclusive end date.
func (r RunConfig) EndTime() (time.Time, error) {
	return time.Parse(dateLayout, r.End)
}

// PredictorConfig selects the prediction score source
type PredictorConfig struct {
	Type      string `json:"type" yaml:"type"` // "mock" or "ensemble"
	ModelPath string `json:"model_path,omitempty" yaml:"model_path,omitempty"`
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	EquityFile string `json:"equity_file,omitempty" yaml:"equity_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Run.Instrument == "" {
		return fmt.Errorf("run.instrument is required")
	}
	if c.Run.Balance <= 0 {
		return fmt.Errorf("run.balance must be positive")
	}
	if c.Run.StartPrice <= 0 {
		return fmt.Errorf("run.start_price must be positive")
	}

	start, err := c.Run.StartTime()
	if err != nil {
		return fmt.Errorf("run.start: %w", err)
	}
	end, err := c.Run.EndTime()
	if err != nil {
		return fmt.Errorf("run.end: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("run.start must be before run.end")
	}

	if err := c.Strategy.Validate(); err != nil {
		return fmt.Errorf("strategy: %w", err)
	}

	switch c.Predictor.Type {
	case "mock":
	case "ensemble":
		if c.Predictor.ModelPath == "" {
			return fmt.Errorf("predictor.model_path required for ensemble type")
		}
	default:
		return fmt.Errorf("predictor.type must be 'mock' or 'ensemble'")
	}

	switch c.Journal.Type {
	case "none":
	case "csv":
		if c.Journal.TradesFile == "" || c.Journal.EquityFile == "" {
			return fmt.Errorf("journal trades_file and equity_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Run: RunConfig{
			Instrument: "005930",
			Start:      "2024-01-02",
			End:        "2024-02-01",
			Balance:    10_000_000,
			Seed:       42,
			StartPrice: 70_000,
		},
		Strategy: backtest.Default(),
		Predictor: PredictorConfig{
			Type: "mock",
		},
		Journal: JournalConfig{
			Type: "none",
		},
	}
}
