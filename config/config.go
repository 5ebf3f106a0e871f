// Package config loads the trainer's YAML/JSON configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the complete trainer configuration.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Replay  ReplayConfig  `json:"replay" yaml:"replay"`
	Sizing  SizingConfig  `json:"sizing" yaml:"sizing"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
}

// AccountConfig contains the virtual account parameters.
type AccountConfig struct {
	ID      string  `json:"id" yaml:"id"`
	Balance float64 `json:"balance" yaml:"balance"`
}

// ReplayConfig contains playback parameters.
type ReplayConfig struct {
	WarmupOffset   int     `json:"warmup_offset" yaml:"warmup_offset"`
	StepIntervalMs int     `json:"step_interval_ms" yaml:"step_interval_ms"`
	CommissionRate float64 `json:"commission_rate" yaml:"commission_rate"`
}

// SizingConfig contains position-sizing defaults.
type SizingConfig struct {
	RiskPercent     float64 `json:"risk_percent" yaml:"risk_percent"`
	ATRPeriod       int     `json:"atr_period" yaml:"atr_period"`
	ATRStopMultiple float64 `json:"atr_stop_multiple" yaml:"atr_stop_multiple"`
}

// JournalConfig contains journaling parameters.
type JournalConfig struct {
	Type         string `json:"type" yaml:"type"` // "csv" or "sqlite"
	TradesFile   string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	SessionsFile string `json:"sessions_file,omitempty" yaml:"sessions_file,omitempty"`
	DBPath       string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()

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

// SaveToFile saves configuration to a file (format chosen by extension).
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

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.Balance <= 0 {
		return fmt.Errorf("account.balance must be positive")
	}
	if c.Replay.WarmupOffset < 0 {
		return fmt.Errorf("replay.warmup_offset must not be negative")
	}
	if c.Replay.StepIntervalMs <= 0 {
		return fmt.Errorf("replay.step_interval_ms must be positive")
	}
	if c.Replay.CommissionRate < 0 || c.Replay.CommissionRate > 0.01 {
		return fmt.Errorf("replay.commission_rate must be in [0, 0.01]")
	}
	if c.Sizing.RiskPercent <= 0 || c.Sizing.RiskPercent > 100 {
		return fmt.Errorf("sizing.risk_percent must be in (0, 100]")
	}
	if c.Sizing.ATRPeriod <= 0 {
		return fmt.Errorf("sizing.atr_period must be positive")
	}
	if c.Sizing.ATRStopMultiple <= 0 {
		return fmt.Errorf("sizing.atr_stop_multiple must be positive")
	}
	if c.Journal.Type != "csv" && c.Journal.Type != "sqlite" {
		return fmt.Errorf("journal.type must be 'csv' or 'sqlite'")
	}
	if c.Journal.Type == "csv" && (c.Journal.TradesFile == "" || c.Journal.SessionsFile == "") {
		return fmt.Errorf("journal trades_file and sessions_file required for CSV type")
	}
	if c.Journal.Type == "sqlite" && c.Journal.DBPath == "" {
		return fmt.Errorf("journal db_path required for SQLite type")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:      "SIM-001",
			Balance: 100000,
		},
		Replay: ReplayConfig{
			WarmupOffset:   30,
			StepIntervalMs: 1000,
			CommissionRate: 0,
		},
		Sizing: SizingConfig{
			RiskPercent:     2.0,
			ATRPeriod:       14,
			ATRStopMultiple: 2.0,
		},
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./trainer.sqlite",
		},
	}
}
