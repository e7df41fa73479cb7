package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// ─── struct ───────────────────────────────────────────────────────────────────

// Config holds all runtime configuration for nettools.
type Config struct {
	Timeout       time.Duration `yaml:"timeout"`
	Concurrency   int           `yaml:"concurrency"`
	Count         int           `yaml:"count"`
	MaxHops       int           `yaml:"max_hops"`
	IperfPort     int           `yaml:"iperf_port"`
	IperfDuration int           `yaml:"iperf_duration"`
	Output        string        `yaml:"output"`
	HistoryDB     string        `yaml:"history_db"`
}

// UnmarshalYAML decodes the file on top of the current values, so absent
// keys keep their defaults. Timeout accepts Go duration strings ("2s",
// "500ms"); yaml cannot decode those into time.Duration on its own.
func (c *Config) UnmarshalYAML(node *yaml.Node) error {
	var aux struct {
		Timeout       string  `yaml:"timeout"`
		Concurrency   *int    `yaml:"concurrency"`
		Count         *int    `yaml:"count"`
		MaxHops       *int    `yaml:"max_hops"`
		IperfPort     *int    `yaml:"iperf_port"`
		IperfDuration *int    `yaml:"iperf_duration"`
		Output        *string `yaml:"output"`
		HistoryDB     *string `yaml:"history_db"`
	}
	if err := node.Decode(&aux); err != nil {
		return err
	}

	if aux.Timeout != "" {
		d, err := time.ParseDuration(aux.Timeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", aux.Timeout, err)
		}
		c.Timeout = d
	}
	if aux.Concurrency != nil {
		c.Concurrency = *aux.Concurrency
	}
	if aux.Count != nil {
		c.Count = *aux.Count
	}
	if aux.MaxHops != nil {
		c.MaxHops = *aux.MaxHops
	}
	if aux.IperfPort != nil {
		c.IperfPort = *aux.IperfPort
	}
	if aux.IperfDuration != nil {
		c.IperfDuration = *aux.IperfDuration
	}
	if aux.Output != nil {
		c.Output = *aux.Output
	}
	if aux.HistoryDB != nil {
		c.HistoryDB = *aux.HistoryDB
	}
	return nil
}

// ─── defaults ─────────────────────────────────────────────────────────────────

// Default returns a Config populated with sensible defaults.
func Default() Config {
	return Config{
		Timeout:       5 * time.Second,
		Concurrency:   50,
		Count:         4,
		MaxHops:       30,
		IperfPort:     5201,
		IperfDuration: 10,
		Output:        "human",
		HistoryDB:     "",
	}
}

// DefaultHistoryDB returns the default location of the scan history
// database.
func DefaultHistoryDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "nettools-history.db"
	}
	return filepath.Join(home, ".nettools-history.db")
}

// ─── load ─────────────────────────────────────────────────────────────────────

// Load reads a YAML config file and merges it onto the defaults.
// If the file does not exist, defaults are returned without error.
func Load(path string) (Config, error) {
	cfg := Default()

	// fall back to default location if path is empty
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return cfg, nil
		}
		path = filepath.Join(home, ".nettools.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // no file — not an error
		}
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}
