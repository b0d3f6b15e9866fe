package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ============================================================================
// CATALOG — Metric and dimension metadata for the transform engine
// ============================================================================
// The engine itself is policy-free: whether a dimension is ordered
// (time-like) or a metric is lower-is-better lives here, not at call sites.
// Catalogs load from YAML or fall back to the built-in usagelens defaults.
// ============================================================================

// Metric describes one aggregatable measure.
type Metric struct {
	Key           string `yaml:"key" json:"key"`
	DisplayName   string `yaml:"display_name" json:"display_name"`
	Unit          string `yaml:"unit,omitempty" json:"unit,omitempty"`
	LowerIsBetter bool   `yaml:"lower_is_better,omitempty" json:"lower_is_better,omitempty"`
}

// Dimension describes one grouping/splitting key.
// Ordered marks continuous, time-like dimensions: series built on them sort
// chronologically instead of by value.
type Dimension struct {
	Key         string `yaml:"key" json:"key"`
	DisplayName string `yaml:"display_name" json:"display_name"`
	Ordered     bool   `yaml:"ordered,omitempty" json:"ordered,omitempty"`
}

// Config is a complete metric/dimension catalog for one product.
type Config struct {
	Product    string      `yaml:"product" json:"product"`
	Metrics    []Metric    `yaml:"metrics" json:"metrics"`
	Dimensions []Dimension `yaml:"dimensions" json:"dimensions"`
}

// Metric looks up a metric by key.
func (c Config) Metric(key string) (Metric, bool) {
	for _, m := range c.Metrics {
		if m.Key == key {
			return m, true
		}
	}
	return Metric{}, false
}

// Dimension looks up a dimension by key.
func (c Config) Dimension(key string) (Dimension, bool) {
	for _, d := range c.Dimensions {
		if d.Key == key {
			return d, true
		}
	}
	return Dimension{}, false
}

// Ordered reports whether the named dimension is ordered. Unknown
// dimensions are treated as categorical.
func (c Config) Ordered(key string) bool {
	d, ok := c.Dimension(key)
	return ok && d.Ordered
}

// Validate checks the catalog for empty or duplicate keys.
func (c Config) Validate() error {
	if c.Product == "" {
		return fmt.Errorf("catalog: product name is required")
	}
	seen := make(map[string]bool)
	for _, m := range c.Metrics {
		if m.Key == "" {
			return fmt.Errorf("catalog: metric with empty key")
		}
		if seen["m:"+m.Key] {
			return fmt.Errorf("catalog: duplicate metric %q", m.Key)
		}
		seen["m:"+m.Key] = true
	}
	for _, d := range c.Dimensions {
		if d.Key == "" {
			return fmt.Errorf("catalog: dimension with empty key")
		}
		if seen["d:"+d.Key] {
			return fmt.Errorf("catalog: duplicate dimension %q", d.Key)
		}
		seen["d:"+d.Key] = true
	}
	return nil
}

// Load reads and validates a catalog YAML file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates catalog YAML bytes.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse catalog: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Default returns the built-in usagelens catalog.
func Default() Config {
	return Config{
		Product: "usagelens",
		Metrics: []Metric{
			{Key: "cost", DisplayName: "Cost", Unit: "usd", LowerIsBetter: true},
			{Key: "tokens", DisplayName: "Tokens", Unit: "tokens"},
			{Key: "requests", DisplayName: "Requests", Unit: "count"},
			{Key: "error_rate", DisplayName: "Error rate", Unit: "percent", LowerIsBetter: true},
			{Key: "latency_p50", DisplayName: "Median latency", Unit: "ms", LowerIsBetter: true},
			{Key: "productivity", DisplayName: "Productivity score", Unit: "points"},
		},
		Dimensions: []Dimension{
			{Key: "date", DisplayName: "Date", Ordered: true},
			{Key: "week", DisplayName: "Week", Ordered: true},
			{Key: "model", DisplayName: "Model"},
			{Key: "project", DisplayName: "Project"},
			{Key: "user", DisplayName: "User"},
			{Key: "tag", DisplayName: "Tag"},
		},
	}
}
