package main

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings hold CLI-level policy: thresholds and visual ranges that the
// dashboard pages treat as per-view configuration, not engine constants.
// Precedence: env (USAGELENS_*) > config file > defaults.
type Settings struct {
	Product    string  `mapstructure:"product"`
	APIBaseURL string  `mapstructure:"api_base_url"`
	TopN       int     `mapstructure:"top_n"`
	BubbleMin  float64 `mapstructure:"bubble_min"`
	BubbleMax  float64 `mapstructure:"bubble_max"`
}

// DefaultSettings returns the built-in policy values.
func DefaultSettings() Settings {
	return Settings{
		Product:   "usagelens",
		TopN:      30,
		BubbleMin: 8,
		BubbleMax: 48,
	}
}

// LoadSettings reads settings from the config file and environment.
func LoadSettings(cfgFile string) (Settings, error) {
	v := viper.New()
	v.SetEnvPrefix("USAGELENS")
	v.AutomaticEnv()

	def := DefaultSettings()
	v.SetDefault("product", def.Product)
	v.SetDefault("top_n", def.TopN)
	v.SetDefault("bubble_min", def.BubbleMin)
	v.SetDefault("bubble_max", def.BubbleMax)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("usagelens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// An explicitly named config must load; a missing default is fine.
		if cfgFile != "" {
			return Settings{}, fmt.Errorf("read config: %w", err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("parse config: %w", err)
	}
	return s, nil
}
