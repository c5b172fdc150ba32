// Package config provides configuration management for the options engine.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"options-desk/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Engine EngineConfig `mapstructure:"engine"`
	Risk   RiskConfig   `mapstructure:"risk"`
	UI     UIConfig     `mapstructure:"ui"`
	Log    LogConfig    `mapstructure:"log"`
}

// EngineConfig holds pricing-model parameters.
type EngineConfig struct {
	RiskFreeRate  float64 `mapstructure:"risk_free_rate"`
	DividendYield float64 `mapstructure:"dividend_yield"`
}

// RiskConfig holds validation limits.
type RiskConfig struct {
	MaxDelta float64 `mapstructure:"max_delta"`
	MaxGamma float64 `mapstructure:"max_gamma"`
	MaxVega  float64 `mapstructure:"max_vega"`
	MaxTheta float64 `mapstructure:"max_theta"`

	MinPoPConservative float64 `mapstructure:"min_pop_conservative"`
	MinPoPModerate     float64 `mapstructure:"min_pop_moderate"`
	MinPoPAggressive   float64 `mapstructure:"min_pop_aggressive"`

	MinIVRankForCredit    float64 `mapstructure:"min_iv_rank_for_credit"`
	MaxPositionsPerSymbol int     `mapstructure:"max_positions_per_symbol"`
	MaxPositionsPerExpiry int     `mapstructure:"max_positions_per_expiry"`
	MaxPositionsPerStrike int     `mapstructure:"max_positions_per_strike"`
	AssignmentWindowDays  int     `mapstructure:"assignment_window_days"`
}

// MinPoP returns the probability-of-profit floor for the given profile.
func (r RiskConfig) MinPoP(profile models.RiskProfile) float64 {
	switch profile {
	case models.ProfileConservative:
		return r.MinPoPConservative
	case models.ProfileAggressive:
		return r.MinPoPAggressive
	default:
		return r.MinPoPModerate
	}
}

// UIConfig holds output formatting configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfigDir returns the per-user configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".options-desk"
	}
	return filepath.Join(home, ".config", "options-desk")
}

// Load reads the configuration file from the given directory, seeding
// defaults for anything unset. A missing file is not an error.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	v.SetEnvPrefix("ODESK")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.risk_free_rate", 0.045)
	v.SetDefault("engine.dividend_yield", 0.0)

	v.SetDefault("risk.max_delta", 100.0)
	v.SetDefault("risk.max_gamma", 10.0)
	v.SetDefault("risk.max_vega", 500.0)
	v.SetDefault("risk.max_theta", 200.0)
	v.SetDefault("risk.min_pop_conservative", 70.0)
	v.SetDefault("risk.min_pop_moderate", 60.0)
	v.SetDefault("risk.min_pop_aggressive", 50.0)
	v.SetDefault("risk.min_iv_rank_for_credit", 50.0)
	v.SetDefault("risk.max_positions_per_symbol", 3)
	v.SetDefault("risk.max_positions_per_expiry", 5)
	v.SetDefault("risk.max_positions_per_strike", 3)
	v.SetDefault("risk.assignment_window_days", 5)

	v.SetDefault("ui.color_enabled", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.console", true)
	v.SetDefault("log.file", true)
	v.SetDefault("log.file_path", filepath.Join(DefaultConfigDir(), "logs", "odesk.log"))
	v.SetDefault("log.max_size_mb", 50)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Engine.RiskFreeRate < 0 {
		return fmt.Errorf("engine.risk_free_rate must not be negative")
	}
	if c.Engine.DividendYield < 0 {
		return fmt.Errorf("engine.dividend_yield must not be negative")
	}
	for name, pop := range map[string]float64{
		"risk.min_pop_conservative": c.Risk.MinPoPConservative,
		"risk.min_pop_moderate":     c.Risk.MinPoPModerate,
		"risk.min_pop_aggressive":   c.Risk.MinPoPAggressive,
	} {
		if pop < 0 || pop > 100 {
			return fmt.Errorf("%s must be between 0 and 100", name)
		}
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	return nil
}

// Default returns the built-in configuration without touching the
// filesystem.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg := &Config{}
	// Defaults always unmarshal cleanly.
	_ = v.Unmarshal(cfg)
	return cfg
}
