// Package config provides configuration management for ZenFlowz.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/ForgeBytez-Official/ZenFlowz/internal/domain"
)

// Cycle setting keys accepted by UpdateCycleSetting.
const (
	KeyZonesUntilDrift   = "zones_until_drift"
	KeyDriftsUntilFinish = "drifts_until_finish"
)

// Bounds for the cycle goals.
const (
	minCycleGoal = 1
	maxCycleGoal = 10
)

// Config holds all configuration for the ZenFlowz application.
type Config struct {
	Durations     DurationConfig     `mapstructure:"durations"`
	Cycle         CycleConfig        `mapstructure:"cycle"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Storage       StorageConfig      `mapstructure:"storage"`
}

// DurationConfig holds the session length per mode, in minutes.
type DurationConfig struct {
	Zone   int `mapstructure:"zone"`
	Breath int `mapstructure:"breath"`
	Drift  int `mapstructure:"drift"`
}

// CycleConfig holds the cycle goals.
type CycleConfig struct {
	ZonesUntilDrift   int `mapstructure:"zones_until_drift"`
	DriftsUntilFinish int `mapstructure:"drifts_until_finish"`
}

// NotificationConfig holds notification preferences. Browser gates the
// in-app toast and its cross-instance broadcast; System gates desktop
// notifications.
type NotificationConfig struct {
	Browser bool `mapstructure:"browser"`
	System  bool `mapstructure:"system"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Durations: DurationConfig{
			Zone:   25,
			Breath: 5,
			Drift:  15,
		},
		Cycle: CycleConfig{
			ZonesUntilDrift:   3,
			DriftsUntilFinish: 3,
		},
		Notifications: NotificationConfig{
			Browser: true,
			System:  true,
		},
		Storage: StorageConfig{
			DataDir: "~/.zenflowz",
		},
	}
}

// Minutes returns the configured length for a mode, in minutes.
func (c *Config) Minutes(mode domain.Mode) int {
	switch mode {
	case domain.ModeZone:
		return c.Durations.Zone
	case domain.ModeBreath:
		return c.Durations.Breath
	case domain.ModeDrift:
		return c.Durations.Drift
	default:
		return 1
	}
}

// Duration returns the configured length for a mode.
func (c *Config) Duration(mode domain.Mode) time.Duration {
	return time.Duration(c.Minutes(mode)) * time.Minute
}

// Goals returns the configured cycle goals.
func (c *Config) Goals() domain.CycleGoals {
	return domain.CycleGoals{
		ZonesUntilDrift:   c.Cycle.ZonesUntilDrift,
		DriftsUntilFinish: c.Cycle.DriftsUntilFinish,
	}
}

// UpdateDuration sets a mode's length in minutes, clamped to
// [1, mode limit]. Out-of-range writes are clamped, never rejected.
func (c *Config) UpdateDuration(mode domain.Mode, minutes int) {
	if minutes < 1 {
		minutes = 1
	}
	if limit := mode.LimitMinutes(); minutes > limit {
		minutes = limit
	}
	switch mode {
	case domain.ModeZone:
		c.Durations.Zone = minutes
	case domain.ModeBreath:
		c.Durations.Breath = minutes
	case domain.ModeDrift:
		c.Durations.Drift = minutes
	}
}

// UpdateCycleSetting sets a cycle goal, clamped to [1, 10]. Unknown keys
// are ignored.
func (c *Config) UpdateCycleSetting(key string, value int) {
	if value < minCycleGoal {
		value = minCycleGoal
	}
	if value > maxCycleGoal {
		value = maxCycleGoal
	}
	switch key {
	case KeyZonesUntilDrift:
		c.Cycle.ZonesUntilDrift = value
	case KeyDriftsUntilFinish:
		c.Cycle.DriftsUntilFinish = value
	}
}

// Load loads the configuration from the config file, creating it with
// defaults on first run.
func Load() (*Config, error) {
	configPath, err := GetConfigPath()
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	setDefaults()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := Save(DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
	}

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Re-clamp everything read from disk so a hand-edited file can never
	// violate the duration and goal bounds.
	cfg.UpdateDuration(domain.ModeZone, cfg.Durations.Zone)
	cfg.UpdateDuration(domain.ModeBreath, cfg.Durations.Breath)
	cfg.UpdateDuration(domain.ModeDrift, cfg.Durations.Drift)
	cfg.UpdateCycleSetting(KeyZonesUntilDrift, cfg.Cycle.ZonesUntilDrift)
	cfg.UpdateCycleSetting(KeyDriftsUntilFinish, cfg.Cycle.DriftsUntilFinish)

	// Expand ~ in data directory
	if cfg.Storage.DataDir == "~/.zenflowz" || cfg.Storage.DataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		cfg.Storage.DataDir = filepath.Join(homeDir, ".zenflowz")
	}

	return &cfg, nil
}

// Save saves the configuration to the config file.
func Save(cfg *Config) error {
	configPath, err := GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	viper.SetConfigFile(configPath)
	viper.SetConfigType("toml")

	viper.Set("durations.zone", cfg.Durations.Zone)
	viper.Set("durations.breath", cfg.Durations.Breath)
	viper.Set("durations.drift", cfg.Durations.Drift)
	viper.Set("cycle.zones_until_drift", cfg.Cycle.ZonesUntilDrift)
	viper.Set("cycle.drifts_until_finish", cfg.Cycle.DriftsUntilFinish)
	viper.Set("notifications.browser", cfg.Notifications.Browser)
	viper.Set("notifications.system", cfg.Notifications.System)
	viper.Set("storage.data_dir", cfg.Storage.DataDir)

	return viper.WriteConfig()
}

// GetConfigPath returns the path to the config file.
func GetConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".zenflowz", "config.toml"), nil
}

// GetDBPath returns the path to the progress database file.
func GetDBPath(cfg *Config) string {
	return filepath.Join(cfg.Storage.DataDir, "zenflowz.db")
}

// setDefaults sets default values for viper.
func setDefaults() {
	viper.SetDefault("durations.zone", 25)
	viper.SetDefault("durations.breath", 5)
	viper.SetDefault("durations.drift", 15)
	viper.SetDefault("cycle.zones_until_drift", 3)
	viper.SetDefault("cycle.drifts_until_finish", 3)
	viper.SetDefault("notifications.browser", true)
	viper.SetDefault("notifications.system", true)
	viper.SetDefault("storage.data_dir", "~/.zenflowz")
}
