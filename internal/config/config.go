package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
	"unicode/utf8"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// HistoryConfig represents run-history persistence configuration
type HistoryConfig struct {
	// Enabled turns on SQLite persistence of suite results
	Enabled bool `yaml:"enabled" env:"ENABLED"`

	// DBPath is the path to the history database
	DBPath string `yaml:"db_path" env:"DB_PATH"`

	// KeepRuns is the maximum number of runs to keep (0 = unlimited)
	KeepRuns int `yaml:"keep_runs" env:"KEEP_RUNS"`
}

// Config represents playcheck configuration options
type Config struct {
	// AutoRun starts the suite automatically at startup
	AutoRun bool `yaml:"auto_run" env:"AUTO_RUN"`

	// ShowDetails includes a per-scenario detail line in the summary
	ShowDetails bool `yaml:"show_details" env:"SHOW_DETAILS"`

	// TriggerKey is the key that starts the suite on demand (single rune)
	TriggerKey string `yaml:"trigger_key" env:"TRIGGER_KEY"`

	// TickRate is the simulation step rate in Hz
	TickRate int `yaml:"tick_rate" env:"TICK_RATE"`

	// DamageInterval is the hazard damage cadence
	DamageInterval time.Duration `yaml:"-" env:"DAMAGE_INTERVAL"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`

	// LogDir is the directory where run logs will be written (empty = no file log)
	LogDir string `yaml:"log_dir" env:"LOG_DIR"`

	// History contains run-history persistence configuration
	History HistoryConfig `yaml:"history" envPrefix:"HISTORY_"`
}

// DefaultConfig returns a Config with sensible default values
func DefaultConfig() *Config {
	return &Config{
		AutoRun:        true,
		ShowDetails:    false,
		TriggerKey:     "t",
		TickRate:       60,
		DamageInterval: 500 * time.Millisecond,
		LogLevel:       "info",
		LogDir:         "",
		History: HistoryConfig{
			Enabled:  false,
			DBPath:   filepath.Join(".playcheck", "history.db"),
			KeepRuns: 100,
		},
	}
}

// LoadConfig loads configuration from the specified file path, then applies
// PLAYCHECK_* environment variable overrides.
// If the file doesn't exist, returns default configuration without error.
// If the file exists but is malformed, returns an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := applyYAML(cfg, data); err != nil {
			return nil, err
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "PLAYCHECK_"}); err != nil {
		return nil, fmt.Errorf("failed to parse environment overrides: %w", err)
	}

	return cfg, nil
}

// applyYAML merges values from a YAML document over cfg. Durations are
// carried as strings in YAML ("500ms") and parsed here.
func applyYAML(cfg *Config, data []byte) error {
	type yamlConfig struct {
		AutoRun        *bool  `yaml:"auto_run"`
		ShowDetails    *bool  `yaml:"show_details"`
		TriggerKey     string `yaml:"trigger_key"`
		TickRate       int    `yaml:"tick_rate"`
		DamageInterval string `yaml:"damage_interval"`
		LogLevel       string `yaml:"log_level"`
		LogDir         string `yaml:"log_dir"`
		History        *struct {
			Enabled  bool   `yaml:"enabled"`
			DBPath   string `yaml:"db_path"`
			KeepRuns *int   `yaml:"keep_runs"`
		} `yaml:"history"`
	}

	var yamlCfg yamlConfig
	if err := yaml.Unmarshal(data, &yamlCfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	if yamlCfg.AutoRun != nil {
		cfg.AutoRun = *yamlCfg.AutoRun
	}
	if yamlCfg.ShowDetails != nil {
		cfg.ShowDetails = *yamlCfg.ShowDetails
	}
	if yamlCfg.TriggerKey != "" {
		cfg.TriggerKey = yamlCfg.TriggerKey
	}
	if yamlCfg.TickRate != 0 {
		cfg.TickRate = yamlCfg.TickRate
	}
	if yamlCfg.DamageInterval != "" {
		interval, err := time.ParseDuration(yamlCfg.DamageInterval)
		if err != nil {
			return fmt.Errorf("invalid damage_interval format %q: %w", yamlCfg.DamageInterval, err)
		}
		cfg.DamageInterval = interval
	}
	if yamlCfg.LogLevel != "" {
		cfg.LogLevel = yamlCfg.LogLevel
	}
	if yamlCfg.LogDir != "" {
		cfg.LogDir = yamlCfg.LogDir
	}
	if yamlCfg.History != nil {
		if yamlCfg.History.DBPath != "" {
			cfg.History.DBPath = yamlCfg.History.DBPath
		}
		if yamlCfg.History.KeepRuns != nil {
			cfg.History.KeepRuns = *yamlCfg.History.KeepRuns
		}
		cfg.History.Enabled = yamlCfg.History.Enabled
	}

	return nil
}

// LoadConfigFromDir loads configuration from playcheck.yaml in the specified
// directory. If the directory or file doesn't exist, returns default
// configuration without error.
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, "playcheck.yaml"))
}

// Validate validates the configuration values.
// Returns an error if any values are invalid.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.TriggerKey) != 1 {
		return fmt.Errorf("trigger_key must be a single character, got %q", c.TriggerKey)
	}

	if c.TickRate <= 0 {
		return fmt.Errorf("tick_rate must be > 0, got %d", c.TickRate)
	}

	if c.DamageInterval <= 0 {
		return fmt.Errorf("damage_interval must be > 0, got %v", c.DamageInterval)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: trace, debug, info, warn, error", c.LogLevel)
	}

	if c.History.Enabled {
		if c.History.DBPath == "" {
			return fmt.Errorf("history.db_path cannot be empty when history is enabled")
		}
		if c.History.KeepRuns < 0 {
			return fmt.Errorf("history.keep_runs must be >= 0, got %d", c.History.KeepRuns)
		}
	}

	return nil
}

// TriggerRune returns the configured trigger key as a rune. Validate must
// have accepted the config first.
func (c *Config) TriggerRune() rune {
	r, _ := utf8.DecodeRuneInString(c.TriggerKey)
	return r
}
