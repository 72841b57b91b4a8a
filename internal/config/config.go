// Package config loads and persists the engine configuration from
// .lens/config.json under the repository root.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"lens/internal/blame"
	"lens/internal/score"
)

// CurrentVersion is the supported config schema version.
const CurrentVersion = 1

// Config is the complete engine configuration.
type Config struct {
	Version  int    `json:"version" mapstructure:"version"`
	RepoRoot string `json:"repoRoot" mapstructure:"repoRoot"`

	Scan    ScanConfig    `json:"scan" mapstructure:"scan"`
	Scoring score.Config  `json:"scoring" mapstructure:"scoring"`
	Blame   blame.Config  `json:"blame" mapstructure:"blame"`
	Layers  LayersConfig  `json:"layers" mapstructure:"layers"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// ScanConfig controls the directory scan.
type ScanConfig struct {
	Workers          int      `json:"workers" mapstructure:"workers"`
	HotspotLimit     int      `json:"hotspotLimit" mapstructure:"hotspotLimit"`
	MaxFileSizeBytes int      `json:"maxFileSizeBytes" mapstructure:"maxFileSizeBytes"`
	Ignore           []string `json:"ignore" mapstructure:"ignore"`
}

// LayersConfig points at the optional TOML layer-rule file, relative to the
// repository root. Empty path disables layer checking.
type LayersConfig struct {
	RulesPath string `json:"rulesPath" mapstructure:"rulesPath"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Version:  CurrentVersion,
		RepoRoot: ".",
		Scan: ScanConfig{
			Workers:          4,
			HotspotLimit:     10,
			MaxFileSizeBytes: 1000000,
			Ignore:           []string{"node_modules", "vendor", "build", "dist", ".git"},
		},
		Scoring: score.DefaultConfig(),
		Blame:   blame.DefaultConfig(),
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// Load reads .lens/config.json under repoRoot. A missing file yields the
// defaults; a present file overlays them.
func Load(repoRoot string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(filepath.Join(repoRoot, ".lens"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			cfg := DefaultConfig()
			cfg.RepoRoot = repoRoot
			if err := cfg.loadIdentity(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}
	cfg.RepoRoot = repoRoot
	if err := cfg.loadIdentity(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadIdentity overlays author identity overrides from .lens/identity.yaml
// onto the blame configuration. The file is optional.
func (c *Config) loadIdentity() error {
	path := filepath.Join(c.RepoRoot, ".lens", "identity.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	overlaid, err := blame.LoadConfig(data, c.Blame)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	c.Blame = overlaid
	return nil
}

// Save writes the configuration to .lens/config.json, creating the
// directory if needed.
func (c *Config) Save(repoRoot string) error {
	dir := filepath.Join(repoRoot, ".lens")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, "config.json"), data, 0644)
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return &Error{Field: "version", Message: fmt.Sprintf("unsupported config version %d", c.Version)}
	}
	if c.Scan.Workers < 0 {
		return &Error{Field: "scan.workers", Message: "must not be negative"}
	}
	if c.Scan.HotspotLimit < 0 {
		return &Error{Field: "scan.hotspotLimit", Message: "must not be negative"}
	}
	switch c.Logging.Format {
	case "", "human", "json":
	default:
		return &Error{Field: "logging.format", Message: "must be human or json"}
	}
	return nil
}

// Error is a configuration validation error.
type Error struct {
	Field   string
	Message string
}

func (e *Error) Error() string {
	return "config error in field '" + e.Field + "': " + e.Message
}
