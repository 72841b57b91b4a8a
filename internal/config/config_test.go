package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d", cfg.Version, CurrentVersion)
	}
	if cfg.Scan.Workers <= 0 {
		t.Error("Scan.Workers should be positive")
	}
	if cfg.Scan.HotspotLimit <= 0 {
		t.Error("Scan.HotspotLimit should be positive")
	}
	if len(cfg.Scan.Ignore) == 0 {
		t.Error("Scan.Ignore should have defaults")
	}
	if cfg.Scoring.ComplexityTarget <= 0 {
		t.Error("Scoring defaults not populated")
	}
	if !cfg.Blame.ExcludeBots || len(cfg.Blame.BotPatterns) == 0 {
		t.Error("Blame defaults not populated")
	}
	if cfg.Layers.RulesPath != "" {
		t.Error("layer checking should be off by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config does not validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"default ok", func(*Config) {}, false},
		{"unsupported version", func(c *Config) { c.Version = 99 }, true},
		{"negative workers", func(c *Config) { c.Scan.Workers = -1 }, true},
		{"negative hotspot limit", func(c *Config) { c.Scan.HotspotLimit = -1 }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"json log format", func(c *Config) { c.Logging.Format = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("Validate() should return error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate() returned unexpected error: %v", err)
			}
			if err != nil {
				if _, ok := err.(*Error); !ok {
					t.Errorf("Validate() error type = %T, want *Error", err)
				}
			}
		})
	}
}

func TestLoadDefault(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Version != CurrentVersion {
		t.Errorf("Version = %d, want %d (default)", cfg.Version, CurrentVersion)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	lensDir := filepath.Join(tmpDir, ".lens")
	if err := os.MkdirAll(lensDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	configContent := `{
		"version": 1,
		"scan": {"workers": 8, "hotspotLimit": 25},
		"scoring": {"complexityTarget": 12},
		"logging": {"format": "json", "level": "debug"}
	}`
	if err := os.WriteFile(filepath.Join(lensDir, "config.json"), []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Scan.Workers != 8 || cfg.Scan.HotspotLimit != 25 {
		t.Errorf("scan = %+v, want workers 8 limit 25", cfg.Scan)
	}
	if cfg.Scoring.ComplexityTarget != 12 {
		t.Errorf("ComplexityTarget = %v, want 12", cfg.Scoring.ComplexityTarget)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Logging.Format = %q, want json", cfg.Logging.Format)
	}
	// Values absent from the file keep their defaults.
	if cfg.Scan.MaxFileSizeBytes != DefaultConfig().Scan.MaxFileSizeBytes {
		t.Errorf("MaxFileSizeBytes = %d, default not preserved", cfg.Scan.MaxFileSizeBytes)
	}
	if cfg.RepoRoot != tmpDir {
		t.Errorf("RepoRoot = %q, want %q", cfg.RepoRoot, tmpDir)
	}
}

func TestLoadIdentityOverlay(t *testing.T) {
	tmpDir := t.TempDir()
	lensDir := filepath.Join(tmpDir, ".lens")
	if err := os.MkdirAll(lensDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	identity := "excludeBots: false\naliases:\n  old@x.com: canonical@x.com\n"
	if err := os.WriteFile(filepath.Join(lensDir, "identity.yaml"), []byte(identity), 0644); err != nil {
		t.Fatalf("write identity: %v", err)
	}

	// No config.json: identity.yaml still overlays the blame defaults.
	cfg, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Blame.ExcludeBots {
		t.Error("identity.yaml excludeBots override not applied")
	}
	if cfg.Blame.Aliases["old@x.com"] != "canonical@x.com" {
		t.Errorf("Aliases = %v, want old@x.com mapped", cfg.Blame.Aliases)
	}
	if len(cfg.Blame.BotPatterns) == 0 {
		t.Error("blame defaults lost during overlay")
	}

	// identity.yaml wins over the blame section of config.json.
	configContent := `{"version": 1, "blame": {"excludeBots": true}}`
	if err := os.WriteFile(filepath.Join(lensDir, "config.json"), []byte(configContent), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Blame.ExcludeBots {
		t.Error("identity.yaml should overlay config.json blame settings")
	}
}

func TestLoadIdentityMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	lensDir := filepath.Join(tmpDir, ".lens")
	if err := os.MkdirAll(lensDir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(lensDir, "identity.yaml"), []byte(": not yaml"), 0644); err != nil {
		t.Fatalf("write identity: %v", err)
	}

	if _, err := Load(tmpDir); err == nil {
		t.Error("Load() accepted malformed identity.yaml")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Scan.Workers = 12
	if err := cfg.Save(tmpDir); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(filepath.Join(tmpDir, ".lens", "config.json")); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	loaded, err := Load(tmpDir)
	if err != nil {
		t.Fatalf("Load() after save error = %v", err)
	}
	if loaded.Scan.Workers != 12 {
		t.Errorf("loaded Scan.Workers = %d, want 12", loaded.Scan.Workers)
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Field: "version", Message: "unsupported config version 99"}
	want := "config error in field 'version': unsupported config version 99"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
