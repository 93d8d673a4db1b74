package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"SCOUR_BASE_URL", "SCOUR_TIMEOUT", "SCOUR_DATA_DIR"} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:5000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.ErrorDismiss != 5*time.Second || cfg.StillWorkingDelay != 5*time.Second {
		t.Errorf("timers = %v / %v", cfg.ErrorDismiss, cfg.StillWorkingDelay)
	}
	if cfg.PopupFade != 300*time.Millisecond {
		t.Errorf("PopupFade = %v", cfg.PopupFade)
	}
	if cfg.UI.Density != DensityComfortable || !cfg.CopyEnabled() {
		t.Errorf("UI = %+v", cfg.UI)
	}
}

func TestLoadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := `
base_url: https://search.example.com
timeout: 45s
requests_per_second: 2.5
error_dismiss: 3s
popup_fade: 150ms
data_dir: /tmp/scour-test
ui:
  density: compact
  recent_limit: 4
  copy_on_open: false
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "https://search.example.com" || cfg.Timeout != 45*time.Second {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.RequestsPerSecond != 2.5 || cfg.ErrorDismiss != 3*time.Second || cfg.PopupFade != 150*time.Millisecond {
		t.Errorf("cfg = %+v", cfg)
	}
	// Unset keys still get defaults.
	if cfg.StillWorkingDelay != 5*time.Second {
		t.Errorf("StillWorkingDelay = %v", cfg.StillWorkingDelay)
	}
	if cfg.UI.Density != DensityCompact || cfg.UI.RecentLimit != 4 || cfg.CopyEnabled() {
		t.Errorf("UI = %+v", cfg.UI)
	}
	if cfg.HistoryPath() != "/tmp/scour-test/history.db" || cfg.EventLogPath() != "/tmp/scour-test/events.jsonl" {
		t.Errorf("paths = %s %s", cfg.HistoryPath(), cfg.EventLogPath())
	}
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCOUR_BASE_URL", "http://localhost:9999")
	t.Setenv("SCOUR_TIMEOUT", "30")
	t.Setenv("SCOUR_DATA_DIR", "/var/tmp/scour")

	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("base_url: http://ignored:1\n"), 0644)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.BaseURL != "http://localhost:9999" || cfg.Timeout != 30*time.Second || cfg.DataDir != "/var/tmp/scour" {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestApplyEnvBadTimeout(t *testing.T) {
	cfg := &Config{}
	env := map[string]string{"SCOUR_TIMEOUT": "soon"}
	if err := cfg.ApplyEnv(func(k string) string { return env[k] }); err == nil {
		t.Fatal("expected error for bad timeout")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad scheme", func(c *Config) { c.BaseURL = "ftp://x" }, "BaseURL"},
		{"no host", func(c *Config) { c.BaseURL = "http://" }, "BaseURL"},
		{"short timeout", func(c *Config) { c.Timeout = time.Millisecond }, "Timeout"},
		{"negative rate", func(c *Config) { c.RequestsPerSecond = -1 }, "RequestsPerSecond"},
		{"bad density", func(c *Config) { c.UI.Density = "roomy" }, "Density"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}

	if err := Default().Validate(); err != nil {
		t.Errorf("defaults invalid: %v", err)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	os.WriteFile(path, []byte("base_url: not-a-url\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error")
	}

	os.WriteFile(path, []byte("base_url: [\n"), 0644)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.BaseURL = "http://10.0.0.2:5000"
	cfg.ErrorDismiss = 7 * time.Second
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.BaseURL != cfg.BaseURL || got.ErrorDismiss != cfg.ErrorDismiss {
		t.Errorf("round trip = %+v", got)
	}
}
