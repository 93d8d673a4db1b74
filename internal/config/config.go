// Package config loads scour's settings from ~/.scour/config.yaml with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"gopkg.in/yaml.v3"
)

// Density modes for the results list.
const (
	DensityComfortable = "comfortable"
	DensityCompact     = "compact"
)

// Config is the persistent application configuration.
type Config struct {
	// BaseURL is the search backend, e.g. http://127.0.0.1:5000.
	BaseURL string `yaml:"base_url"`
	// Timeout bounds a single HTTP request. Scraping tasks are slow.
	Timeout time.Duration `yaml:"timeout"`
	// RequestsPerSecond paces calls to the backend. Zero disables pacing.
	RequestsPerSecond float64 `yaml:"requests_per_second"`

	ErrorDismiss      time.Duration `yaml:"error_dismiss"`
	StillWorkingDelay time.Duration `yaml:"still_working_delay"`
	PopupFade         time.Duration `yaml:"popup_fade"`

	// DataDir holds the history database and the event log.
	DataDir string `yaml:"data_dir"`

	UI UIConfig `yaml:"ui"`
}

// UIConfig holds UI preferences.
type UIConfig struct {
	Density     string `yaml:"density"` // "comfortable" or "compact"
	RecentLimit int    `yaml:"recent_limit"`
	CopyOnOpen  *bool  `yaml:"copy_on_open,omitempty"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{}
	c.defaults()
	return c
}

func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "http://127.0.0.1:5000"
	}
	if c.Timeout <= 0 {
		c.Timeout = 2 * time.Minute
	}
	if c.RequestsPerSecond < 0 {
		c.RequestsPerSecond = 0
	}
	if c.ErrorDismiss <= 0 {
		c.ErrorDismiss = 5 * time.Second
	}
	if c.StillWorkingDelay <= 0 {
		c.StillWorkingDelay = 5 * time.Second
	}
	if c.PopupFade <= 0 {
		c.PopupFade = 300 * time.Millisecond
	}
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.UI.Density == "" {
		c.UI.Density = DensityComfortable
	}
	if c.UI.RecentLimit <= 0 {
		c.UI.RecentLimit = 8
	}
	if c.UI.CopyOnOpen == nil {
		on := true
		c.UI.CopyOnOpen = &on
	}
}

func defaultDataDir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".scour")
}

// Path returns the default config file location.
func Path() string {
	return filepath.Join(defaultDataDir(), "config.yaml")
}

// HistoryPath is the SQLite history database inside DataDir.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.DataDir, "history.db")
}

// EventLogPath is the JSONL event log inside DataDir.
func (c *Config) EventLogPath() string {
	return filepath.Join(c.DataDir, "events.jsonl")
}

// CopyEnabled reports whether opening a result copies its URL.
func (c *Config) CopyEnabled() bool {
	return c.UI.CopyOnOpen == nil || *c.UI.CopyOnOpen
}

// Load reads the YAML file at path (Path() when empty), fills defaults and
// applies environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = Path()
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return nil, err
	}
	cfg.defaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides fields from SCOUR_BASE_URL, SCOUR_TIMEOUT and
// SCOUR_DATA_DIR.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv("SCOUR_BASE_URL"); v != "" {
		c.BaseURL = v
	}
	if v := getenv("SCOUR_TIMEOUT"); v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("SCOUR_TIMEOUT: %w", err)
		}
		c.Timeout = d
	}
	if v := getenv("SCOUR_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	return nil
}

// parseDuration accepts Go durations ("90s") or bare seconds ("90").
func parseDuration(v string) (time.Duration, error) {
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(v)
}

// Validate checks the configuration after defaults are applied.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.Timeout, validation.Min(time.Second)),
		validation.Field(&c.RequestsPerSecond, validation.Min(0.0)),
		validation.Field(&c.ErrorDismiss, validation.Min(100*time.Millisecond)),
		validation.Field(&c.StillWorkingDelay, validation.Min(100*time.Millisecond)),
		validation.Field(&c.PopupFade, validation.Min(time.Duration(0))),
		validation.Field(&c.DataDir, validation.Required),
		validation.Field(&c.UI),
	)
}

// Validate checks UI preferences.
func (u UIConfig) Validate() error {
	return validation.ValidateStruct(&u,
		validation.Field(&u.Density, validation.In(DensityComfortable, DensityCompact)),
		validation.Field(&u.RecentLimit, validation.Min(1), validation.Max(50)),
	)
}

func httpURL(value any) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.New("must be an http(s) URL")
	}
	return nil
}

// Save writes the config as YAML to path (Path() when empty).
func (c *Config) Save(path string) error {
	if path == "" {
		path = Path()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
