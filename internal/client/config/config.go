package config

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/dmitrijs2005/tailorhub/internal/logging"
)

// Config holds runtime settings for the tailorhub terminal client.
//
// Fields:
//   - APIBaseURL: versioned REST base URL of the marketplace backend.
//   - RequestTimeout: per-request HTTP timeout.
//   - DatabasePath: SQLite file holding the persisted session token.
//   - LogLevel, LogBackend: see logging.New.
//   - MetricsAddr: host:port for the Prometheus endpoint; empty disables it.
//   - JaegerEndpoint: collector URL for traces; empty disables tracing.
//   - Locale: BCP 47 tag used to format amounts.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	DatabasePath   string
	LogLevel       string
	LogBackend     string
	MetricsAddr    string
	JaegerEndpoint string
	Locale         string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:5000/api/v1"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "tailorhub.db"
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
	c.MetricsAddr = ""
	c.JaegerEndpoint = ""
	c.Locale = "en-IN"
}

// Validate checks values that cannot be fixed up later.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api base url is empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	switch strings.ToLower(c.LogBackend) {
	case logging.BackendSlog, logging.BackendZap:
	default:
		return fmt.Errorf("unknown log backend %q", c.LogBackend)
	}
	if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q: %w", c.Locale, err)
	}
	return nil
}

// Language returns the parsed Locale, falling back to English.
func (c *Config) Language() language.Tag {
	tag, err := language.Parse(c.Locale)
	if err != nil {
		return language.English
	}
	return tag
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment (.env included), a config file and command-line flags.
// Later sources take precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, DefaultEnvFile); err != nil {
		return nil, err
	}
	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
