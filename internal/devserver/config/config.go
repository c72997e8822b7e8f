// Package config handles configuration for the development backend:
// defaults, an optional JSON file and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - Addr: HTTP listen address.
//   - SecretKey: HMAC secret for signing bearer tokens (HS256).
//   - TokenTTL: lifetime of issued tokens.
//   - LogLevel / LogBackend: logger selection, see logging.New.
//   - Seed: load the demo catalog and accounts on start.
type Config struct {
	Addr       string
	SecretKey  string
	TokenTTL   time.Duration
	LogLevel   string
	LogBackend string
	Seed       bool
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret is for local use only.
func (c *Config) LoadDefaults() {
	c.Addr = ":5000"
	c.SecretKey = "secretKey"
	c.TokenTTL = 24 * time.Hour
	c.LogLevel = "info"
	c.LogBackend = "slog"
	c.Seed = true
}

func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("listen address is empty")
	}
	if c.SecretKey == "" {
		return fmt.Errorf("secret key is empty")
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}

// LoadConfig applies defaults, then the JSON file named by -c/-config, then
// flags from args.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
