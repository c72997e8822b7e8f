package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/tailorhub/internal/flagx"
	"github.com/dmitrijs2005/tailorhub/internal/timex"
)

// JSONConfig is the file representation of Config. Durations accept "24h"
// strings or integer nanoseconds. Absent fields keep their current value.
type JSONConfig struct {
	Addr       string         `json:"addr"`
	SecretKey  string         `json:"secret_key"`
	TokenTTL   timex.Duration `json:"token_ttl"`
	LogLevel   string         `json:"log_level"`
	LogBackend string         `json:"log_backend"`
	Seed       *bool          `json:"seed"`
}

func configFile(args []string) string {
	var path string
	fs := flag.NewFlagSet("config-file", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "path to config file")
	fs.StringVar(&path, "c", "", "path to config file (short)")
	_ = fs.Parse(flagx.FilterArgs(args, []string{"-c", "-config", "--config"}))
	return path
}

func parseJSON(cfg *Config, args []string) error {
	path := configFile(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}

	if c.Addr != "" {
		cfg.Addr = c.Addr
	}
	if c.SecretKey != "" {
		cfg.SecretKey = c.SecretKey
	}
	if c.TokenTTL.Duration != 0 {
		cfg.TokenTTL = c.TokenTTL.Duration
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.LogBackend != "" {
		cfg.LogBackend = c.LogBackend
	}
	if c.Seed != nil {
		cfg.Seed = *c.Seed
	}
	return nil
}
