package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/tailorhub/internal/flagx"
	"github.com/dmitrijs2005/tailorhub/internal/timex"
)

// FileConfig is the on-disk DTO. Durations go through timex.Duration so a
// file may spell them as "10s" or as integer nanoseconds. Empty fields leave
// the current value alone.
type FileConfig struct {
	APIBaseURL     string         `json:"api_base_url" yaml:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	DatabasePath   string         `json:"database_path" yaml:"database_path"`
	LogLevel       string         `json:"log_level" yaml:"log_level"`
	LogBackend     string         `json:"log_backend" yaml:"log_backend"`
	MetricsAddr    string         `json:"metrics_addr" yaml:"metrics_addr"`
	JaegerEndpoint string         `json:"jaeger_endpoint" yaml:"jaeger_endpoint"`
	Locale         string         `json:"locale" yaml:"locale"`
}

// parseFile overlays cfg with the file named by -c / -config. Files ending
// in .yaml or .yml are decoded as YAML, everything else as JSON.
func parseFile(cfg *Config) error {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return nil
	}
	return loadFile(cfg, path)
}

func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc FileConfig) apply(cfg *Config) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.APIBaseURL, fc.APIBaseURL)
	set(&cfg.DatabasePath, fc.DatabasePath)
	set(&cfg.LogLevel, fc.LogLevel)
	set(&cfg.LogBackend, fc.LogBackend)
	set(&cfg.MetricsAddr, fc.MetricsAddr)
	set(&cfg.JaegerEndpoint, fc.JaegerEndpoint)
	set(&cfg.Locale, fc.Locale)
	if fc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
}
