package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is read when present. Real environment variables win over
// its entries.
const DefaultEnvFile = ".env"

const envPrefix = "TAILORHUB_"

// parseEnv overlays cfg with TAILORHUB_* variables. Values come from the
// process environment first and from envFile second; a missing envFile is
// not an error.
func parseEnv(cfg *Config, envFile string) error {
	fileVals := map[string]string{}
	if envFile != "" {
		vals, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			fileVals = vals
		case errors.Is(err, fs.ErrNotExist):
		default:
			return fmt.Errorf("read %s: %w", envFile, err)
		}
	}

	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(envPrefix + key); ok {
			return v, true
		}
		v, ok := fileVals[envPrefix+key]
		return v, ok
	}

	strVars := map[string]*string{
		"API_URL":         &cfg.APIBaseURL,
		"DB_PATH":         &cfg.DatabasePath,
		"LOG_LEVEL":       &cfg.LogLevel,
		"LOG_BACKEND":     &cfg.LogBackend,
		"METRICS_ADDR":    &cfg.MetricsAddr,
		"JAEGER_ENDPOINT": &cfg.JaegerEndpoint,
		"LOCALE":          &cfg.Locale,
	}
	for key, dst := range strVars {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}

	if v, ok := lookup("TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sTIMEOUT: %w", envPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
