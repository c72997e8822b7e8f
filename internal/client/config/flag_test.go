package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected *Config
		name     string
		args     []string
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-a", "http://10.0.0.2:5000/api/v1", "-t", "30", "-d", "/tmp/th.db", "-l", "debug", "-m", ":9464", "-j", "http://jaeger"},
			expected: &Config{
				APIBaseURL: "http://10.0.0.2:5000/api/v1", RequestTimeout: 30 * time.Second, DatabasePath: "/tmp/th.db",
				LogLevel: "debug", MetricsAddr: ":9464", JaegerEndpoint: "http://jaeger",
			},
		},
		{
			name:     "foreign flags ignored, timeout kept when not given",
			args:     []string{"cmd", "-c", "cfg.json", "-x", "-a=http://h/api/v1"},
			expected: &Config{APIBaseURL: "http://h/api/v1", RequestTimeout: 5 * time.Second},
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args
			cfg := &Config{RequestTimeout: 5 * time.Second}

			err := parseFlags(cfg)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
