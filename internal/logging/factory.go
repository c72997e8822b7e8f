package logging

import (
	"log/slog"
	"os"
	"strings"
)

const (
	BackendSlog = "slog"
	BackendZap  = "zap"
)

// New returns a Logger for the configured backend. The slog backend writes
// text to stderr; the zap backend writes JSON to stderr.
func New(backend, level string) (Logger, error) {
	if strings.EqualFold(backend, BackendZap) {
		zl, err := NewProductionZap(level)
		if err != nil {
			return nil, err
		}
		return NewZapLogger(zl), nil
	}
	return NewTextLogger(os.Stderr, parseSlogLevel(level)), nil
}

func parseSlogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return slog.LevelInfo
	}
	return l
}
