package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/exp/slices"
)

var levels = []string{"debug", "info", "warn", "error"}

type LoggerConfig struct {
	Level  string `yaml:"level"`
	IsJSON bool   `yaml:"is_json"`
}

func (c *LoggerConfig) Validate() error {
	if c.Level == "" {
		return nil
	}

	if !slices.Contains(levels, strings.ToLower(c.Level)) {
		return errors.Errorf("unknown log level %q, expected one of %s", c.Level, strings.Join(levels, ", "))
	}

	return nil
}

// InitLogger installs the default logger. Records go to stderr, stdout is
// left for the command's result.
func InitLogger(cfg *LoggerConfig, attrs ...slog.Attr) {
	slog.SetDefault(NewLogger(cfg, os.Stderr, attrs...))
}

func NewLogger(cfg *LoggerConfig, w io.Writer, attrs ...slog.Attr) *slog.Logger {
	var h slog.Handler

	var level slog.Level

	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.IsJSON {
		h = slog.NewJSONHandler(w, opts)
	} else {
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h.WithAttrs(attrs))
}
