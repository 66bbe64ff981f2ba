package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/erazemk/zaloga/internal/config"
)

// setupLogger configures the default slog logger. Logs go to stderr, since
// stdout carries command output, and additionally to cfg.File when set.
// Returns a cleanup function that closes the log file.
func setupLogger(cfg config.LogConfig) (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q", cfg.Level)
	}

	cleanup := func() {}
	w := io.Writer(os.Stderr)

	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		w = io.MultiWriter(os.Stderr, f)
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return cleanup, nil
}
