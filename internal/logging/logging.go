package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/internal/config"
)

// Mode selects where log output goes.
type Mode int

const (
	// Console pretty-prints to stderr. Used by plain CLI commands.
	Console Mode = iota
	// File appends JSON lines to the config's log file. Used while the TUI
	// owns the terminal.
	File
)

// Setup configures the global zerolog logger. The returned closer releases
// the log file in File mode and is a no-op otherwise.
func Setup(cfg *config.Config, mode Mode) (io.Closer, error) {
	zerolog.SetGlobalLevel(level(cfg))

	switch mode {
	case File:
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile()), 0700); err != nil {
			return nil, fmt.Errorf("logging.Setup: create log dir: %w", err)
		}
		f, err := os.OpenFile(cfg.LogFile(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			return nil, fmt.Errorf("logging.Setup: open log file: %w", err)
		}
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
		return f, nil
	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out: os.Stderr,
		})
		return nopCloser{}, nil
	}
}

func level(cfg *config.Config) zerolog.Level {
	if lvl, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel)); err == nil && lvl != zerolog.NoLevel {
		return lvl
	}
	if cfg.IsEnvProduction() {
		return zerolog.InfoLevel
	}
	return zerolog.DebugLevel
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
