package logging

import (
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mfgtrace/tracectl/internal/config"
)

func TestLevel(t *testing.T) {
	tests := []struct {
		name string
		env  string
		lvl  string
		want zerolog.Level
	}{
		{"prod default", "prod", "", zerolog.InfoLevel},
		{"prod warn", "prod", "warn", zerolog.WarnLevel},
		{"prod debug", "prod", "DEBUG", zerolog.DebugLevel},
		{"dev default", "dev", "", zerolog.DebugLevel},
		{"dev warn kept", "dev", "warn", zerolog.WarnLevel},
		{"dev info kept", "dev", "info", zerolog.InfoLevel},
		{"dev trace kept", "dev", "trace", zerolog.TraceLevel},
		{"garbage falls back", "prod", "loud", zerolog.InfoLevel},
		{"dev garbage falls back", "dev", "loud", zerolog.DebugLevel},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &config.Config{Environment: tc.env, LogLevel: tc.lvl}
			if got := level(cfg); got != tc.want {
				t.Errorf("level() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSetupFile(t *testing.T) {
	prev := log.Logger
	defer func() { log.Logger = prev }()

	cfg := &config.Config{Environment: "prod", LogLevel: "info", HomeDir: t.TempDir()}
	closer, err := Setup(cfg, File)
	if err != nil {
		t.Fatalf("Setup() error: %v", err)
	}
	log.Info().Str("endpoint", "/products").Msg("hello")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}

	data, err := os.ReadFile(cfg.LogFile())
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"endpoint":"/products"`) {
		t.Errorf("log file = %q, want endpoint field", data)
	}
}
