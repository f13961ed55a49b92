package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix for every setting.
const Prefix = "tracectl"

// Config represents the application configuration structure
type Config struct {
	Environment string `default:"prod"`

	// APIURL is the backend origin; APIBasePath is prefixed to every endpoint.
	APIURL      string `envconfig:"API_URL" default:"http://localhost:5000"`
	APIBasePath string `envconfig:"API_BASE_PATH" default:"/api"`

	// WebURL is the origin of the browser admin panel. Empty means APIURL.
	WebURL string `envconfig:"WEB_URL"`

	// HomeDir holds the credential store and the log file.
	HomeDir string `envconfig:"HOME_DIR"`

	// LogLevel overrides the environment's default level when set.
	LogLevel string `envconfig:"LOG_LEVEL"`
}

// LoadFromEnv loads a new configuration structure using environment variables and an optional .env file
func LoadFromEnv() (*Config, error) {
	// Load a .env file if it exists
	_ = godotenv.Overload()

	cfg := new(Config)
	if err := envconfig.Process(Prefix, cfg); err != nil {
		return nil, fmt.Errorf("config.LoadFromEnv: %w", err)
	}
	if err := cfg.normalize(); err != nil {
		return nil, fmt.Errorf("config.LoadFromEnv: %w", err)
	}
	return cfg, nil
}

func (cfg *Config) normalize() error {
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.APIBasePath != "" && !strings.HasPrefix(cfg.APIBasePath, "/") {
		cfg.APIBasePath = "/" + cfg.APIBasePath
	}
	cfg.APIBasePath = strings.TrimRight(cfg.APIBasePath, "/")
	if cfg.WebURL == "" {
		cfg.WebURL = cfg.APIURL
	}
	cfg.WebURL = strings.TrimRight(cfg.WebURL, "/")
	if cfg.HomeDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("get home dir: %w", err)
		}
		cfg.HomeDir = filepath.Join(home, ".tracectl")
	}
	return nil
}

// IsEnvProduction returns whether the application runs in production mode
func (cfg *Config) IsEnvProduction() bool {
	return strings.ToLower(cfg.Environment) == "prod"
}

// APIBase returns the origin plus base path every gateway URL starts with.
func (cfg *Config) APIBase() string {
	return cfg.APIURL + cfg.APIBasePath
}

// LogFile is where the TUI writes its log while it owns the terminal.
func (cfg *Config) LogFile() string {
	return filepath.Join(cfg.HomeDir, "tracectl.log")
}
