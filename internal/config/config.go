package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
	"github.com/joho/godotenv"
)

// DefaultScorecardBaseURL is the College Scorecard schools endpoint.
const DefaultScorecardBaseURL = "https://api.data.gov/ed/collegescorecard/v1/schools"

// APIKeyEnv names the variable holding the Scorecard credential. The key is
// read on every Scorecard operation and is not part of Config.
const APIKeyEnv = "COLLEGE_SCORECARD_API_KEY"

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// College Scorecard API configuration.
	ScorecardBaseURL        string
	ScorecardTimeout        time.Duration
	ScorecardDefaultPerPage int
}

// Load reads configuration from environment variables, applying defaults where unset.
// Variables from .env.local and .env are loaded first; real environment
// variables take precedence over both.
func Load() (*Config, error) {
	if err := loadEnvFiles(); err != nil {
		return nil, err
	}

	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	scorecardTimeout, err := time.ParseDuration(sharedcfg.EnvOrDefault("SCORECARD_TIMEOUT", "10s"))
	if err != nil || scorecardTimeout <= 0 {
		return nil, errors.New("invalid SCORECARD_TIMEOUT")
	}

	perPage, err := parsePerPage()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:       sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		ScorecardBaseURL:        sharedcfg.EnvOrDefault("SCORECARD_BASE_URL", DefaultScorecardBaseURL),
		ScorecardTimeout:        scorecardTimeout,
		ScorecardDefaultPerPage: perPage,
	}

	if cfg.ScorecardBaseURL == "" {
		return nil, errors.New("SCORECARD_BASE_URL is required")
	}

	return cfg, nil
}

// APIKey returns the current Scorecard credential from the environment.
func APIKey() string {
	return os.Getenv(APIKeyEnv)
}

func parsePerPage() (int, error) {
	s := sharedcfg.EnvOrDefault("SCORECARD_DEFAULT_PER_PAGE", "20")
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 100 {
		return 0, fmt.Errorf("invalid SCORECARD_DEFAULT_PER_PAGE %q: must be between 1 and 100", s)
	}
	return n, nil
}

// loadEnvFiles loads .env.local then .env. godotenv never overrides variables
// that are already set, so .env.local wins over .env. Missing files are ignored.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}
