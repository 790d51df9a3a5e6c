package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/Veraticus/ats-resume-optimizer/internal/common"
	"github.com/Veraticus/ats-resume-optimizer/internal/optimizer"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Environment variables consulted when viper has no service URL.
const (
	EnvAPIURL     = "ATS_API_URL"
	EnvViteAPIURL = "VITE_API_URL"
)

// ServiceConfig holds the settings for the analysis service.
type ServiceConfig struct {
	URL       string
	UserAgent string
	Timeout   time.Duration
}

// DefaultServiceConfig returns the local development settings.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		URL: optimizer.DefaultEndpoint,
	}
}

// Validate checks that the configuration can be used to build a client.
func (c ServiceConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("%w: service URL", common.ErrMissingConfig)
	}
	if _, err := optimizer.ParseEndpoint(c.URL); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%w: service timeout must not be negative: %s", common.ErrInvalidConfig, c.Timeout)
	}
	return nil
}

// NewClient builds the HTTP client for this configuration.
func (c ServiceConfig) NewClient() (*optimizer.Client, error) {
	return optimizer.New(optimizer.Config{
		Endpoint:  c.URL,
		UserAgent: c.UserAgent,
	})
}

// LoadServiceConfig loads the analysis service configuration.
// It follows this precedence:
// 1. Viper configuration (from config file or ATS_ env vars)
// 2. Direct environment variables (ATS_API_URL, then VITE_API_URL)
// 3. Default values
func LoadServiceConfig() (*ServiceConfig, error) {
	config := DefaultServiceConfig()

	switch {
	case viper.GetString("service.url") != "":
		config.URL = viper.GetString("service.url")
	case os.Getenv(EnvAPIURL) != "":
		config.URL = os.Getenv(EnvAPIURL)
	case os.Getenv(EnvViteAPIURL) != "":
		config.URL = os.Getenv(EnvViteAPIURL)
	}

	if viper.IsSet("service.timeout") {
		config.Timeout = viper.GetDuration("service.timeout")
	}
	if v := viper.GetString("service.user_agent"); v != "" {
		config.UserAgent = v
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// LoadDotEnv loads variables from the given files, or .env in the working
// directory when none are given. Missing files are skipped and variables
// already in the environment are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
		slog.Debug("Loaded environment file", "path", path)
	}
	return nil
}
