package contentapi

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

// Environment variables read by LoadConfig.
const (
	EnvBaseURL      = "CONTENT_API_URL"
	EnvClientID     = "CONTENT_API_CLIENT_ID"
	EnvClientSecret = "CONTENT_API_CLIENT_SECRET"
	EnvTokenURL     = "CONTENT_API_TOKEN_URL"
)

// Config holds the content API endpoint and its credentials.
type Config struct {
	// BaseURL is the root every API path is appended to.
	BaseURL string

	// ClientID, ClientSecret and TokenURL configure the client credentials
	// grant. Requests are sent without a token when ClientID is empty.
	ClientID     string
	ClientSecret string
	TokenURL     string
}

// LoadConfig reads the configuration from the environment after loading
// the given dotenv files, or ".env" when none are given. Missing dotenv
// files are ignored and variables already set in the environment win.
func LoadConfig(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading environment: %w", err)
	}

	cfg := &Config{
		BaseURL:      os.Getenv(EnvBaseURL),
		ClientID:     os.Getenv(EnvClientID),
		ClientSecret: os.Getenv(EnvClientSecret),
		TokenURL:     os.Getenv(EnvTokenURL),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is complete.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvBaseURL)
	}
	if c.ClientID != "" && c.TokenURL == "" {
		return fmt.Errorf("%w: %s", ErrMissingConfig, EnvTokenURL)
	}
	return nil
}
