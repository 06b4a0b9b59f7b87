package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const defaultAPIBaseURL = "https://hn.algolia.com/api/v1"

// Config holds runtime settings for the app.
type Config struct {
	APIBaseURL  string
	HitsPerPage int
	HTTPTimeout time.Duration
	LogLevel    string
	LogPath     string
}

func LoadFromEnv() (Config, error) {
	cfg := Config{
		APIBaseURL: os.Getenv("FRONTPAGE_API_BASE_URL"),
		LogLevel:   os.Getenv("FRONTPAGE_LOG_LEVEL"),
		LogPath:    os.Getenv("FRONTPAGE_LOG_PATH"),
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	var err error
	cfg.HitsPerPage, err = intFromEnv("FRONTPAGE_HITS_PER_PAGE", 20)
	if err != nil {
		return Config{}, err
	}
	timeoutSeconds, err := intFromEnv("FRONTPAGE_HTTP_TIMEOUT_SECONDS", 10)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTPTimeout = time.Duration(timeoutSeconds) * time.Second

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("APIBaseURL is required")
	}
	if c.APIBaseURL[len(c.APIBaseURL)-1] == '/' {
		return fmt.Errorf("APIBaseURL must not end with '/': %s", c.APIBaseURL)
	}
	if c.HitsPerPage < 1 || c.HitsPerPage > 100 {
		return fmt.Errorf("HitsPerPage must be between 1 and 100: %d", c.HitsPerPage)
	}
	if c.HTTPTimeout < time.Second {
		return fmt.Errorf("HTTPTimeout must be at least 1s: %s", c.HTTPTimeout)
	}
	return nil
}

func intFromEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %q", key, raw)
	}
	return value, nil
}
