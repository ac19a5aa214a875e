package config

import (
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	APIBaseURL         string
	SessionFile        string
	HTTPTimeoutSeconds int
	InlineLimit        int
}

func ProcessEnvironmentVariables() (*Config, error) {
	// In all cases the default behavior should be for the local bankmock setup
	env := Config{
		APIBaseURL:         "http://localhost:8080",
		SessionFile:        defaultSessionFile(),
		HTTPTimeoutSeconds: 30,
		InlineLimit:        4,
	}

	envAPIBaseURL := os.Getenv("PORTAL_API_URL")
	envSessionFile := os.Getenv("PORTAL_SESSION_FILE")
	envHTTPTimeout := os.Getenv("PORTAL_HTTP_TIMEOUT_SECONDS")
	envInlineLimit := os.Getenv("PORTAL_INLINE_LIMIT")

	if len(envAPIBaseURL) != 0 {
		env.APIBaseURL = envAPIBaseURL
	}

	if len(envSessionFile) != 0 {
		env.SessionFile = envSessionFile
	}

	if len(envHTTPTimeout) != 0 {
		v, err := strconv.Atoi(envHTTPTimeout)
		if err != nil {
			return nil, err
		}
		env.HTTPTimeoutSeconds = v
	}

	if len(envInlineLimit) != 0 {
		v, err := strconv.Atoi(envInlineLimit)
		if err != nil {
			return nil, err
		}
		env.InlineLimit = v
	}

	return &env, nil
}

func defaultSessionFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "portal-session.json"
	}
	return filepath.Join(dir, "easybank-portal", "session.json")
}
