package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/justtldr/cli/internal/fetch"
)

type Cfg struct {
	SettingsPath string
	HTTP         HTTP
	Debug        bool
}

type HTTP struct {
	Timeout   time.Duration
	UserAgent string
}

// Load reads process configuration, seeding the environment from a .env file
// in the working directory when one exists.
func Load() *Cfg {
	_ = godotenv.Load()

	return &Cfg{
		SettingsPath: env("TLDR_SETTINGS_PATH", ""),
		HTTP: HTTP{
			Timeout:   time.Duration(envInt("TLDR_HTTP_TIMEOUT", int(fetch.DefaultTimeout/time.Second))) * time.Second,
			UserAgent: env("TLDR_USER_AGENT", fetch.DefaultUserAgent),
		},
		Debug: envBool("TLDR_DEBUG"),
	}
}

// FetchOptions returns the HTTP client options for this configuration.
func (c *Cfg) FetchOptions() fetch.Options {
	return fetch.Options{
		Timeout:   c.HTTP.Timeout,
		UserAgent: c.HTTP.UserAgent,
		Debug:     c.Debug,
	}
}

func env(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "true" || v == "1" || v == "yes"
}
