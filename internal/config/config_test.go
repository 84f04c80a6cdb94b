package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/justtldr/cli/internal/fetch"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TLDR_SETTINGS_PATH", "")
	t.Setenv("TLDR_HTTP_TIMEOUT", "")
	t.Setenv("TLDR_USER_AGENT", "")
	t.Setenv("TLDR_DEBUG", "")

	cfg := Load()

	assert.Empty(t, cfg.SettingsPath)
	assert.Equal(t, fetch.DefaultTimeout, cfg.HTTP.Timeout)
	assert.Equal(t, fetch.DefaultUserAgent, cfg.HTTP.UserAgent)
	assert.False(t, cfg.Debug)
}

func TestLoadFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TLDR_SETTINGS_PATH", "/tmp/tldr.yaml")
	t.Setenv("TLDR_HTTP_TIMEOUT", "5")
	t.Setenv("TLDR_USER_AGENT", "tldr-test")
	t.Setenv("TLDR_DEBUG", "yes")

	cfg := Load()

	assert.Equal(t, "/tmp/tldr.yaml", cfg.SettingsPath)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.True(t, cfg.Debug)
	assert.Equal(t, fetch.Options{Timeout: 5 * time.Second, UserAgent: "tldr-test", Debug: true}, cfg.FetchOptions())
}

func TestEnvIntIgnoresInvalid(t *testing.T) {
	tests := []struct {
		value string
		want  int
	}{
		{"", 30},
		{"abc", 30},
		{"-4", 30},
		{"0", 30},
		{"12", 12},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("TLDR_TEST_INT", tt.value)
			assert.Equal(t, tt.want, envInt("TLDR_TEST_INT", 30))
		})
	}
}

func TestEnvBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes"} {
		t.Setenv("TLDR_TEST_BOOL", v)
		assert.True(t, envBool("TLDR_TEST_BOOL"), v)
	}
	for _, v := range []string{"", "0", "no", "off"} {
		t.Setenv("TLDR_TEST_BOOL", v)
		assert.False(t, envBool("TLDR_TEST_BOOL"), v)
	}
}
