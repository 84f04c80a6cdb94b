package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justtldr/cli/internal/aiservice"
	"github.com/justtldr/cli/internal/settings"
)

func TestServiceFlag(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addServiceFlag(fs, "Service")

	assert.Equal(t, aiservice.ID(""), getServiceFlag(fs))
	require.NoError(t, fs.Parse([]string{"--service", "Gemini"}))
	assert.Equal(t, aiservice.Gemini, getServiceFlag(fs))

	err := fs.Parse([]string{"--service", "bard"})
	require.Error(t, err)
	assert.Contains(t, fs.Lookup("service").Usage, "chatgpt, claude")
}

func TestReadInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

	got, err := readInput([]string{path}, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "from file", got)

	got, err = readInput(nil, strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", got)

	got, err = readInput([]string{"-"}, strings.NewReader("dash"))
	require.NoError(t, err)
	assert.Equal(t, "dash", got)

	_, err = readInput(nil, strings.NewReader("  \n"))
	require.ErrorIs(t, err, errNoInput)

	_, err = readInput([]string{filepath.Join(t.TempDir(), "missing.txt")}, nil)
	require.Error(t, err)
}

func TestRootCommandUsesSettingsFlag(t *testing.T) {
	setupStdoutCapture(t)
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")

	rootCmd.SetArgs([]string{"--settings", path, "config", "service", "deepseek"})
	t.Cleanup(resetRootCmd)
	require.NoError(t, rootCmd.Execute())

	data, err := settings.NewStore(path).Load()
	require.NoError(t, err)
	assert.Equal(t, aiservice.DeepSeek, data.AIServiceID)
}

func TestRootCommandSettingsFromEnv(t *testing.T) {
	setupStdoutCapture(t)
	path := filepath.Join(t.TempDir(), "env-settings.yaml")
	t.Setenv("TLDR_SETTINGS_PATH", path)
	resetRootCmd()

	rootCmd.SetArgs([]string{"config", "premium", "gemini", "on"})
	t.Cleanup(resetRootCmd)
	require.NoError(t, rootCmd.Execute())

	data, err := settings.NewStore(path).Load()
	require.NoError(t, err)
	assert.True(t, data.PremiumServices[string(aiservice.Gemini)])
}

func resetRootCmd() {
	rootCmd.SetArgs(nil)
	_ = rootCmd.PersistentFlags().Set("settings", "")
}
