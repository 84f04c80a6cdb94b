package settings

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/justtldr/cli/internal/aiservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "tldr", "settings.yaml"))
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	s := newTestStore(t)

	d, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, d.Version)
	assert.Len(t, d.Prompts, 5)
	assert.Equal(t, aiservice.ChatGPT, d.AIServiceID)
	assert.Empty(t, d.PremiumServices)
	assert.ElementsMatch(t, aiservice.Hosts(), d.ExcludedSites)
	assert.Equal(t, "key-points-summary", d.DefaultPrompt().ID)
}

func TestAddEditDeletePrompt(t *testing.T) {
	s := newTestStore(t)

	p, err := s.AddPrompt("Haiku", "Summarize as a haiku.")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p.ID, "custom-"))
	assert.False(t, p.IsDefault)

	require.NoError(t, s.EditPrompt(p.ID, "", "Summarize as three haiku."))

	d, err := s.Load()
	require.NoError(t, err)
	got, err := d.Prompt(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Haiku", got.Name)
	assert.Equal(t, "Summarize as three haiku.", got.Content)

	require.NoError(t, s.DeletePrompt(p.ID))
	d, err = s.Load()
	require.NoError(t, err)
	_, err = d.Prompt(p.ID)
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestAddPromptRequiresFields(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddPrompt("  ", "content")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
	_, err = s.AddPrompt("name", "")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestDeleteDefaultPromptFails(t *testing.T) {
	s := newTestStore(t)

	err := s.DeletePrompt("key-points-summary")
	assert.ErrorIs(t, err, ErrDefaultPrompt)

	err = s.DeletePrompt("nope")
	assert.ErrorIs(t, err, ErrPromptNotFound)
}

func TestSetDefaultPrompt(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetDefaultPrompt("simple"))
	d, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, "simple", d.DefaultPrompt().ID)
	defaults := 0
	for _, p := range d.Prompts {
		if p.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)

	// The old default can now be removed
	require.NoError(t, s.DeletePrompt("key-points-summary"))

	assert.ErrorIs(t, s.SetDefaultPrompt("missing"), ErrPromptNotFound)
}

func TestSummaryServiceUsesPremiumLimit(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetAIService(aiservice.Claude))
	d, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 50000, d.SummaryService().CharacterLimit)

	require.NoError(t, s.SetPremium(aiservice.Claude, true))
	require.NoError(t, s.SetPremium(aiservice.Gemini, false))
	d, err = s.Load()
	require.NoError(t, err)

	sum := d.SummaryService()
	assert.Equal(t, aiservice.Claude, sum.Service.ID)
	assert.True(t, sum.Premium)
	assert.Equal(t, 250000, sum.CharacterLimit)
	assert.Equal(t, map[string]bool{"claude": true, "gemini": false}, d.PremiumServices)
}

func TestSetAIServiceRejectsUnknown(t *testing.T) {
	s := newTestStore(t)

	assert.ErrorIs(t, s.SetAIService("bard"), aiservice.ErrUnknownService)
	assert.ErrorIs(t, s.SetPremium("bard", true), aiservice.ErrUnknownService)
}

func TestSummaryServiceFallsBackOnUnknownID(t *testing.T) {
	d := Defaults()
	d.AIServiceID = "retired"

	assert.Equal(t, aiservice.ChatGPT, d.SummaryService().Service.ID)
}

func TestExcludedSites(t *testing.T) {
	s := newTestStore(t)

	require.NoError(t, s.SetExcludedSites([]string{"https://www.Example.com/path"}))
	require.NoError(t, s.ExcludeSites("news.ycombinator.com", "example.com", ""))

	d, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com", "news.ycombinator.com"}, d.ExcludedSites)

	assert.True(t, d.IsExcluded("example.com"))
	assert.True(t, d.IsExcluded("blog.example.com"))
	assert.True(t, d.IsExcluded("www.example.com"))
	assert.False(t, d.IsExcluded("notexample.com"))
	assert.False(t, d.IsExcluded(""))

	require.NoError(t, s.IncludeSite("Example.com"))
	d, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"news.ycombinator.com"}, d.ExcludedSites)
}

func TestReset(t *testing.T) {
	s := newTestStore(t)

	_, err := s.AddPrompt("x", "y")
	require.NoError(t, err)
	require.NoError(t, s.SetAIService(aiservice.Grok))
	require.NoError(t, s.SetPremium(aiservice.Grok, true))

	require.NoError(t, s.Reset())

	d, err := s.Load()
	require.NoError(t, err)
	assert.Len(t, d.Prompts, 5)
	assert.Equal(t, aiservice.ChatGPT, d.AIServiceID)
	assert.Empty(t, d.PremiumServices)
	assert.NotNil(t, d.ExcludedSites)
	assert.Empty(t, d.ExcludedSites)
}

func TestLoadMigratesLegacyKeys(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	legacy := "aiUrl: https://claude.ai/new?summarize-extension\npromptTemplate: |\n  Summarize:\n  {{content}}\n"
	require.NoError(t, os.WriteFile(s.Path(), []byte(legacy), 0o644))

	d, err := s.Load()
	require.NoError(t, err)

	assert.Equal(t, CurrentVersion, d.Version)
	assert.Equal(t, aiservice.Claude, d.AIServiceID)
	assert.Empty(t, d.LegacyAIURL)
	assert.Empty(t, d.LegacyPromptTemplate)

	def := d.DefaultPrompt()
	assert.Equal(t, legacyPromptID, def.ID)
	assert.Equal(t, "Summarize:\n{{content}}\n", def.Content)
	assert.Len(t, d.Prompts, 6)
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("version: 9.0.0\n"), 0o644))

	_, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "newer than supported")
}

func TestLoadCorruptFile(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("prompts: [unterminated"), 0o644))

	_, err := s.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings")
}

func TestConcurrentUpdatesAreNotLost(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := NewStore(path).AddPrompt("p", "c")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	d, err := NewStore(path).Load()
	require.NoError(t, err)
	assert.Len(t, d.Prompts, 13)
}

func TestNormalizeSite(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"example.com", "example.com"},
		{"  WWW.Example.com ", "example.com"},
		{"https://www.example.com/a/b?c=d", "example.com"},
		{"example.com/path", "example.com"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeSite(tt.input))
		})
	}
}
