package cmd

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justtldr/cli/internal/prompts"
	"github.com/justtldr/cli/internal/settings"
)

func TestPromptsListMarksDefault(t *testing.T) {
	setupStdoutCapture(t)
	c := PromptsCmd{store: newTestStore(t), out: &bytes.Buffer{}}

	require.NoError(t, c.List(""))

	logs := outBuf.String()
	assert.Contains(t, logs, "key-points-summary")
	assert.Contains(t, logs, "5-10-points")
	assert.Contains(t, logs, "*")
}

func TestPromptsAddEditDelete(t *testing.T) {
	setupStdoutCapture(t)
	store := newTestStore(t)
	var out bytes.Buffer
	c := PromptsCmd{store: store, out: &out}

	require.NoError(t, c.Add(AddPromptInput{Name: "Bullets", Content: "Summarize as bullets: {{content}}", SetDefault: true}))

	data, err := store.Load()
	require.NoError(t, err)
	def := data.DefaultPrompt()
	assert.Equal(t, "Bullets", def.Name)
	assert.Contains(t, outBuf.String(), def.ID)

	require.NoError(t, c.Edit(EditPromptInput{ID: def.ID, Name: "Bullet list"}))
	require.NoError(t, c.Show(def.ID, "json"))

	var shown prompts.Prompt
	require.NoError(t, json.Unmarshal(out.Bytes(), &shown))
	assert.Equal(t, "Bullet list", shown.Name)
	assert.Equal(t, "Summarize as bullets: {{content}}", shown.Content)

	err = c.Delete(DeletePromptInput{ID: def.ID, SkipConfirm: true})
	require.ErrorIs(t, err, settings.ErrDefaultPrompt)

	require.NoError(t, c.SetDefault("simple"))
	require.NoError(t, c.Delete(DeletePromptInput{ID: def.ID, SkipConfirm: true}))

	data, err = store.Load()
	require.NoError(t, err)
	assert.Len(t, data.Prompts, 5)
	assert.Equal(t, "simple", data.DefaultPrompt().ID)
}

func TestPromptsValidation(t *testing.T) {
	setupStdoutCapture(t)
	c := PromptsCmd{store: newTestStore(t), out: &bytes.Buffer{}}

	require.ErrorIs(t, c.Add(AddPromptInput{Name: "Empty", Content: "  "}), settings.ErrEmptyPrompt)
	require.Error(t, c.Edit(EditPromptInput{ID: "simple"}))
	require.ErrorIs(t, c.Edit(EditPromptInput{ID: "missing", Name: "x"}), settings.ErrPromptNotFound)
	require.ErrorIs(t, c.Show("missing", ""), settings.ErrPromptNotFound)
	require.ErrorIs(t, c.SetDefault("missing"), settings.ErrPromptNotFound)
}
