package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreconfigured(t *testing.T) {
	all := Preconfigured()
	require.Len(t, all, 5)

	defaults := 0
	for _, p := range all {
		assert.NotEmpty(t, p.ID)
		assert.NotEmpty(t, p.Content)
		if p.IsDefault {
			defaults++
		}
	}
	assert.Equal(t, 1, defaults)
	assert.Equal(t, "key-points-summary", Fallback().ID)

	// Callers may mutate their copy freely
	all[0].Content = "changed"
	assert.NotEqual(t, "changed", Preconfigured()[0].Content)
}

func TestRender(t *testing.T) {
	tests := []struct {
		name     string
		template string
		vars     map[string]string
		expected string
	}{
		{"substitutes", "Summarize:\n{{content}}", map[string]string{"content": "body"}, "Summarize:\nbody"},
		{"unknown kept", "{{title}} - {{content}}", map[string]string{"content": "body"}, "{{title}} - body"},
		{"empty value kept", "{{content}}", map[string]string{"content": ""}, "{{content}}"},
		{"repeated", "{{a}}{{a}}", map[string]string{"a": "x"}, "xx"},
		{"no placeholders", "plain", nil, "plain"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Render(tt.template, tt.vars))
		})
	}
}

func TestPageRequest(t *testing.T) {
	p := Prompt{Content: "Summarize this."}
	assert.Equal(t, "Summarize this.\n\nContent: # Title\nbody", PageRequest(p, "# Title\nbody"))

	tmpl := Prompt{Content: "Content to analyze:\n{{content}}"}
	assert.Equal(t, "Content to analyze:\nbody", PageRequest(tmpl, "body"))
}

func TestTranscriptRequest(t *testing.T) {
	out := TranscriptRequest(TranscriptInput{
		Prompt:     Prompt{Content: "Give key points."},
		Title:      "Go Concurrency",
		Chapters:   "1. [00:00] Intro\n",
		Transcript: "(00:00) hello (00:15) world",
	})

	assert.True(t, strings.HasPrefix(out, "First, carefully analyze the following transcript. Then: Give key points.\n"))
	assert.Contains(t, out, "summary of the youtube video")
	assert.Contains(t, out, "VERY VERY IMPORTANT")
	assert.Contains(t, out, "\n\nTitle: Go Concurrency\nChapters:\n1. [00:00] Intro\n\n")
	assert.True(t, strings.HasSuffix(out, `Transcript: "(00:00) hello (00:15) world"`))
}

func TestTranscriptRequestWithoutChapters(t *testing.T) {
	out := TranscriptRequest(TranscriptInput{
		Prompt:     Prompt{Content: "p"},
		Transcript: "t",
	})

	assert.NotContains(t, out, "Chapters:")
	assert.NotContains(t, out, "Title:")
	assert.True(t, strings.HasSuffix(out, "\n\n\nTranscript: \"t\""))
}
