// Package prompts holds the prompt templates that wrap captured text before it
// is handed to an AI service.
package prompts

import (
	"fmt"
	"regexp"
	"strings"
)

// Prompt is a named instruction template.
type Prompt struct {
	ID        string `json:"id" yaml:"id"`
	Name      string `json:"name" yaml:"name"`
	Content   string `json:"content" yaml:"content"`
	IsDefault bool   `json:"isDefault,omitempty" yaml:"isDefault,omitempty"`
}

var preconfigured = []Prompt{
	{
		ID:        "key-points-summary",
		Name:      "Summary with Key Points & Takeaways",
		IsDefault: true,
		Content: `Please provide a summary of the following content:
1. First, give a concise one-sentence summary that captures the core message/theme
2. Then, share a breakdown of the main topics discussed. For each topic:
    - Use suitable emojis for the subtitle of each topic
    - Expound very briefly on what was discussed on each topic
    - Include any notable quotes or statistics
    - Keep the tone of the content. Be conversational. How a friend would give the summary.
3. End with a brief takeaways
4. Don't start the text with "Let me...", or "Here is the summary...". Just give the results.`,
	},
	{
		ID:   "short-form",
		Name: "Shortform-Like Summary (Detailed)",
		Content: `Summarize the following how Shortlist or Blinkist would.
Keep the tone of the content. Keep it conversational.
Break the headers using relevant dynamic emojis.
Go beyond the title in giving the summary, look through entire content.
Sprinkle in quotes or excerpts to better link the summary to the content.
Don't start the text with "Let me...", or "Here is the summary...". Just give the results.`,
	},
	{
		ID:   "youtube",
		Name: "For Youtube",
		Content: `For each chapter highlighted, provide a summary on what was discussed based on the transcript.
For each chapter summary;
- Start each topic subtitle with a relevant emoji
- Expound very briefly on what was discussed on each topic
- Include any notable quotes or statistics
- Keep the tone of the content. Be conversational.
Otherwise (if no chapters), share a breakdown of the main topics discussed. For each topic:
    - Start each topic subtitle with a relevant emoji
    - Expound very briefly on what was discussed on each topic
    - Include any notable quotes or statistics
    - Keep the tone of the content.`,
	},
	{
		ID:   "simple",
		Name: "Simple language",
		Content: `Explain the following text with language:
- Simple and clear language with a conversational tone.
- Cover all the major and interesting topics discussed.
- Break the headers using relevant dynamic emojis.
- Don't start the text with "Let me...", or "Here is the summary...". Just give the results.`,
	},
	{
		ID:   "5-10-points",
		Name: "5-10 Key Points",
		Content: `Please provide the 5-10 most important points from the text.
Use bullet points and emojis to break up the text.
Focus on the key points and avoid summarizing everything.
Don't include any additional information, focus on the key points.`,
	},
}

// Preconfigured returns a fresh copy of the built-in prompts. The first one is
// the default.
func Preconfigured() []Prompt {
	out := make([]Prompt, len(preconfigured))
	copy(out, preconfigured)
	return out
}

// Fallback is the prompt used when no default can be found.
func Fallback() Prompt {
	return preconfigured[0]
}

var placeholder = regexp.MustCompile(`\{\{(\w+)\}\}`)

// Render substitutes {{name}} placeholders. Unknown or empty names are left as written.
func Render(template string, vars map[string]string) string {
	return placeholder.ReplaceAllStringFunc(template, func(match string) string {
		name := placeholder.FindStringSubmatch(match)[1]
		if v := vars[name]; v != "" {
			return v
		}
		return match
	})
}

// PageRequest wraps captured page text with a prompt. Templates that carry a
// {{content}} placeholder get the text inlined instead.
func PageRequest(p Prompt, captured string) string {
	if strings.Contains(p.Content, "{{content}}") {
		return Render(p.Content, map[string]string{"content": captured})
	}
	return fmt.Sprintf("%s\n\nContent: %s", p.Content, captured)
}

const (
	transcriptDisclaimer = "End with a brief disclaimer that the output given is a summary of the youtube video and doesn’t cover every detail or nuance.\n" +
		`Add sth along the lines of "To get more insights, ask follow up questions or watch full video."`

	transcriptLanguage = "VERY VERY IMPORTANT: Your output should only be in the transcript language. " +
		"If transcript is in English, output in English. If transcript is in Arabic, output in Arabic etc. " +
		"Do not output in any other language."
)

// TranscriptInput is what a video request is assembled from.
type TranscriptInput struct {
	Prompt     Prompt
	Title      string
	Chapters   string
	Transcript string
}

// TranscriptRequest builds the full request sent for a video transcript.
func TranscriptRequest(in TranscriptInput) string {
	var b strings.Builder

	fmt.Fprintf(&b, "First, carefully analyze the following transcript. Then: %s\n", in.Prompt.Content)
	b.WriteString(transcriptDisclaimer + "\n")
	b.WriteString(transcriptLanguage + "\n\n")

	if in.Title != "" {
		b.WriteString("Title: " + in.Title)
	}
	b.WriteString("\n")

	if in.Chapters != "" {
		b.WriteString("Chapters:\n" + in.Chapters + "\n")
	}

	b.WriteString(`Transcript: "` + in.Transcript + `"`)
	return b.String()
}
