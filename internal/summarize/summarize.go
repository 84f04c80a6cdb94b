// Package summarize ties capture, prompt assembly, fitting and handoff into
// the three flows the CLI exposes: a web page, a YouTube video and raw text.
package summarize

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/pterm/pterm"

	"github.com/justtldr/cli/internal/aiservice"
	"github.com/justtldr/cli/internal/capture"
	"github.com/justtldr/cli/internal/fetch"
	"github.com/justtldr/cli/internal/outbound"
	"github.com/justtldr/cli/internal/prompts"
	"github.com/justtldr/cli/internal/settings"
	"github.com/justtldr/cli/internal/youtube"
	"github.com/justtldr/cli/pkg/sampling"
)

var (
	ErrExcludedSite       = errors.New("site is excluded from summarizing")
	ErrNoContent          = errors.New("no readable content found")
	ErrUnsupportedContent = errors.New("unsupported content type")
)

// SettingsLoader reads the current settings. *settings.Store satisfies it.
type SettingsLoader interface {
	Load() (*settings.Data, error)
}

// Fetcher retrieves a page. *fetch.Client satisfies it.
type Fetcher interface {
	Get(ctx context.Context, url string, headers map[string]string) (*fetch.Response, error)
}

// VideoSource loads a video and its transcript. *youtube.Client satisfies it.
type VideoSource interface {
	Video(ctx context.Context, url string) (*youtube.Video, error)
}

// Handoff delivers the final text. *outbound.Dispatcher satisfies it.
type Handoff interface {
	Dispatch(ctx context.Context, text string, service aiservice.Service) (outbound.Result, error)
}

// Pipeline runs a summary flow end to end.
type Pipeline struct {
	Settings   SettingsLoader
	Fetcher    Fetcher
	YouTube    VideoSource
	Dispatcher Handoff

	// Service and PromptID override the stored selection when set.
	Service  aiservice.ID
	PromptID string
	// Sampling tunes fitting. Zero fields take the sampler defaults and
	// CharacterLimit is replaced by the service limit.
	Sampling sampling.Config
}

// Summary describes what was sent.
type Summary struct {
	Source  string              `json:"source"`
	Title   string              `json:"title,omitempty"`
	Prompt  string              `json:"prompt"`
	Limit   int                 `json:"limit"`
	Text    string              `json:"-"`
	Fitted  bool                `json:"fitted"`
	Stats   *sampling.FitResult `json:"stats,omitempty"`
	Handoff outbound.Result     `json:"handoff"`
}

type target struct {
	service aiservice.Service
	limit   int
	prompt  prompts.Prompt
	data    *settings.Data
}

func (p *Pipeline) resolve() (*target, error) {
	data, err := p.Settings.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	selected := data.SummaryService()
	t := &target{service: selected.Service, limit: selected.CharacterLimit, data: data}

	if p.Service != "" {
		svc, err := aiservice.Get(p.Service)
		if err != nil {
			return nil, err
		}
		t.service = svc
		t.limit = svc.Limit(data.PremiumServices[string(svc.ID)])
	}

	if p.PromptID != "" {
		if t.prompt, err = data.Prompt(p.PromptID); err != nil {
			return nil, fmt.Errorf("%w: %s", err, p.PromptID)
		}
	} else {
		t.prompt = data.DefaultPrompt()
	}

	return t, nil
}

// Page captures the page at rawURL and hands it off with the selected prompt.
func (p *Pipeline) Page(ctx context.Context, rawURL string) (*Summary, error) {
	t, err := p.resolve()
	if err != nil {
		return nil, err
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return nil, fmt.Errorf("invalid URL %q", rawURL)
	}
	if t.data.IsExcluded(u.Hostname()) {
		return nil, fmt.Errorf("%w: %s", ErrExcludedSite, u.Hostname())
	}

	resp, err := p.Fetcher.Get(ctx, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page: %w", err)
	}

	var title, text string
	switch {
	case resp.IsHTML():
		page, err := capture.FromHTML(bytes.NewReader(resp.Body))
		if err != nil {
			return nil, err
		}
		title, text = page.Title, strings.TrimSpace(page.Text)
	case resp.IsText():
		text = strings.TrimSpace(string(resp.Body))
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedContent, resp.ContentType)
	}
	if text == "" {
		return nil, ErrNoContent
	}
	pterm.Debug.Printf("Captured %d characters from %s\n", utf8.RuneCountInString(text), rawURL)

	request := prompts.PageRequest(t.prompt, text)
	return p.send(ctx, t, rawURL, title, request, true)
}

// Video hands off a YouTube transcript. It returns youtube.ErrNoTranscript
// when the video has no English captions.
func (p *Pipeline) Video(ctx context.Context, rawURL string) (*Summary, error) {
	t, err := p.resolve()
	if err != nil {
		return nil, err
	}

	video, err := p.YouTube.Video(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !video.HasTranscript() {
		return nil, youtube.ErrNoTranscript
	}

	transcript := youtube.FormatTranscript(video.Transcript)
	request := prompts.TranscriptRequest(prompts.TranscriptInput{
		Prompt:     t.prompt,
		Title:      video.Title,
		Chapters:   youtube.FormatChapters(video.Chapters),
		Transcript: transcript,
	})

	// Only a transcript that is itself over budget triggers fitting.
	needsFit := utf8.RuneCountInString(transcript) > t.limit
	return p.send(ctx, t, video.URL, video.Title, request, needsFit)
}

// Text hands off arbitrary text with the selected prompt.
func (p *Pipeline) Text(ctx context.Context, text string) (*Summary, error) {
	t, err := p.resolve()
	if err != nil {
		return nil, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrNoContent
	}

	request := prompts.PageRequest(t.prompt, text)
	return p.send(ctx, t, "text", "", request, true)
}

func (p *Pipeline) send(ctx context.Context, t *target, source, title, request string, fit bool) (*Summary, error) {
	summary := &Summary{
		Source: source,
		Title:  title,
		Prompt: t.prompt.Name,
		Limit:  t.limit,
		Text:   request,
	}

	if fit && t.limit > 0 {
		cfg := p.Sampling.WithDefaults()
		cfg.CharacterLimit = t.limit
		stats, err := sampling.FitWithStats(request, cfg)
		if err != nil {
			return nil, err
		}
		summary.Text = stats.Text
		summary.Fitted = stats.Sampled
		summary.Stats = stats
		if stats.Sampled {
			pterm.Debug.Printf("Fitted %d characters into %d\n", stats.InputLength, stats.OutputLength)
		}
	}

	res, err := p.Dispatcher.Dispatch(ctx, summary.Text, t.service)
	if err != nil {
		return nil, err
	}
	summary.Handoff = res

	return summary, nil
}
