package youtube

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pterm/pterm"

	"github.com/justtldr/cli/internal/fetch"
)

// Getter fetches a URL. *fetch.Client satisfies it.
type Getter interface {
	Get(ctx context.Context, url string, headers map[string]string) (*fetch.Response, error)
}

// Video is a watch page's metadata plus its transcript, if one is published.
type Video struct {
	ID         string    `json:"id"`
	URL        string    `json:"url"`
	Title      string    `json:"title"`
	Chapters   []Chapter `json:"chapters,omitempty"`
	Transcript []Segment `json:"transcript,omitempty"`
}

// HasTranscript reports whether any caption text was found.
func (v *Video) HasTranscript() bool {
	return len(v.Transcript) > 0
}

// Client loads videos through a Getter.
type Client struct {
	Getter Getter
	// BaseURL overrides the desktop/mobile site root derived from the video URL.
	BaseURL string
}

func NewClient(g Getter) *Client {
	return &Client{Getter: g}
}

var mobileHeaders = map[string]string{
	"User-Agent":       "Mozilla/5.0 (Linux; Android 14) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Mobile Safari/537.36",
	"X-Requested-With": "com.google.android.youtube",
}

// Video fetches the watch page for rawURL and its English transcript. A video
// without captions is returned with an empty Transcript.
func (c *Client) Video(ctx context.Context, rawURL string) (*Video, error) {
	id, err := VideoID(rawURL)
	if err != nil {
		return nil, err
	}

	base := c.BaseURL
	if base == "" {
		base = BaseURL(rawURL)
	}
	var headers map[string]string
	if IsMobile(rawURL) {
		headers = mobileHeaders
	}

	watch := WatchURL(base, id)
	pterm.Debug.Printf("Fetching watch page %s\n", watch)
	resp, err := c.Getter.Get(ctx, watch, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch video page: %w", err)
	}
	page := string(resp.Body)

	info := ExtractBasicInfo(page)
	video := &Video{
		ID:       id,
		URL:      watch,
		Title:    info.Title,
		Chapters: info.Chapters,
	}
	if video.Title == "" {
		video.Title = metaTitle(resp.Body)
	}

	transcriptURL, ok := TranscriptURL(page, base)
	if !ok {
		pterm.Debug.Println("No English caption track found")
		return video, nil
	}

	pterm.Debug.Printf("Fetching transcript %s\n", transcriptURL)
	tr, err := c.Getter.Get(ctx, transcriptURL, headers)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch transcript: %w", err)
	}

	segments, err := ParseTranscriptXML(bytes.NewReader(tr.Body))
	if err != nil {
		return nil, err
	}
	video.Transcript = Resegment(segments, DefaultWindow)

	return video, nil
}

func metaTitle(body []byte) string {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if title, ok := doc.Find(`meta[name="title"]`).Attr("content"); ok && title != "" {
		return title
	}
	return strings.TrimSuffix(strings.TrimSpace(doc.Find("title").First().Text()), " - YouTube")
}
