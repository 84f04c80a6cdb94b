// Package fetch retrieves web pages for capture and transcript lookup.
package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0 Safari/537.36"
)

// Options configures a Client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Debug     bool
}

// Client is a thin HTTP GET client with browser-like headers. It does not retry.
type Client struct {
	http *resty.Client
}

// Response is a fetched document.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        []byte
}

// IsHTML reports whether the response declares an HTML body.
func (r *Response) IsHTML() bool {
	return strings.Contains(r.ContentType, "text/html") || strings.Contains(r.ContentType, "application/xhtml")
}

// IsText reports whether the response is any textual type.
func (r *Response) IsText() bool {
	return strings.HasPrefix(r.ContentType, "text/") || strings.Contains(r.ContentType, "xml") || r.IsHTML()
}

// StatusError is returned for non-2xx responses.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: %s", e.URL, e.Status)
}

// New builds a Client from opts, filling unset fields with defaults.
func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("User-Agent", opts.UserAgent).
		SetHeader("Accept", "*/*").
		SetHeader("Accept-Language", "en-US,en;q=0.5").
		SetDebug(opts.Debug)

	return &Client{http: client}
}

// Get fetches url. Extra headers override the defaults for this request only.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*Response, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if !resp.IsSuccess() {
		return nil, &StatusError{URL: url, StatusCode: resp.StatusCode(), Status: resp.Status()}
	}

	return &Response{
		URL:         url,
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Body:        resp.Body(),
	}, nil
}
