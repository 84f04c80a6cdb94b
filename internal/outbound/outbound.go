// Package outbound hands prepared text to an AI chat service: the text goes
// to the clipboard and the service opens in the browser with the handoff
// marker set.
package outbound

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"github.com/pterm/pterm"

	"github.com/justtldr/cli/internal/aiservice"
)

// Clipboard stores text for the user to paste.
type Clipboard interface {
	WriteAll(text string) error
}

// Opener opens a URL for the user.
type Opener interface {
	OpenURL(url string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

type systemBrowser struct{}

func (systemBrowser) OpenURL(url string) error { return browser.OpenURL(url) }

// SystemClipboard and SystemBrowser use the desktop's clipboard and browser.
var (
	SystemClipboard Clipboard = systemClipboard{}
	SystemBrowser   Opener    = systemBrowser{}
)

// Result describes a handoff.
type Result struct {
	Service aiservice.ID `json:"service"`
	URL     string       `json:"url"`
	Length  int          `json:"length"`
	Copied  bool         `json:"copied"`
	Opened  bool         `json:"opened"`
	DryRun  bool         `json:"dryRun"`
}

// Dispatcher performs handoffs. Pending, when set, also keeps the text on disk
// until "tldr paste" takes it.
type Dispatcher struct {
	Clipboard Clipboard
	Opener    Opener
	Pending   *Pending
	DryRun    bool
}

// NewDispatcher returns a Dispatcher backed by the system clipboard and browser.
func NewDispatcher(pending *Pending) *Dispatcher {
	return &Dispatcher{
		Clipboard: SystemClipboard,
		Opener:    SystemBrowser,
		Pending:   pending,
	}
}

// Dispatch copies text and opens the service's handoff URL.
func (d *Dispatcher) Dispatch(ctx context.Context, text string, service aiservice.Service) (Result, error) {
	result := Result{
		Service: service.ID,
		URL:     aiservice.HandoffURL(service),
		Length:  utf8.RuneCountInString(text),
		DryRun:  d.DryRun,
	}

	if err := ctx.Err(); err != nil {
		return result, err
	}

	if d.DryRun {
		pterm.Debug.Printf("Dry run: would open %s with %d characters\n", result.URL, result.Length)
		return result, nil
	}

	if d.Pending != nil {
		if err := d.Pending.Store(text); err != nil {
			return result, err
		}
	}

	if d.Clipboard != nil {
		if err := d.Clipboard.WriteAll(text); err != nil {
			return result, fmt.Errorf("failed to copy to clipboard: %w", err)
		}
		result.Copied = true
	}

	if d.Opener != nil {
		if err := d.Opener.OpenURL(result.URL); err != nil {
			return result, fmt.Errorf("failed to open %s: %w", service.Name, err)
		}
		result.Opened = true
	}

	return result, nil
}
