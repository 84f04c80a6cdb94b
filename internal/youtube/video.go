// Package youtube finds a video's title, chapters and English transcript from
// its public watch page.
package youtube

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrNoVideoID    = errors.New("could not find video ID")
	ErrNoTranscript = errors.New("no transcript available for this video")
)

const (
	DesktopBaseURL = "https://www.youtube.com"
	MobileBaseURL  = "https://m.youtube.com"
	mobileHost     = "m.youtube.com"
)

// VideoID extracts the video ID from a watch, shorts or youtu.be URL.
func VideoID(raw string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoVideoID, err)
	}

	if id := u.Query().Get("v"); id != "" {
		return id, nil
	}

	host := strings.ToLower(u.Hostname())
	segments := strings.Split(strings.Trim(u.Path, "/"), "/")

	switch {
	case host == "youtu.be" && segments[0] != "":
		return segments[0], nil
	case host != mobileHost && len(segments) >= 2 && segments[0] == "shorts" && segments[1] != "":
		// Shorts only exist as a path on desktop
		return segments[1], nil
	}

	return "", ErrNoVideoID
}

// IsMobile reports whether raw points at the mobile site.
func IsMobile(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && strings.EqualFold(u.Hostname(), mobileHost)
}

// BaseURL returns the site root matching raw's desktop or mobile host.
func BaseURL(raw string) string {
	if IsMobile(raw) {
		return MobileBaseURL
	}
	return DesktopBaseURL
}

// WatchURL returns the watch page for id under base.
func WatchURL(base, id string) string {
	return strings.TrimRight(base, "/") + "/watch?v=" + url.QueryEscape(id)
}
