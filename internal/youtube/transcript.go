package youtube

import (
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// DefaultWindow is the segment length used by Resegment, in seconds.
const DefaultWindow = 15.0

// Segment is a span of transcript text starting at Start seconds.
type Segment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

var timedTextURL = regexp.MustCompile(`(?:https://(?:www|m)\.youtube\.com)?/api/timedtext\?[^"']+lang=en[^"']*`)

// TranscriptURL finds the English caption track URL in a watch page. Relative
// URLs are resolved against base.
func TranscriptURL(page, base string) (string, bool) {
	match := timedTextURL.FindString(page)
	if match == "" {
		return "", false
	}

	u := strings.ReplaceAll(match, `\u0026`, "&")
	if strings.HasPrefix(u, "/") {
		u = strings.TrimRight(base, "/") + u
	}
	return u, true
}

// ParseTranscriptXML reads the <text start dur> nodes of a timedtext document.
// Caption text is entity-encoded twice, so it is unescaped again after XML
// decoding.
func ParseTranscriptXML(r io.Reader) ([]Segment, error) {
	dec := xml.NewDecoder(r)
	var segments []Segment

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse transcript: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "text" {
			continue
		}

		var node struct {
			Start string `xml:"start,attr"`
			Dur   string `xml:"dur,attr"`
			Text  string `xml:",chardata"`
		}
		if err := dec.DecodeElement(&node, &start); err != nil {
			return nil, fmt.Errorf("failed to parse transcript: %w", err)
		}

		seg := Segment{Text: strings.TrimSpace(html.UnescapeString(node.Text))}
		seg.Start, _ = strconv.ParseFloat(node.Start, 64)
		seg.Duration, _ = strconv.ParseFloat(node.Dur, 64)
		segments = append(segments, seg)
	}

	return segments, nil
}

// Resegment merges captions into fixed windows of the given length. A window
// of zero or less uses DefaultWindow.
func Resegment(segments []Segment, window float64) []Segment {
	if window <= 0 {
		window = DefaultWindow
	}

	var (
		out     []Segment
		current *Segment
		parts   []string
	)

	flush := func() {
		if current == nil || len(parts) == 0 {
			current, parts = nil, nil
			return
		}
		current.Text = strings.Join(parts, " ")
		out = append(out, *current)
		current, parts = nil, nil
	}

	for _, seg := range segments {
		end := seg.Start + seg.Duration
		if current == nil || seg.Start >= current.Start+window {
			flush()
			current = &Segment{Start: seg.Start}
		}
		current.Duration = end - current.Start
		if seg.Text != "" {
			parts = append(parts, seg.Text)
		}
	}
	flush()

	return out
}

// FormatTimestamp renders seconds as mm:ss, or h:mm:ss from one hour on.
func FormatTimestamp(seconds float64) string {
	total := int(math.Floor(seconds))
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// FormatTranscript renders segments as "(mm:ss) text" separated by spaces.
func FormatTranscript(segments []Segment) string {
	parts := make([]string, 0, len(segments))
	for _, seg := range segments {
		parts = append(parts, fmt.Sprintf("(%s) %s", FormatTimestamp(seg.Start), seg.Text))
	}
	return strings.Join(parts, " ")
}
