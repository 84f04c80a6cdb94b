// Package capture pulls the readable text out of an HTML page the way the
// floating "summarize" button did: headings, paragraphs, list items and table
// cells outside of navigation chrome, formatted as light markdown.
package capture

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	contentSelector  = "h1, h2, h3, h4, h5, h6, p, li, td, div"
	excludedParents  = "nav, aside, header, footer, button, script, style, noscript, template"
	textContainers   = "h1, h2, h3, h4, h5, h6, div, span, p, li"
	hiddenSelector   = "[hidden], [aria-hidden='true']"
	maxCapturedLines = 20000
)

var (
	tagLike    = regexp.MustCompile(`<[^>]+>`)
	blankLines = regexp.MustCompile(`\n{2,}`)
	spaceRuns  = regexp.MustCompile(`[ \t\f\v\x{00a0}]+`)
	hiddenCSS  = regexp.MustCompile(`(?i)(display\s*:\s*none|visibility\s*:\s*hidden)`)
)

// Page is the captured content of an HTML document.
type Page struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// FromHTML parses an HTML document and captures its text.
func FromHTML(r io.Reader) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return &Page{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
		Text:  Text(doc),
	}, nil
}

// Text returns the page text, one captured element per line. Only the
// outermost text container of each block is taken so nested content is not
// repeated.
func Text(doc *goquery.Document) string {
	var b strings.Builder
	lines := 0

	doc.Find(contentSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.Closest(excludedParents).Length() > 0 || isHidden(s) {
			return true
		}
		if s.Parent().Closest(textContainers).Length() > 0 {
			return true
		}

		text := strings.TrimSpace(tagLike.ReplaceAllString(innerText(s.Nodes[0]), ""))
		if text == "" {
			return true
		}

		b.WriteString(formatLine(goquery.NodeName(s), text))
		lines++
		return lines < maxCapturedLines
	})

	return blankLines.ReplaceAllString(b.String(), "\n")
}

func formatLine(tag, text string) string {
	switch tag {
	case "h1":
		return "# " + text + "\n"
	case "h2":
		return "## " + text + "\n"
	case "h3":
		return "### " + text + "\n"
	case "h4", "h5", "h6":
		return "#### " + text + "\n"
	case "li":
		return "• " + text + "\n"
	default:
		return text + "\n"
	}
}

// isHidden approximates a zero-height element: hidden attributes or inline
// styles on the element or any ancestor.
func isHidden(s *goquery.Selection) bool {
	if s.Closest(hiddenSelector).Length() > 0 {
		return true
	}
	for n := s.Nodes[0]; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		for _, a := range n.Attr {
			if a.Key == "style" && hiddenCSS.MatchString(a.Val) {
				return true
			}
		}
	}
	return false
}

var blockTags = map[string]bool{
	"address": true, "article": true, "blockquote": true, "br": true, "dd": true,
	"div": true, "dl": true, "dt": true, "figcaption": true, "figure": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"hr": true, "li": true, "main": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "td": true, "th": true, "tr": true, "ul": true,
}

var sourceBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

var skippedTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "template": true,
}

// innerText renders a node's visible text with a line break around block
// elements, similar to the DOM innerText property.
func innerText(n *html.Node) string {
	var b strings.Builder

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			// Source line breaks collapse like any other whitespace
			b.WriteString(sourceBreaks.Replace(n.Data))
			return
		case html.ElementNode:
			if skippedTags[n.Data] || hasHiddenAttr(n) {
				return
			}
		}

		block := n.Type == html.ElementNode && blockTags[n.Data]
		if block {
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			b.WriteByte('\n')
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	lines := strings.Split(b.String(), "\n")
	out := lines[:0]
	for _, line := range lines {
		line = strings.TrimSpace(spaceRuns.ReplaceAllString(line, " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}

func hasHiddenAttr(n *html.Node) bool {
	for _, a := range n.Attr {
		switch {
		case a.Key == "hidden":
			return true
		case a.Key == "aria-hidden" && a.Val == "true":
			return true
		case a.Key == "style" && hiddenCSS.MatchString(a.Val):
			return true
		}
	}
	return false
}
