package youtube

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// BasicInfo is the metadata scraped from a watch page.
type BasicInfo struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Chapters    []Chapter `json:"chapters,omitempty"`
}

// Chapter is a timestamped section listed in a video description.
type Chapter struct {
	Timestamp string `json:"timestamp"`
	Title     string `json:"title"`
	Seconds   int    `json:"seconds"`
}

var jsonUnescaper = strings.NewReplacer(
	`\"`, `"`,
	`\n`, "\n",
	`\\`, `\`,
	`\u0026`, "&",
	`\t`, "\t",
)

// ExtractBasicInfo reads the title and description embedded in the page's
// player JSON and parses chapters out of the description.
func ExtractBasicInfo(html string) BasicInfo {
	description := findSimpleText(html, "description")
	return BasicInfo{
		Title:       findSimpleText(html, "title"),
		Description: description,
		Chapters:    ExtractChapters(description),
	}
}

func findSimpleText(html, key string) string {
	re := regexp.MustCompile(`(?i)"` + regexp.QuoteMeta(key) + `":\s*\{\s*"simpleText":\s*"((?:\\"|[^"])*)"`)
	m := re.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return jsonUnescaper.Replace(m[1])
}

// Chapter formats, tried in order. The first one that matches anything wins.
var chapterPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?m)^(?:\d{1,2}:)?\d{2}:\d{2}\s+.+$`),
	regexp.MustCompile(`(?m)^\((?:\d{1,2}:)?\d{2}:\d{2}\)\s+.+$`),
	regexp.MustCompile(`(?m)^\[(?:\d{1,2}:)?\d{2}:\d{2}\]\s+.+$`),
	regexp.MustCompile(`(?m)^\d{2}:\d{2}(?::\d{2})?\s*-\s*.+$`),
	regexp.MustCompile(`(?m)^\d{2}:\d{2}(?::\d{2})?\s*[-:]\s*.+$`),
}

// chapterLine splits any of the accepted formats into timestamp and title.
var chapterLine = regexp.MustCompile(`^[(\[]?((?:\d{1,2}:)?\d{1,2}:\d{2})[)\]]?\s*(?:[-:]\s*)?(.+)$`)

// ExtractChapters parses chapter lines from a description, sorted by start time.
func ExtractChapters(description string) []Chapter {
	var chapters []Chapter

	for _, pattern := range chapterPatterns {
		for _, line := range pattern.FindAllString(description, -1) {
			m := chapterLine.FindStringSubmatch(strings.TrimSpace(line))
			if m == nil {
				continue
			}
			title := strings.TrimSpace(m[2])
			if title == "" {
				continue
			}
			chapters = append(chapters, Chapter{
				Timestamp: m[1],
				Title:     title,
				Seconds:   timestampToSeconds(m[1]),
			})
		}
		if len(chapters) > 0 {
			break
		}
	}

	sort.SliceStable(chapters, func(i, j int) bool {
		return chapters[i].Seconds < chapters[j].Seconds
	})
	return chapters
}

// FormatChapters renders chapters as a numbered list, one per line.
func FormatChapters(chapters []Chapter) string {
	var b strings.Builder
	for i, c := range chapters {
		fmt.Fprintf(&b, "%d. [%s] %s\n", i+1, c.Timestamp, c.Title)
	}
	return b.String()
}

func timestampToSeconds(ts string) int {
	parts := strings.Split(ts, ":")
	nums := make([]int, len(parts))
	for i, p := range parts {
		nums[i], _ = strconv.Atoi(p)
	}
	if len(nums) == 3 {
		return nums[0]*3600 + nums[1]*60 + nums[2]
	}
	return nums[0]*60 + nums[1]
}
