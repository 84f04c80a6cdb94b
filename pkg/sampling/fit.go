package sampling

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

var (
	lineBreaks = regexp.MustCompile(`[\r\n]+`)
	// JavaScript-style \s: ASCII whitespace plus Unicode space separators
	spaceRuns  = regexp.MustCompile(`[\s\p{Z}\x{FEFF}]{2,}`)
)

// FitResult is the fitted text plus the numbers behind it.
type FitResult struct {
	Text          string `json:"text"`
	InputLength   int    `json:"inputLength"`
	OutputLength  int    `json:"outputLength"`
	Chunks        int    `json:"chunks"`
	LeadInLength  int    `json:"leadInLength"`
	SamplePoints  int    `json:"samplePoints"`
	SampledChunks int    `json:"sampledChunks"`
	Sampled       bool   `json:"sampled"`
}

// Fit reduces text to at most cfg.CharacterLimit runes. Text already within
// the limit is returned unchanged. Longer text keeps a lead-in of
// InitialContentRatio of the limit and fills the rest with groups of
// MinChunksPerSegment chunks taken from evenly spaced points of the remainder.
func Fit(text string, cfg Config) (string, error) {
	res, err := FitWithStats(text, cfg)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// FitWithStats is Fit with a breakdown of what was kept.
func FitWithStats(text string, cfg Config) (*FitResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	inputLen := utf8.RuneCountInString(text)
	if inputLen <= cfg.CharacterLimit {
		return &FitResult{Text: text, InputLength: inputLen, OutputLength: inputLen}, nil
	}

	chunks := Chunk(text, cfg.ChunkSize)
	res := &FitResult{InputLength: inputLen, Chunks: len(chunks), Sampled: true}
	asm := &assembler{}

	// Phase A: contiguous lead-in
	leadBudget := int(math.Floor(float64(cfg.CharacterLimit) * cfg.InitialContentRatio))
	i := 0
	for i < len(chunks) && asm.used < leadBudget {
		n := utf8.RuneCountInString(chunks[i])
		if asm.fits(n, leadBudget) {
			asm.add(chunks[i], n)
			i++
			continue
		}
		if room := asm.headroom(leadBudget); room > partialThreshold {
			asm.add(prefix(chunks[i], room), room)
		}
		break
	}
	res.LeadInLength = asm.used

	// Phase B: even sampling of what is left
	remaining := chunks[i:]
	if len(remaining) > 0 {
		budget := cfg.CharacterLimit - asm.used
		avg := float64(lo.SumBy(remaining, utf8.RuneCountInString)) / float64(len(remaining))
		capacity := int(math.Floor(float64(budget) / (avg * float64(cfg.MinChunksPerSegment))))
		points := samplePoints(capacity)
		res.SamplePoints = len(points)
		res.SampledChunks = asm.sample(remaining, points, cfg)
	}

	joined := strings.Join(asm.pieces, " ")
	res.Text = normalize(joined)
	res.OutputLength = utf8.RuneCountInString(res.Text)
	return res, nil
}

// assembler collects pieces and charges one separator rune between them, so
// used is always the exact rune length of the joined output.
type assembler struct {
	pieces []string
	used   int
}

func (a *assembler) cost(n int) int {
	if len(a.pieces) == 0 {
		return n
	}
	return n + 1
}

func (a *assembler) fits(n, limit int) bool {
	return a.used+a.cost(n) <= limit
}

func (a *assembler) headroom(limit int) int {
	return limit - a.used - a.cost(0)
}

func (a *assembler) add(piece string, n int) {
	a.used += a.cost(n)
	a.pieces = append(a.pieces, piece)
}

// sample appends groups of chunks at each point and returns how many chunks it
// took. Points closer together than a group overlap and repeat chunks.
func (a *assembler) sample(remaining []string, points []float64, cfg Config) int {
	taken := 0

	for _, p := range points {
		if a.used >= cfg.CharacterLimit {
			break
		}

		idx := int(math.Floor(float64(len(remaining)) * p))
		end := min(idx+cfg.MinChunksPerSegment, len(remaining))

		for j := idx; j < end; j++ {
			n := utf8.RuneCountInString(remaining[j])
			if a.fits(n, cfg.CharacterLimit) {
				a.add(remaining[j], n)
				taken++
				continue
			}
			if room := a.headroom(cfg.CharacterLimit); room > partialThreshold {
				a.add(prefix(remaining[j], room), room)
				taken++
				return taken
			}
		}
	}

	return taken
}

// samplePoints returns n positions evenly spaced strictly inside (0, 1).
func samplePoints(n int) []float64 {
	if n <= 0 {
		return nil
	}
	points := make([]float64, n)
	interval := 1 / float64(n+1)
	for k := 1; k <= n; k++ {
		points[k-1] = interval * float64(k)
	}
	return points
}

// prefix returns the first n runes of s.
func prefix(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func normalize(s string) string {
	s = lineBreaks.ReplaceAllString(s, " ")
	s = spaceRuns.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
