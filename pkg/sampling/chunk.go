// Package sampling reduces long text to a bounded excerpt that keeps a
// contiguous lead-in and evenly spaced samples of everything after it.
package sampling

import "strings"

// Chunk splits text into pieces of at most chunkSize runes, cutting at the last
// space inside each window so words stay whole. A window without any space is
// hard cut at chunkSize runes. Chunks are trimmed and never empty.
func Chunk(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return nil
	}
	return chunkRunes([]rune(text), chunkSize)
}

func chunkRunes(runes []rune, chunkSize int) []string {
	var chunks []string
	pos := 0

	for pos < len(runes) {
		// Remainder fits: take it all
		if pos+chunkSize >= len(runes) {
			chunks = appendTrimmed(chunks, runes[pos:])
			break
		}

		window := runes[pos : pos+chunkSize]
		cut := lastSpace(window)

		switch {
		case cut < 0:
			// Single run-on word longer than the window
			chunks = appendTrimmed(chunks, window)
			pos += chunkSize
		case cut == 0:
			pos++
		default:
			chunks = appendTrimmed(chunks, window[:cut])
			pos += cut + 1
		}
	}

	return chunks
}

func lastSpace(window []rune) int {
	for i := len(window) - 1; i >= 0; i-- {
		if window[i] == ' ' {
			return i
		}
	}
	return -1
}

func appendTrimmed(chunks []string, piece []rune) []string {
	s := strings.TrimSpace(string(piece))
	if s == "" {
		return chunks
	}
	return append(chunks, s)
}
