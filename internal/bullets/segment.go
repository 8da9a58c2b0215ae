// Package bullets converts freeform text into an ordered list of discrete bullet strings.
package bullets

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/jonathan/resume-rewriter/internal/textnorm"
)

// bulletedRatio is the share of lines that must carry a marker for text to count as a list.
const bulletedRatio = 0.5

var (
	// markerPattern matches "*", "-", "•", "–" markers and numbered "1." / "1)" markers.
	// Everything but "•" needs trailing whitespace (or nothing after it) so "-30%", "**Bold**"
	// and "2.5x" keep their leading characters.
	markerPattern  = regexp.MustCompile(`^(?:•+[ \t]*|[*\-–]+(?:[ \t]+|$)|\d{1,3}[.)][ \t]+)`)
	paragraphSplit = regexp.MustCompile(`\n[ \t]*\n`)
)

// HasMarker reports whether a line starts with a bullet or numbering marker.
func HasMarker(line string) bool {
	return markerPattern.MatchString(strings.TrimSpace(line))
}

// StripMarker removes a leading bullet or numbering marker and trims the line.
func StripMarker(line string) string {
	line = strings.TrimSpace(line)
	return strings.TrimSpace(markerPattern.ReplaceAllString(line, ""))
}

// Segment splits text into trimmed, non-empty bullets in input order.
//
// Text where at least two lines exist and at least half of them start with a marker is
// treated as an existing list: markers are stripped and each line becomes a bullet.
// Otherwise the text is split into blank-line separated paragraphs; a paragraph with a single
// sentence stays whole and a multi-sentence paragraph contributes one bullet per sentence.
func Segment(text string) []string {
	normalized := textnorm.NormalizeMultiLine(text)
	if normalized == "" {
		return nil
	}

	lines := nonEmptyLines(normalized)
	if isBulleted(lines) {
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			if b := textnorm.NormalizeSingleLine(StripMarker(line)); b != "" {
				out = append(out, b)
			}
		}
		return out
	}

	var out []string
	for _, para := range paragraphSplit.Split(normalized, -1) {
		para = textnorm.NormalizeSingleLine(para)
		if para == "" {
			continue
		}
		sentences := SplitSentences(para)
		if len(sentences) <= 1 {
			out = append(out, para)
			continue
		}
		out = append(out, sentences...)
	}
	return out
}

// SplitSentences splits a single paragraph on sentence punctuation followed by whitespace and
// an uppercase letter or digit. Pieces are trimmed; empty pieces are dropped.
func SplitSentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	if len(runes) == 0 {
		return nil
	}

	var sentences []string
	start := 0
	for i := 0; i < len(runes); i++ {
		if !isTerminal(runes[i]) {
			continue
		}
		j := i + 1
		for j < len(runes) && unicode.IsSpace(runes[j]) {
			j++
		}
		if j == i+1 || j >= len(runes) {
			continue
		}
		if unicode.IsUpper(runes[j]) || unicode.IsDigit(runes[j]) {
			if s := textnorm.NormalizeSingleLine(string(runes[start : i+1])); s != "" {
				sentences = append(sentences, s)
			}
			start = j
			i = j - 1
		}
	}

	if s := textnorm.NormalizeSingleLine(string(runes[start:])); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func nonEmptyLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func isBulleted(lines []string) bool {
	if len(lines) < 2 {
		return false
	}
	marked := 0
	for _, line := range lines {
		if HasMarker(line) {
			marked++
		}
	}
	return float64(marked) >= float64(len(lines))*bulletedRatio
}
