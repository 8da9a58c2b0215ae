// Package textnorm provides whitespace normalization and word-safe truncation for rewritten text.
package textnorm

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	trailingSpacePattern = regexp.MustCompile(`[ \t\f\v]+\n`)
	blankRunPattern      = regexp.MustCompile(`\n{3,}`)
)

// NormalizeSingleLine collapses every run of whitespace (including newlines) to a single space
// and trims the result.
func NormalizeSingleLine(s string) string {
	if s == "" {
		return ""
	}
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeMultiLine keeps line structure but strips trailing whitespace from every line,
// collapses runs of blank lines to a single blank line and trims the whole text.
func NormalizeMultiLine(s string) string {
	if s == "" {
		return ""
	}

	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = trailingSpacePattern.ReplaceAllString(s+"\n", "\n")
	s = blankRunPattern.ReplaceAllString(s, "\n\n")

	return strings.TrimSpace(s)
}

// Lines splits text on newlines, normalizes each line to single-line form and drops empty lines.
func Lines(s string) []string {
	normalized := NormalizeMultiLine(s)
	if normalized == "" {
		return nil
	}

	raw := strings.Split(normalized, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if line = NormalizeSingleLine(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// RuneLen returns the length of s in characters.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}
