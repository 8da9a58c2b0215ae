package textnorm

import (
	"strings"
	"unicode"
)

// wordSafeRatio is the fraction of the budget before which a word-boundary cut is not taken.
const wordSafeRatio = 0.6

// Truncate clips text to at most maxChars characters. When a cut is needed it prefers the last
// whitespace at or after floor(maxChars*0.6) so words are not split; otherwise it hard-cuts.
// The result is trimmed and never longer than maxChars.
func Truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}

	text = strings.TrimSpace(text)
	runes := []rune(text)
	if len(runes) <= maxChars {
		return text
	}

	prefix := runes[:maxChars]
	minCut := int(float64(maxChars) * wordSafeRatio)

	cut := maxChars
	for i := len(prefix) - 1; i >= minCut; i-- {
		if unicode.IsSpace(prefix[i]) {
			cut = i
			break
		}
	}

	return strings.TrimSpace(string(prefix[:cut]))
}

// ClipLine normalizes text to a single line and truncates it to maxChars.
func ClipLine(text string, maxChars int) string {
	return Truncate(NormalizeSingleLine(text), maxChars)
}
