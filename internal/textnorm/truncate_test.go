package textnorm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		maxChars int
		expected string
	}{
		{name: "zero budget", text: "anything", maxChars: 0, expected: ""},
		{name: "negative budget", text: "anything", maxChars: -5, expected: ""},
		{name: "fits", text: "short text", maxChars: 40, expected: "short text"},
		{name: "fits after trim", text: "  padded  ", maxChars: 6, expected: "padded"},
		{name: "exact fit", text: "hello", maxChars: 5, expected: "hello"},
		{name: "word-safe cut", text: "hello world foo", maxChars: 13, expected: "hello world"},
		{name: "hard cut when no late space", text: "ab supercalifragilistic", maxChars: 10, expected: "ab superca"},
		{name: "space before threshold is ignored", text: "a bcdefghijklmnop", maxChars: 10, expected: "a bcdefghi"},
		{name: "cuts at newline", text: "line one\nline two", maxChars: 12, expected: "line one"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truncate(tt.text, tt.maxChars))
		})
	}
}

func TestTruncate_NeverExceedsBudget(t *testing.T) {
	texts := []string{
		"",
		"Improved system throughput by 35% through caching optimizations",
		strings.Repeat("word ", 100),
		strings.Repeat("x", 300),
		"Résumé bullets • with ünïcode — characters that are multi-byte",
	}

	for _, text := range texts {
		for maxChars := 1; maxChars <= 80; maxChars++ {
			got := Truncate(text, maxChars)
			assert.LessOrEqual(t, RuneLen(got), maxChars, "text %q max %d", text, maxChars)
		}
	}
}

func TestTruncate_PrefersLastSpaceAfterThreshold(t *testing.T) {
	// threshold for 20 is index 12; the last space inside the first 20 chars is at 16
	text := "alpha beta gamma deltaepsilon"
	assert.Equal(t, "alpha beta gamma", Truncate(text, 20))
}

func TestClipLine(t *testing.T) {
	assert.Equal(t, "Led team of 5", ClipLine("  Led\n team   of 5 ", 140))
	assert.Equal(t, "Led team", ClipLine("Led team of 5 to launch X", 10))
}
