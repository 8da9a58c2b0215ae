// Package reflow fits text into a bounded number of logical lines under a total character budget.
package reflow

import (
	"strings"

	"github.com/jonathan/resume-rewriter/internal/bullets"
	"github.com/jonathan/resume-rewriter/internal/textnorm"
)

// Options bounds the reflowed output. Zero values disable the corresponding bound.
type Options struct {
	MinLines      int
	MaxLines      int
	MaxTotalChars int
}

// Reflow normalizes text into lines and reshapes them toward [MinLines, MaxLines].
// Content is never fabricated: surplus lines are merged into the last kept line, a lone line
// is only split at sentence or comma boundaries, and characters are dropped only by the
// final MaxTotalChars truncation.
func Reflow(text string, opts Options) []string {
	lines := textnorm.Lines(text)
	if len(lines) == 0 {
		return nil
	}

	if len(lines) == 1 && opts.MinLines > 1 {
		if sentences := bullets.SplitSentences(lines[0]); len(sentences) > 1 {
			lines = sentences
		}
	}

	if opts.MaxLines > 0 && len(lines) > opts.MaxLines {
		lines = mergeOverflow(lines, opts.MaxLines)
	}

	if len(lines) == 1 && opts.MinLines > 1 {
		if left, right, ok := splitAtComma(lines[0]); ok {
			lines = []string{left, right}
		}
	}

	if opts.MaxTotalChars > 0 {
		joined := Join(lines)
		if textnorm.RuneLen(joined) > opts.MaxTotalChars {
			lines = textnorm.Lines(textnorm.Truncate(joined, opts.MaxTotalChars))
		}
	}

	return lines
}

// Join joins reflowed lines with newlines.
func Join(lines []string) string {
	return strings.Join(lines, "\n")
}

// mergeOverflow keeps the first maxLines-1 lines and folds the rest into one final line.
func mergeOverflow(lines []string, maxLines int) []string {
	keep := maxLines - 1
	merged := make([]string, 0, maxLines)
	merged = append(merged, lines[:keep]...)
	merged = append(merged, strings.Join(lines[keep:], " "))
	return merged
}

// splitAtComma splits a line at the comma closest to its middle. Both halves must be non-empty.
func splitAtComma(line string) (string, string, bool) {
	runes := []rune(line)
	mid := len(runes) / 2

	best := -1
	for i, r := range runes {
		if r != ',' {
			continue
		}
		if best < 0 || abs(i-mid) < abs(best-mid) {
			best = i
		}
	}
	if best < 0 {
		return "", "", false
	}

	left := strings.TrimSpace(string(runes[:best+1]))
	right := strings.TrimSpace(string(runes[best+1:]))
	if left == "" || right == "" || left == "," {
		return "", "", false
	}
	return left, right, true
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
