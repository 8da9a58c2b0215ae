// Package highlight derives emphasis spans from finalized text. Every span returned is a
// verbatim substring of the text it was extracted from, since rendering bolds spans by literal
// substring search.
package highlight

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/jonathan/resume-rewriter/internal/textnorm"
)

// MaxHighlights caps the number of spans returned by Extract.
const MaxHighlights = 10

const currency = `[$€£¥₹]`

// quantitativePatterns are applied in order; within one pattern longer alternatives come first.
var quantitativePatterns = []*regexp.Regexp{
	// percentages: 40%, +12.5%, ~30 %
	regexp.MustCompile(`~?[+\-]?\d+(?:[.,]\d+)? ?%`),
	// multipliers: 2x, 10X, 1.5x
	regexp.MustCompile(`\b\d+(?:\.\d+)?[xX]\b`),
	// counts: 100+, 1,000+
	regexp.MustCompile(`\b\d{1,3}(?:,\d{3})*\+|\b\d+\+`),
	// currency and scale: $2M, ~1.2bn, 5k, €3 million, 12,000, $400
	regexp.MustCompile(
		`~?` + currency + `?\d+(?:\.\d+)? ?(?:million|billion)\b` +
			`|~?` + currency + `?\d+(?:\.\d+)?(?:bn|mn|[kKmMbB])\b` +
			`|~?` + currency + `?\d{1,3}(?:,\d{3})+(?:\.\d+)?` +
			`|~?` + currency + `\d+(?:\.\d+)?`,
	),
}

// Extract returns up to MaxHighlights emphasis spans from text: quantitative tokens first, then
// case-insensitive whole-word matches of keywords in the casing found in text. Spans are
// deduplicated, sorted by descending length and guaranteed to occur verbatim in text.
func Extract(text string, keywords []string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	candidates := make([]string, 0, 16)
	for _, pattern := range quantitativePatterns {
		for _, match := range pattern.FindAllString(text, -1) {
			candidates = append(candidates, textnorm.NormalizeSingleLine(match))
		}
	}
	candidates = append(candidates, matchKeywords(text, keywords)...)

	seen := make(map[string]bool, len(candidates))
	spans := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if c == "" || seen[c] || !strings.Contains(text, c) {
			continue
		}
		seen[c] = true
		spans = append(spans, c)
	}

	sort.SliceStable(spans, func(i, j int) bool {
		return textnorm.RuneLen(spans[i]) > textnorm.RuneLen(spans[j])
	})

	if len(spans) > MaxHighlights {
		spans = spans[:MaxHighlights]
	}
	return spans
}

// ExtractAll extracts highlights across several finalized pieces of text, keeping only spans
// that occur verbatim inside at least one piece.
func ExtractAll(pieces []string, keywords []string) []string {
	joined := strings.Join(pieces, "\n")
	spans := Extract(joined, keywords)

	out := make([]string, 0, len(spans))
	for _, span := range spans {
		for _, piece := range pieces {
			if strings.Contains(piece, span) {
				out = append(out, span)
				break
			}
		}
	}
	return out
}

// matchKeywords finds whole-word, case-insensitive occurrences of each keyword and returns the
// source casing of every occurrence.
func matchKeywords(text string, keywords []string) []string {
	var found []string
	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		pattern := keywordPattern(kw)
		for pos := 0; pos < len(text); {
			loc := pattern.FindStringIndex(text[pos:])
			if loc == nil {
				break
			}
			start, end := pos+loc[0], pos+loc[1]
			if isWordBoundary(text, start, end) {
				found = append(found, text[start:end])
				pos = end
				continue
			}
			// retry one rune later; a rejected hit may overlap a whole-word one
			_, size := utf8.DecodeRuneInString(text[start:])
			pos = start + size
		}
	}
	return found
}

// isWordBoundary reports whether text[start:end] has no letter, digit or underscore directly
// before or after it. Keywords ending in symbols such as "C++" or ".NET" rely on this check.
func isWordBoundary(text string, start, end int) bool {
	if start > 0 {
		if r, _ := utf8.DecodeLastRuneInString(text[:start]); isWordRune(r) {
			return false
		}
	}
	if end < len(text) {
		if r, _ := utf8.DecodeRuneInString(text[end:]); isWordRune(r) {
			return false
		}
	}
	return true
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// keywordPattern returns the case-insensitive matcher for keyword. The built-in lists are
// compiled once; other keywords are compiled per call.
func keywordPattern(keyword string) *regexp.Regexp {
	if re, ok := compiledKeywords[keyword]; ok {
		return re
	}
	return compileKeyword(keyword)
}

func compileKeyword(keyword string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)` + regexp.QuoteMeta(keyword))
}
