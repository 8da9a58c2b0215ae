// Package ingestion turns pasted job-description text (plain or HTML) into clean prompt context.
package ingestion

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jonathan/resume-rewriter/internal/textnorm"
)

// DefaultMaxJobDescriptionChars bounds the job description placed into a prompt.
const DefaultMaxJobDescriptionChars = 2000

var htmlTagPattern = regexp.MustCompile(`(?i)<\s*/?\s*(p|div|br|li|ul|ol|span|h[1-6]|section|article|strong|em|b|i|body|html|table|tr|td)\b[^>]*>`)

// LooksLikeHTML reports whether text contains common HTML markup.
func LooksLikeHTML(text string) bool {
	return htmlTagPattern.MatchString(text)
}

// CleanJobDescription reduces a pasted job description to normalized plain text of at most
// maxChars characters. HTML is flattened to text with list items kept on their own lines.
func CleanJobDescription(raw string, maxChars int) string {
	if strings.TrimSpace(raw) == "" || maxChars <= 0 {
		return ""
	}

	text := raw
	if LooksLikeHTML(raw) {
		extracted, err := ExtractText(raw)
		if err == nil {
			text = extracted
		}
	}

	return textnorm.Truncate(CleanText(text), maxChars)
}

// ExtractText parses HTML and returns its visible text. Page chrome is dropped, block elements
// end a line and list items are prefixed with "- ".
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("nav, footer, header, script, style, noscript, form, button, .cookie-banner, .apply-button").Remove()

	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("li").PrependHtml("- ")
	doc.Find("p, div, li, h1, h2, h3, h4, h5, h6, tr, section, article, ul, ol").AppendHtml("\n")

	content := doc.Find(strings.Join(JobPostingSelectors(), ", ")).First()
	if content.Length() == 0 {
		content = doc.Find("body")
	}

	return content.Text(), nil
}

// JobPostingSelectors returns selectors for the description block of common job boards.
func JobPostingSelectors() []string {
	return []string{
		".job-description",
		"#job-description",
		".posting-content",
		".job-details",
		"[data-testid='job-description']",
	}
}

// CleanText normalizes line endings, collapses whitespace inside each line and reduces runs of
// blank lines to one.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(textnorm.NormalizeMultiLine(content), "\n")
	for i, line := range lines {
		lines[i] = textnorm.NormalizeSingleLine(line)
	}
	return textnorm.NormalizeMultiLine(strings.Join(lines, "\n"))
}
