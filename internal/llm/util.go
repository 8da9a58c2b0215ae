package llm

import "strings"

// StripCodeFence removes a generic ``` fence (with an optional language tag on the first line)
// around model output. Text without a leading fence is returned trimmed.
func StripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```")
	// Skip potential language identifier on first line
	if idx := strings.Index(text, "\n"); idx >= 0 {
		firstLine := text[:idx]
		if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// StripWrappingQuotes removes one pair of matching quotes the model put around its whole answer.
func StripWrappingQuotes(text string) string {
	text = strings.TrimSpace(text)
	pairs := [][2]string{{`"`, `"`}, {"'", "'"}, {"“", "”"}, {"`", "`"}}
	for _, p := range pairs {
		if len(text) >= len(p[0])+len(p[1]) && strings.HasPrefix(text, p[0]) && strings.HasSuffix(text, p[1]) {
			inner := text[len(p[0]) : len(text)-len(p[1])]
			if !strings.Contains(inner, p[0]) {
				return strings.TrimSpace(inner)
			}
		}
	}
	return text
}

// Snippet shortens a provider body for diagnostics.
func Snippet(body string, maxLen int) string {
	body = strings.Join(strings.Fields(body), " ")
	runes := []rune(body)
	if maxLen <= 0 || len(runes) <= maxLen {
		return body
	}
	return string(runes[:maxLen]) + "..."
}
