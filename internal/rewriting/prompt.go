package rewriting

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-rewriter/internal/ingestion"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/prompts"
	"github.com/jonathan/resume-rewriter/internal/textnorm"
	"github.com/jonathan/resume-rewriter/internal/types"
)

// maxHintChars bounds each single-line hint placed into a prompt.
const maxHintChars = 120

// buildContext renders the optional hints as a prompt preamble. The result is empty or ends
// with a blank line.
func buildContext(h types.Hints) string {
	var sb strings.Builder

	add := func(label, value string) {
		if value = textnorm.ClipLine(value, maxHintChars); value != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", label, value))
		}
	}
	add("Role", h.Role)
	add("Company", h.Company)
	add("Track", h.Track)
	add("Target role", h.TargetRole)

	if jd := ingestion.CleanJobDescription(h.JobDescription, ingestion.DefaultMaxJobDescriptionChars); jd != "" {
		sb.WriteString("Job description (use only to choose emphasis, never as a source of facts):\n")
		sb.WriteString(jd)
		sb.WriteString("\n")
	}

	if sb.Len() == 0 {
		return ""
	}
	return "Context:\n" + sb.String() + "\n"
}

// buildMessages renders the profile's system and user templates for one request.
func buildMessages(p Profile, c types.FormatContract, d draft, hints types.Hints) ([]llm.Message, error) {
	system, err := prompts.Render(prompts.RewritingFile, p.SystemPrompt, map[string]string{
		"MaxChars":      fmt.Sprintf("%d", c.MaxChars),
		"MinLines":      fmt.Sprintf("%d", c.MinLines),
		"MaxLines":      fmt.Sprintf("%d", c.MaxLines),
		"MaxTotalChars": fmt.Sprintf("%d", c.MaxTotalChars),
		"BulletCount":   fmt.Sprintf("%d", c.BulletCount),
	})
	if err != nil {
		return nil, err
	}

	user, err := prompts.Render(prompts.RewritingFile, p.UserPrompt, map[string]string{
		"Context": buildContext(hints),
		"Input":   d.promptInput(p.Shape, p.MaxInputChars),
	})
	if err != nil {
		return nil, err
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, nil
}
