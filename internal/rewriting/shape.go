package rewriting

import (
	"strings"

	"github.com/jonathan/resume-rewriter/internal/bullets"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/reflow"
	"github.com/jonathan/resume-rewriter/internal/textnorm"
	"github.com/jonathan/resume-rewriter/internal/types"
	"github.com/tidwall/gjson"
)

// draft is the normalized user input of one request.
type draft struct {
	text    string   // fragments joined line by line
	bullets []string // segmented fragments, ShapeBullets only
}

func newDraft(shape Shape, fragments []string) draft {
	if shape == ShapeBullets {
		var segmented []string
		for _, f := range fragments {
			segmented = append(segmented, bullets.Segment(f)...)
		}
		return draft{text: strings.Join(segmented, "\n"), bullets: segmented}
	}

	parts := make([]string, 0, len(fragments))
	for _, f := range fragments {
		if n := textnorm.NormalizeMultiLine(f); n != "" {
			parts = append(parts, n)
		}
	}
	return draft{text: strings.Join(parts, "\n")}
}

func (d draft) empty() bool {
	return strings.TrimSpace(d.text) == ""
}

// promptInput is the draft as sent to the model, bounded by maxChars.
func (d draft) promptInput(shape Shape, maxChars int) string {
	text := d.text
	if shape == ShapeBullets {
		lines := make([]string, len(d.bullets))
		for i, b := range d.bullets {
			lines[i] = "- " + b
		}
		text = strings.Join(lines, "\n")
	}
	if maxChars > 0 {
		text = textnorm.Truncate(text, maxChars)
	}
	return text
}

// output is a contract-compliant result body.
type output struct {
	Text    string
	Bullets []string
}

func (o output) pieces() []string {
	if len(o.Bullets) > 0 {
		return o.Bullets
	}
	if o.Text == "" {
		return nil
	}
	return strings.Split(o.Text, "\n")
}

func (o output) empty() bool {
	return o.Text == "" && len(o.Bullets) == 0
}

// fitLocal shapes the user's own draft; used by every non-success path.
func fitLocal(shape Shape, c types.FormatContract, d draft) output {
	switch shape {
	case ShapeBullets:
		return output{Bullets: fitBullets(d.bullets, d.bullets, c)}
	case ShapeLines:
		return output{Text: fitLines(d.text, c)}
	default:
		return output{Text: clip(d.text, c.MaxChars)}
	}
}

// fitGenerated shapes model text. Code fences, wrapping quotes, a {"text": ...} or string array
// wrapper and stray list markers are removed first.
func fitGenerated(shape Shape, c types.FormatContract, d draft, raw string) output {
	text := cleanResponse(raw)

	switch shape {
	case ShapeBullets:
		return output{Bullets: fitBullets(splitGeneratedBullets(text), d.bullets, c)}
	case ShapeLines:
		lines := textnorm.Lines(text)
		for i, line := range lines {
			if bullets.HasMarker(line) {
				lines[i] = bullets.StripMarker(line)
			}
		}
		return output{Text: fitLines(reflow.Join(lines), c)}
	default:
		line := textnorm.NormalizeSingleLine(text)
		if bullets.HasMarker(line) {
			line = bullets.StripMarker(line)
		}
		return output{Text: clip(line, c.MaxChars)}
	}
}

func fitLines(text string, c types.FormatContract) string {
	lines := reflow.Reflow(text, reflow.Options{
		MinLines:      c.MinLines,
		MaxLines:      c.MaxLines,
		MaxTotalChars: c.MaxTotalChars,
	})

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = clip(line, c.MaxChars); line != "" {
			out = append(out, line)
		}
	}
	return reflow.Join(out)
}

// fitBullets clips candidates to MaxChars and, when BulletCount is set, merges surplus
// candidates into the last bullet or pads a short list from the draft bullets at the same
// positions.
func fitBullets(candidates, source []string, c types.FormatContract) []string {
	cands := make([]string, 0, len(candidates))
	for _, b := range candidates {
		if b = textnorm.NormalizeSingleLine(b); b != "" {
			cands = append(cands, b)
		}
	}

	count := c.BulletCount
	if count > 0 && len(cands) > count {
		merged := make([]string, 0, count)
		merged = append(merged, cands[:count-1]...)
		merged = append(merged, strings.Join(cands[count-1:], " "))
		cands = merged
	}

	out := make([]string, 0, len(cands))
	for _, b := range cands {
		if b = clip(b, c.MaxChars); b != "" {
			out = append(out, b)
		}
	}

	for i := len(out); count > 0 && i < count && i < len(source); i++ {
		if b := clip(source[i], c.MaxChars); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// splitGeneratedBullets treats every line of a multi-line answer as one bullet; a one-line
// answer goes through the segmenter.
func splitGeneratedBullets(text string) []string {
	lines := textnorm.Lines(text)
	switch len(lines) {
	case 0:
		return nil
	case 1:
		return bullets.Segment(bullets.StripMarker(lines[0]))
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if b := bullets.StripMarker(line); b != "" {
			out = append(out, b)
		}
	}
	return out
}

// cleanResponse unwraps a fenced answer, a {"text": ...} object or a JSON array of strings.
// Array items become one line each.
func cleanResponse(raw string) string {
	text := llm.StripCodeFence(raw)
	if !gjson.Valid(text) {
		return llm.StripWrappingQuotes(text)
	}

	parsed := gjson.Parse(text)
	switch {
	case parsed.IsArray():
		var lines []string
		for _, item := range parsed.Array() {
			if item.Type != gjson.String {
				continue
			}
			if line := textnorm.NormalizeSingleLine(item.String()); line != "" {
				lines = append(lines, line)
			}
		}
		if len(lines) > 0 {
			return strings.Join(lines, "\n")
		}
	case parsed.IsObject():
		if wrapped := parsed.Get("text"); wrapped.Type == gjson.String {
			text = wrapped.String()
		}
	}
	return llm.StripWrappingQuotes(text)
}

// clip is ClipLine with maxChars <= 0 meaning no bound.
func clip(text string, maxChars int) string {
	if maxChars <= 0 {
		return textnorm.NormalizeSingleLine(text)
	}
	return textnorm.ClipLine(text, maxChars)
}
