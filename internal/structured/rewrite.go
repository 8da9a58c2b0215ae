// Package structured batch-rewrites a summary plus labeled fields in one generation round trip
// and maps the model's JSON answer back onto the request's labels.
package structured

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/prompts"
	"github.com/jonathan/resume-rewriter/internal/textnorm"
	"github.com/jonathan/resume-rewriter/internal/types"
	"github.com/tidwall/gjson"
)

const (
	// DefaultSummaryMaxChars bounds the rewritten summary when the request sets no cap.
	DefaultSummaryMaxChars = 320
	// DefaultFieldMaxChars bounds every rewritten field value when the request sets no cap.
	DefaultFieldMaxChars = 160
)

// Caps are the per-field character limits of a structured rewrite.
type Caps struct {
	SummaryMaxChars int
	FieldMaxChars   int
}

// CapsFor returns the request's caps with defaults for unset values.
func CapsFor(req types.StructuredRequest) Caps {
	caps := Caps{SummaryMaxChars: req.SummaryMaxChars, FieldMaxChars: req.FieldMaxChars}
	if caps.SummaryMaxChars <= 0 {
		caps.SummaryMaxChars = DefaultSummaryMaxChars
	}
	if caps.FieldMaxChars <= 0 {
		caps.FieldMaxChars = DefaultFieldMaxChars
	}
	return caps
}

// Result is the summary and fields produced by Merge or Fallback.
type Result struct {
	Summary string
	Fields  []types.LabeledField
}

// Pieces returns the summary followed by every field value, skipping empties.
func (r Result) Pieces() []string {
	pieces := make([]string, 0, len(r.Fields)+1)
	if r.Summary != "" {
		pieces = append(pieces, r.Summary)
	}
	for _, f := range r.Fields {
		if f.Value != "" {
			pieces = append(pieces, f.Value)
		}
	}
	return pieces
}

// Schema is the JSON object the model must answer with.
func Schema() llm.OutputSchema {
	return llm.OutputSchema{
		Name: "StructuredRewrite",
		Fields: []llm.SchemaField{
			{Name: "summary", Type: "\"string\"", Description: "rewritten summary, one line", Required: true},
			{Name: "fields", Type: "[{\"label\": \"string\", \"value\": \"string\"}]", Description: "one entry per input label, same labels, same order", Required: true},
		},
	}
}

// BuildMessages builds the system and user messages for a structured rewrite. contextBlock is
// the already rendered hint section (may be empty).
func BuildMessages(req types.StructuredRequest, caps Caps, contextBlock string, maxInputChars int) ([]llm.Message, error) {
	system, err := prompts.Render(prompts.RewritingFile, "structured-system", map[string]string{
		"SummaryMaxChars": fmt.Sprintf("%d", caps.SummaryMaxChars),
		"FieldMaxChars":   fmt.Sprintf("%d", caps.FieldMaxChars),
		"JSONContract":    llm.JSONContract(Schema()),
	})
	if err != nil {
		return nil, err
	}

	var fields strings.Builder
	for _, f := range req.Fields {
		fields.WriteString(fmt.Sprintf("- %s: %s\n", textnorm.NormalizeSingleLine(f.Label), textnorm.ClipLine(f.Value, maxInputChars)))
	}

	user, err := prompts.Render(prompts.RewritingFile, "structured-user", map[string]string{
		"Context": contextBlock,
		"Summary": textnorm.Truncate(textnorm.NormalizeMultiLine(req.Summary), maxInputChars),
		"Fields":  strings.TrimRight(fields.String(), "\n"),
	})
	if err != nil {
		return nil, err
	}

	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, nil
}

// Fallback truncates every original value; labels and order are kept exactly.
func Fallback(req types.StructuredRequest, caps Caps) Result {
	fields := make([]types.LabeledField, len(req.Fields))
	for i, f := range req.Fields {
		fields[i] = types.LabeledField{Label: f.Label, Value: textnorm.ClipLine(f.Value, caps.FieldMaxChars)}
	}
	return Result{
		Summary: textnorm.ClipLine(req.Summary, caps.SummaryMaxChars),
		Fields:  fields,
	}
}

// Merge maps a parsed answer onto the request. Values are matched strictly by label; labels the
// model skipped, renamed or left empty keep their original value. The output has exactly the
// request's labels in the request's order, and every value is truncated to its cap.
func Merge(parsed Parsed, req types.StructuredRequest, caps Caps) Result {
	result := Fallback(req, caps)

	if summary := textnorm.ClipLine(stringValue(parsed.Object.Get("summary")), caps.SummaryMaxChars); summary != "" {
		result.Summary = summary
	}

	returned := returnedFields(parsed.Object.Get("fields"))
	for i, f := range req.Fields {
		value, ok := returned[labelKey(f.Label)]
		if !ok {
			continue
		}
		if clipped := textnorm.ClipLine(value, caps.FieldMaxChars); clipped != "" {
			result.Fields[i].Value = clipped
		}
	}

	return result
}

// returnedFields accepts either [{"label": ..., "value": ...}] or {"<label>": "<value>"}.
// The first occurrence of a label wins.
func returnedFields(fields gjson.Result) map[string]string {
	out := make(map[string]string)
	add := func(label, value string) {
		key := labelKey(label)
		if key == "" {
			return
		}
		if _, exists := out[key]; !exists {
			out[key] = value
		}
	}

	switch {
	case fields.IsArray():
		fields.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				add(item.Get("label").String(), stringValue(item.Get("value")))
			}
			return true
		})
	case fields.IsObject():
		fields.ForEach(func(key, value gjson.Result) bool {
			add(key.String(), stringValue(value))
			return true
		})
	}
	return out
}

// stringValue reads strings as-is and joins arrays of strings with ", ". Other types are empty.
func stringValue(v gjson.Result) string {
	switch {
	case v.Type == gjson.String:
		return v.String()
	case v.IsArray():
		var parts []string
		v.ForEach(func(_, item gjson.Result) bool {
			if item.Type == gjson.String && strings.TrimSpace(item.String()) != "" {
				parts = append(parts, strings.TrimSpace(item.String()))
			}
			return true
		})
		return strings.Join(parts, ", ")
	default:
		return ""
	}
}

func labelKey(label string) string {
	return textnorm.NormalizeSingleLine(label)
}
