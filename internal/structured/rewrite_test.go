package structured

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/textnorm"
	"github.com/jonathan/resume-rewriter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func consultingRequest() types.StructuredRequest {
	return types.StructuredRequest{
		Summary: "Consultant with   8 years\nin retail and banking transformations.",
		Fields: []types.LabeledField{
			{Label: "Areas of Expertise", Value: "Operating model design, cost reduction, post-merger integration"},
			{Label: "Sectors", Value: "Retail, Banking"},
		},
	}
}

func mustParse(t *testing.T, raw string) Parsed {
	t.Helper()
	parsed, ok := Parse(raw).(Parsed)
	require.True(t, ok)
	return parsed
}

func labels(fields []types.LabeledField) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Label
	}
	return out
}

func TestCapsFor(t *testing.T) {
	assert.Equal(t, Caps{SummaryMaxChars: DefaultSummaryMaxChars, FieldMaxChars: DefaultFieldMaxChars}, CapsFor(types.StructuredRequest{}))
	assert.Equal(t, Caps{SummaryMaxChars: 100, FieldMaxChars: DefaultFieldMaxChars}, CapsFor(types.StructuredRequest{SummaryMaxChars: 100}))
}

func TestFallback(t *testing.T) {
	req := consultingRequest()
	caps := Caps{SummaryMaxChars: 30, FieldMaxChars: 20}

	result := Fallback(req, caps)

	assert.Equal(t, []string{"Areas of Expertise", "Sectors"}, labels(result.Fields))
	assert.Equal(t, "Consultant with 8 years in", result.Summary)
	assert.Equal(t, "Operating model", result.Fields[0].Value)
	assert.Equal(t, "Retail, Banking", result.Fields[1].Value)
	for _, f := range result.Fields {
		assert.LessOrEqual(t, textnorm.RuneLen(f.Value), caps.FieldMaxChars)
	}
}

func TestMerge_ArrayFields(t *testing.T) {
	req := consultingRequest()
	parsed := mustParse(t, `{
		"summary": "Consultant leading retail and banking transformations",
		"fields": [
			{"label": "Sectors", "value": "Retail; Banking"},
			{"label": "Areas  of Expertise", "value": "Operating models, cost programs"}
		]
	}`)

	result := Merge(parsed, req, CapsFor(req))

	assert.Equal(t, "Consultant leading retail and banking transformations", result.Summary)
	assert.Equal(t, []types.LabeledField{
		{Label: "Areas of Expertise", Value: "Operating models, cost programs"},
		{Label: "Sectors", Value: "Retail; Banking"},
	}, result.Fields)
}

func TestMerge_ObjectFields(t *testing.T) {
	req := consultingRequest()
	parsed := mustParse(t, `{"summary":"S","fields":{"Sectors":["Retail","Banking","Energy"]}}`)

	result := Merge(parsed, req, CapsFor(req))

	assert.Equal(t, "S", result.Summary)
	assert.Equal(t, "Operating model design, cost reduction, post-merger integration", result.Fields[0].Value)
	assert.Equal(t, "Retail, Banking, Energy", result.Fields[1].Value)
}

func TestMerge_KeepsOriginalsForMissingOrEmpty(t *testing.T) {
	req := consultingRequest()
	parsed := mustParse(t, `{
		"summary": "   ",
		"fields": [
			{"label": "Areas of Expertise", "value": ""},
			{"label": "Industries", "value": "Retail"},
			{"label": "Extra", "value": "ignored"}
		]
	}`)

	result := Merge(parsed, req, CapsFor(req))

	assert.Equal(t, Fallback(req, CapsFor(req)), result)
	assert.Equal(t, []string{"Areas of Expertise", "Sectors"}, labels(result.Fields))
}

func TestMerge_TruncatesReturnedValues(t *testing.T) {
	req := consultingRequest()
	caps := Caps{SummaryMaxChars: 20, FieldMaxChars: 10}
	parsed := mustParse(t, `{"summary":"`+strings.Repeat("word ", 20)+`","fields":[{"label":"Sectors","value":"Retail and consumer goods"}]}`)

	result := Merge(parsed, req, caps)

	assert.LessOrEqual(t, textnorm.RuneLen(result.Summary), 20)
	for _, f := range result.Fields {
		assert.LessOrEqual(t, textnorm.RuneLen(f.Value), 10)
	}
	assert.Equal(t, "Retail", result.Fields[1].Value)
}

func TestMerge_FirstDuplicateLabelWins(t *testing.T) {
	req := consultingRequest()
	parsed := mustParse(t, `{"fields":[{"label":"Sectors","value":"First"},{"label":"Sectors","value":"Second"}]}`)

	result := Merge(parsed, req, CapsFor(req))

	assert.Equal(t, "First", result.Fields[1].Value)
}

func TestResultPieces(t *testing.T) {
	r := Result{
		Summary: "Summary",
		Fields:  []types.LabeledField{{Label: "A", Value: "x"}, {Label: "B"}},
	}
	assert.Equal(t, []string{"Summary", "x"}, r.Pieces())
}

func TestBuildMessages(t *testing.T) {
	req := consultingRequest()
	msgs, err := BuildMessages(req, Caps{SummaryMaxChars: 200, FieldMaxChars: 90}, "Target role: Principal\n\n", 1000)
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "at most 200 characters")
	assert.Contains(t, msgs[0].Content, "at most 90 characters")
	assert.Contains(t, msgs[0].Content, `"summary"`)
	assert.Contains(t, msgs[0].Content, `"fields"`)
	assert.NotContains(t, msgs[0].Content, "{{.")

	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.True(t, strings.HasPrefix(msgs[1].Content, "Target role: Principal"))
	assert.Contains(t, msgs[1].Content, "- Areas of Expertise: Operating model design")
	assert.Contains(t, msgs[1].Content, "- Sectors: Retail, Banking")
	assert.NotContains(t, msgs[1].Content, "{{.")
}
