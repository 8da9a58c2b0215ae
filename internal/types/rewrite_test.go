//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		request RewriteRequest
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid request",
			request: RewriteRequest{ContentType: ContentWorkBullet, Fragments: []string{"Led migration"}},
		},
		{
			name:    "empty fragments are left to the orchestrator",
			request: RewriteRequest{ContentType: ContentTechSummary},
		},
		{
			name:    "missing content type",
			request: RewriteRequest{Fragments: []string{"x"}},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name:    "structured is not a rewrite content type",
			request: RewriteRequest{ContentType: ContentStructured, Fragments: []string{"x"}},
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name:    "negative cap",
			request: RewriteRequest{ContentType: ContentWorkProfile, Contract: &FormatContract{MaxChars: -1}},
			wantErr: true,
			errMsg:  "gte",
		},
		{
			name:    "inverted line bounds",
			request: RewriteRequest{ContentType: ContentWorkProfile, Contract: &FormatContract{MinLines: 3, MaxLines: 2}},
			wantErr: true,
			errMsg:  "exceeds max_lines",
		},
		{
			name:    "min lines without max",
			request: RewriteRequest{ContentType: ContentWorkProfile, Contract: &FormatContract{MinLines: 3}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.request.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestStructuredRequest_Validate(t *testing.T) {
	valid := StructuredRequest{Summary: "x", Fields: []LabeledField{{Label: "Sectors", Value: ""}}}
	assert.NoError(t, valid.Validate())

	missingLabel := StructuredRequest{Fields: []LabeledField{{Label: "", Value: "Retail"}}}
	err := missingLabel.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Label")

	negative := StructuredRequest{SummaryMaxChars: -5}
	assert.Error(t, negative.Validate())
}

func TestFormatContract_Merge(t *testing.T) {
	defaults := FormatContract{MaxChars: 140, MaxTotalChars: 420, MinLines: 2, MaxLines: 4, BulletCount: 3}

	assert.Equal(t, defaults, FormatContract{}.Merge(defaults))

	override := FormatContract{MaxChars: 100, MaxLines: 3}
	assert.Equal(t, FormatContract{MaxChars: 100, MaxTotalChars: 420, MinLines: 2, MaxLines: 3, BulletCount: 3}, override.Merge(defaults))
}

func TestContentTypes(t *testing.T) {
	cts := ContentTypes()
	assert.Len(t, cts, 5)
	assert.NotContains(t, cts, ContentStructured)
}

func TestRewriteResult_JSONShape(t *testing.T) {
	result := RewriteResult{
		OK:          true,
		ContentType: ContentWorkBullet,
		State:       StateSuccess,
		Text:        "Cut cost 30%",
		Highlights:  []string{"30%"},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "SUCCESS", raw["state"])
	assert.Equal(t, "work_bullet", raw["content_type"])
	assert.NotContains(t, raw, "bullets")
	assert.NotContains(t, raw, "error")
	assert.Contains(t, raw, "highlights")
}
