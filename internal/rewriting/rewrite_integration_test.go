//go:build integration
// +build integration

package rewriting

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-rewriter/internal/config"
	"github.com/jonathan/resume-rewriter/internal/highlight"
	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/schemas"
	"github.com/jonathan/resume-rewriter/internal/textnorm"
	"github.com/jonathan/resume-rewriter/internal/types"
)

func realSettings(t *testing.T) config.GenerationSettings {
	t.Helper()
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}
	return config.GenerationSettings{Enabled: true, APIKey: apiKey}
}

func TestRewrite_RealAPI(t *testing.T) {
	settings := realSettings(t)
	o := New(nil, WithModels(llm.DefaultGeminiConfig()), WithTimeout(60*time.Second))

	result := o.Rewrite(context.Background(), settings, types.RewriteRequest{
		ContentType: types.ContentWorkBullet,
		Fragments:   []string{"moved 40 services from VMs to kubernetes, infra cost went down about 30 percent"},
		Hints:       types.Hints{Role: "Staff Engineer", Company: "Acme"},
	})

	require.Equal(t, types.StateSuccess, result.State, result.Error)
	assert.NotEmpty(t, result.Text)
	assert.LessOrEqual(t, textnorm.RuneLen(result.Text), 140)
	for _, h := range result.Highlights {
		assert.Contains(t, result.Text, h)
	}
	assert.LessOrEqual(t, len(result.Highlights), highlight.MaxHighlights)

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.NoError(t, schemas.ValidateResult(data))
}

func TestRewriteStructured_RealAPI(t *testing.T) {
	settings := realSettings(t)
	o := New(nil, WithModels(llm.DefaultGeminiConfig()), WithTimeout(60*time.Second))

	req := types.StructuredRequest{
		Summary: "consultant who did pricing and ops work for retail and energy clients",
		Fields: []types.LabeledField{
			{Label: "Sectors", Value: "retail, energy, consumer goods"},
			{Label: "Capabilities", Value: "pricing, operating model, cost reduction"},
		},
	}
	result := o.RewriteStructured(context.Background(), settings, req)

	require.Contains(t, []types.State{types.StateSuccess, types.StateParseFailure}, result.State, result.Error)
	require.Len(t, result.Fields, 2)
	assert.Equal(t, "Sectors", result.Fields[0].Label)
	assert.Equal(t, "Capabilities", result.Fields[1].Label)
	assert.NotEmpty(t, result.Summary)
}
