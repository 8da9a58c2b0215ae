package structured

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		raw        string
		wantParsed bool
		wantReason string
		summary    string
	}{
		{
			name:       "plain object",
			raw:        `{"summary":"Strategy lead","fields":[]}`,
			wantParsed: true,
			summary:    "Strategy lead",
		},
		{
			name:       "object in code fence",
			raw:        "```json\n{\"summary\":\"Strategy lead\"}\n```",
			wantParsed: true,
			summary:    "Strategy lead",
		},
		{
			name:       "object surrounded by prose",
			raw:        "Here you go: {\"summary\": \"Ops\"} hope that helps",
			wantParsed: true,
			summary:    "Ops",
		},
		{
			name:       "prose only",
			raw:        "I polished your profile and it now reads much better.",
			wantReason: "response is not valid JSON",
		},
		{
			name:       "top-level array",
			raw:        `["a","b"]`,
			wantReason: "response JSON is not an object",
		},
		{
			name:       "empty",
			raw:        "  \n ",
			wantReason: "empty response",
		},
		{
			name:       "broken braces",
			raw:        `{"summary": "unterminated}`,
			wantReason: "response is not valid JSON",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcome := Parse(tt.raw)
			if tt.wantParsed {
				parsed, ok := outcome.(Parsed)
				require.True(t, ok, "expected Parsed, got %#v", outcome)
				assert.Equal(t, tt.summary, parsed.Object.Get("summary").String())
				return
			}
			unparseable, ok := outcome.(Unparseable)
			require.True(t, ok, "expected Unparseable, got %#v", outcome)
			assert.Equal(t, tt.raw, unparseable.Raw)
			assert.Equal(t, tt.wantReason, unparseable.Reason)
		})
	}
}
