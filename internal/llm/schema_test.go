package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSONContract(t *testing.T) {
	out := JSONContract(OutputSchema{
		Name: "Test",
		Fields: []SchemaField{
			{Name: "summary", Type: "\"string\"", Description: "one line", Required: true},
			{Name: "fields", Type: "[{\"label\": \"string\", \"value\": \"string\"}]"},
		},
	})

	assert.Contains(t, out, "Return ONLY valid JSON")
	assert.Contains(t, out, `"summary": "string" (required) // one line,`)
	assert.Contains(t, out, `"fields": [{"label": "string", "value": "string"}]`)
	assert.Contains(t, out, "No markdown")
}
