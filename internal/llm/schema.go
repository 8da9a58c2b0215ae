package llm

import (
	"fmt"
	"strings"
)

// OutputSchema defines the JSON object a model is asked to return.
type OutputSchema struct {
	Name   string        // Schema name (e.g., "StructuredRewrite")
	Fields []SchemaField // Top-level keys, in order
}

// SchemaField defines a single top-level key of the expected output.
type SchemaField struct {
	Name        string // JSON field name
	Type        string // Type hint shown to the model
	Description string // Description for the LLM
	Required    bool   // Whether this field is required
}

// JSONContract renders the "return only this JSON" instructions for a schema.
func JSONContract(schema OutputSchema) string {
	var sb strings.Builder

	sb.WriteString("Return ONLY valid JSON matching this exact structure:\n{\n")
	for i, field := range schema.Fields {
		typeHint := field.Type
		if typeHint == "" {
			typeHint = "\"string\""
		}
		requiredHint := ""
		if field.Required {
			requiredHint = " (required)"
		}
		sb.WriteString(fmt.Sprintf("  \"%s\": %s%s", field.Name, typeHint, requiredHint))
		if field.Description != "" {
			sb.WriteString(fmt.Sprintf(" // %s", field.Description))
		}
		if i < len(schema.Fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("}\n")
	sb.WriteString("Use exactly these top-level keys. No markdown, no explanation, no code blocks.")

	return sb.String()
}
