// Package schemas embeds the JSON Schemas for the rewrite request and result documents.
package schemas

import (
	"embed"
	"fmt"
)

// Schema file names.
const (
	RewriteRequest = "rewrite_request.schema.json"
	RewriteResult  = "rewrite_result.schema.json"
)

//go:embed *.schema.json
var files embed.FS

// Load returns the content of an embedded schema file.
func Load(name string) (string, error) {
	data, err := files.ReadFile(name)
	if err != nil {
		return "", fmt.Errorf("schema %s not found: %w", name, err)
	}
	return string(data), nil
}

// Names lists the embedded schema files.
func Names() []string {
	return []string{RewriteRequest, RewriteResult}
}
