// Package prompts holds the embedded prompt templates used by the rewriting profiles.
// Templates live in JSON files keyed by prompt name and use {{.Name}} placeholders.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"regexp"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// RewritingFile holds the system/user templates for every rewriting profile.
const RewritingFile = "rewriting.json"

var placeholder = regexp.MustCompile(`\{\{\.(\w+)\}\}`)

// templates maps prompt key to template text for one file.
type templates map[string]string

var (
	loaded   = make(map[string]templates)
	loadedMu sync.RWMutex
)

// Get returns the raw template stored under key in filename.
func Get(filename, key string) (string, error) {
	t, err := load(filename)
	if err != nil {
		return "", err
	}
	tmpl, ok := t[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}
	return tmpl, nil
}

// Render loads a template and fills every placeholder from data. A placeholder without a value
// is an error; substituted values are never rescanned.
func Render(filename, key string, data map[string]string) (string, error) {
	tmpl, err := Get(filename, key)
	if err != nil {
		return "", err
	}

	var missing string
	out := placeholder.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := placeholder.FindStringSubmatch(m)[1]
		value, ok := data[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return value
	})
	if missing != "" {
		return "", fmt.Errorf("prompt %s in %s: no value for placeholder %q", key, filename, missing)
	}
	return out, nil
}

func load(filename string) (templates, error) {
	loadedMu.RLock()
	t, ok := loaded[filename]
	loadedMu.RUnlock()
	if ok {
		return t, nil
	}

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	loadedMu.Lock()
	loaded[filename] = t
	loadedMu.Unlock()
	return t, nil
}
