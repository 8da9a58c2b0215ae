package structured

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Outcome is the result of reading a model response: either Parsed or Unparseable.
type Outcome interface {
	isOutcome()
}

// Parsed holds a response that decoded to a JSON object.
type Parsed struct {
	Object gjson.Result
}

// Unparseable holds a response that could not be read as a JSON object.
type Unparseable struct {
	Raw    string
	Reason string
}

func (Parsed) isOutcome()      {}
func (Unparseable) isOutcome() {}

// Parse reads raw as a JSON object. The whole text is tried first, then the slice from the first
// '{' to the last '}' so that prose or code fences around the object are tolerated.
func Parse(raw string) Outcome {
	text := strings.TrimSpace(raw)
	if text == "" {
		return Unparseable{Raw: raw, Reason: "empty response"}
	}

	obj, reason := parseObject(text)
	if reason == "" {
		return Parsed{Object: obj}
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start >= 0 && end > start {
		if obj, sliceReason := parseObject(text[start : end+1]); sliceReason == "" {
			return Parsed{Object: obj}
		} else if reason == "response is not valid JSON" {
			reason = sliceReason
		}
	}

	return Unparseable{Raw: raw, Reason: reason}
}

func parseObject(text string) (gjson.Result, string) {
	if !gjson.Valid(text) {
		return gjson.Result{}, "response is not valid JSON"
	}
	result := gjson.Parse(text)
	if !result.IsObject() {
		return gjson.Result{}, "response JSON is not an object"
	}
	return result, ""
}
