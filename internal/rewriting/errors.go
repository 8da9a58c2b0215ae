package rewriting

import "fmt"

// Diagnostics carried in RewriteResult.Error.
const (
	msgMissingCredential = "missing credential"
	msgEmptyInput        = "empty input"
	msgInvalidFormat     = "invalid format"
)

// ConfigurationError means generation is switched off or has no credential. The call degrades
// to local output.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Message)
}

// InputError means the request had nothing to rewrite or was malformed. No call is attempted.
type InputError struct {
	Message string
	Cause   error
}

func (e *InputError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("input error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("input error: %s", e.Message)
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// TransportError covers a failed request and a non-success response.
type TransportError struct {
	Message    string
	StatusCode int // 0 when the request never got a response
	Cause      error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("transport error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("transport error: %s", e.Message)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ParseError means a structured response could not be read as a JSON object.
type ParseError struct {
	Message string
	Reason  string
}

func (e *ParseError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("parse error: %s: %s", e.Message, e.Reason)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}
