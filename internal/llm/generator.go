package llm

import (
	"context"
	"fmt"
	"net/http"
)

// Role tags a message in a generation request.
type Role string

// Message roles understood by every provider.
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one role-tagged turn of a generation request.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is a single non-streaming generation request.
type Request struct {
	Model       string
	Temperature float32
	MaxTokens   int32
	Stop        []string
	Messages    []Message
}

// Response is the outcome of a request that reached the provider. A non-2xx StatusCode is a
// response error; generated text is only present on success.
type Response struct {
	StatusCode int
	Body       string

	text    string
	hasText bool
}

// NewTextResponse builds a successful response carrying generated text.
func NewTextResponse(text string) *Response {
	return &Response{StatusCode: http.StatusOK, text: text, hasText: true}
}

// NewStatusResponse builds a response without generated text, typically for a failed status.
func NewStatusResponse(status int, body string) *Response {
	return &Response{StatusCode: status, Body: body}
}

// OK reports whether the provider answered with a 2xx status.
func (r *Response) OK() bool {
	return r != nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Text returns the generated text and whether any was present.
func (r *Response) Text() (string, bool) {
	if r == nil {
		return "", false
	}
	return r.text, r.hasText
}

// Generator is the generation-service collaborator. Generate performs exactly one round trip and
// never retries. A returned error means the request itself failed (network, deadline, client
// construction); provider-side failures come back as a Response with a non-2xx status.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	// Close releases any resources held by the generator
	Close() error
}

// DialFunc creates a Generator for one call using the given credential.
type DialFunc func(ctx context.Context, apiKey string) (Generator, error)

// NewDialer returns a DialFunc for the provider named in config.
func NewDialer(config *Config) DialFunc {
	if config == nil {
		config = DefaultConfig()
	}

	return func(ctx context.Context, apiKey string) (Generator, error) {
		if apiKey == "" {
			return nil, fmt.Errorf("API key is required")
		}

		switch config.Provider {
		case ProviderOpenAI:
			return NewChatClient(config, apiKey), nil
		case ProviderGemini:
			return NewGeminiClient(ctx, config, apiKey)
		default:
			return nil, fmt.Errorf("unsupported provider %q", config.Provider)
		}
	}
}
