package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// ChatClient implements Generator for OpenAI-compatible chat completions endpoints.
type ChatClient struct {
	apiKey     string
	endpoint   string
	config     *Config
	httpClient *http.Client
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int32     `json:"max_tokens,omitempty"`
	Stop        []string  `json:"stop,omitempty"`
}

// NewChatClient creates a chat completions client.
func NewChatClient(config *Config, apiKey string) (client *ChatClient) {
	endpoint := config.Endpoint
	if endpoint == "" {
		endpoint = DefaultChatEndpoint
	}
	client = &ChatClient{
		apiKey:   apiKey,
		endpoint: endpoint,
		config:   config,
		httpClient: &http.Client{
			Timeout: config.HTTPTimeout,
		},
	}
	return client
}

// Generate posts one chat completions request.
func (c *ChatClient) Generate(ctx context.Context, req Request) (response *Response, err error) {
	model := req.Model
	if model == "" {
		model = c.config.GetModel(TierStandard)
	}

	var reqBody []byte
	reqBody, err = json.Marshal(chatRequest{
		Model:       model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
		Stop:        req.Stop,
	})
	if err != nil {
		err = errors.Wrap(err, "failed to marshal request")
		return nil, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var respBody []byte
	respBody, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return NewStatusResponse(resp.StatusCode, string(respBody)), nil
	}

	return parseChatResponse(resp.StatusCode, respBody), nil
}

// Close is a no-op; the HTTP client holds no per-call resources.
func (c *ChatClient) Close() error {
	return nil
}

// parseChatResponse reads choices[0].message.content, falling back to the legacy
// choices[0].text field. Absent content yields a response without text.
func parseChatResponse(status int, body []byte) *Response {
	if !gjson.ValidBytes(body) {
		return NewStatusResponse(status, string(body))
	}

	parsed := gjson.ParseBytes(body)
	for _, path := range []string{"choices.0.message.content", "choices.0.text"} {
		if content := parsed.Get(path); content.Exists() && content.Type == gjson.String {
			return NewTextResponse(content.String())
		}
	}
	return NewStatusResponse(status, string(body))
}
