package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiClient implements Generator for Google Gemini
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// Generate sends the request as a single chat turn. System messages become the system
// instruction and earlier user/assistant turns become chat history.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	modelName := req.Model
	if modelName == "" {
		modelName = c.config.GetModel(TierStandard)
	}
	if modelName == "" {
		return nil, fmt.Errorf("no model configured")
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(req.Temperature)
	if req.MaxTokens > 0 {
		model.SetMaxOutputTokens(req.MaxTokens)
	}
	if len(req.Stop) > 0 {
		model.StopSequences = req.Stop
	}

	system, history, last := splitMessages(req.Messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if last == "" {
		return nil, fmt.Errorf("request has no user message")
	}

	session := model.StartChat()
	session.History = history

	resp, err := session.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return statusFromError(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return NewStatusResponse(http.StatusOK, err.Error()), nil
	}
	return NewTextResponse(text), nil
}

// Close releases resources held by the client
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// splitMessages separates system text, prior turns and the final user message.
func splitMessages(messages []Message) (string, []*genai.Content, string) {
	var system []string
	var turns []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			system = append(system, m.Content)
			continue
		}
		turns = append(turns, m)
	}

	if len(turns) == 0 || turns[len(turns)-1].Role != RoleUser {
		return strings.Join(system, "\n\n"), nil, ""
	}

	history := make([]*genai.Content, 0, len(turns)-1)
	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}

	return strings.Join(system, "\n\n"), history, turns[len(turns)-1].Content
}

// statusFromError turns provider-side failures into status responses and leaves everything
// else (network errors, cancelled contexts) as transport errors.
func statusFromError(err error) (*Response, error) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		body := apiErr.Body
		if body == "" {
			body = apiErr.Message
		}
		return NewStatusResponse(apiErr.Code, body), nil
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return NewStatusResponse(http.StatusUnprocessableEntity, blocked.Error()), nil
	}

	return nil, fmt.Errorf("failed to generate content: %w", err)
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
