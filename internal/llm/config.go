// Package llm provides the generation-service collaborator: provider-neutral request and
// response types, model tiers, and Gemini and OpenAI-compatible clients.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for short single-line rewrites
	TierLite ModelTier = "lite"
	// TierStandard is for multi-line rewrites and structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for longer summaries that need more nuance
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
	// ProviderOpenAI is any OpenAI-compatible chat completions endpoint
	ProviderOpenAI Provider = "openai"
)

// DefaultChatEndpoint is the chat completions endpoint used by ProviderOpenAI.
const DefaultChatEndpoint = "https://api.openai.com/v1/chat/completions"

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Endpoint overrides the chat completions URL (ProviderOpenAI only)
	Endpoint string
	// HTTPTimeout bounds the HTTP client used by ProviderOpenAI; 0 means no client timeout
	HTTPTimeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// DefaultOpenAIConfig returns the default configuration for an OpenAI-compatible endpoint
func DefaultOpenAIConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Endpoint: DefaultChatEndpoint,
		Models: map[ModelTier]string{
			TierLite:     "gpt-4o-mini",
			TierStandard: "gpt-4o-mini",
			TierAdvanced: "gpt-4o",
		},
	}
}

// ConfigFor returns the default configuration for a provider name, falling back to Gemini.
func ConfigFor(provider string) *Config {
	if Provider(provider) == ProviderOpenAI {
		return DefaultOpenAIConfig()
	}
	return DefaultGeminiConfig()
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Endpoint:    c.Endpoint,
		HTTPTimeout: c.HTTPTimeout,
		Models:      make(map[ModelTier]string),
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}

// WithAllModels returns a new Config that uses one model for every tier
func (c *Config) WithAllModels(model string) *Config {
	out := c.WithModel(TierLite, model)
	out.Models[TierStandard] = model
	out.Models[TierAdvanced] = model
	return out
}
