package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, ProviderGemini, config.Provider)
	assert.Equal(t, "gemini-2.5-flash-lite", config.GetModel(TierLite))
	assert.Equal(t, "gemini-2.5-flash", config.GetModel(TierStandard))
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))
}

func TestConfigFor(t *testing.T) {
	assert.Equal(t, ProviderOpenAI, ConfigFor("openai").Provider)
	assert.Equal(t, DefaultChatEndpoint, ConfigFor("openai").Endpoint)
	assert.Equal(t, ProviderGemini, ConfigFor("gemini").Provider)
	assert.Equal(t, ProviderGemini, ConfigFor("").Provider)
}

func TestGetModel_Fallback(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite: "fallback-model",
		},
	}

	// Unknown tier should fallback to TierStandard, then TierLite
	assert.Equal(t, "fallback-model", config.GetModel("unknown"))
}

func TestGetModel_EmptyConfig(t *testing.T) {
	config := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{},
	}

	assert.Equal(t, "", config.GetModel(TierAdvanced))
}

func TestWithModel(t *testing.T) {
	config := DefaultConfig()
	newConfig := config.WithModel(TierAdvanced, "custom-model")

	// Original should be unchanged
	assert.Equal(t, "gemini-2.5-pro", config.GetModel(TierAdvanced))

	assert.Equal(t, "custom-model", newConfig.GetModel(TierAdvanced))
	assert.Equal(t, "gemini-2.5-flash-lite", newConfig.GetModel(TierLite))
}

func TestWithAllModels(t *testing.T) {
	config := DefaultOpenAIConfig().WithAllModels("local-model")

	for _, tier := range []ModelTier{TierLite, TierStandard, TierAdvanced} {
		assert.Equal(t, "local-model", config.GetModel(tier))
	}
	assert.Equal(t, DefaultChatEndpoint, config.Endpoint)
}
