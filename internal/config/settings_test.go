package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_ReadsFreshOnEveryCall(t *testing.T) {
	v, err := New("")
	require.NoError(t, err)
	source := NewSource(v)

	t.Setenv("GENERATION_ENABLED", "false")
	t.Setenv("GENERATION_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	first := source.GenerationSettings()
	assert.False(t, first.Enabled)
	assert.False(t, first.HasCredential())

	t.Setenv("GENERATION_ENABLED", "true")
	t.Setenv("GENERATION_API_KEY", "k-123")
	second := source.GenerationSettings()
	assert.True(t, second.Enabled)
	assert.Equal(t, "k-123", second.APIKey)
}

func TestGenerationSettings_HasCredential(t *testing.T) {
	assert.False(t, GenerationSettings{}.HasCredential())
	assert.False(t, GenerationSettings{APIKey: "  \t"}.HasCredential())
	assert.True(t, GenerationSettings{APIKey: "k"}.HasCredential())
}

func TestGenerationSettings_StringHidesKey(t *testing.T) {
	s := GenerationSettings{Enabled: true, APIKey: "super-secret"}
	assert.NotContains(t, s.String(), "super-secret")
	assert.Contains(t, s.String(), "<set>")
}

func TestStatic(t *testing.T) {
	provider := Static{Enabled: true, APIKey: "k"}
	assert.Equal(t, GenerationSettings{Enabled: true, APIKey: "k"}, provider.GenerationSettings())
}
