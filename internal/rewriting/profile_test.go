package rewriting

import (
	"testing"

	"github.com/jonathan/resume-rewriter/internal/llm"
	"github.com/jonathan/resume-rewriter/internal/prompts"
	"github.com/jonathan/resume-rewriter/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfiles_CoverEveryContentType(t *testing.T) {
	profiles := Profiles()
	require.Len(t, profiles, len(types.ContentTypes()))

	for _, ct := range types.ContentTypes() {
		p, ok := profiles[ct]
		require.True(t, ok, ct)
		assert.Equal(t, ct, p.ContentType)
		assert.NotEmpty(t, p.Keywords, ct)
		assert.Positive(t, p.MaxInputChars, ct)
		assert.Positive(t, p.MaxOutputTokens, ct)

		_, err := prompts.Get(prompts.RewritingFile, p.SystemPrompt)
		assert.NoError(t, err, ct)
		_, err = prompts.Get(prompts.RewritingFile, p.UserPrompt)
		assert.NoError(t, err, ct)

		switch p.Shape {
		case ShapeSingleLine, ShapeBullets:
			assert.Positive(t, p.Contract.MaxChars, ct)
		case ShapeLines:
			assert.Positive(t, p.Contract.MinLines, ct)
			assert.GreaterOrEqual(t, p.Contract.MaxLines, p.Contract.MinLines, ct)
			assert.Positive(t, p.Contract.MaxTotalChars, ct)
		}
	}
}

func TestStructuredProfile(t *testing.T) {
	p := StructuredProfile()
	assert.Equal(t, types.ContentStructured, p.ContentType)
	assert.Equal(t, llm.TierStandard, p.Tier)

	_, err := prompts.Get(prompts.RewritingFile, p.SystemPrompt)
	assert.NoError(t, err)
}

func TestWithProfile(t *testing.T) {
	custom := Profiles()[types.ContentWorkBullet]
	custom.Contract.MaxChars = 80
	custom.Temperature = 0

	o := New(nil, WithProfile(custom))

	got, ok := o.Profile(types.ContentWorkBullet)
	require.True(t, ok)
	assert.Equal(t, 80, got.Contract.MaxChars)

	_, ok = o.Profile("cover_letter")
	assert.False(t, ok)
}

func TestShapeString(t *testing.T) {
	assert.Equal(t, "single_line", ShapeSingleLine.String())
	assert.Equal(t, "lines", ShapeLines.String())
	assert.Equal(t, "bullets", ShapeBullets.String())
}
