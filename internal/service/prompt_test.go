package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/basel-ax/cursorsmith/internal/domain"
)

func TestBuildPrompts(t *testing.T) {
	reqs, err := BuildPrompts("pink donut")
	require.NoError(t, err)
	require.Len(t, reqs, domain.VariantCount)

	for i, req := range reqs {
		assert.Equal(t, domain.Variant(i), req.Variant)
		assert.Contains(t, req.PromptText, "pink donut")
		assert.Contains(t, req.PromptText, "128x128")
		assert.Contains(t, req.PromptText, "MAGENTA (#FF00FF)")
		assert.Contains(t, req.PromptText, "NO anti-aliasing")
	}
	assert.Contains(t, reqs[domain.VariantNormal].PromptText, "ARROW pointing to the TOP-LEFT")
	assert.Contains(t, reqs[domain.VariantLoading].PromptText, "waiting")
	assert.Contains(t, reqs[domain.VariantTyping].PromptText, "vertical")
}

func TestBuildPromptsIsDeterministic(t *testing.T) {
	a, err := BuildPrompts("grumpy cat")
	require.NoError(t, err)
	b, err := BuildPrompts("grumpy cat")
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBuildPromptsRejectsEmptyTheme(t *testing.T) {
	for _, theme := range []string{"", "   ", "\t\n"} {
		_, err := BuildPrompts(theme)
		assert.ErrorIs(t, err, domain.ErrEmptyTheme)
	}
}
