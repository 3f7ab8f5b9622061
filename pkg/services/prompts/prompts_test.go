package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSystemPrompt(t *testing.T) {
	prompt, err := SystemPrompt()
	require.NoError(t, err)

	assert.Contains(t, prompt, "material change")
	assert.Contains(t, prompt, "reasons_for_change")
	assert.Contains(t, prompt, "supporting_text")
}

func TestUserPrompt_IncludesFileName(t *testing.T) {
	prompt, err := UserPrompt("Tesco AR report extracted")
	require.NoError(t, err)

	assert.True(t, strings.Contains(prompt, `"Tesco AR report extracted"`), prompt)
}
