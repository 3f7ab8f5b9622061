package agent

import (
	"context"
	"encoding/json"
	"testing"

	openai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/materiality-evals/pkg/services/extraction"
)

func newTestAgent(t *testing.T) *OpenAIAgent {
	t.Helper()
	a, err := NewOpenAIAgent(context.Background(), ClientConfig{
		APIKey: "test-key",
		Model:  "gpt-4.1",
	})
	require.NoError(t, err)
	return a
}

func TestNewCompletionRequest_PinsTemperature(t *testing.T) {
	a := newTestAgent(t)

	req, err := a.newCompletionRequest(extraction.Request{
		FileName:      "tesco_ar_25",
		PageNumbers:   []string{"1", "2"},
		ImageDataURLs: []string{"data:image/png;base64,AA==", "data:image/png;base64,BB=="},
	})
	require.NoError(t, err)

	// Sampling must stay pinned: the temperature field has to survive the
	// wire encoding instead of being dropped as a zero value.
	data, err := json.Marshal(req)
	require.NoError(t, err)

	var wire map[string]any
	require.NoError(t, json.Unmarshal(data, &wire))
	temperature, ok := wire["temperature"]
	require.True(t, ok, "temperature missing from serialized request")
	assert.InDelta(t, 0.0, temperature.(float64), 1e-30)
}

func TestNewCompletionRequest_MessageShape(t *testing.T) {
	a := newTestAgent(t)

	req, err := a.newCompletionRequest(extraction.Request{
		FileName:      "tesco_ar_25",
		PageNumbers:   []string{"1", "2"},
		ImageDataURLs: []string{"data:image/png;base64,AA==", "data:image/png;base64,BB=="},
	})
	require.NoError(t, err)

	assert.Equal(t, "gpt-4.1", req.Model)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, openai.ChatCompletionResponseFormatTypeJSONObject, req.ResponseFormat.Type)

	require.Len(t, req.Messages, 2)
	assert.Equal(t, openai.ChatMessageRoleSystem, req.Messages[0].Role)
	assert.NotEmpty(t, req.Messages[0].Content)

	user := req.Messages[1]
	assert.Equal(t, openai.ChatMessageRoleUser, user.Role)
	// One text part followed by one image part per page.
	require.Len(t, user.MultiContent, 3)
	assert.Equal(t, openai.ChatMessagePartTypeText, user.MultiContent[0].Type)
	assert.Contains(t, user.MultiContent[0].Text, "tesco_ar_25")
	for i, dataURL := range []string{"data:image/png;base64,AA==", "data:image/png;base64,BB=="} {
		part := user.MultiContent[i+1]
		assert.Equal(t, openai.ChatMessagePartTypeImageURL, part.Type)
		require.NotNil(t, part.ImageURL)
		assert.Equal(t, dataURL, part.ImageURL.URL)
	}
}
