// Package agent implements the chat-completion agents that extract material
// changes from page images.
package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	openai "github.com/sashabaranov/go-openai"

	"github.com/de-tools/materiality-evals/pkg/models/domain"
	"github.com/de-tools/materiality-evals/pkg/services/extraction"
	"github.com/de-tools/materiality-evals/pkg/services/prompts"
)

// cognitiveScope is the OAuth scope for Azure OpenAI requests.
const cognitiveScope = "https://cognitiveservices.azure.com/.default"

// ClientConfig describes how to reach the chat-completion endpoint. With
// Azure set, Endpoint and the deployment name in Model address an Azure
// OpenAI resource; UseDefaultCredential swaps the API key for a token from
// the ambient Azure identity.
type ClientConfig struct {
	APIKey               string
	BaseURL              string
	Model                string
	Azure                bool
	Endpoint             string
	UseDefaultCredential bool
}

// OpenAIAgent extracts material changes through the OpenAI chat-completion
// API, one multimodal request per page batch.
type OpenAIAgent struct {
	client       *openai.Client
	model        string
	systemPrompt string
}

func NewOpenAIAgent(ctx context.Context, cfg ClientConfig) (*OpenAIAgent, error) {
	systemPrompt, err := prompts.SystemPrompt()
	if err != nil {
		return nil, err
	}

	var clientCfg openai.ClientConfig
	switch {
	case cfg.Azure && cfg.UseDefaultCredential:
		// The token is fetched once and baked into the client, so a run must
		// finish within the token's lifetime. There is no refresh.
		cred, err := azidentity.NewDefaultAzureCredential(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create azure credential: %w", err)
		}
		token, err := cred.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{cognitiveScope}})
		if err != nil {
			return nil, fmt.Errorf("failed to acquire azure token: %w", err)
		}
		clientCfg = openai.DefaultAzureConfig(token.Token, cfg.Endpoint)
		clientCfg.APIType = openai.APITypeAzureAD
	case cfg.Azure:
		clientCfg = openai.DefaultAzureConfig(cfg.APIKey, cfg.Endpoint)
	default:
		clientCfg = openai.DefaultConfig(cfg.APIKey)
		if cfg.BaseURL != "" {
			clientCfg.BaseURL = cfg.BaseURL
		}
	}

	return &OpenAIAgent{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        cfg.Model,
		systemPrompt: systemPrompt,
	}, nil
}

// Extract sends one batch of page images to the model and decodes the JSON
// response. A response that is not a material-changes report is an error.
func (a *OpenAIAgent) Extract(ctx context.Context, req extraction.Request) (domain.MaterialChangesReport, error) {
	completionReq, err := a.newCompletionRequest(req)
	if err != nil {
		return domain.MaterialChangesReport{}, err
	}

	resp, err := a.client.CreateChatCompletion(ctx, completionReq)
	if err != nil {
		return domain.MaterialChangesReport{}, fmt.Errorf("failed to get chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return domain.MaterialChangesReport{}, fmt.Errorf("no response choices from model %s", a.model)
	}

	var report domain.MaterialChangesReport
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), &report); err != nil {
		return domain.MaterialChangesReport{}, fmt.Errorf("agent did not return a material changes report: %w", err)
	}
	return report, nil
}

func (a *OpenAIAgent) newCompletionRequest(req extraction.Request) (openai.ChatCompletionRequest, error) {
	userPrompt, err := prompts.UserPrompt(req.FileName)
	if err != nil {
		return openai.ChatCompletionRequest{}, err
	}

	parts := []openai.ChatMessagePart{
		{
			Type: openai.ChatMessagePartTypeText,
			Text: userPrompt,
		},
	}
	for _, dataURL := range req.ImageDataURLs {
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL:    dataURL,
				Detail: openai.ImageURLDetailAuto,
			},
		})
	}

	return openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: a.systemPrompt,
			},
			{
				Role:         openai.ChatMessageRoleUser,
				MultiContent: parts,
			},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		// A literal 0 would be dropped by the wire encoding and fall back to
		// the API default; the smallest nonzero float still pins sampling.
		Temperature: math.SmallestNonzeroFloat32,
	}, nil
}
