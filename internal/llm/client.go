// Package llm wraps the Gemini API behind a small client interface and
// provides the lenient JSON handling needed for model output, which is
// treated as untrusted free text everywhere in the pipeline.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// ModelTier selects the capability level for a call.
type ModelTier string

const (
	// TierLite is for simple extraction tasks such as resume structuring.
	TierLite ModelTier = "lite"
	// TierStandard is for the resume/job match scoring calls.
	TierStandard ModelTier = "standard"
)

// defaultModels maps tiers to Gemini model names.
var defaultModels = map[ModelTier]string{
	TierLite:     "gemini-2.5-flash-lite",
	TierStandard: "gemini-2.5-flash",
}

// Client is the inference boundary the pipeline calls through. Responses are
// free text that may or may not contain the JSON the caller asked for.
type Client interface {
	// Generate produces a completion for the prompt with an optional system
	// instruction. Temperature is held low for reproducible scoring.
	Generate(ctx context.Context, system, prompt string, tier ModelTier) (string, error)
	// Close releases resources held by the client.
	Close() error
}

// GeminiClient implements Client against Google Gemini.
type GeminiClient struct {
	client *genai.Client
	models map[ModelTier]string
}

// NewGeminiClient creates a Gemini-backed client.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		models: defaultModels,
	}, nil
}

// Generate produces a completion for the prompt using the tier's model.
func (c *GeminiClient) Generate(ctx context.Context, system, prompt string, tier ModelTier) (string, error) {
	modelName, ok := c.models[tier]
	if !ok {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(0.1) // Low temperature for consistent output
	if system != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(system)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	return textFromResponse(resp)
}

// Close releases resources held by the client.
func (c *GeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// textFromResponse joins the text parts of the first candidate.
func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
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
