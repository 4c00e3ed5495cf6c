package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"job-recommender/internal/llm"
	"job-recommender/internal/shared/telemetry"
)

// Client implements llm.Client on the Gemini API.
type Client struct {
	client *genai.Client
	model  string
}

// Options configures NewClient. BaseURL is optional.
type Options struct {
	APIKey  string
	Model   string
	BaseURL string
}

// NewClient creates a Gemini client using the official SDK.
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(opts.Model) == "" {
		return nil, errors.New("LLM_MODEL is required for Gemini")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{
			BaseURL: strings.TrimSpace(opts.BaseURL),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	return &Client{client: c, model: opts.Model}, nil
}

// Complete generates a single response for prompt.
func (c *Client) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text, ok := responseText(resp)
	if !ok {
		return "", errors.New("gemini response missing candidates")
	}
	if resp.UsageMetadata != nil {
		telemetry.Info("llm.response", map[string]any{
			"provider":          "gemini",
			"model":             c.model,
			"prompt_tokens":     resp.UsageMetadata.PromptTokenCount,
			"completion_tokens": resp.UsageMetadata.CandidatesTokenCount,
			"total_tokens":      resp.UsageMetadata.TotalTokenCount,
		})
	}
	return text, nil
}

// responseText joins the non-thought parts of the first candidate. ok is false when
// the response carries no candidate content at all.
func responseText(resp *genai.GenerateContentResponse) (text string, ok bool) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", false
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil && !part.Thought {
			b.WriteString(part.Text)
		}
	}
	return b.String(), true
}

var _ llm.Client = (*Client)(nil)
