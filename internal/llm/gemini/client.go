package gemini

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"google.golang.org/genai"

	"arvr-research-backend/internal/llm"
	"arvr-research-backend/internal/shared/telemetry"
)

// Client implements llm.Client using the Gemini API.
type Client struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewClient constructs a Gemini client authenticated with an API key.
func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY is required")
	}
	if strings.TrimSpace(model) == "" {
		return nil, fmt.Errorf("GEMINI_MODEL is required")
	}

	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("GEMINI_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("init genai client: %w", err)
	}

	return &Client{
		client:  client,
		model:   model,
		timeout: timeout,
	}, nil
}

// Summarize issues a single synchronous generation call. There is no retry
// or backoff; any transport, auth, or quota failure surfaces to the caller.
func (c *Client) Summarize(ctx context.Context, input llm.SummarizeInput) (llm.Result, error) {
	prompt, truncated := BuildPrompt(input.DocumentText)

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
	}
	contents := []*genai.Content{genai.NewContentFromText(prompt, genai.RoleUser)}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(callCtx, c.model, contents, config)
	if err != nil {
		if callCtx.Err() == context.DeadlineExceeded {
			return llm.Result{}, fmt.Errorf("gemini request timeout: %w", err)
		}
		return llm.Result{}, fmt.Errorf("gemini generate: %w", err)
	}

	text := collectText(resp)
	if strings.TrimSpace(text) == "" {
		return llm.Result{}, fmt.Errorf("gemini response empty content")
	}

	telemetry.Info("llm.response", map[string]any{
		"model":       c.model,
		"prompt_len":  len(prompt),
		"output_len":  len(text),
		"truncated":   truncated,
		"duration_ms": float64(time.Since(start).Microseconds()) / 1000.0,
	})

	return llm.Result{Text: text, Truncated: truncated}, nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.Text != "" {
				b.WriteString(part.Text)
			}
		}
		if b.Len() > 0 {
			break
		}
	}
	return b.String()
}

var _ llm.Client = (*Client)(nil)
