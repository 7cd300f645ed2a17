package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"veritas/internal/analysis"
)

type geminiClient struct {
	apiKey      string
	model       string
	timeout     time.Duration
	temperature float32
	logger      *slog.Logger
}

func newGemini(cfg Config, logger *slog.Logger) *geminiClient {
	return &geminiClient{
		apiKey:      cfg.Token,
		model:       cfg.Model,
		timeout:     cfg.Timeout,
		temperature: cfg.Temperature,
		logger:      logger.With("system", "llm", "provider", ProviderGemini),
	}
}

// Complete opens a short-lived Gemini client, sends the system instruction
// and content blocks, and returns the first text part of the first candidate
// that carries one. JSON output is requested through the response MIME type.
func (c *geminiClient) Complete(ctx context.Context, system string, blocks []analysis.Content) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	client, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("create client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(c.model)

	temperature := c.temperature
	model.GenerationConfig = genai.GenerationConfig{
		Temperature:      &temperature,
		ResponseMIMEType: "application/json",
	}
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(system)},
	}

	parts := make([]genai.Part, 0, len(blocks))

	for _, block := range blocks {
		if block.IsImage() {
			mime := block.MIME
			if mime == "" {
				mime = "image/jpeg"
			}
			parts = append(parts, &genai.Blob{MIMEType: mime, Data: block.Data})
			continue
		}

		parts = append(parts, genai.Text(block.Text))
	}

	start := time.Now()

	resp, err := model.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", fmt.Errorf("generate content: empty response")
	}

	c.logger.Debug("completion finished", "model", c.model, "duration", time.Since(start))

	return text, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}

		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				return string(text)
			}
		}
	}

	return ""
}
