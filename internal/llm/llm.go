// Package llm provides the external model clients behind the analysis
// dispatcher. Both providers request JSON-shaped output so downstream
// normalization starts from structured text whenever the model cooperates.
package llm

import (
	"fmt"
	"log/slog"
	"time"

	"veritas/internal/analysis"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"

	defaultTimeout     = 120 * time.Second
	defaultTemperature = 0.2
)

// Config carries provider selection and credentials. It mirrors the
// analysis section of the service configuration.
type Config struct {
	Provider    string
	Model       string
	Token       string
	BaseURL     string
	Timeout     time.Duration
	Temperature float32
}

// New builds the configured model client. Unknown providers fail instead of
// silently defaulting so a typo in config cannot route traffic to the wrong
// vendor.
func New(cfg Config, logger *slog.Logger) (analysis.ModelClient, error) {
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	if cfg.Temperature <= 0 {
		cfg.Temperature = defaultTemperature
	}

	switch cfg.Provider {
	case ProviderOpenAI, "":
		return newOpenAI(cfg, logger), nil
	case ProviderGemini:
		return newGemini(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unknown model provider: %s", cfg.Provider)
	}
}
