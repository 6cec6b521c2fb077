// Package ai implements analysis.Engine on top of hosted generative-language APIs.
package ai

import (
	"context"
	"github.com/myrjola/veritruth/internal/analysis"
	"github.com/myrjola/veritruth/internal/errors"
	"log/slog"
	"strings"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

var (
	ErrMissingAPIKey   = errors.NewSentinel("API key for the analysis provider not set")
	ErrUnknownProvider = errors.NewSentinel("unknown analysis provider")
)

// Config selects and configures the engine.
type Config struct {
	Provider      string `env:"VERITRUTH_PROVIDER" envDefault:"gemini"`
	GeminiAPIKey  string `env:"GEMINI_API_KEY" envDefault:""`
	GeminiModel   string `env:"VERITRUTH_GEMINI_MODEL" envDefault:"gemini-3-pro-preview"`
	OpenAIAPIKey  string `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel   string `env:"VERITRUTH_OPENAI_MODEL" envDefault:"gpt-4o"`
	OpenAIBaseURL string `env:"VERITRUTH_OPENAI_BASE_URL" envDefault:""`
}

// NewEngine creates the engine for cfg.Provider. The provider's API key is required.
func NewEngine(ctx context.Context, cfg Config) (analysis.Engine, error) {
	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case ProviderGemini, "":
		if cfg.GeminiAPIKey == "" {
			return nil, errors.Wrap(ErrMissingAPIKey, "new engine", slog.String("env", "GEMINI_API_KEY"))
		}
		engine, err := NewGeminiEngine(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, errors.Wrap(err, "new gemini engine")
		}
		return engine, nil
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.Wrap(ErrMissingAPIKey, "new engine", slog.String("env", "OPENAI_API_KEY"))
		}
		return NewOpenAIEngine(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL), nil
	default:
		return nil, errors.Wrap(ErrUnknownProvider, "new engine", slog.String("provider", provider))
	}
}
