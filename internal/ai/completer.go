// Package ai provides the language model backends the suspects speak through.
package ai

import (
	"context"
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/errors"
	"log/slog"
	"net/http"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

var (
	ErrMissingAPIKey   = errors.NewSentinel("API key not configured")
	ErrUnknownProvider = errors.NewSentinel("unknown provider")
)

// Config selects and tunes the completion backend.
type Config struct {
	Provider      string  `env:"RELAY_PROVIDER" envDefault:"openai"`
	OpenAIAPIKey  string  `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIBaseURL string  `env:"OPENAI_BASE_URL" envDefault:"https://api.openai.com/v1"`
	GeminiAPIKey  string  `env:"GEMINI_API_KEY" envDefault:""`
	GeminiBaseURL string  `env:"GEMINI_BASE_URL" envDefault:""`
	Model         string  `env:"RELAY_MODEL" envDefault:""`
	MaxTokens     int     `env:"RELAY_MAX_TOKENS" envDefault:"150"`
	Temperature   float64 `env:"RELAY_TEMPERATURE" envDefault:"0.8"`
}

// NewCompleter creates the completer for cfg.Provider.
//
// ErrMissingAPIKey is returned when the provider's credential is empty. httpClient may be nil.
func NewCompleter(ctx context.Context, cfg Config, httpClient *http.Client) (dialogue.Completer, error) {
	switch cfg.Provider {
	case ProviderOpenAI, "":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.Wrap(ErrMissingAPIKey, "new completer", slog.String("env", "OPENAI_API_KEY"))
		}
		return NewOpenAIClient(cfg, httpClient), nil
	case ProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil, errors.Wrap(ErrMissingAPIKey, "new completer", slog.String("env", "GEMINI_API_KEY"))
		}
		client, err := NewGeminiClient(ctx, cfg, httpClient)
		if err != nil {
			return nil, errors.Wrap(err, "new completer")
		}
		return client, nil
	default:
		return nil, errors.Wrap(ErrUnknownProvider, "new completer", slog.String("provider", cfg.Provider))
	}
}
