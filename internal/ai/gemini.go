package ai

import (
	"context"
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/errors"
	"google.golang.org/genai"
	"log/slog"
	"net/http"
	"strings"
)

const DefaultGeminiModel = "gemini-2.5-flash"

// GeminiClient completes dialogues with the Gemini API.
type GeminiClient struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewGeminiClient creates a client authenticating with cfg.GeminiAPIKey.
func NewGeminiClient(ctx context.Context, cfg Config, httpClient *http.Client) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{ //nolint:exhaustruct // this is better for readability
		APIKey:      cfg.GeminiAPIKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPClient:  httpClient,
		HTTPOptions: genai.HTTPOptions{BaseURL: cfg.GeminiBaseURL},
	})
	if err != nil {
		return nil, errors.Wrap(err, "new genai client")
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiClient{
		client:      client,
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}, nil
}

// Complete returns the text of the first candidate, or an empty string if there is none.
func (c *GeminiClient) Complete(ctx context.Context, messages []dialogue.Message) (string, error) {
	systemInstruction, contents := geminiContents(messages)
	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{ //nolint:exhaustruct,lll // this is better for readability
		SystemInstruction: systemInstruction,
		MaxOutputTokens:   int32(c.maxTokens), //nolint:gosec // configured, small
		Temperature:       genai.Ptr(c.temperature),
	})
	if err != nil {
		attrs := append([]slog.Attr{slog.String("model", c.model)}, geminiErrorAttrs(err)...)
		return "", errors.Wrap(err, "generate content", attrs...)
	}
	return result.Text(), nil
}

// geminiContents moves system messages into the system instruction since Gemini has no system role in the
// conversation. The assistant role is called model.
func geminiContents(messages []dialogue.Message) (*genai.Content, []*genai.Content) {
	var (
		system   []string
		contents = make([]*genai.Content, 0, len(messages))
	)
	for _, m := range messages {
		switch m.Role {
		case dialogue.MessageRoleSystem:
			system = append(system, m.Content)
		case dialogue.MessageRoleAssistant:
			contents = append(contents, &genai.Content{Role: genai.RoleModel, Parts: []*genai.Part{{Text: m.Content}}})
		default:
			contents = append(contents, &genai.Content{Role: genai.RoleUser, Parts: []*genai.Part{{Text: m.Content}}})
		}
	}
	if len(system) == 0 {
		return nil, contents
	}
	return &genai.Content{Parts: []*genai.Part{{Text: strings.Join(system, "\n")}}}, contents
}

// geminiErrorAttrs extracts the upstream status and body for diagnosis.
func geminiErrorAttrs(err error) []slog.Attr {
	var apiErr genai.APIError
	if !errors.As(err, &apiErr) {
		return nil
	}
	return []slog.Attr{
		slog.Int("upstream_status", apiErr.Code),
		slog.String("upstream_type", apiErr.Status),
		slog.String("upstream_body", apiErr.Message),
	}
}
