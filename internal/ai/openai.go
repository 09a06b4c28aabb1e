package ai

import (
	"context"
	"github.com/myrjola/suspectrelay/internal/dialogue"
	"github.com/myrjola/suspectrelay/internal/errors"
	"github.com/sashabaranov/go-openai"
	"log/slog"
	"net/http"
)

// DefaultOpenAIModel is cheap and fast enough for short in-character replies.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIClient completes dialogues with the OpenAI chat completions API.
type OpenAIClient struct {
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float32
}

// NewOpenAIClient creates a client authenticating with the bearer token cfg.OpenAIAPIKey.
func NewOpenAIClient(cfg Config, httpClient *http.Client) *OpenAIClient {
	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	if httpClient != nil {
		clientConfig.HTTPClient = httpClient
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	return &OpenAIClient{
		client:      openai.NewClientWithConfig(clientConfig),
		model:       model,
		maxTokens:   cfg.MaxTokens,
		temperature: float32(cfg.Temperature),
	}
}

// Complete returns the content of the first choice, or an empty string if there is none.
func (c *OpenAIClient) Complete(ctx context.Context, messages []dialogue.Message) (string, error) {
	chatMessages := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		chatMessages[i] = openai.ChatCompletionMessage{ //nolint:exhaustruct // this is better for readability
			Role:    openAIRole(m.Role),
			Content: m.Content,
		}
	}

	completion, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{ //nolint:exhaustruct // this is better for readability
			Model:       c.model,
			MaxTokens:   c.maxTokens,
			Temperature: c.temperature,
			Messages:    chatMessages,
		},
	)
	if err != nil {
		return "", errors.Wrap(err, "create chat completion", openAIErrorAttrs(err)...)
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}

func openAIRole(role dialogue.MessageRole) string {
	switch role {
	case dialogue.MessageRoleSystem:
		return openai.ChatMessageRoleSystem
	case dialogue.MessageRoleAssistant:
		return openai.ChatMessageRoleAssistant
	default:
		return openai.ChatMessageRoleUser
	}
}

// openAIErrorAttrs extracts the upstream status and body for diagnosis.
func openAIErrorAttrs(err error) []slog.Attr {
	var (
		apiErr     *openai.APIError
		requestErr *openai.RequestError
	)
	switch {
	case errors.As(err, &apiErr):
		return []slog.Attr{
			slog.Int("upstream_status", apiErr.HTTPStatusCode),
			slog.String("upstream_type", apiErr.Type),
			slog.String("upstream_body", apiErr.Message),
		}
	case errors.As(err, &requestErr):
		attrs := []slog.Attr{slog.Int("upstream_status", requestErr.HTTPStatusCode)}
		if requestErr.Err != nil {
			attrs = append(attrs, slog.String("upstream_body", requestErr.Err.Error()))
		}
		return attrs
	default:
		return nil
	}
}
