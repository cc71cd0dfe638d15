package groq

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"petvault/internal/ports/completion"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrNotConfigured = errors.New("groq client not configured")
	ErrEmptyChoice   = errors.New("groq returned no choices")
)

// Config del proveedor de completions. Groq expone una API compatible con
// OpenAI, así que reusamos el cliente de go-openai con otro BaseURL.
type Config struct {
	APIKey  string
	BaseURL string // default https://api.groq.com/openai/v1
	Model   string // default llama-3.3-70b-versatile
}

const (
	defaultBaseURL = "https://api.groq.com/openai/v1"
	defaultModel   = "llama-3.3-70b-versatile"

	// Parámetros de sampling fijos del asistente.
	temperature = 0.4
	maxTokens   = 800
	topP        = 0.9
)

type Client struct {
	api   *openai.Client
	model string
}

func NewClient(cfg Config) *Client {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return &Client{}
	}

	oc := openai.DefaultConfig(apiKey)
	oc.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if oc.BaseURL == "" {
		oc.BaseURL = defaultBaseURL
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultModel
	}

	return &Client{
		api:   openai.NewClientWithConfig(oc),
		model: model,
	}
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.api != nil
}

// Complete implementa completion.Provider. El timeout lo pone el caller
// vía ctx; acá no hay deadlines propios.
func (c *Client) Complete(ctx context.Context, messages []completion.Message) (string, error) {
	if !c.IsConfigured() {
		return "", ErrNotConfigured
	}

	reqMsgs := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, m := range messages {
		reqMsgs = append(reqMsgs, openai.ChatCompletionMessage{
			Role:    m.Role,
			Content: m.Content,
		})
	}

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Messages:    reqMsgs,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		TopP:        topP,
	})
	if err != nil {
		return "", fmt.Errorf("groq completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", ErrEmptyChoice
	}

	return resp.Choices[0].Message.Content, nil
}
