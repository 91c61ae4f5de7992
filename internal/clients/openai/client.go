// Package openai: клиент Chat Completions API поверх sashabaranov/go-openai.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/magabrotheeeer/xbot-api/internal/config"
	"github.com/magabrotheeeer/xbot-api/internal/integration"
)

// Vendor имя поставщика в ошибках и метриках.
const Vendor = "openai"

// Client обращается к API генерации текста.
type Client struct {
	api   *goopenai.Client
	model string
}

// NewClient создаёт клиента по конфигурации.
func NewClient(cfg config.OpenAI) *Client {
	apiCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiCfg.BaseURL = cfg.BaseURL
	}
	apiCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	return &Client{
		api:   goopenai.NewClientWithConfig(apiCfg),
		model: cfg.Model,
	}
}

// Complete отправляет prompt одним сообщением пользователя и возвращает текст первого варианта.
// HTTP 429 возвращается как *integration.RateLimitError.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	const op = "openai.Client.Complete"

	resp, err := c.api.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model: c.model,
		Messages: []goopenai.ChatCompletionMessage{
			{Role: goopenai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		if statusCode(err) == http.StatusTooManyRequests {
			return "", &integration.RateLimitError{Vendor: Vendor}
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s: %w", op, errors.New("no choices in response"))
	}
	return integration.RequireText(Vendor, resp.Choices[0].Message.Content)
}

// statusCode достаёт HTTP-статус из ошибки go-openai; 0, если статуса нет.
func statusCode(err error) int {
	var apiErr *goopenai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *goopenai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}
