// Package search: клиент поискового API, используемого для подбора кандидатов.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/magabrotheeeer/xbot-api/internal/config"
)

// Vendor имя поставщика для логов и ошибок.
const Vendor = "search"

// Result одна позиция выдачи.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Items []Result `json:"items"`
}

// Client выполняет поисковые запросы.
type Client struct {
	apiKey     string
	engineID   string
	baseURL    string
	httpClient *http.Client
}

// NewClient создаёт клиента по конфигурации.
func NewClient(cfg config.Search) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     cfg.APIKey,
		engineID:   cfg.EngineID,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Search возвращает результаты по запросу query. Пустая выдача не считается ошибкой.
func (c *Client) Search(ctx context.Context, query string) ([]Result, error) {
	const op = "search.Client.Search"

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	q := u.Query()
	q.Set("key", c.apiKey)
	q.Set("cx", c.engineID)
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}
	var out searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	if out.Items == nil {
		return []Result{}, nil
	}
	return out.Items, nil
}
