// Package linkedin: OAuth-клиент LinkedIn (authorization code flow).
package linkedin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"

	"github.com/magabrotheeeer/xbot-api/internal/config"
)

// Vendor имя поставщика для логов и ошибок.
const Vendor = "linkedin"

// Profile сведения о пользователе из userinfo.
type Profile struct {
	Sub     string `json:"sub"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
}

// Client оборачивает oauth2.Config и URL профиля.
type Client struct {
	oauth      *oauth2.Config
	profileURL string
}

// NewClient создаёт клиента по конфигурации. Секреты берутся только из cfg.
func NewClient(cfg config.LinkedIn) *Client {
	return &Client{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   cfg.AuthURL,
				TokenURL:  cfg.TokenURL,
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		profileURL: cfg.ProfileURL,
	}
}

// AuthCodeURL возвращает адрес страницы авторизации.
func (c *Client) AuthCodeURL(state string) string {
	return c.oauth.AuthCodeURL(state)
}

// Exchange обменивает код авторизации на токен доступа.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	const op = "linkedin.Client.Exchange"
	tok, err := c.oauth.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return tok, nil
}

// FetchProfile запрашивает профиль владельца токена.
func (c *Client) FetchProfile(ctx context.Context, tok *oauth2.Token) (*Profile, error) {
	const op = "linkedin.Client.FetchProfile"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	resp, err := c.oauth.Client(ctx, tok).Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s: unexpected status %s", op, resp.Status)
	}
	var p Profile
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", op, err)
	}
	return &p, nil
}
