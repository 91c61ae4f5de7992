// Package services: вход через LinkedIn: адрес авторизации с одноразовым
// state и обработка обратного вызова.
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/oauth2"

	"github.com/magabrotheeeer/xbot-api/internal/clients/linkedin"
	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
)

const stateKeyPrefix = "oauth_state:"

// OAuthClient провайдер OAuth.
type OAuthClient interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*oauth2.Token, error)
	FetchProfile(ctx context.Context, tok *oauth2.Token) (*linkedin.Profile, error)
}

// StateStore хранит одноразовые значения state.
type StateStore interface {
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Pop(ctx context.Context, key string, result any) (bool, error)
}

// LinkedInService реализует authorization code flow.
type LinkedInService struct {
	log      *slog.Logger
	client   OAuthClient
	states   StateStore
	stateTTL time.Duration
}

// NewLinkedInService создает LinkedInService.
func NewLinkedInService(log *slog.Logger, client OAuthClient, states StateStore, stateTTL time.Duration) *LinkedInService {
	if stateTTL <= 0 {
		stateTTL = 10 * time.Minute
	}
	return &LinkedInService{log: log, client: client, states: states, stateTTL: stateTTL}
}

// LoginURL создаёт state, сохраняет его и возвращает адрес страницы авторизации.
func (s *LinkedInService) LoginURL(ctx context.Context) (string, error) {
	const op = "services.LinkedInService.LoginURL"

	state, err := newState()
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := s.states.Set(ctx, stateKeyPrefix+state, true, s.stateTTL); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return s.client.AuthCodeURL(state), nil
}

// Callback проверяет state (он гасится при первом использовании),
// обменивает code на токен и возвращает профиль.
func (s *LinkedInService) Callback(ctx context.Context, state, code string) (*linkedin.Profile, error) {
	const op = "services.LinkedInService.Callback"

	if state == "" || code == "" {
		return nil, fmt.Errorf("%s: state and code are required: %w", op, apperr.ErrValidation)
	}

	var known bool
	found, err := s.states.Pop(ctx, stateKeyPrefix+state, &known)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !found {
		return nil, fmt.Errorf("%s: unknown or expired state: %w", op, apperr.ErrValidation)
	}

	tok, err := s.client.Exchange(ctx, code)
	if err != nil {
		s.log.Error("linkedin code exchange failed", sl.Op(op), sl.Err(err))
		return nil, apperr.NewIntegrationError(linkedin.Vendor, err)
	}
	profile, err := s.client.FetchProfile(ctx, tok)
	if err != nil {
		s.log.Error("linkedin profile fetch failed", sl.Op(op), sl.Err(err))
		return nil, apperr.NewIntegrationError(linkedin.Vendor, err)
	}
	return profile, nil
}

func newState() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
