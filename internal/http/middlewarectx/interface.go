package middlewarectx

import (
	"context"

	"github.com/magabrotheeeer/xbot-api/internal/models"
)

// Authenticator проверяет токен и возвращает его владельца.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}
