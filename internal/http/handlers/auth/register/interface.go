package register

import (
	"context"

	services "github.com/magabrotheeeer/xbot-api/internal/services/auth"
)

// Service регистрирует учётную запись и возвращает токен доступа.
type Service interface {
	Register(ctx context.Context, in services.RegisterInput) (string, error)
}
