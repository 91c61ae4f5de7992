package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
)

// RequireActive пропускает только активированные учётные записи.
// Должен стоять после JWTMiddleware.
func RequireActive(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := log.With(
				slog.String("op", "middlewarectx.RequireActive"),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user identification missing")
				response.WriteError(w, r, log, apperr.ErrUnauthorized)
				return
			}
			if !user.IsActive {
				response.WriteError(w, r, log, apperr.ErrInactiveAccount)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
