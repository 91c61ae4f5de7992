// Package login перенаправляет пользователя на страницу авторизации LinkedIn.
package login

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
)

// Service выдаёт адрес авторизации.
type Service interface {
	LoginURL(ctx context.Context) (string, error)
}

// Handler обрабатывает GET /linkedin/login.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создает Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Вход через LinkedIn
// @Tags LinkedIn
// @Success 302
// @Failure 500 {object} response.ErrorResponse
// @Router /linkedin/login [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.linkedin.login"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	target, err := h.svc.LoginURL(r.Context())
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}
