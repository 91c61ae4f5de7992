// Package callback завершает вход через LinkedIn и отдаёт профиль.
package callback

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/xbot-api/internal/clients/linkedin"
	"github.com/magabrotheeeer/xbot-api/internal/http/response"
)

// Service обрабатывает обратный вызов провайдера.
type Service interface {
	Callback(ctx context.Context, state, code string) (*linkedin.Profile, error)
}

// Handler обрабатывает GET /linkedin/callback.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создает Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Обратный вызов LinkedIn
// @Tags LinkedIn
// @Produce json
// @Param state query string true "state из шага авторизации"
// @Param code query string true "код авторизации"
// @Success 200 {object} linkedin.Profile
// @Failure 400 {object} response.ErrorResponse "Неизвестный state или отказ пользователя"
// @Failure 500 {object} response.ErrorResponse
// @Router /linkedin/callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.linkedin.callback"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		log.Info("authorization denied", slog.String("error", e))
		response.Fail(w, r, http.StatusBadRequest, "Autorização negada: "+e)
		return
	}

	profile, err := h.svc.Callback(r.Context(), q.Get("state"), q.Get("code"))
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	log.Info("linkedin login completed", slog.String("sub", profile.Sub))
	response.JSON(w, r, http.StatusOK, profile)
}
