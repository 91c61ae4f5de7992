// Package read отдаёт сохранённое резюме по имени.
package read

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
	"github.com/magabrotheeeer/xbot-api/internal/models"
)

// Service ищет резюме по имени.
type Service interface {
	Get(ctx context.Context, name string) (*models.Resume, error)
}

// Handler обрабатывает GET /resumes/{name}.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создает Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Получение резюме
// @Tags Resumes
// @Produce json
// @Security BearerAuth
// @Param name path string true "Имя в резюме"
// @Success 200 {object} models.Resume
// @Failure 404 {object} response.ErrorResponse "Резюме не найдено"
// @Router /resumes/{name} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.resume.read"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	name := chi.URLParam(r, "name")
	resume, err := h.svc.Get(r.Context(), name)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	response.JSON(w, r, http.StatusOK, resume)
}
