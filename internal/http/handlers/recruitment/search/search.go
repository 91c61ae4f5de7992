// Package search реализует поиск кандидатов.
package search

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/xbot-api/internal/clients/search"
	"github.com/magabrotheeeer/xbot-api/internal/http/response"
)

// Response: результаты поиска.
type Response struct {
	Query   string          `json:"query"`
	Results []search.Result `json:"results"`
}

// Service выполняет поиск.
type Service interface {
	Search(ctx context.Context, query string) ([]search.Result, error)
}

// Handler обрабатывает GET /recruitment/search.
type Handler struct {
	log *slog.Logger
	svc Service
}

// New создает Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{log: log, svc: svc}
}

// ServeHTTP godoc
// @Summary Поиск кандидатов
// @Tags Recruitment
// @Produce json
// @Security BearerAuth
// @Param q query string true "Поисковый запрос"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /recruitment/search [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.recruitment.search"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	q := r.URL.Query().Get("q")
	results, err := h.svc.Search(r.Context(), q)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}
	log.Info("search done", slog.Int("results", len(results)))
	response.JSON(w, r, http.StatusOK, Response{Query: q, Results: results})
}
