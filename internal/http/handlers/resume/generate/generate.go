// Package generate реализует генерацию резюме в PDF.
package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/xbot-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/xbot-api/internal/http/response"
	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	services "github.com/magabrotheeeer/xbot-api/internal/services/resume"
)

// Request: данные для резюме.
type Request struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	JobTitle string `json:"jobtitle" validate:"required,max=100"`
	Location string `json:"location" validate:"max=100"`
}

// Service генерирует резюме.
type Service interface {
	Generate(ctx context.Context, owner string, in services.GenerateInput) (*services.Document, error)
}

// Handler обрабатывает POST /resumes/generate.
type Handler struct {
	log      *slog.Logger
	svc      Service
	validate *validator.Validate
}

// New создает Handler.
func New(log *slog.Logger, svc Service) *Handler {
	return &Handler{
		log:      log,
		svc:      svc,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Генерация резюме
// @Description Генерирует разделы опыта и навыков, сохраняет резюме и отдаёт его в PDF.
// @Tags Resumes
// @Accept json
// @Produce application/pdf
// @Security BearerAuth
// @Param request body Request true "Данные резюме"
// @Success 200 {file} file
// @Failure 400 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Учётная запись не активирована"
// @Failure 429 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /resumes/generate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.resume.generate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	user, ok := middlewarectx.UserFromContext(r.Context())
	if !ok {
		response.WriteError(w, r, log, apperr.ErrUnauthorized)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.WriteValidationError(w, r, err)
		return
	}

	doc, err := h.svc.Generate(r.Context(), user.Username, services.GenerateInput{
		Name:     req.Name,
		Email:    req.Email,
		JobTitle: req.JobTitle,
		Location: req.Location,
	})
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.PDF)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.PDF); err != nil {
		log.Error("failed to write pdf", sl.Err(err))
	}
}
