// Package activate реализует HTTP-обработчик активации учётной записи по коду из e-mail.
package activate

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	services "github.com/magabrotheeeer/xbot-api/internal/services/auth"
)

// Request: код активации и имя пользователя либо e-mail.
type Request struct {
	Username       string `json:"username" validate:"required_without=Email"`
	Email          string `json:"email" validate:"omitempty,email"`
	ActivationCode string `json:"activation_code" validate:"required"`
}

// Service активирует учётную запись.
type Service interface {
	Activate(ctx context.Context, in services.ActivateInput) error
}

// Handler обрабатывает POST /activate.
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
// @Summary Активация учётной записи
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Код активации"
// @Success 200 {object} response.MessageResponse
// @Failure 400 {object} response.ErrorResponse "Неверный код"
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Router /activate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.activate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

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

	err := h.svc.Activate(r.Context(), services.ActivateInput{
		Username: req.Username,
		Email:    req.Email,
		Code:     req.ActivationCode,
	})
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("account activated", slog.String("username", req.Username), slog.String("email", req.Email))
	response.JSON(w, r, http.StatusOK, response.Message("Conta ativada com sucesso."))
}
