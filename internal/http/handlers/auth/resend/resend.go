// Package resend реализует повторную отправку кода активации.
package resend

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
)

// Request: имя пользователя, которому нужен новый код.
type Request struct {
	Username string `json:"username" validate:"required"`
}

// Service перевыпускает код активации.
type Service interface {
	ResendActivation(ctx context.Context, username string) error
}

// Handler обрабатывает POST /resend-activation.
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
// @Summary Повторная отправка кода активации
// @Description Генерирует новый код (старый перестаёт действовать) и отправляет его на e-mail.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Имя пользователя"
// @Success 200 {object} response.MessageResponse
// @Failure 404 {object} response.ErrorResponse "Пользователь не найден"
// @Failure 409 {object} response.ErrorResponse "Учётная запись уже активна"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки e-mail"
// @Router /resend-activation [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resend"

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
		response.WriteValidationError(w, r, err)
		return
	}

	if err := h.svc.ResendActivation(r.Context(), req.Username); err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("activation code resent", slog.String("username", req.Username))
	response.JSON(w, r, http.StatusOK, response.Message("Código de ativação reenviado com sucesso."))
}
