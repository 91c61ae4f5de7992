// Package sendmessage реализует отправку ответа в WhatsApp: сообщение
// размечается по тональности, ответ генерируется моделью и доставляется получателю.
package sendmessage

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/xbot-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/xbot-api/internal/http/response"
	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/phone"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	"github.com/magabrotheeeer/xbot-api/internal/models"
	services "github.com/magabrotheeeer/xbot-api/internal/services/messaging"
)

// Request: получатель и входящий текст.
type Request struct {
	ToNumber string `json:"to_number" validate:"required,whatsapp"`
	Message  string `json:"message" validate:"required,max=4096"`
}

// Response: результат доставки.
type Response struct {
	Message   string `json:"message"`
	SID       string `json:"sid"`
	Sentiment string `json:"sentiment"`
}

// Service отправляет сообщение от имени пользователя.
type Service interface {
	SendMessage(ctx context.Context, user *models.User, to, text string) (*services.Result, error)
}

// Handler обрабатывает POST /send-message.
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
		validate: phone.NewValidator(),
	}
}

// ServeHTTP godoc
// @Summary Отправка сообщения в WhatsApp
// @Description Определяет тональность текста, генерирует ответ и отправляет его получателю.
// @Tags Messaging
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Получатель и текст"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse "Некорректный номер или текст"
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse "Учётная запись не активирована"
// @Failure 429 {object} response.ErrorResponse "Лимит запросов поставщика"
// @Failure 500 {object} response.ErrorResponse "Ошибка внешнего сервиса"
// @Router /send-message [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.messaging.sendmessage"

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

	res, err := h.svc.SendMessage(r.Context(), user, req.ToNumber, req.Message)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("message sent", slog.String("username", user.Username), slog.String("sid", res.SID))
	response.JSON(w, r, http.StatusOK, Response{
		Message:   "Mensagem enviada com sucesso!",
		SID:       res.SID,
		Sentiment: res.Sentiment,
	})
}
