// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Тело запроса декодируется в Request и проверяется валидатором, после чего
// регистрация делегируется сервису аутентификации. В ответ отдаётся токен
// доступа; на почту уходит код активации.
package register

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
	"github.com/magabrotheeeer/xbot-api/internal/lib/phone"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	services "github.com/magabrotheeeer/xbot-api/internal/services/auth"
)

// Request: входные данные для регистрации.
type Request struct {
	Username       string `json:"username" validate:"required,min=3,max=50"`
	Email          string `json:"email" validate:"required,email"`
	Name           string `json:"name" validate:"required,max=100"`
	Password       string `json:"password" validate:"required,min=6"`
	JobTitle       string `json:"jobtitle" validate:"max=100"`
	Location       string `json:"location" validate:"max=100"`
	WhatsAppNumber string `json:"whatsapp_number"`
}

// Handler обрабатывает POST /register.
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
// @Summary Регистрация пользователя
// @Description Создаёт учётную запись в статусе ожидания активации, отправляет код на e-mail и возвращает токен.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body Request true "Данные пользователя"
// @Success 200 {object} response.TokenResponse
// @Failure 400 {object} response.ErrorResponse "Пользователь существует, некорректные данные или номер"
// @Failure 500 {object} response.ErrorResponse "Ошибка отправки e-mail или внутренняя ошибка"
// @Router /register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

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
	log.Info("request body decoded", slog.String("username", req.Username))

	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.WriteValidationError(w, r, err)
		return
	}

	token, err := h.svc.Register(r.Context(), services.RegisterInput{
		Username:       req.Username,
		Email:          req.Email,
		Name:           req.Name,
		Password:       req.Password,
		JobTitle:       req.JobTitle,
		Location:       req.Location,
		WhatsAppNumber: req.WhatsAppNumber,
	})
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("user registered", slog.String("username", req.Username))
	response.JSON(w, r, http.StatusOK, response.Token(token))
}
