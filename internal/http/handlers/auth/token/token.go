// Package token реализует выдачу bearer-токена по имени пользователя и паролю.
//
// Учётные данные принимаются в виде application/x-www-form-urlencoded
// (поля username и password), как в OAuth2 password flow.
package token

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/xbot-api/internal/http/response"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
)

// Request: учётные данные из формы.
type Request struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

// Service описывает вход по имени пользователя и паролю.
type Service interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Handler обрабатывает POST /token.
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
// @Summary Получение токена
// @Description Проверяет имя пользователя и пароль и возвращает bearer-токен.
// @Tags Auth
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Имя пользователя"
// @Param password formData string true "Пароль"
// @Success 200 {object} response.TokenResponse
// @Failure 400 {object} response.ErrorResponse "Неверные учётные данные"
// @Failure 500 {object} response.ErrorResponse "Внутренняя ошибка сервера"
// @Router /token [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.token"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if err := r.ParseForm(); err != nil {
		log.Error("failed to parse form", sl.Err(err))
		response.Fail(w, r, http.StatusBadRequest, "invalid form body")
		return
	}
	req := Request{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		log.Info("validation failed", sl.Err(err))
		response.WriteValidationError(w, r, err)
		return
	}

	token, err := h.svc.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		response.WriteError(w, r, log, err)
		return
	}

	log.Info("login success", slog.String("username", req.Username))
	response.JSON(w, r, http.StatusOK, response.Token(token))
}
