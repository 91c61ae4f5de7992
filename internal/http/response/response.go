// Package response формирует JSON-ответы HTTP-обработчиков.
//
// Успешный ответ содержит произвольный JSON-объект, ответ с ошибкой содержит
// {"detail": "<сообщение>"}. Сопоставление ошибок сервисов со статусами
// выполняется только здесь, в WriteError.
package response

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
)

// ErrorResponse: тело ответа с ошибкой.
type ErrorResponse struct {
	Detail string `json:"detail" example:"Usuário ou senha inválidos"`
}

// MessageResponse: тело ответа с сообщением.
type MessageResponse struct {
	Message string `json:"message" example:"Conta ativada com sucesso."`
}

// TokenResponse: выданный токен доступа.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type" example:"bearer"`
}

// Token возвращает тело ответа с bearer-токеном.
func Token(token string) TokenResponse {
	return TokenResponse{AccessToken: token, TokenType: "bearer"}
}

// GenericErrorMessage отдаётся клиенту при непредвиденных ошибках.
const GenericErrorMessage = "Erro interno do servidor. Tente novamente mais tarde."

// Error возвращает тело ответа с ошибкой.
func Error(msg string) ErrorResponse {
	return ErrorResponse{Detail: msg}
}

// Message возвращает тело ответа с сообщением.
func Message(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

// JSON пишет v со статусом status.
func JSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	render.Status(r, status)
	render.JSON(w, r, v)
}

// Fail пишет тело с ошибкой msg со статусом status.
func Fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	JSON(w, r, status, Error(msg))
}

type mapping struct {
	target error
	status int
	detail string
}

// Порядок важен: ErrInvalidPhoneNumber проверяется раньше ErrValidation,
// конкретные ошибки аутентификации раньше ErrUnauthorized.
var mappings = []mapping{
	{apperr.ErrInvalidPhoneNumber, http.StatusBadRequest, "Número de WhatsApp inválido."},
	{apperr.ErrDuplicateUser, http.StatusBadRequest, "Usuário já existe"},
	{apperr.ErrInvalidCredentials, http.StatusBadRequest, "Usuário ou senha inválidos"},
	{apperr.ErrInvalidCode, http.StatusBadRequest, "Código de ativação inválido."},
	{apperr.ErrValidation, http.StatusBadRequest, "Dados inválidos."},
	{apperr.ErrTokenExpired, http.StatusUnauthorized, "Token expirado."},
	{apperr.ErrUnauthorized, http.StatusUnauthorized, "Não foi possível validar as credenciais"},
	{apperr.ErrInactiveAccount, http.StatusForbidden, "Conta não ativada."},
	{apperr.ErrNotFound, http.StatusNotFound, "Recurso não encontrado."},
	{apperr.ErrAlreadyActive, http.StatusConflict, "Conta já está ativa."},
	{apperr.ErrRateLimited, http.StatusTooManyRequests, "Limite de taxa excedido. Tente novamente mais tarde."},
}

// Status возвращает HTTP-статус и сообщение для ошибки err.
func Status(err error) (int, string) {
	for _, m := range mappings {
		if errors.Is(err, m.target) {
			return m.status, m.detail
		}
	}
	var ie *apperr.IntegrationError
	if errors.As(err, &ie) {
		return http.StatusInternalServerError, fmt.Sprintf("Erro ao chamar o serviço externo (%s).", ie.Vendor)
	}
	return http.StatusInternalServerError, GenericErrorMessage
}

// WriteError сопоставляет err со статусом и пишет тело {"detail": ...}.
// Подробности внутренних ошибок пишутся только в лог.
func WriteError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	status, detail := Status(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", sl.Err(err), slog.Int("status", status))
	} else {
		log.Info("request rejected", sl.Err(err), slog.Int("status", status))
	}
	Fail(w, r, status, detail)
}

// ValidationError формирует сообщение по ошибкам валидации.
// Каждое нарушение описывается отдельно, нарушения объединяются через запятую.
func ValidationError(errs validator.ValidationErrors) ErrorResponse {
	var errsMsgs []string

	for _, err := range errs {
		switch err.ActualTag() {
		case "required":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is a required field", err.Field()))
		case "email":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be a valid email", err.Field()))
		case "min", "max":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be between its length limits", err.Field()))
		case "alphanum":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s can contain only numbers and letters", err.Field()))
		case "whatsapp":
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s must be in format +<country><number>", err.Field()))
		default:
			errsMsgs = append(errsMsgs, fmt.Sprintf("field %s is not a valid", err.Field()))
		}
	}
	return Error(strings.Join(errsMsgs, ", "))
}

// WriteValidationError пишет ответ 400 по ошибке validate.Struct.
func WriteValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		JSON(w, r, http.StatusBadRequest, ValidationError(verrs))
		return
	}
	Fail(w, r, http.StatusBadRequest, "Dados inválidos.")
}
