// Package apperr описывает таксономию ошибок приложения.
//
// Сервисы возвращают эти ошибки (как правило, обёрнутыми через %w),
// а HTTP-слой сопоставляет их со статусами ответа в одном месте.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation: некорректная форма входных данных.
	ErrValidation = errors.New("validation error")
	// ErrInvalidPhoneNumber: номер WhatsApp не проходит проверку формата.
	ErrInvalidPhoneNumber = fmt.Errorf("invalid whatsapp number: %w", ErrValidation)

	ErrDuplicateUser      = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidCode        = errors.New("invalid activation code")
	ErrAlreadyActive      = errors.New("account is already active")
	ErrInactiveAccount    = errors.New("account is not activated")
	ErrNotFound           = errors.New("not found")
	ErrRateLimited        = errors.New("rate limit exceeded, try again later")

	// ErrUnauthorized: общий предок ошибок аутентификации.
	ErrUnauthorized = errors.New("could not validate credentials")
	// ErrTokenMalformed: токен не разбирается или подпись не сходится.
	ErrTokenMalformed = fmt.Errorf("malformed token: %w", ErrUnauthorized)
	// ErrTokenExpired: срок действия токена истёк.
	ErrTokenExpired = fmt.Errorf("expired token: %w", ErrUnauthorized)
	// ErrUnknownSubject: токен валиден, но учётная запись не найдена.
	ErrUnknownSubject = fmt.Errorf("unknown token subject: %w", ErrUnauthorized)

	// ErrIntegration позволяет проверять IntegrationError через errors.Is.
	ErrIntegration = errors.New("integration failure")
)

// IntegrationError: единый вид отказа внешнего поставщика
// (ошибка сети, некорректный ответ, любая ошибка кроме rate limit).
type IntegrationError struct {
	Vendor string
	Detail string
	Err    error
}

// NewIntegrationError оборачивает ошибку поставщика.
func NewIntegrationError(vendor string, err error) *IntegrationError {
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	return &IntegrationError{Vendor: vendor, Detail: detail, Err: err}
}

func (e *IntegrationError) Error() string {
	return fmt.Sprintf("integration failure (%s): %s", e.Vendor, e.Detail)
}

func (e *IntegrationError) Unwrap() error {
	return e.Err
}

// Is сопоставляет любую IntegrationError с ErrIntegration.
func (e *IntegrationError) Is(target error) bool {
	return target == ErrIntegration
}
