// Package jwt реализует выпуск и проверку подписанных сессионных токенов.
//
// Токен несёт идентификатор субъекта (username), время выпуска и абсолютный
// срок действия; подпись HS256 покрывает все поля. Серверного хранилища
// токенов нет: токен перестаёт действовать только по истечении срока.
package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
)

// DefaultTTL применяется, когда TTL не задан ни при вызове, ни в конфигурации.
const DefaultTTL = 15 * time.Minute

// Maker описывает выпуск и проверку токенов.
type Maker interface {
	// Issue выпускает токен для субъекта; ttl <= 0 означает TTL по умолчанию.
	Issue(subject string, ttl time.Duration) (string, error)
	// Validate проверяет токен и возвращает субъекта.
	Validate(token string) (string, error)
}

// MakerImpl реализует Maker с использованием секретного ключа сервера.
type MakerImpl struct {
	secretKey  []byte
	defaultTTL time.Duration
	now        func() time.Time
}

// NewJWTMaker создаёт MakerImpl на основе секретного ключа и TTL по умолчанию.
func NewJWTMaker(secretKey string, defaultTTL time.Duration) *MakerImpl {
	if defaultTTL <= 0 {
		defaultTTL = DefaultTTL
	}
	return &MakerImpl{
		secretKey:  []byte(secretKey),
		defaultTTL: defaultTTL,
		now:        time.Now,
	}
}

// WithClock подменяет источник времени (используется в тестах).
func (m *MakerImpl) WithClock(now func() time.Time) *MakerImpl {
	m.now = now
	return m
}

// Issue создаёт подписанный токен с полями sub, iat и exp.
func (m *MakerImpl) Issue(subject string, ttl time.Duration) (string, error) {
	const op = "jwt.Issue"
	if ttl <= 0 {
		ttl = m.defaultTTL
	}
	now := m.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return signed, nil
}

// Validate разбирает токен и проверяет подпись, алгоритм и срок действия.
//
// Возвращает apperr.ErrTokenExpired для просроченного токена
// и apperr.ErrTokenMalformed во всех остальных случаях отказа.
func (m *MakerImpl) Validate(tokenStr string) (string, error) {
	const op = "jwt.Validate"
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(_ *jwt.Token) (any, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("%s: %w", op, apperr.ErrTokenExpired)
		}
		return "", fmt.Errorf("%s: %w: %v", op, apperr.ErrTokenMalformed, err)
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrTokenMalformed)
	}
	return claims.Subject, nil
}
