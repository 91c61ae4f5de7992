// Package integration реализует обёртку вызовов внешних поставщиков
// (генерация текста, доставка сообщений): ограниченные повторы при
// сигнале rate limit с фиксированной задержкой и единое преобразование отказов.
package integration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/magabrotheeeer/xbot-api/internal/config"
	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/retry"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	"github.com/magabrotheeeer/xbot-api/internal/metrics"
)

const (
	// DefaultMaxAttempts число попыток по умолчанию.
	DefaultMaxAttempts = 3
	// DefaultBackoff задержка между попытками по умолчанию.
	DefaultBackoff = 120 * time.Second
)

// RateLimitError: сигнал поставщика о превышении лимита запросов.
// Клиенты поставщиков возвращают его, например, на HTTP 429.
type RateLimitError struct {
	Vendor     string
	RetryAfter string
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter != "" {
		return fmt.Sprintf("%s: rate limited (retry after %s)", e.Vendor, e.RetryAfter)
	}
	return e.Vendor + ": rate limited"
}

// IsRateLimit сообщает, является ли ошибка сигналом rate limit.
func IsRateLimit(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl)
}

// Envelope оборачивает вызовы внешних API.
type Envelope struct {
	policy  retry.Policy
	metrics *metrics.Metrics
	log     *slog.Logger
}

// NewEnvelope создаёт Envelope по конфигурации.
func NewEnvelope(cfg config.Outbound, log *slog.Logger, m *metrics.Metrics) *Envelope {
	attempts := cfg.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := cfg.Backoff
	if delay <= 0 {
		delay = DefaultBackoff
	}
	return &Envelope{
		policy: retry.Policy{
			MaxAttempts: attempts,
			Backoff:     delay,
			Retryable:   IsRateLimit,
		},
		metrics: m,
		log:     log,
	}
}

// WithTimer подменяет таймер ожидания между попытками (используется в тестах).
func (e *Envelope) WithTimer(t backoff.Timer) *Envelope {
	e.policy.Timer = t
	return e
}

// Call выполняет op от имени поставщика vendor.
//
// Ошибки rate limit повторяются согласно политике; после исчерпания попыток
// возвращается apperr.ErrRateLimited. Любая другая ошибка сразу
// преобразуется в *apperr.IntegrationError без повторов.
func Call[T any](ctx context.Context, e *Envelope, vendor string, op func(ctx context.Context) (T, error)) (T, error) {
	attempt := 0
	policy := e.policy
	policy.Notify = func(_ error, next time.Duration) {
		e.log.Warn("vendor rate limited, backing off",
			slog.String("vendor", vendor),
			slog.Int("attempt", attempt),
			slog.Duration("backoff", next),
		)
		e.countRetry(vendor)
	}

	res, err := retry.Do(ctx, policy, func(ctx context.Context) (T, error) {
		attempt++
		return op(ctx)
	})
	if err == nil {
		e.countCall(vendor, "success")
		return res, nil
	}

	var zero T
	var exhausted *retry.ExhaustedError
	if errors.As(err, &exhausted) {
		e.countCall(vendor, "rate_limited")
		e.log.Error("vendor rate limit persisted", slog.String("vendor", vendor), slog.Int("attempts", exhausted.Attempts))
		return zero, fmt.Errorf("%s: %w", vendor, apperr.ErrRateLimited)
	}

	e.countCall(vendor, "failure")
	e.log.Error("vendor call failed", slog.String("vendor", vendor), sl.Err(err))
	var ie *apperr.IntegrationError
	if errors.As(err, &ie) {
		return zero, err
	}
	return zero, apperr.NewIntegrationError(vendor, err)
}

// RequireText: минимальная проверка формы ответа: ожидаемое текстовое поле не пустое.
func RequireText(vendor, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", apperr.NewIntegrationError(vendor, errors.New("empty content in response"))
	}
	return text, nil
}

func (e *Envelope) countCall(vendor, outcome string) {
	if e.metrics == nil {
		return
	}
	e.metrics.OutboundCalls.WithLabelValues(vendor, outcome).Inc()
}

func (e *Envelope) countRetry(vendor string) {
	if e.metrics == nil {
		return
	}
	e.metrics.OutboundRetries.WithLabelValues(vendor).Inc()
}
