// Package retry реализует обобщённую обёртку для повторяемых операций
// с фиксированной задержкой между попытками поверх cenkalti/backoff.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Policy задаёт параметры повторов.
type Policy struct {
	// MaxAttempts: общее число попыток, включая первую. Значения < 1 трактуются как 1.
	MaxAttempts int
	// Backoff: фиксированная задержка между попытками.
	Backoff time.Duration
	// Retryable решает, стоит ли повторять операцию после ошибки.
	// nil означает, что повторов нет.
	Retryable func(error) bool
	// Notify вызывается перед каждым ожиданием.
	Notify func(err error, next time.Duration)
	// Timer отмеряет задержку. nil означает обычный таймер.
	Timer backoff.Timer
}

// ExhaustedError возвращается, когда все попытки завершились повторяемой ошибкой.
type ExhaustedError struct {
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("retry: %d attempts exhausted: %v", e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// Do выполняет op, повторяя её согласно политике.
//
// Неповторяемая ошибка возвращается сразу и без обёртки. После последней
// попытки задержки нет. Ожидание приостанавливает только вызывающую горутину
// и прерывается отменой ctx.
func Do[T any](ctx context.Context, p Policy, op func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(p.Backoff), uint64(attempts-1)),
		ctx,
	)

	permanent := false
	res, err := backoff.RetryNotifyWithTimerAndData(func() (T, error) {
		res, err := op(ctx)
		if err != nil && (p.Retryable == nil || !p.Retryable(err)) {
			permanent = true
			return res, backoff.Permanent(err)
		}
		return res, err
	}, b, p.Notify, p.Timer)
	if err == nil {
		return res, nil
	}

	var zero T
	if permanent {
		return zero, err
	}
	if cerr := ctx.Err(); cerr != nil && errors.Is(err, cerr) {
		return zero, err
	}
	return zero, &ExhaustedError{Attempts: attempts, Err: err}
}
