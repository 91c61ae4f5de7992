// Package rabbitmq: подключение к брокеру, объявление топологии событий
// учётных записей, публикация и потребление сообщений.
package rabbitmq

import (
	"context"
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/xbot-api/internal/lib/retry"
)

// Connect подключается к брокеру, делая до retries попыток с паузой delay.
func Connect(ctx context.Context, connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"

	conn, err := retry.Do(ctx, retry.Policy{
		MaxAttempts: retries,
		Backoff:     delay,
		Retryable:   func(error) bool { return true },
	}, func(context.Context) (*amqp.Connection, error) {
		return amqp.Dial(connection)
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return conn, nil
}
