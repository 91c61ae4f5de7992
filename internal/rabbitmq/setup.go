package rabbitmq

import (
	"fmt"

	"github.com/streadway/amqp"
)

const (
	// AccountsExchange direct-exchange событий учётных записей.
	AccountsExchange = "accounts"
	// RoutingKeyUserActivated ключ события активации.
	RoutingKeyUserActivated = "user.activated"
	// QueueUserActivated очередь воркера приветственных сообщений.
	QueueUserActivated = "accounts.activated"
)

// QueueConfig очередь и ключ её привязки к exchange.
type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// AccountQueues очереди, которые слушают воркеры.
func AccountQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: QueueUserActivated, RoutingKey: RoutingKeyUserActivated},
	}
}

// SetupChannel открывает канал и объявляет exchange с очередями.
func SetupChannel(conn *amqp.Connection, exchange string, queues []QueueConfig) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.QueueName,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.QueueName, err)
		}

		err = ch.QueueBind(
			q.QueueName,
			q.RoutingKey,
			exchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.QueueName, q.RoutingKey, err)
		}
	}

	return ch, nil
}
