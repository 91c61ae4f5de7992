package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"github.com/streadway/amqp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp.Publishing
	err      error
}

func (f *fakeChannel) Publish(exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func TestPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := NewPublisher(ch, AccountsExchange)

	type event struct {
		Username string `json:"username"`
	}
	require.NoError(t, p.Publish(context.Background(), RoutingKeyUserActivated, event{Username: "alice"}))

	assert.Equal(t, AccountsExchange, ch.exchange)
	assert.Equal(t, RoutingKeyUserActivated, ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, amqp.Persistent, ch.msg.DeliveryMode)
	assert.JSONEq(t, `{"username":"alice"}`, string(ch.msg.Body))
}

func TestPublisher_Errors(t *testing.T) {
	t.Run("channel error", func(t *testing.T) {
		p := NewPublisher(&fakeChannel{err: amqp.ErrClosed}, AccountsExchange)
		err := p.Publish(context.Background(), RoutingKeyUserActivated, "x")
		assert.ErrorIs(t, err, amqp.ErrClosed)
	})

	t.Run("unserializable message", func(t *testing.T) {
		p := NewPublisher(&fakeChannel{}, AccountsExchange)
		err := p.Publish(context.Background(), RoutingKeyUserActivated, make(chan int))
		assert.Error(t, err)
	})

	t.Run("cancelled context", func(t *testing.T) {
		ch := &fakeChannel{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := NewPublisher(ch, AccountsExchange).Publish(ctx, RoutingKeyUserActivated, "x")
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Empty(t, ch.exchange)
	})
}

func TestAccountQueues(t *testing.T) {
	q := AccountQueues()
	require.Len(t, q, 1)
	assert.Equal(t, QueueConfig{QueueName: QueueUserActivated, RoutingKey: RoutingKeyUserActivated}, q[0])
}
