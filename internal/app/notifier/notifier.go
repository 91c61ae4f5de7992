// Package notifier: воркер приветственных сообщений: читает события
// активации из RabbitMQ и отправляет приветствие в WhatsApp.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/xbot-api/internal/clients/openai"
	"github.com/magabrotheeeer/xbot-api/internal/clients/twilio"
	"github.com/magabrotheeeer/xbot-api/internal/config"
	"github.com/magabrotheeeer/xbot-api/internal/integration"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	"github.com/magabrotheeeer/xbot-api/internal/metrics"
	"github.com/magabrotheeeer/xbot-api/internal/rabbitmq"
	messagingservice "github.com/magabrotheeeer/xbot-api/internal/services/messaging"
)

// App воркер уведомлений.
type App struct {
	conn      *amqp.Connection
	ch        *amqp.Channel
	messaging *messagingservice.MessagingService
	logger    *slog.Logger
}

// New подключается к брокеру и объявляет очереди.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "notifier.New"

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.AccountsExchange, rabbitmq.AccountQueues())
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	envelope := integration.NewEnvelope(cfg.Outbound, logger, metrics.New(prometheus.DefaultRegisterer))
	messaging := messagingservice.NewMessagingService(logger, envelope, openai.NewClient(cfg.OpenAI), twilio.NewClient(cfg.Twilio))

	return &App{
		conn:      conn,
		ch:        ch,
		messaging: messaging,
		logger:    logger,
	}, nil
}

// Run обрабатывает очередь активаций до отмены ctx.
func (a *App) Run(ctx context.Context) error {
	err := rabbitmq.ConsumerMessage(ctx, a.ch, rabbitmq.QueueUserActivated, a.logger, func(body []byte) error {
		return a.messaging.SendWelcome(ctx, body)
	})
	if err != nil {
		a.logger.Error("failed to start consumer", slog.String("queue", rabbitmq.QueueUserActivated), sl.Err(err))
		return err
	}
	a.logger.Info("consuming", slog.String("queue", rabbitmq.QueueUserActivated))

	<-ctx.Done()
	a.logger.Info("notification sender shutting down gracefully")

	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	return nil
}
