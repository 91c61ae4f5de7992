package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/xbot-api/internal/cache"
	"github.com/magabrotheeeer/xbot-api/internal/clients/linkedin"
	"github.com/magabrotheeeer/xbot-api/internal/clients/openai"
	"github.com/magabrotheeeer/xbot-api/internal/clients/search"
	"github.com/magabrotheeeer/xbot-api/internal/clients/twilio"
	"github.com/magabrotheeeer/xbot-api/internal/config"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/system/health"
	"github.com/magabrotheeeer/xbot-api/internal/integration"
	"github.com/magabrotheeeer/xbot-api/internal/lib/jwt"
	"github.com/magabrotheeeer/xbot-api/internal/lib/password"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	"github.com/magabrotheeeer/xbot-api/internal/lib/smtp"
	"github.com/magabrotheeeer/xbot-api/internal/metrics"
	"github.com/magabrotheeeer/xbot-api/internal/migrations"
	"github.com/magabrotheeeer/xbot-api/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/xbot-api/internal/services/auth"
	linkedinservice "github.com/magabrotheeeer/xbot-api/internal/services/linkedin"
	messagingservice "github.com/magabrotheeeer/xbot-api/internal/services/messaging"
	recruitmentservice "github.com/magabrotheeeer/xbot-api/internal/services/recruitment"
	resumeservice "github.com/magabrotheeeer/xbot-api/internal/services/resume"
	"github.com/magabrotheeeer/xbot-api/internal/storage/repository"
)

// App HTTP-приложение со всеми зависимостями.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
	conn   *amqp.Connection
	ch     *amqp.Channel
}

// New подключается к хранилищам и брокеру, применяет миграции и собирает маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	const op = "api.New"

	db, err := repository.New(ctx, cfg.StorageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = migrations.Run(db.SQLDB()); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.Redis)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	conn, err := rabbitmq.Connect(ctx, cfg.RabbitMQ.URL, cfg.RabbitMQ.MaxRetries, cfg.RabbitMQ.RetryDelay)
	if err != nil {
		db.Close()
		_ = cacheRedis.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.AccountsExchange, rabbitmq.AccountQueues())
	if err != nil {
		db.Close()
		_ = cacheRedis.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	m := metrics.New(prometheus.DefaultRegisterer)
	envelope := integration.NewEnvelope(cfg.Outbound, logger, m)
	llm := openai.NewClient(cfg.OpenAI)
	mailer := smtp.NewMailer(smtp.NewTransport(cfg.SMTP, logger), cfg.SMTP.FromName, logger)

	svc := Services{
		Auth: authservice.NewAuthService(
			logger,
			db,
			password.NewHasher(cfg.Password.BcryptCost),
			jwt.NewJWTMaker(cfg.JWTToken.JWTSecretKey, cfg.JWTToken.TokenTTL),
			mailer,
			rabbitmq.NewPublisher(ch, rabbitmq.AccountsExchange),
			cacheRedis,
			authservice.Options{TokenTTL: cfg.JWTToken.TokenTTL, UserCacheTTL: cfg.Redis.UserTTL},
		),
		Messaging:   messagingservice.NewMessagingService(logger, envelope, llm, twilio.NewClient(cfg.Twilio)),
		Resume:      resumeservice.NewResumeService(logger, envelope, llm, db),
		Recruitment: recruitmentservice.NewRecruitmentService(logger, search.NewClient(cfg.Search)),
		LinkedIn:    linkedinservice.NewLinkedInService(logger, linkedin.NewClient(cfg.LinkedIn), cacheRedis, cfg.LinkedIn.StateTTL),
		Health: map[string]health.Check{
			"postgres": db.Ping,
			"redis":    cacheRedis.Ping,
		},
	}

	router := chi.NewRouter()
	RegisterRoutes(router, logger, cfg, m, svc)

	srv := &http.Server{
		Addr:         cfg.HTTPServer.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.TimeoutHTTP,
		WriteTimeout: cfg.HTTPServer.WriteTimeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
		conn:   conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его при отмене ctx.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	var err error
	select {
	case err = <-errCh:
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err = a.server.Shutdown(timeoutCtx)
	}
	a.close()
	return err
}

func (a *App) close() {
	if err := a.ch.Close(); err != nil {
		a.logger.Error("failed to close channel", sl.Err(err))
	}
	if err := a.conn.Close(); err != nil {
		a.logger.Error("failed to close connection", sl.Err(err))
	}
	if err := a.cache.Close(); err != nil {
		a.logger.Error("failed to close redis", sl.Err(err))
	}
	a.db.Close()
}
