// Package api собирает HTTP-приложение: зависимости, маршруты и сервер.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/magabrotheeeer/xbot-api/docs"
	"github.com/magabrotheeeer/xbot-api/internal/config"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/auth/activate"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/auth/resend"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/auth/token"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/linkedin/callback"
	linkedinlogin "github.com/magabrotheeeer/xbot-api/internal/http/handlers/linkedin/login"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/messaging/sendmessage"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/recruitment/search"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/resume/generate"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/resume/read"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/system/health"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/system/info"
	"github.com/magabrotheeeer/xbot-api/internal/http/handlers/users/me"
	"github.com/magabrotheeeer/xbot-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/xbot-api/internal/metrics"
	authservice "github.com/magabrotheeeer/xbot-api/internal/services/auth"
	linkedinservice "github.com/magabrotheeeer/xbot-api/internal/services/linkedin"
	messagingservice "github.com/magabrotheeeer/xbot-api/internal/services/messaging"
	recruitmentservice "github.com/magabrotheeeer/xbot-api/internal/services/recruitment"
	resumeservice "github.com/magabrotheeeer/xbot-api/internal/services/resume"
)

// Version версия API, отдаваемая на /info.
const Version = "1.0.0"

// Services сервисы, обслуживающие маршруты.
type Services struct {
	Auth        *authservice.AuthService
	Messaging   *messagingservice.MessagingService
	Resume      *resumeservice.ResumeService
	Recruitment *recruitmentservice.RecruitmentService
	LinkedIn    *linkedinservice.LinkedInService
	Health      map[string]health.Check
}

// corsOptions разрешает браузерные запросы с любых источников.
var corsOptions = cors.Options{
	AllowedOrigins: []string{"*"},
	AllowedMethods: []string{
		http.MethodGet,
		http.MethodPost,
		http.MethodPut,
		http.MethodPatch,
		http.MethodDelete,
		http.MethodOptions,
	},
	AllowedHeaders: []string{"*"},
	ExposedHeaders: []string{"Content-Disposition", "X-Request-Id"},
	MaxAge:         300,
}

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, cfg *config.Config, m *metrics.Metrics, svc Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middlewarectx.Recoverer(logger),
		cors.Handler(corsOptions),
		middlewarectx.Metrics(m),
	)

	infoHandler := info.New(Version)
	r.Get("/", infoHandler.Root)
	r.Get("/info", infoHandler.Info)
	r.Get("/health", health.New(logger, svc.Health).ServeHTTP)

	// Открытые конечные точки
	r.Post("/register", register.New(logger, svc.Auth).ServeHTTP)
	r.Post("/token", token.New(logger, svc.Auth).ServeHTTP)
	r.Post("/activate", activate.New(logger, svc.Auth).ServeHTTP)
	r.Post("/resend-activation", resend.New(logger, svc.Auth).ServeHTTP)
	r.Get("/linkedin/login", linkedinlogin.New(logger, svc.LinkedIn).ServeHTTP)
	r.Get("/linkedin/callback", callback.New(logger, svc.LinkedIn).ServeHTTP)

	// Группа с JWT аутентификацией
	r.Group(func(r chi.Router) {
		r.Use(middlewarectx.JWTMiddleware(svc.Auth, logger))
		r.Use(middlewarectx.RateLimitMiddleware(logger, cfg.RateLimit))
		r.Get("/users/me", me.New(logger).ServeHTTP)
		r.Get("/recruitment/search", search.New(logger, svc.Recruitment).ServeHTTP)

		// Только для активированных учётных записей
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.RequireActive(logger))
			r.Post("/send-message", sendmessage.New(logger, svc.Messaging).ServeHTTP)
			r.Post("/resumes/generate", generate.New(logger, svc.Resume).ServeHTTP)
			r.Get("/resumes/{name}", read.New(logger, svc.Resume).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
