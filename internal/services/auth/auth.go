// Package services реализует регистрацию, вход, активацию учётной записи
// и аутентификацию запросов по токену.
package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/jwt"
	"github.com/magabrotheeeer/xbot-api/internal/lib/phone"
	"github.com/magabrotheeeer/xbot-api/internal/lib/sl"
	"github.com/magabrotheeeer/xbot-api/internal/lib/smtp"
	"github.com/magabrotheeeer/xbot-api/internal/models"
	"github.com/magabrotheeeer/xbot-api/internal/rabbitmq"
)

const (
	activationCodeBytes = 3
	mailVendor          = "smtp"
	userCacheKeyPrefix  = "user:"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetActivationCode(ctx context.Context, username, code string) error
	// ActivateUser активирует запись, только если код всё ещё совпадает.
	ActivateUser(ctx context.Context, username, code string) error
}

// PasswordHasher хеширует и проверяет пароли.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

// Mailer доставляет письмо с кодом активации.
type Mailer interface {
	SendActivation(to string, data smtp.ActivationData) error
}

// EventPublisher публикует события учётных записей.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message any) error
}

// UserCache кэш пользователей для аутентификации по токену.
type UserCache interface {
	Get(ctx context.Context, key string, result any) (bool, error)
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
	Invalidate(ctx context.Context, key string) error
}

// RegisterInput данные регистрации.
type RegisterInput struct {
	Username       string
	Email          string
	Name           string
	Password       string
	JobTitle       string
	Location       string
	WhatsAppNumber string
}

// ActivateInput идентификатор учётной записи (username или email) и код.
type ActivateInput struct {
	Username string
	Email    string
	Code     string
}

// Options параметры сервиса.
type Options struct {
	TokenTTL     time.Duration
	UserCacheTTL time.Duration
}

// AuthService отвечает за жизненный цикл учётной записи и выдачу токенов.
type AuthService struct {
	log      *slog.Logger
	users    UserRepository
	hasher   PasswordHasher
	jwtMaker jwt.Maker
	mailer   Mailer
	events   EventPublisher
	cache    UserCache
	opts     Options
	newCode  func() (string, error)
}

// NewAuthService создает новый экземпляр AuthService.
// events и cache могут быть nil: тогда события не публикуются, а кэш не используется.
func NewAuthService(
	log *slog.Logger,
	users UserRepository,
	hasher PasswordHasher,
	jwtMaker jwt.Maker,
	mailer Mailer,
	events EventPublisher,
	cache UserCache,
	opts Options,
) *AuthService {
	return &AuthService{
		log:      log,
		users:    users,
		hasher:   hasher,
		jwtMaker: jwtMaker,
		mailer:   mailer,
		events:   events,
		cache:    cache,
		opts:     opts,
		newCode:  GenerateActivationCode,
	}
}

// GenerateActivationCode возвращает 6 шестнадцатеричных символов из криптостойкого источника.
func GenerateActivationCode() (string, error) {
	b := make([]byte, activationCodeBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Register создаёт учётную запись в состоянии ожидания активации,
// отправляет письмо с кодом и выдаёт токен.
// Ошибка отправки письма возвращается вызывающему, запись при этом остаётся.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	const op = "services.AuthService.Register"

	_, err := s.users.GetUserByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return "", fmt.Errorf("%s: %w", op, apperr.ErrDuplicateUser)
	case !errors.Is(err, apperr.ErrNotFound):
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if in.WhatsAppNumber != "" && !phone.Valid(in.WhatsAppNumber) {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidPhoneNumber)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	code, err := s.newCode()
	if err != nil {
		return "", fmt.Errorf("%s: activation code: %w", op, err)
	}

	user := &models.User{
		Username:       in.Username,
		Email:          in.Email,
		Name:           in.Name,
		JobTitle:       in.JobTitle,
		Location:       in.Location,
		WhatsAppNumber: in.WhatsAppNumber,
		PasswordHash:   hash,
		ActivationCode: &code,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("user registered", slog.String("username", user.Username))

	if err := s.sendCode(user, code); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	token, err := s.jwtMaker.Issue(user.Username, s.opts.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Login проверяет пароль и выдаёт токен. Неизвестный пользователь и неверный
// пароль неразличимы для вызывающего.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	const op = "services.AuthService.Login"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", fmt.Errorf("%s: %w", op, apperr.ErrInvalidCredentials)
	}

	token, err := s.jwtMaker.Issue(user.Username, s.opts.TokenTTL)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Activate сверяет код и переводит учётную запись в активное состояние.
// Повторная активация тем же кодом завершается apperr.ErrInvalidCode.
func (s *AuthService) Activate(ctx context.Context, in ActivateInput) error {
	const op = "services.AuthService.Activate"

	user, err := s.lookup(ctx, in.Username, in.Email)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if !codeMatches(user.ActivationCode, in.Code) {
		return fmt.Errorf("%s: %w", op, apperr.ErrInvalidCode)
	}
	if err := s.users.ActivateUser(ctx, user.Username, in.Code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, user.Username)
	s.log.Info("user activated", slog.String("username", user.Username))

	if s.events != nil {
		event := models.UserActivated{
			Username:       user.Username,
			Name:           user.Name,
			Email:          user.Email,
			WhatsAppNumber: user.WhatsAppNumber,
		}
		if err := s.events.Publish(ctx, rabbitmq.RoutingKeyUserActivated, event); err != nil {
			s.log.Error("failed to publish activation event", slog.String("username", user.Username), sl.Err(err))
		}
	}
	return nil
}

// ResendActivation генерирует новый код (старый перестаёт действовать) и отправляет его.
func (s *AuthService) ResendActivation(ctx context.Context, username string) error {
	const op = "services.AuthService.ResendActivation"

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if user.IsActive {
		return fmt.Errorf("%s: %w", op, apperr.ErrAlreadyActive)
	}

	code, err := s.newCode()
	if err != nil {
		return fmt.Errorf("%s: activation code: %w", op, err)
	}
	if err := s.users.SetActivationCode(ctx, user.Username, code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.invalidate(ctx, user.Username)

	if err := s.sendCode(user, code); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Authenticate проверяет токен и возвращает владельца.
// Субъект без учётной записи даёт apperr.ErrUnknownSubject.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	const op = "services.AuthService.Authenticate"

	username, err := s.jwtMaker.Validate(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	key := userCacheKeyPrefix + username
	if s.cache != nil {
		var cached models.User
		found, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.log.Warn("user cache read failed", sl.Err(err))
		} else if found {
			return &cached, nil
		}
	}

	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrUnknownSubject)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, user, s.opts.UserCacheTTL); err != nil {
			s.log.Warn("user cache write failed", sl.Err(err))
		}
	}
	return user, nil
}

func (s *AuthService) lookup(ctx context.Context, username, email string) (*models.User, error) {
	switch {
	case username != "":
		return s.users.GetUserByUsername(ctx, username)
	case email != "":
		return s.users.GetUserByEmail(ctx, email)
	default:
		return nil, fmt.Errorf("username or email is required: %w", apperr.ErrValidation)
	}
}

func (s *AuthService) sendCode(user *models.User, code string) error {
	err := s.mailer.SendActivation(user.Email, smtp.ActivationData{
		Name:     user.Name,
		Username: user.Username,
		Code:     code,
	})
	if err != nil {
		s.log.Error("failed to send activation email", slog.String("username", user.Username), sl.Err(err))
		return apperr.NewIntegrationError(mailVendor, err)
	}
	return nil
}

func (s *AuthService) invalidate(ctx context.Context, username string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userCacheKeyPrefix+username); err != nil {
		s.log.Warn("user cache invalidation failed", sl.Err(err))
	}
}

// codeMatches точное сравнение с учётом регистра. Отсутствующий код не совпадает ни с чем.
func codeMatches(stored *string, supplied string) bool {
	if stored == nil || supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(supplied)) == 1
}
