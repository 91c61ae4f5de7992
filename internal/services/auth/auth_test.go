package services_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/lib/jwt"
	"github.com/magabrotheeeer/xbot-api/internal/lib/password"
	"github.com/magabrotheeeer/xbot-api/internal/lib/smtp"
	"github.com/magabrotheeeer/xbot-api/internal/models"
	"github.com/magabrotheeeer/xbot-api/internal/rabbitmq"
	services "github.com/magabrotheeeer/xbot-api/internal/services/auth"
)

const testSecret = "test-secret"

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *UserRepoMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) SetActivationCode(ctx context.Context, username, code string) error {
	return m.Called(ctx, username, code).Error(0)
}

func (m *UserRepoMock) ActivateUser(ctx context.Context, username, code string) error {
	return m.Called(ctx, username, code).Error(0)
}

type MailerMock struct {
	mock.Mock
}

func (m *MailerMock) SendActivation(to string, data smtp.ActivationData) error {
	return m.Called(to, data).Error(0)
}

type PublisherMock struct {
	mock.Mock
}

func (m *PublisherMock) Publish(ctx context.Context, routingKey string, message any) error {
	return m.Called(ctx, routingKey, message).Error(0)
}

type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(ctx context.Context, key string, result any) (bool, error) {
	args := m.Called(ctx, key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	return m.Called(ctx, key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newService(repo services.UserRepository, mailer services.Mailer, events services.EventPublisher, cache services.UserCache) *services.AuthService {
	return services.NewAuthService(
		newNoopLogger(),
		repo,
		password.NewHasher(bcrypt.MinCost),
		jwt.NewJWTMaker(testSecret, 30*time.Minute),
		mailer,
		events,
		cache,
		services.Options{TokenTTL: 30 * time.Minute, UserCacheTTL: time.Minute},
	)
}

func strPtr(s string) *string { return &s }

func TestGenerateActivationCode(t *testing.T) {
	seen := make(map[string]struct{})
	for range 50 {
		code, err := services.GenerateActivationCode()
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9a-f]{6}$`, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 1)
}

func TestAuthService_Register(t *testing.T) {
	input := services.RegisterInput{
		Username:       "alice",
		Email:          "alice@example.com",
		Name:           "Alice",
		Password:       "secret123",
		WhatsAppNumber: "+15551234567",
	}

	tests := []struct {
		name       string
		input      services.RegisterInput
		setupMocks func(r *UserRepoMock, m *MailerMock)
		wantErr    error
		wantToken  bool
	}{
		{
			name:  "successful registration",
			input: input,
			setupMocks: func(r *UserRepoMock, m *MailerMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(nil, apperr.ErrNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.MatchedBy(func(u *models.User) bool {
					return u.Username == "alice" &&
						u.PasswordHash != "" && u.PasswordHash != "secret123" &&
						!u.IsActive &&
						u.ActivationCode != nil && len(*u.ActivationCode) == 6
				})).Return(nil).Once()
				m.On("SendActivation", "alice@example.com", mock.MatchedBy(func(d smtp.ActivationData) bool {
					return d.Name == "Alice" && d.Username == "alice" && len(d.Code) == 6
				})).Return(nil).Once()
			},
			wantToken: true,
		},
		{
			name:  "duplicate username performs no write",
			input: input,
			setupMocks: func(r *UserRepoMock, _ *MailerMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{Username: "alice"}, nil).Once()
			},
			wantErr: apperr.ErrDuplicateUser,
		},
		{
			name: "invalid phone number",
			input: services.RegisterInput{
				Username: "bob", Email: "bob@example.com", Name: "Bob", Password: "secret123", WhatsAppNumber: "15551234567",
			},
			setupMocks: func(r *UserRepoMock, _ *MailerMock) {
				r.On("GetUserByUsername", mock.Anything, "bob").Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrInvalidPhoneNumber,
		},
		{
			name: "phone number is optional",
			input: services.RegisterInput{
				Username: "carol", Email: "carol@example.com", Name: "Carol", Password: "secret123",
			},
			setupMocks: func(r *UserRepoMock, m *MailerMock) {
				r.On("GetUserByUsername", mock.Anything, "carol").Return(nil, apperr.ErrNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()
				m.On("SendActivation", "carol@example.com", mock.Anything).Return(nil).Once()
			},
			wantToken: true,
		},
		{
			name:  "email failure surfaces to caller",
			input: input,
			setupMocks: func(r *UserRepoMock, m *MailerMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(nil, apperr.ErrNotFound).Once()
				r.On("CreateUser", mock.Anything, mock.Anything).Return(nil).Once()
				m.On("SendActivation", "alice@example.com", mock.Anything).Return(errors.New("535 auth failed")).Once()
			},
			wantErr: apperr.ErrIntegration,
		},
		{
			name:  "lookup failure",
			input: input,
			setupMocks: func(r *UserRepoMock, _ *MailerMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(nil, errors.New("db down")).Once()
			},
			wantErr: errors.New("db down"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			mailer := new(MailerMock)
			tt.setupMocks(repo, mailer)
			svc := newService(repo, mailer, nil, nil)

			token, err := svc.Register(context.Background(), tt.input)
			if tt.wantErr != nil {
				require.Error(t, err)
				if errors.Is(tt.wantErr, apperr.ErrDuplicateUser) || errors.Is(tt.wantErr, apperr.ErrInvalidPhoneNumber) ||
					errors.Is(tt.wantErr, apperr.ErrIntegration) {
					assert.ErrorIs(t, err, tt.wantErr)
				} else {
					assert.Contains(t, err.Error(), tt.wantErr.Error())
				}
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.True(t, tt.wantToken)
				subject, err := jwt.NewJWTMaker(testSecret, 0).Validate(token)
				require.NoError(t, err)
				assert.Equal(t, tt.input.Username, subject)
			}

			if tt.wantErr != nil && !errors.Is(tt.wantErr, apperr.ErrIntegration) {
				repo.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
			}
			repo.AssertExpectations(t)
			mailer.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.NewHasher(bcrypt.MinCost).Hash("correctpassword")
	require.NoError(t, err)
	user := &models.User{Username: "testuser", PasswordHash: hash}

	tests := []struct {
		name       string
		username   string
		password   string
		setupMocks func(r *UserRepoMock)
		wantErr    error
	}{
		{
			name:     "successful login",
			username: "testuser",
			password: "correctpassword",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil).Once()
			},
		},
		{
			name:     "wrong password",
			username: "testuser",
			password: "wrong",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "testuser").Return(user, nil).Once()
			},
			wantErr: apperr.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "correctpassword",
			setupMocks: func(r *UserRepoMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMocks(repo)
			svc := newService(repo, new(MailerMock), nil, nil)

			token, err := svc.Login(context.Background(), tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Activate(t *testing.T) {
	pending := func() *models.User {
		return &models.User{
			Username:       "alice",
			Email:          "alice@example.com",
			Name:           "Alice",
			WhatsAppNumber: "+15551234567",
			ActivationCode: strPtr("a1b2c3"),
		}
	}

	tests := []struct {
		name       string
		input      services.ActivateInput
		setupMocks func(r *UserRepoMock, p *PublisherMock)
		wantErr    error
	}{
		{
			name:  "activate by username",
			input: services.ActivateInput{Username: "alice", Code: "a1b2c3"},
			setupMocks: func(r *UserRepoMock, p *PublisherMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(pending(), nil).Once()
				r.On("ActivateUser", mock.Anything, "alice", "a1b2c3").Return(nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.RoutingKeyUserActivated, models.UserActivated{
					Username: "alice", Name: "Alice", Email: "alice@example.com", WhatsAppNumber: "+15551234567",
				}).Return(nil).Once()
			},
		},
		{
			name:  "activate by email",
			input: services.ActivateInput{Email: "alice@example.com", Code: "a1b2c3"},
			setupMocks: func(r *UserRepoMock, p *PublisherMock) {
				r.On("GetUserByEmail", mock.Anything, "alice@example.com").Return(pending(), nil).Once()
				r.On("ActivateUser", mock.Anything, "alice", "a1b2c3").Return(nil).Once()
				p.On("Publish", mock.Anything, rabbitmq.RoutingKeyUserActivated, mock.Anything).Return(nil).Once()
			},
		},
		{
			name:  "publish failure does not fail activation",
			input: services.ActivateInput{Username: "alice", Code: "a1b2c3"},
			setupMocks: func(r *UserRepoMock, p *PublisherMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(pending(), nil).Once()
				r.On("ActivateUser", mock.Anything, "alice", "a1b2c3").Return(nil).Once()
				p.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("channel closed")).Once()
			},
		},
		{
			name:  "code is case-sensitive",
			input: services.ActivateInput{Username: "alice", Code: "A1B2C3"},
			setupMocks: func(r *UserRepoMock, _ *PublisherMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(pending(), nil).Once()
			},
			wantErr: apperr.ErrInvalidCode,
		},
		{
			name:  "already active has no code",
			input: services.ActivateInput{Username: "alice", Code: "a1b2c3"},
			setupMocks: func(r *UserRepoMock, _ *PublisherMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").
					Return(&models.User{Username: "alice", IsActive: true}, nil).Once()
			},
			wantErr: apperr.ErrInvalidCode,
		},
		{
			name:  "unknown user",
			input: services.ActivateInput{Username: "ghost", Code: "a1b2c3"},
			setupMocks: func(r *UserRepoMock, _ *PublisherMock) {
				r.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name:       "no identifier",
			input:      services.ActivateInput{Code: "a1b2c3"},
			setupMocks: func(_ *UserRepoMock, _ *PublisherMock) {},
			wantErr:    apperr.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			pub := new(PublisherMock)
			tt.setupMocks(repo, pub)
			svc := newService(repo, new(MailerMock), pub, nil)

			err := svc.Activate(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				repo.AssertNotCalled(t, "ActivateUser", mock.Anything, mock.Anything, mock.Anything)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
			pub.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResendActivation(t *testing.T) {
	tests := []struct {
		name       string
		setupMocks func(r *UserRepoMock, m *MailerMock, c *CacheMock)
		wantErr    error
	}{
		{
			name: "new code replaces old one",
			setupMocks: func(r *UserRepoMock, m *MailerMock, c *CacheMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(&models.User{
					Username: "alice", Email: "alice@example.com", Name: "Alice", ActivationCode: strPtr("a1b2c3"),
				}, nil).Once()
				r.On("SetActivationCode", mock.Anything, "alice", mock.MatchedBy(func(code string) bool {
					return len(code) == 6
				})).Return(nil).Once()
				c.On("Invalidate", mock.Anything, "user:alice").Return(nil).Once()
				m.On("SendActivation", "alice@example.com", mock.Anything).Return(nil).Once()
			},
		},
		{
			name: "active account is rejected",
			setupMocks: func(r *UserRepoMock, _ *MailerMock, _ *CacheMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").
					Return(&models.User{Username: "alice", IsActive: true}, nil).Once()
			},
			wantErr: apperr.ErrAlreadyActive,
		},
		{
			name: "unknown user",
			setupMocks: func(r *UserRepoMock, _ *MailerMock, _ *CacheMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").Return(nil, apperr.ErrNotFound).Once()
			},
			wantErr: apperr.ErrNotFound,
		},
		{
			name: "mail failure",
			setupMocks: func(r *UserRepoMock, m *MailerMock, c *CacheMock) {
				r.On("GetUserByUsername", mock.Anything, "alice").
					Return(&models.User{Username: "alice", Email: "alice@example.com"}, nil).Once()
				r.On("SetActivationCode", mock.Anything, "alice", mock.Anything).Return(nil).Once()
				c.On("Invalidate", mock.Anything, "user:alice").Return(nil).Once()
				m.On("SendActivation", "alice@example.com", mock.Anything).Return(errors.New("timeout")).Once()
			},
			wantErr: apperr.ErrIntegration,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			mailer := new(MailerMock)
			cache := new(CacheMock)
			tt.setupMocks(repo, mailer, cache)
			svc := newService(repo, mailer, nil, cache)

			err := svc.ResendActivation(context.Background(), "alice")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			repo.AssertExpectations(t)
			mailer.AssertExpectations(t)
			cache.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	maker := jwt.NewJWTMaker(testSecret, time.Minute)
	token, err := maker.Issue("alice", 0)
	require.NoError(t, err)
	user := &models.User{Username: "alice", Name: "Alice"}

	t.Run("cache miss loads from repository", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "user:alice", mock.Anything).Return(false, nil).Once()
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(user, nil).Once()
		cache.On("Set", mock.Anything, "user:alice", user, time.Minute).Return(nil).Once()

		got, err := newService(repo, nil, nil, cache).Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, user, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(UserRepoMock)
		cache := new(CacheMock)
		cache.On("Get", mock.Anything, "user:alice", mock.Anything).Run(func(args mock.Arguments) {
			*args.Get(2).(*models.User) = *user
		}).Return(true, nil).Once()

		got, err := newService(repo, nil, nil, cache).Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, "Alice", got.Name)
		repo.AssertNotCalled(t, "GetUserByUsername", mock.Anything, mock.Anything)
	})

	t.Run("unknown subject", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUserByUsername", mock.Anything, "alice").Return(nil, apperr.ErrNotFound).Once()

		_, err := newService(repo, nil, nil, nil).Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, apperr.ErrUnknownSubject)
		assert.ErrorIs(t, err, apperr.ErrUnauthorized)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := newService(new(UserRepoMock), nil, nil, nil).Authenticate(context.Background(), "not-a-token")
		assert.ErrorIs(t, err, apperr.ErrTokenMalformed)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other, err := jwt.NewJWTMaker("other", time.Minute).Issue("alice", 0)
		require.NoError(t, err)
		_, err = newService(new(UserRepoMock), nil, nil, nil).Authenticate(context.Background(), other)
		assert.ErrorIs(t, err, apperr.ErrTokenMalformed)
	})
}

// memoryRepo потокобезопасное хранилище в памяти для сквозных сценариев.
type memoryRepo struct {
	mu     sync.Mutex
	users  map[string]models.User
	writes int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: make(map[string]models.User)}
}

func (r *memoryRepo) CreateUser(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Username]; ok {
		return apperr.ErrDuplicateUser
	}
	r.writes++
	r.users[user.Username] = *user
	return nil
}

func (r *memoryRepo) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	return &u, nil
}

func (r *memoryRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, apperr.ErrNotFound
}

func (r *memoryRepo) SetActivationCode(_ context.Context, username, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok {
		return apperr.ErrNotFound
	}
	u.ActivationCode = &code
	r.users[username] = u
	r.writes++
	return nil
}

func (r *memoryRepo) ActivateUser(_ context.Context, username, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[username]
	if !ok || u.ActivationCode == nil || *u.ActivationCode != code {
		return apperr.ErrInvalidCode
	}
	u.IsActive = true
	u.ActivationCode = nil
	r.users[username] = u
	r.writes++
	return nil
}

// codeCapture запоминает последний отправленный код.
type codeCapture struct {
	mu    sync.Mutex
	codes []string
}

func (c *codeCapture) SendActivation(_ string, data smtp.ActivationData) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.codes = append(c.codes, data.Code)
	return nil
}

func (c *codeCapture) last() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.codes[len(c.codes)-1]
}

func TestActivationScenario(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	mailer := &codeCapture{}
	svc := newService(repo, mailer, nil, nil)

	token, err := svc.Register(ctx, services.RegisterInput{
		Username:       "alice",
		Email:          "alice@example.com",
		Name:           "Alice",
		Password:       "wonderland",
		WhatsAppNumber: "+15551234567",
	})
	require.NoError(t, err)

	me, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.False(t, me.IsActive)

	code := mailer.last()
	wrong := "zzzzzz"
	require.NotEqual(t, code, wrong)

	err = svc.Activate(ctx, services.ActivateInput{Username: "alice", Code: wrong})
	assert.ErrorIs(t, err, apperr.ErrInvalidCode)

	require.NoError(t, svc.Activate(ctx, services.ActivateInput{Username: "alice", Code: code}))

	stored, err := repo.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Nil(t, stored.ActivationCode)

	err = svc.Activate(ctx, services.ActivateInput{Username: "alice", Code: code})
	assert.ErrorIs(t, err, apperr.ErrInvalidCode)

	err = svc.ResendActivation(ctx, "alice")
	assert.ErrorIs(t, err, apperr.ErrAlreadyActive)

	_, err = svc.Login(ctx, "alice", "wonderland")
	require.NoError(t, err)
}

func TestResendInvalidatesPreviousCode(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	mailer := &codeCapture{}
	svc := newService(repo, mailer, nil, nil)

	_, err := svc.Register(ctx, services.RegisterInput{
		Username: "bob", Email: "bob@example.com", Name: "Bob", Password: "builder",
	})
	require.NoError(t, err)
	first := mailer.last()

	for {
		require.NoError(t, svc.ResendActivation(ctx, "bob"))
		if mailer.last() != first {
			break
		}
	}
	second := mailer.last()

	err = svc.Activate(ctx, services.ActivateInput{Email: "bob@example.com", Code: first})
	assert.ErrorIs(t, err, apperr.ErrInvalidCode)
	require.NoError(t, svc.Activate(ctx, services.ActivateInput{Email: "bob@example.com", Code: second}))
}

func TestDuplicateRegistrationPerformsNoWrite(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo()
	svc := newService(repo, &codeCapture{}, nil, nil)
	in := services.RegisterInput{Username: "alice", Email: "alice@example.com", Name: "Alice", Password: "pw123456"}

	_, err := svc.Register(ctx, in)
	require.NoError(t, err)
	writes := repo.writes

	_, err = svc.Register(ctx, in)
	assert.ErrorIs(t, err, apperr.ErrDuplicateUser)
	assert.Equal(t, writes, repo.writes)
}
