package repository

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/migrations"
	"github.com/magabrotheeeer/xbot-api/internal/models"
)

func setupTestDatabase(t *testing.T) *Storage {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 to run tests against a postgres container")
	}
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("xbot"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %s", err)
		}
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	storage, err := New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(storage.Close)

	db := storage.SQLDB()
	require.NoError(t, migrations.Run(db))
	return storage
}

func TestIntegration_UserLifecycle(t *testing.T) {
	storage := setupTestDatabase(t)
	ctx := context.Background()
	code := "a1b2c3"

	u := &models.User{
		Username:       "alice",
		Email:          "alice@example.com",
		Name:           "Alice",
		WhatsAppNumber: "+15551234567",
		PasswordHash:   "hash",
		ActivationCode: &code,
	}
	require.NoError(t, storage.CreateUser(ctx, u))

	dup := *u
	dup.ID = ""
	assert.ErrorIs(t, storage.CreateUser(ctx, &dup), apperr.ErrDuplicateUser)

	got, err := storage.GetUserByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	require.NotNil(t, got.ActivationCode)
	assert.Equal(t, code, *got.ActivationCode)

	require.NoError(t, storage.SetActivationCode(ctx, "alice", "ffffff"))
	assert.ErrorIs(t, storage.ActivateUser(ctx, "alice", code), apperr.ErrInvalidCode)
	require.NoError(t, storage.ActivateUser(ctx, "alice", "ffffff"))
	assert.ErrorIs(t, storage.ActivateUser(ctx, "alice", "ffffff"), apperr.ErrInvalidCode)

	got, err = storage.GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.ActivationCode)

	_, err = storage.GetUserByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestIntegration_Resumes(t *testing.T) {
	storage := setupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, storage.CreateUser(ctx, &models.User{
		Username: "alice", Email: "alice@example.com", Name: "Alice", PasswordHash: "hash", IsActive: true,
	}))

	r := &models.Resume{Owner: "alice", Name: "Alice", Email: "alice@example.com", JobTitle: "QA", Experience: "e", Skills: "s"}
	require.NoError(t, storage.CreateResume(ctx, r))

	got, err := storage.GetResumeByName(ctx, "Alice")
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "QA", got.JobTitle)

	_, err = storage.GetResumeByName(ctx, "Bob")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
