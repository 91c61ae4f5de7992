package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/models"
)

const userColumns = `id::text, username, email, name, jobtitle, location, whatsapp_number,
	password_hash, is_active, activation_code, created_at`

// CreateUser сохраняет нового пользователя. ID генерируется, если не задан.
// Нарушение уникальности username возвращается как apperr.ErrDuplicateUser.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) error {
	const op = "storage.CreateUser"

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `INSERT INTO users (id, username, email, name, jobtitle, location,
			      whatsapp_number, password_hash, is_active, activation_code)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING created_at`
	err := s.db.QueryRow(ctx, query,
		user.ID, user.Username, user.Email, user.Name, user.JobTitle, user.Location,
		user.WhatsAppNumber, user.PasswordHash, user.IsActive, user.ActivationCode,
	).Scan(&user.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return fmt.Errorf("%s: %w", op, apperr.ErrDuplicateUser)
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetUserByUsername возвращает пользователя по username.
func (s *Storage) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.GetUserByUsername"
	u, err := s.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает самую раннюю учётную запись с указанным email.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	u, err := s.getUser(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1 ORDER BY created_at LIMIT 1`, email)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

func (s *Storage) getUser(ctx context.Context, query string, arg string) (*models.User, error) {
	u := &models.User{}
	err := s.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Username, &u.Email, &u.Name, &u.JobTitle, &u.Location, &u.WhatsAppNumber,
		&u.PasswordHash, &u.IsActive, &u.ActivationCode, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// SetActivationCode перезаписывает код активации пользователя.
func (s *Storage) SetActivationCode(ctx context.Context, username, code string) error {
	const op = "storage.SetActivationCode"

	tag, err := s.db.Exec(ctx, `UPDATE users SET activation_code = $2 WHERE username = $1`, username, code)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	}
	return nil
}

// ActivateUser переводит учётную запись в активное состояние и очищает код.
// Обновление условное: строка меняется, только если код всё ещё совпадает,
// поэтому две конкурентные активации не пройдут обе.
func (s *Storage) ActivateUser(ctx context.Context, username, code string) error {
	const op = "storage.ActivateUser"

	tag, err := s.db.Exec(ctx,
		`UPDATE users SET is_active = TRUE, activation_code = NULL
		 WHERE username = $1 AND activation_code = $2`, username, code)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, apperr.ErrInvalidCode)
	}
	return nil
}
