package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/magabrotheeeer/xbot-api/internal/lib/apperr"
	"github.com/magabrotheeeer/xbot-api/internal/models"
)

// CreateResume сохраняет резюме.
func (s *Storage) CreateResume(ctx context.Context, r *models.Resume) error {
	const op = "storage.CreateResume"

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	query := `INSERT INTO resumes (id, owner, name, email, jobtitle, location, experience, skills)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING created_at`
	if err := s.db.QueryRow(ctx, query,
		r.ID, r.Owner, r.Name, r.Email, r.JobTitle, r.Location, r.Experience, r.Skills,
	).Scan(&r.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetResumeByName возвращает последнее резюме с указанным именем.
func (s *Storage) GetResumeByName(ctx context.Context, name string) (*models.Resume, error) {
	const op = "storage.GetResumeByName"

	query := `SELECT id::text, owner, name, email, jobtitle, location, experience, skills, created_at
			  FROM resumes
			  WHERE name = $1
			  ORDER BY created_at DESC
			  LIMIT 1`
	r := &models.Resume{}
	err := s.db.QueryRow(ctx, query, name).Scan(
		&r.ID, &r.Owner, &r.Name, &r.Email, &r.JobTitle, &r.Location, &r.Experience, &r.Skills, &r.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return r, nil
}
