// Package repository реализует хранилище учётных записей и резюме
// на основе PostgreSQL (pgx). Каждая операция затрагивает одну строку,
// многострочные транзакции не используются.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

// DBTX минимальный набор методов пула, используемый хранилищем.
// Реализуется *pgxpool.Pool и pgxmock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// Storage инкапсулирует пул соединений с PostgreSQL.
type Storage struct {
	db   DBTX
	pool *pgxpool.Pool
}

// New создаёт пул соединений и проверяет доступность базы.
func New(ctx context.Context, storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	pool, err := pgxpool.New(ctx, storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Storage{db: pool, pool: pool}, nil
}

// NewWithDB оборачивает готовое соединение (используется в тестах).
func NewWithDB(db DBTX) *Storage {
	return &Storage{db: db}
}

// SQLDB возвращает *sql.DB поверх пула для golang-migrate.
func (s *Storage) SQLDB() *sql.DB {
	return stdlib.OpenDBFromPool(s.pool)
}

// Ping проверяет соединение с базой.
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

// Close закрывает пул.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
