package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"telos/internal/models"
)

type SessionStorage struct {
	pool *pgxpool.Pool
}

func NewSessionStorage(pool *pgxpool.Pool) *SessionStorage {
	return &SessionStorage{
		pool: pool,
	}
}

func (db_ss *SessionStorage) CreateSession(ctx context.Context, s *models.Session) error {
	op := "internal/storage/sessions.go CreateSession"

	if s.CreatedAt.IsZero() {
		s.CreatedAt = now()
	}

	_, err := db_ss.pool.Exec(ctx,
		`INSERT INTO sessions (token_hash, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4)`,
		s.TokenHash, s.UserID, s.CreatedAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

func (db_ss *SessionStorage) GetSession(ctx context.Context, tokenHash string) (models.Session, error) {
	op := "internal/storage/sessions.go GetSession"

	var s models.Session
	err := db_ss.pool.QueryRow(ctx,
		`SELECT token_hash, user_id, created_at, expires_at FROM sessions WHERE token_hash = $1`,
		tokenHash).Scan(&s.TokenHash, &s.UserID, &s.CreatedAt, &s.ExpiresAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return s, nil
}

// DeleteSession does not report a missing session.
func (db_ss *SessionStorage) DeleteSession(ctx context.Context, tokenHash string) error {
	op := "internal/storage/sessions.go DeleteSession"

	if _, err := db_ss.pool.Exec(ctx, `DELETE FROM sessions WHERE token_hash = $1`, tokenHash); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (db_ss *SessionStorage) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	op := "internal/storage/sessions.go DeleteExpired"

	tag, err := db_ss.pool.Exec(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, before)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return tag.RowsAffected(), nil
}
