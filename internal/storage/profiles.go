package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"telos/internal/models"
)

type ProfileStorage struct {
	pool *pgxpool.Pool
}

func NewProfileStorage(pool *pgxpool.Pool) *ProfileStorage {
	return &ProfileStorage{
		pool: pool,
	}
}

const profileColumns = `user_id, full_name, avatar_url, created_at, updated_at`

func scanProfile(row rowScanner) (models.UserProfile, error) {
	var p models.UserProfile
	err := row.Scan(&p.UserID, &p.FullName, &p.AvatarURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (db_ps *ProfileStorage) GetProfile(ctx context.Context, userID uuid.UUID) (models.UserProfile, error) {
	op := "internal/storage/profiles.go GetProfile"

	p, err := scanProfile(db_ps.pool.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM user_profiles WHERE user_id = $1`, userID))
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return p, nil
}

// CreateProfile inserts p unless a profile already exists for the user, and
// returns whichever row is stored afterwards.
func (db_ps *ProfileStorage) CreateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	op := "internal/storage/profiles.go CreateProfile"

	ts := now()
	sql_query := `
	INSERT INTO user_profiles (` + profileColumns + `)
	VALUES ($1, $2, $3, $4, $4)
	ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := db_ps.pool.Exec(ctx, sql_query, p.UserID, p.FullName, p.AvatarURL, ts); err != nil {
		return models.UserProfile{}, fmt.Errorf("%s: %w", op, classify(err))
	}

	return db_ps.GetProfile(ctx, p.UserID)
}

func (db_ps *ProfileStorage) UpdateProfile(ctx context.Context, p models.UserProfile) (models.UserProfile, error) {
	op := "internal/storage/profiles.go UpdateProfile"

	sql_query := `
	UPDATE user_profiles SET full_name = $2, avatar_url = $3, updated_at = $4
	WHERE user_id = $1
	RETURNING ` + profileColumns

	updated, err := scanProfile(db_ps.pool.QueryRow(ctx, sql_query, p.UserID, p.FullName, p.AvatarURL, now()))
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return updated, nil
}
