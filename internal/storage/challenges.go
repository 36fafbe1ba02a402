package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"telos/internal/models"
)

type ChallengeStorage struct {
	pool *pgxpool.Pool
}

func NewChallengeStorage(pool *pgxpool.Pool) *ChallengeStorage {
	return &ChallengeStorage{
		pool: pool,
	}
}

const challengeColumns = `id, user_id, description, impact, solutions, status, category, created_at, updated_at`

func scanChallenge(row rowScanner) (models.Challenge, error) {
	var c models.Challenge
	err := row.Scan(
		&c.ID,
		&c.UserID,
		&c.Description,
		&c.Impact,
		&c.Solutions,
		&c.Status,
		&c.Category,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	return c, err
}

func (db_cs *ChallengeStorage) List(ctx context.Context, userID uuid.UUID) ([]models.Challenge, error) {
	op := "internal/storage/challenges.go List"

	sql_query := `SELECT ` + challengeColumns + ` FROM challenges
	WHERE user_id = $1
	ORDER BY created_at DESC`

	rows, err := db_cs.pool.Query(ctx, sql_query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	challenges := []models.Challenge{}
	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		challenges = append(challenges, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return challenges, nil
}

func (db_cs *ChallengeStorage) Get(ctx context.Context, userID, id uuid.UUID) (models.Challenge, error) {
	op := "internal/storage/challenges.go Get"

	sql_query := `SELECT ` + challengeColumns + ` FROM challenges
	WHERE user_id = $1 AND id = $2`

	c, err := scanChallenge(db_cs.pool.QueryRow(ctx, sql_query, userID, id))
	if err != nil {
		return models.Challenge{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return c, nil
}

func (db_cs *ChallengeStorage) Create(ctx context.Context, c *models.Challenge) error {
	op := "internal/storage/challenges.go Create"

	c.ID = uuid.New()
	c.CreatedAt = now()
	c.UpdatedAt = c.CreatedAt

	sql_query := `
	INSERT INTO challenges
	(` + challengeColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := db_cs.pool.Exec(ctx, sql_query,
		c.ID,
		c.UserID,
		c.Description,
		c.Impact,
		c.Solutions,
		c.Status,
		c.Category,
		c.CreatedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

func (db_cs *ChallengeStorage) Update(ctx context.Context, c *models.Challenge) error {
	op := "internal/storage/challenges.go Update"

	sql_query := `
	UPDATE challenges SET
	description = $3, impact = $4, solutions = $5, status = $6, category = $7, updated_at = $8
	WHERE user_id = $1 AND id = $2
	RETURNING ` + challengeColumns

	updated, err := scanChallenge(db_cs.pool.QueryRow(ctx, sql_query,
		c.UserID,
		c.ID,
		c.Description,
		c.Impact,
		c.Solutions,
		c.Status,
		c.Category,
		now(),
	))
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	*c = updated
	return nil
}

func (db_cs *ChallengeStorage) Delete(ctx context.Context, userID, id uuid.UUID) error {
	op := "internal/storage/challenges.go Delete"

	tag, err := db_cs.pool.Exec(ctx, `DELETE FROM challenges WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
