package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"telos/internal/models"
)

type ActivityStorage struct {
	pool *pgxpool.Pool
}

func NewActivityStorage(pool *pgxpool.Pool) *ActivityStorage {
	return &ActivityStorage{
		pool: pool,
	}
}

func (db_as *ActivityStorage) Append(ctx context.Context, e *models.ActivityLogEntry) error {
	op := "internal/storage/activity.go Append"

	e.ID = uuid.New()
	e.CreatedAt = now()

	sql_query := `
	INSERT INTO activity_log
	(id, user_id, entity_type, entity_id, action, summary, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err := db_as.pool.Exec(ctx, sql_query,
		e.ID,
		e.UserID,
		string(e.EntityType),
		e.EntityID,
		e.Action,
		e.Summary,
		e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (db_as *ActivityStorage) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]models.ActivityLogEntry, error) {
	op := "internal/storage/activity.go ListRecent"

	sql_query := `
	SELECT id, user_id, entity_type, entity_id, action, summary, created_at
	FROM activity_log
	WHERE user_id = $1
	ORDER BY created_at DESC
	LIMIT $2;
	`

	rows, err := db_as.pool.Query(ctx, sql_query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	entries := []models.ActivityLogEntry{}
	for rows.Next() {
		var (
			e          models.ActivityLogEntry
			entityType string
		)
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&entityType,
			&e.EntityID,
			&e.Action,
			&e.Summary,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		e.EntityType = models.EntityType(entityType)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return entries, nil
}
