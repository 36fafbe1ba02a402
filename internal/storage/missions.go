package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"telos/internal/models"
)

type MissionStorage struct {
	pool *pgxpool.Pool
}

func NewMissionStorage(pool *pgxpool.Pool) *MissionStorage {
	return &MissionStorage{
		pool: pool,
	}
}

const missionColumns = `id, user_id, statement, related_problems, category, created_at, updated_at`

func scanMission(row rowScanner) (models.Mission, error) {
	var m models.Mission
	err := row.Scan(
		&m.ID,
		&m.UserID,
		&m.Statement,
		&m.RelatedProblems,
		&m.Category,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

func (db_ms *MissionStorage) List(ctx context.Context, userID uuid.UUID) ([]models.Mission, error) {
	op := "internal/storage/missions.go List"

	sql_query := `SELECT ` + missionColumns + ` FROM missions
	WHERE user_id = $1
	ORDER BY created_at DESC`

	rows, err := db_ms.pool.Query(ctx, sql_query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	missions := []models.Mission{}
	for rows.Next() {
		m, err := scanMission(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		missions = append(missions, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return missions, nil
}

func (db_ms *MissionStorage) Get(ctx context.Context, userID, id uuid.UUID) (models.Mission, error) {
	op := "internal/storage/missions.go Get"

	sql_query := `SELECT ` + missionColumns + ` FROM missions
	WHERE user_id = $1 AND id = $2`

	m, err := scanMission(db_ms.pool.QueryRow(ctx, sql_query, userID, id))
	if err != nil {
		return models.Mission{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return m, nil
}

func (db_ms *MissionStorage) Create(ctx context.Context, m *models.Mission) error {
	op := "internal/storage/missions.go Create"

	m.ID = uuid.New()
	m.CreatedAt = now()
	m.UpdatedAt = m.CreatedAt

	sql_query := `
	INSERT INTO missions
	(` + missionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	_, err := db_ms.pool.Exec(ctx, sql_query,
		m.ID,
		m.UserID,
		m.Statement,
		m.RelatedProblems,
		m.Category,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

func (db_ms *MissionStorage) Update(ctx context.Context, m *models.Mission) error {
	op := "internal/storage/missions.go Update"

	sql_query := `
	UPDATE missions SET
	statement = $3, related_problems = $4, category = $5, updated_at = $6
	WHERE user_id = $1 AND id = $2
	RETURNING ` + missionColumns

	updated, err := scanMission(db_ms.pool.QueryRow(ctx, sql_query,
		m.UserID,
		m.ID,
		m.Statement,
		m.RelatedProblems,
		m.Category,
		now(),
	))
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	*m = updated
	return nil
}

func (db_ms *MissionStorage) Delete(ctx context.Context, userID, id uuid.UUID) error {
	op := "internal/storage/missions.go Delete"

	tag, err := db_ms.pool.Exec(ctx, `DELETE FROM missions WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
