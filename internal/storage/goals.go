package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"telos/internal/models"
)

type GoalStorage struct {
	pool *pgxpool.Pool
}

func NewGoalStorage(pool *pgxpool.Pool) *GoalStorage {
	return &GoalStorage{
		pool: pool,
	}
}

const goalColumns = `id, user_id, priority, description, timeline, success_criteria, status, progress, created_at, updated_at`

func scanGoal(row rowScanner) (models.Goal, error) {
	var g models.Goal
	err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Priority,
		&g.Description,
		&g.Timeline,
		&g.SuccessCriteria,
		&g.Status,
		&g.Progress,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	return g, err
}

func (db_gs *GoalStorage) List(ctx context.Context, userID uuid.UUID) ([]models.Goal, error) {
	op := "internal/storage/goals.go List"

	sql_query := `SELECT ` + goalColumns + ` FROM goals
	WHERE user_id = $1
	ORDER BY created_at DESC`

	rows, err := db_gs.pool.Query(ctx, sql_query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	goals := []models.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		goals = append(goals, g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return goals, nil
}

func (db_gs *GoalStorage) Get(ctx context.Context, userID, id uuid.UUID) (models.Goal, error) {
	op := "internal/storage/goals.go Get"

	sql_query := `SELECT ` + goalColumns + ` FROM goals
	WHERE user_id = $1 AND id = $2`

	g, err := scanGoal(db_gs.pool.QueryRow(ctx, sql_query, userID, id))
	if err != nil {
		return models.Goal{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return g, nil
}

func (db_gs *GoalStorage) Create(ctx context.Context, g *models.Goal) error {
	op := "internal/storage/goals.go Create"

	g.ID = uuid.New()
	g.CreatedAt = now()
	g.UpdatedAt = g.CreatedAt

	sql_query := `
	INSERT INTO goals
	(` + goalColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`

	_, err := db_gs.pool.Exec(ctx, sql_query,
		g.ID,
		g.UserID,
		g.Priority,
		g.Description,
		g.Timeline,
		g.SuccessCriteria,
		g.Status,
		g.Progress,
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

func (db_gs *GoalStorage) Update(ctx context.Context, g *models.Goal) error {
	op := "internal/storage/goals.go Update"

	sql_query := `
	UPDATE goals SET
	priority = $3, description = $4, timeline = $5, success_criteria = $6,
	status = $7, progress = $8, updated_at = $9
	WHERE user_id = $1 AND id = $2
	RETURNING ` + goalColumns

	updated, err := scanGoal(db_gs.pool.QueryRow(ctx, sql_query,
		g.UserID,
		g.ID,
		g.Priority,
		g.Description,
		g.Timeline,
		g.SuccessCriteria,
		g.Status,
		g.Progress,
		now(),
	))
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	*g = updated
	return nil
}

func (db_gs *GoalStorage) Delete(ctx context.Context, userID, id uuid.UUID) error {
	op := "internal/storage/goals.go Delete"

	tag, err := db_gs.pool.Exec(ctx, `DELETE FROM goals WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
