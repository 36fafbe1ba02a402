package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"telos/internal/models"
)

type ProblemStorage struct {
	pool *pgxpool.Pool
}

func NewProblemStorage(pool *pgxpool.Pool) *ProblemStorage {
	return &ProblemStorage{
		pool: pool,
	}
}

const problemColumns = `id, user_id, priority, description, impact, actions, status, created_at, updated_at`

func scanProblem(row rowScanner) (models.Problem, error) {
	var p models.Problem
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Priority,
		&p.Description,
		&p.Impact,
		&p.Actions,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (db_ps *ProblemStorage) List(ctx context.Context, userID uuid.UUID) ([]models.Problem, error) {
	op := "internal/storage/problems.go List"

	sql_query := `SELECT ` + problemColumns + ` FROM problems
	WHERE user_id = $1
	ORDER BY created_at DESC`

	rows, err := db_ps.pool.Query(ctx, sql_query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	problems := []models.Problem{}
	for rows.Next() {
		p, err := scanProblem(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		problems = append(problems, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return problems, nil
}

func (db_ps *ProblemStorage) Get(ctx context.Context, userID, id uuid.UUID) (models.Problem, error) {
	op := "internal/storage/problems.go Get"

	sql_query := `SELECT ` + problemColumns + ` FROM problems
	WHERE user_id = $1 AND id = $2`

	p, err := scanProblem(db_ps.pool.QueryRow(ctx, sql_query, userID, id))
	if err != nil {
		return models.Problem{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return p, nil
}

// Create assigns the id and timestamps before inserting.
func (db_ps *ProblemStorage) Create(ctx context.Context, p *models.Problem) error {
	op := "internal/storage/problems.go Create"

	p.ID = uuid.New()
	p.CreatedAt = now()
	p.UpdatedAt = p.CreatedAt

	sql_query := `
	INSERT INTO problems
	(` + problemColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	_, err := db_ps.pool.Exec(ctx, sql_query,
		p.ID,
		p.UserID,
		p.Priority,
		p.Description,
		p.Impact,
		p.Actions,
		p.Status,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

// Update rewrites the editable fields and refreshes p from the stored row.
func (db_ps *ProblemStorage) Update(ctx context.Context, p *models.Problem) error {
	op := "internal/storage/problems.go Update"

	sql_query := `
	UPDATE problems SET
	priority = $3, description = $4, impact = $5, actions = $6, status = $7, updated_at = $8
	WHERE user_id = $1 AND id = $2
	RETURNING ` + problemColumns

	updated, err := scanProblem(db_ps.pool.QueryRow(ctx, sql_query,
		p.UserID,
		p.ID,
		p.Priority,
		p.Description,
		p.Impact,
		p.Actions,
		p.Status,
		now(),
	))
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}

	*p = updated
	return nil
}

func (db_ps *ProblemStorage) Delete(ctx context.Context, userID, id uuid.UUID) error {
	op := "internal/storage/problems.go Delete"

	tag, err := db_ps.pool.Exec(ctx, `DELETE FROM problems WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
