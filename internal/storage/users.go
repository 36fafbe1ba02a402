package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"telos/internal/models"
)

type UserStorage struct {
	pool *pgxpool.Pool
}

func NewUserStorage(pool *pgxpool.Pool) *UserStorage {
	return &UserStorage{
		pool: pool,
	}
}

const userColumns = `id, email, password_hash, COALESCE(google_subject, ''), created_at, updated_at`

func scanUser(row rowScanner) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.GoogleSubject,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// CreateUser lower-cases the email; a taken email yields ErrDuplicate.
func (db_us *UserStorage) CreateUser(ctx context.Context, u *models.User) error {
	op := "internal/storage/users.go CreateUser"

	u.ID = uuid.New()
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt = now()
	u.UpdatedAt = u.CreatedAt

	sql_query := `
	INSERT INTO users
	(id, email, password_hash, google_subject, created_at, updated_at)
	VALUES ($1, $2, $3, NULLIF($4, ''), $5, $6);
	`

	_, err := db_us.pool.Exec(ctx, sql_query,
		u.ID,
		u.Email,
		u.PasswordHash,
		u.GoogleSubject,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	return nil
}

func (db_us *UserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	op := "internal/storage/users.go GetUserByID"

	u, err := scanUser(db_us.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return u, nil
}

func (db_us *UserStorage) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	op := "internal/storage/users.go GetUserByEmail"

	u, err := scanUser(db_us.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		strings.ToLower(strings.TrimSpace(email))))
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return u, nil
}

func (db_us *UserStorage) GetUserByGoogleSubject(ctx context.Context, subject string) (models.User, error) {
	op := "internal/storage/users.go GetUserByGoogleSubject"

	u, err := scanUser(db_us.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE google_subject = $1`, subject))
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, classify(err))
	}
	return u, nil
}

func (db_us *UserStorage) LinkGoogleSubject(ctx context.Context, id uuid.UUID, subject string) error {
	op := "internal/storage/users.go LinkGoogleSubject"

	tag, err := db_us.pool.Exec(ctx,
		`UPDATE users SET google_subject = $2, updated_at = $3 WHERE id = $1`,
		id, subject, now())
	if err != nil {
		return fmt.Errorf("%s: %w", op, classify(err))
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	return nil
}
