package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/quietmind/backend/internal/models"
)

// uniqueViolation is the Postgres error code for unique-constraint failures
const uniqueViolation = "23505"

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password)
		VALUES ($1, $2)
		RETURNING id, email, created_at`

	var user models.User
	err := r.db.QueryRowContext(ctx, query, email, hashedPassword).
		Scan(&user.ID, &user.Email, &user.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user.Password = hashedPassword
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT id, email, password, reset_token_hash, reset_token_expiry, created_at
		FROM users
		WHERE id = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, password, reset_token_hash, reset_token_expiry, created_at
		FROM users
		WHERE email = $1`

	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error {
	query := `
		UPDATE users
		SET reset_token_hash = $2, reset_token_expiry = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, tokenHash, expiry)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	query := `
		SELECT id, email, password, reset_token_hash, reset_token_expiry, created_at
		FROM users
		WHERE reset_token_hash = $1 AND reset_token_expiry > $2`

	return r.scanUser(r.db.QueryRowContext(ctx, query, tokenHash, now))
}

func (r *userRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	query := `
		UPDATE users
		SET password = $2, reset_token_hash = NULL, reset_token_expiry = NULL
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, userID, hashedPassword)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if rows, err := result.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Password,
		&user.ResetTokenHash,
		&user.ResetTokenExpiry,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &user, nil
}
