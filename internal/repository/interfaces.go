package repository

import (
	"context"
	"errors"
	"time"

	"github.com/quietmind/backend/internal/models"
)

// Sentinel errors surfaced to the service layer, matched with errors.Is.
var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail indicates a unique-constraint violation on users.email
	ErrDuplicateEmail = errors.New("email already in use")
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(ctx context.Context, email, hashedPassword string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// SetResetToken stores the hash of a reset token with its expiry
	SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error
	// GetByResetTokenHash returns the user holding an unexpired reset token
	GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*models.User, error)
	// UpdatePassword replaces the password hash and clears any reset token
	UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error
}

// MoodRepository defines the interface for mood check-in data access
type MoodRepository interface {
	Create(ctx context.Context, mood *models.Mood) (*models.Mood, error)
	// GetByUserID returns all check-ins for a user, newest first
	GetByUserID(ctx context.Context, userID int64) ([]models.Mood, error)
	// GetByUserIDAndRange returns check-ins with start <= created_at < end,
	// oldest first
	GetByUserIDAndRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Mood, error)
	// ExistsInRange reports whether the user has any check-in in [start, end)
	ExistsInRange(ctx context.Context, userID int64, start, end time.Time) (bool, error)
}
