package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/quietmind/backend/internal/models"
)

type moodRepository struct {
	db *sql.DB
}

// NewMoodRepository creates a new mood repository
func NewMoodRepository(db *sql.DB) MoodRepository {
	return &moodRepository{db: db}
}

func (r *moodRepository) Create(ctx context.Context, mood *models.Mood) (*models.Mood, error) {
	query := `
		INSERT INTO moods (user_id, feeling, description, tip)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, feeling, description, tip, created_at`

	var created models.Mood
	err := r.db.QueryRowContext(ctx, query, mood.UserID, mood.Feeling, mood.Description, mood.Tip).
		Scan(&created.ID, &created.UserID, &created.Feeling, &created.Description, &created.Tip, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood: %w", err)
	}

	return &created, nil
}

func (r *moodRepository) GetByUserID(ctx context.Context, userID int64) ([]models.Mood, error) {
	query := `
		SELECT id, user_id, feeling, description, tip, created_at
		FROM moods
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods: %w", err)
	}
	defer rows.Close()

	return scanMoods(rows)
}

func (r *moodRepository) GetByUserIDAndRange(ctx context.Context, userID int64, start, end time.Time) ([]models.Mood, error) {
	query := `
		SELECT id, user_id, feeling, description, tip, created_at
		FROM moods
		WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC`

	rows, err := r.db.QueryContext(ctx, query, userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query moods in range: %w", err)
	}
	defer rows.Close()

	return scanMoods(rows)
}

func (r *moodRepository) ExistsInRange(ctx context.Context, userID int64, start, end time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM moods
			WHERE user_id = $1 AND created_at >= $2 AND created_at < $3
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID, start, end).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check mood existence: %w", err)
	}
	return exists, nil
}

func scanMoods(rows *sql.Rows) ([]models.Mood, error) {
	moods := make([]models.Mood, 0)
	for rows.Next() {
		var m models.Mood
		if err := rows.Scan(&m.ID, &m.UserID, &m.Feeling, &m.Description, &m.Tip, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mood: %w", err)
		}
		moods = append(moods, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate moods: %w", err)
	}
	return moods, nil
}
