package service

import (
	"context"
	"fmt"
	"time"

	"github.com/quietmind/backend/internal/models"
	"github.com/quietmind/backend/internal/repository"
)

type moodService struct {
	moodRepo repository.MoodRepository
}

// NewMoodService creates a new mood service
func NewMoodService(moodRepo repository.MoodRepository) MoodService {
	return &moodService{moodRepo: moodRepo}
}

func (s *moodService) CreateMood(ctx context.Context, userID int64, req *models.CreateMoodRequest) (*models.Mood, error) {
	mood := &models.Mood{
		UserID:      userID,
		Feeling:     req.Feeling,
		Description: req.Description,
		Tip:         req.Tip,
	}

	created, err := s.moodRepo.Create(ctx, mood)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood: %w", err)
	}
	return created, nil
}

func (s *moodService) GetUserMoods(ctx context.Context, userID int64) ([]models.Mood, error) {
	moods, err := s.moodRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch moods: %w", err)
	}
	return moods, nil
}

func (s *moodService) TodayCheckin(ctx context.Context, userID int64) (*models.CheckinStatus, error) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	tomorrow := today.AddDate(0, 0, 1)

	exists, err := s.moodRepo.ExistsInRange(ctx, userID, today, tomorrow)
	if err != nil {
		return nil, fmt.Errorf("failed to check today's check-in: %w", err)
	}
	return &models.CheckinStatus{HasCheckedIn: exists}, nil
}

func (s *moodService) WeeklySummary(ctx context.Context, userID int64, weekStart string) (*models.WeeklySummary, error) {
	window, err := WeekWindowFor(weekStart, time.Now())
	if err != nil {
		return nil, err
	}

	moods, err := s.moodRepo.GetByUserIDAndRange(ctx, userID, window.Start, window.End)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch moods for week: %w", err)
	}

	return &models.WeeklySummary{
		Range:     window.JSON(),
		Total:     len(moods),
		Breakdown: AggregateFeelings(moods),
	}, nil
}
