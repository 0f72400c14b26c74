package service

import (
	"context"

	"github.com/quietmind/backend/internal/models"
)

// AuthService defines the interface for account and credential business logic
type AuthService interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	ForgotPassword(ctx context.Context, email string) (*models.ForgotPasswordResponse, error)
	ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error
}

// MoodService defines the interface for check-in business logic
type MoodService interface {
	CreateMood(ctx context.Context, userID int64, req *models.CreateMoodRequest) (*models.Mood, error)
	GetUserMoods(ctx context.Context, userID int64) ([]models.Mood, error)
	TodayCheckin(ctx context.Context, userID int64) (*models.CheckinStatus, error)
	WeeklySummary(ctx context.Context, userID int64, weekStart string) (*models.WeeklySummary, error)
}

// InsightService defines the interface for the weekly reflection pipeline
type InsightService interface {
	WeeklyInsight(ctx context.Context, userID int64, weekStart string) (*models.WeeklyInsight, error)
}

// ReflectionGenerator produces a reflection from a rendered prompt. The
// orchestration only depends on this single method so tests can substitute a
// deterministic stub for the live completions client.
type ReflectionGenerator interface {
	Generate(ctx context.Context, prompt string) (models.Reflection, error)
}
