package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quietmind/backend/internal/auth"
	"github.com/quietmind/backend/internal/logger"
	"github.com/quietmind/backend/internal/models"
	"github.com/quietmind/backend/internal/repository"
)

// Typed auth failures, matched by handlers to pick a status code.
var (
	// ErrEmailTaken indicates the signup email is already registered
	ErrEmailTaken = errors.New("email already in use")
	// ErrInvalidCredentials covers unknown email and wrong password alike
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidResetToken covers unknown, already-used and expired tokens
	ErrInvalidResetToken = errors.New("invalid or expired token")
)

type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.Tokens
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, tokens *auth.Tokens) AuthService {
	return &authService{userRepo: userRepo, tokens: tokens}
}

func (s *authService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Email, hashed)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &models.AuthResponse{User: user.Public(), Token: token}, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &models.AuthResponse{User: user.Public(), Token: token}, nil
}

// ForgotPassword stores a reset-token hash for the account. An unknown email
// still reports success so the endpoint cannot be used to enumerate accounts.
func (s *authService) ForgotPassword(ctx context.Context, email string) (*models.ForgotPasswordResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return &models.ForgotPasswordResponse{OK: true}, nil
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	raw, hash, err := auth.NewResetToken()
	if err != nil {
		return nil, err
	}

	expiry := time.Now().Add(auth.ResetTokenTTL)
	if err := s.userRepo.SetResetToken(ctx, user.ID, hash, expiry); err != nil {
		return nil, fmt.Errorf("failed to store reset token: %w", err)
	}

	logger.Ctx(ctx).Info("password reset token issued", logger.Int64("user_id", user.ID))

	// The raw token is returned to the caller until an email transport
	// exists; production delivery should move it out of the response.
	return &models.ForgotPasswordResponse{
		OK:         true,
		ResetToken: raw,
		ExpiresAt:  expiry.Format(time.RFC3339),
	}, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	hash := auth.HashResetToken(req.Token)

	user, err := s.userRepo.GetByResetTokenHash(ctx, hash, time.Now())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidResetToken
		}
		return fmt.Errorf("failed to look up reset token: %w", err)
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashed); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	logger.Ctx(ctx).Info("password reset completed", logger.Int64("user_id", user.ID))
	return nil
}
