package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/quietmind/backend/internal/auth"
	"github.com/quietmind/backend/internal/models"
	"github.com/quietmind/backend/internal/repository"
)

// mockUserRepository is a mock implementation of UserRepository for testing
type mockUserRepository struct {
	users  map[string]*models.User // email -> user
	nextID int64
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[string]*models.User), nextID: 1}
}

func (m *mockUserRepository) Create(ctx context.Context, email, hashedPassword string) (*models.User, error) {
	if _, exists := m.users[email]; exists {
		return nil, repository.ErrDuplicateEmail
	}
	user := &models.User{
		ID:        m.nextID,
		Email:     email,
		Password:  hashedPassword,
		CreatedAt: time.Now(),
	}
	m.nextID++
	m.users[email] = user
	return user, nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if u, ok := m.users[email]; ok {
		return u, nil
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) SetResetToken(ctx context.Context, userID int64, tokenHash string, expiry time.Time) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.ResetTokenHash = &tokenHash
			u.ResetTokenExpiry = &expiry
			return nil
		}
	}
	return repository.ErrNotFound
}

func (m *mockUserRepository) GetByResetTokenHash(ctx context.Context, tokenHash string, now time.Time) (*models.User, error) {
	for _, u := range m.users {
		if u.ResetTokenHash != nil && *u.ResetTokenHash == tokenHash &&
			u.ResetTokenExpiry != nil && u.ResetTokenExpiry.After(now) {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *mockUserRepository) UpdatePassword(ctx context.Context, userID int64, hashedPassword string) error {
	for _, u := range m.users {
		if u.ID == userID {
			u.Password = hashedPassword
			u.ResetTokenHash = nil
			u.ResetTokenExpiry = nil
			return nil
		}
	}
	return repository.ErrNotFound
}

func newTestAuthService() (AuthService, *mockUserRepository) {
	repo := newMockUserRepository()
	tokens := auth.NewTokens("test-secret", time.Hour)
	return NewAuthService(repo, tokens), repo
}

func TestSignupAndLogin(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	signup, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}
	if signup.Token == "" {
		t.Error("expected a token from signup")
	}
	if signup.User.Email != "a@example.com" {
		t.Errorf("unexpected user email: %q", signup.User.Email)
	}

	login, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "hunter22"})
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if login.User.ID != signup.User.ID {
		t.Error("expected login to return the signed-up user")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "pw1"}); err != nil {
		t.Fatalf("first Signup returned error: %v", err)
	}

	_, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "pw2"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("error = %v, want ErrEmailTaken", err)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "right"}); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	_, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "wrong"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Login(context.Background(), &models.LoginRequest{Email: "nobody@example.com", Password: "pw"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("error = %v, want ErrInvalidCredentials", err)
	}
}

func TestForgotPasswordUnknownEmailStillOK(t *testing.T) {
	svc, _ := newTestAuthService()

	resp, err := svc.ForgotPassword(context.Background(), "nobody@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	if !resp.OK {
		t.Error("expected ok=true for unknown email")
	}
	if resp.ResetToken != "" {
		t.Error("expected no reset token for unknown email")
	}
}

func TestPasswordResetFlow(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "old-password"}); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	forgot, err := svc.ForgotPassword(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}
	if forgot.ResetToken == "" {
		t.Fatal("expected a reset token for a known email")
	}

	err = svc.ResetPassword(ctx, &models.ResetPasswordRequest{Token: forgot.ResetToken, Password: "new-password"})
	if err != nil {
		t.Fatalf("ResetPassword returned error: %v", err)
	}

	// Old password no longer works, new one does
	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "old-password"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password: error = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Login(ctx, &models.LoginRequest{Email: "a@example.com", Password: "new-password"}); err != nil {
		t.Errorf("new password login failed: %v", err)
	}

	// The token is single-use
	err = svc.ResetPassword(ctx, &models.ResetPasswordRequest{Token: forgot.ResetToken, Password: "another"})
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("reused token: error = %v, want ErrInvalidResetToken", err)
	}

	user := repo.users["a@example.com"]
	if user.ResetTokenHash != nil {
		t.Error("expected reset token hash cleared after use")
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	svc, repo := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Signup(ctx, &models.SignupRequest{Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("Signup returned error: %v", err)
	}

	forgot, err := svc.ForgotPassword(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("ForgotPassword returned error: %v", err)
	}

	// Force the stored token to be expired
	expired := time.Now().Add(-time.Minute)
	repo.users["a@example.com"].ResetTokenExpiry = &expired

	err = svc.ResetPassword(ctx, &models.ResetPasswordRequest{Token: forgot.ResetToken, Password: "new"})
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("error = %v, want ErrInvalidResetToken", err)
	}
}
