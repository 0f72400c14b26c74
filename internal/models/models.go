package models

import "time"

// User represents a registered account.
type User struct {
	ID               int64      `json:"id"`
	Email            string     `json:"email"`
	Password         string     `json:"-"`
	ResetTokenHash   *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`
	CreatedAt        time.Time  `json:"created_at"`
}

// PublicUser is the client-facing view of a User.
type PublicUser struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Public strips credential fields from a User.
func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Email: u.Email, CreatedAt: u.CreatedAt}
}

// Mood represents a single mood check-in.
type Mood struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	Feeling     string    `json:"feeling"`
	Description *string   `json:"description,omitempty"`
	Tip         *string   `json:"tip,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateMoodRequest represents the request to submit a check-in
type CreateMoodRequest struct {
	Feeling     string  `json:"feeling"`
	Description *string `json:"description"`
	Tip         *string `json:"tip"`
}

// SignupRequest represents the signup request
type SignupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned from signup and login.
type AuthResponse struct {
	User  PublicUser `json:"user"`
	Token string     `json:"token"`
}

// ForgotPasswordRequest represents the forgot-password request
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPasswordResponse acknowledges a reset request. The raw token is
// returned directly until an email transport exists.
type ForgotPasswordResponse struct {
	OK         bool   `json:"ok"`
	ResetToken string `json:"resetToken,omitempty"`
	ExpiresAt  string `json:"expiresAt,omitempty"`
}

// ResetPasswordRequest represents the reset-password request
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// CheckinStatus reports whether the user has checked in today.
type CheckinStatus struct {
	HasCheckedIn bool `json:"hasCheckedIn"`
}
