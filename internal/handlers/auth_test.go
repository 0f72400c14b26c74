package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/quietmind/backend/internal/models"
	"github.com/quietmind/backend/internal/service"
)

// mockAuthService is a mock implementation of AuthService for testing
type mockAuthService struct {
	signupFunc func(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error)
	loginFunc  func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	forgotFunc func(ctx context.Context, email string) (*models.ForgotPasswordResponse, error)
	resetFunc  func(ctx context.Context, req *models.ResetPasswordRequest) error
}

func (m *mockAuthService) Signup(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
	return m.signupFunc(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	return m.loginFunc(ctx, req)
}

func (m *mockAuthService) ForgotPassword(ctx context.Context, email string) (*models.ForgotPasswordResponse, error) {
	return m.forgotFunc(ctx, email)
}

func (m *mockAuthService) ResetPassword(ctx context.Context, req *models.ResetPasswordRequest) error {
	return m.resetFunc(ctx, req)
}

func setupAuthRouter(svc service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(svc)
	router.POST("/auth/signup", handler.Signup)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/forgot-password", handler.ForgotPassword)
	router.POST("/auth/reset-password", handler.ResetPassword)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestSignupCreated(t *testing.T) {
	svc := &mockAuthService{
		signupFunc: func(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
			return &models.AuthResponse{
				User:  models.PublicUser{ID: 1, Email: req.Email},
				Token: "signed-token",
			}, nil
		},
	}
	router := setupAuthRouter(svc)

	w := postJSON(router, "/auth/signup", `{"email":"a@example.com","password":"hunter22"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusCreated, w.Body.String())
	}

	var resp models.AuthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if resp.Token != "signed-token" || resp.User.Email != "a@example.com" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestSignupValidation(t *testing.T) {
	svc := &mockAuthService{
		signupFunc: func(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
			t.Fatal("service should not be called for invalid input")
			return nil, nil
		},
	}
	router := setupAuthRouter(svc)

	tests := []struct {
		name       string
		body       string
		wantFields int
	}{
		{name: "missing both", body: `{}`, wantFields: 2},
		{name: "bad email", body: `{"email":"not-an-email","password":"hunter22"}`, wantFields: 1},
		{name: "short password", body: `{"email":"a@example.com","password":"abc"}`, wantFields: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/auth/signup", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusBadRequest)
			}

			var problem struct {
				Type   string `json:"type"`
				Errors []struct {
					Field string `json:"field"`
				} `json:"errors"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
				t.Fatalf("failed to parse problem body: %v", err)
			}
			if problem.Type != "urn:quietmind:error:validation" {
				t.Errorf("type = %q, want validation problem", problem.Type)
			}
			if len(problem.Errors) != tt.wantFields {
				t.Errorf("len(errors) = %d, want %d", len(problem.Errors), tt.wantFields)
			}
		})
	}
}

func TestSignupEmailTaken(t *testing.T) {
	svc := &mockAuthService{
		signupFunc: func(ctx context.Context, req *models.SignupRequest) (*models.AuthResponse, error) {
			return nil, service.ErrEmailTaken
		},
	}
	router := setupAuthRouter(svc)

	w := postJSON(router, "/auth/signup", `{"email":"a@example.com","password":"hunter22"}`)

	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	if !strings.Contains(w.Body.String(), "Email already in use") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc := &mockAuthService{
		loginFunc: func(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	router := setupAuthRouter(svc)

	w := postJSON(router, "/auth/login", `{"email":"a@example.com","password":"wrong"}`)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestForgotPasswordAlwaysOK(t *testing.T) {
	svc := &mockAuthService{
		forgotFunc: func(ctx context.Context, email string) (*models.ForgotPasswordResponse, error) {
			return &models.ForgotPasswordResponse{OK: true}, nil
		},
	}
	router := setupAuthRouter(svc)

	w := postJSON(router, "/auth/forgot-password", `{"email":"nobody@example.com"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"ok":true`) {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc := &mockAuthService{
		resetFunc: func(ctx context.Context, req *models.ResetPasswordRequest) error {
			return service.ErrInvalidResetToken
		},
	}
	router := setupAuthRouter(svc)

	w := postJSON(router, "/auth/reset-password", `{"token":"stale","password":"new-password"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestResetPasswordSuccess(t *testing.T) {
	var gotToken string
	svc := &mockAuthService{
		resetFunc: func(ctx context.Context, req *models.ResetPasswordRequest) error {
			gotToken = req.Token
			return nil
		},
	}
	router := setupAuthRouter(svc)

	w := postJSON(router, "/auth/reset-password", `{"token":"fresh","password":"new-password"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}
	if gotToken != "fresh" {
		t.Errorf("token passed to service = %q, want fresh", gotToken)
	}
}
