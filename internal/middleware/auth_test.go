package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/quietmind/backend/internal/auth"
)

func setupAuthRouter(t *testing.T, tokens *auth.Tokens) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Auth(tokens))
	router.GET("/protected", func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"userId": userID})
	})
	return router
}

func TestAuthMissingToken(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	router := setupAuthRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}

	var problem map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to parse problem body: %v", err)
	}
	if problem["detail"] != "Missing authorization token" {
		t.Errorf("detail = %v, want missing-token message", problem["detail"])
	}
}

func TestAuthInvalidToken(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	router := setupAuthRouter(t, tokens)

	tests := []struct {
		name   string
		header string
	}{
		{name: "garbage token", header: "Bearer not-a-token"},
		{name: "wrong scheme", header: "Basic abc123"},
		{name: "missing token part", header: "Bearer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", tt.header)
			router.ServeHTTP(w, req)

			if w.Code != http.StatusUnauthorized {
				t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
			}

			var problem map[string]interface{}
			if err := json.Unmarshal(w.Body.Bytes(), &problem); err != nil {
				t.Fatalf("failed to parse problem body: %v", err)
			}
			if problem["detail"] != "Invalid or expired token" {
				t.Errorf("detail = %v, want invalid-token message", problem["detail"])
			}
		})
	}
}

func TestAuthExpiredToken(t *testing.T) {
	issuer := auth.NewTokens("secret", -time.Minute)
	token, err := issuer.Issue(42)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	router := setupAuthRouter(t, auth.NewTokens("secret", time.Hour))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

func TestAuthValidToken(t *testing.T) {
	tokens := auth.NewTokens("secret", time.Hour)
	token, err := tokens.Issue(42)
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	router := setupAuthRouter(t, tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d, body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse body: %v", err)
	}
	if body["userId"] != float64(42) {
		t.Errorf("userId = %v, want 42", body["userId"])
	}
}

func TestRequestIDEchoedAndGenerated(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestID())
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	// Incoming header is preserved
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	router.ServeHTTP(w, req)
	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Errorf("X-Request-ID = %q, want req-123", got)
	}

	// Missing header gets a generated id
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	router.ServeHTTP(w, req)
	if w.Header().Get("X-Request-ID") == "" {
		t.Error("expected a generated X-Request-ID")
	}
}
