package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quietmind/backend/internal/apierror"
	"github.com/quietmind/backend/internal/logger"
	"github.com/quietmind/backend/internal/models"
	"github.com/quietmind/backend/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

func validateCredentials(email, password string) []apierror.FieldError {
	var fieldErrors []apierror.FieldError

	if strings.TrimSpace(email) == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "email",
			Message: "is required",
			Code:    "required",
		})
	} else if !strings.Contains(email, "@") {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "email",
			Message: "must be a valid email address",
			Code:    "invalid_format",
		})
	}

	if password == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "password",
			Message: "is required",
			Code:    "required",
		})
	} else if len(password) < 6 {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "password",
			Message: "must be at least 6 characters",
			Code:    "too_short",
		})
	}

	return fieldErrors
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	if fieldErrors := validateCredentials(req.Email, req.Password); len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	authResp, err := h.authService.Signup(c.Request.Context(), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)

		if errors.Is(err, service.ErrEmailTaken) {
			apierror.WriteProblem(c, apierror.NewConflictError(requestID, "Email already in use"))
			return
		}

		logger.Ctx(c.Request.Context()).Error("signup failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, authResp)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	authResp, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)

		if errors.Is(err, service.ErrInvalidCredentials) {
			apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Invalid email or password"))
			return
		}

		logger.Ctx(c.Request.Context()).Error("login failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, authResp)
}

// ForgotPassword handles POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	if strings.TrimSpace(req.Email) == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "email", Message: "is required", Code: "required"},
		}))
		return
	}

	resp, err := h.authService.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("forgot-password failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ResetPassword handles POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	var fieldErrors []apierror.FieldError
	if req.Token == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "token",
			Message: "is required",
			Code:    "required",
		})
	}
	if req.Password == "" {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "password",
			Message: "is required",
			Code:    "required",
		})
	} else if len(req.Password) < 6 {
		fieldErrors = append(fieldErrors, apierror.FieldError{
			Field:   "password",
			Message: "must be at least 6 characters",
			Code:    "too_short",
		})
	}
	if len(fieldErrors) > 0 {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, fieldErrors))
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), &req); err != nil {
		requestID := apierror.GetRequestID(c)

		if errors.Is(err, service.ErrInvalidResetToken) {
			apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
				"Invalid or expired reset token",
				"This reset link is no longer valid. Please request a new one."))
			return
		}

		logger.Ctx(c.Request.Context()).Error("reset-password failed", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
