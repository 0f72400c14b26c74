package apierror

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ContentTypeProblemJSON is the MIME type for RFC 9457 Problem Details.
const ContentTypeProblemJSON = "application/problem+json"

// WriteProblem writes a ProblemDetails response to the gin context.
// It sets the correct Content-Type header and, if RetryAfter is set,
// also sets the Retry-After header.
func WriteProblem(c *gin.Context, problem *ProblemDetails) {
	c.Header("Content-Type", ContentTypeProblemJSON)

	if problem.RetryAfter != nil {
		c.Header("Retry-After", strconv.Itoa(*problem.RetryAfter))
	}

	c.JSON(problem.Status, problem)
}

// GetRequestID extracts the request ID from the gin context.
// Returns empty string if not found.
func GetRequestID(c *gin.Context) string {
	if requestID, exists := c.Get("request_id"); exists {
		if id, ok := requestID.(string); ok {
			return id
		}
	}
	return c.GetHeader("X-Request-ID")
}

// NewValidationError creates a 400 Bad Request response for validation failures.
func NewValidationError(requestID string, errors []FieldError) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeValidation,
		Title:       TitleValidation,
		Status:      http.StatusBadRequest,
		Detail:      "One or more fields failed validation",
		RequestID:   requestID,
		UserMessage: "Please check your input and try again",
		Errors:      errors,
	}
}

// NewBadRequestError creates a 400 Bad Request response for malformed requests.
func NewBadRequestError(requestID, detail, userMessage string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeBadRequest,
		Title:       TitleBadRequest,
		Status:      http.StatusBadRequest,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: userMessage,
	}
}

// NewUnauthorizedError creates a 401 Unauthorized response. The detail is
// limited to whether a token was present at all, never why it failed.
func NewUnauthorizedError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUnauthorized,
		Title:       TitleUnauthorized,
		Status:      http.StatusUnauthorized,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "Please sign in to continue",
	}
}

// NewForbiddenError creates a 403 Forbidden response.
func NewForbiddenError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeForbidden,
		Title:       TitleForbidden,
		Status:      http.StatusForbidden,
		Detail:      "You do not have permission to access this resource",
		RequestID:   requestID,
		UserMessage: "You don't have permission to perform this action",
	}
}

// NewConflictError creates a 409 Conflict response.
func NewConflictError(requestID, detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeConflict,
		Title:       TitleConflict,
		Status:      http.StatusConflict,
		Detail:      detail,
		RequestID:   requestID,
		UserMessage: "This action conflicts with existing data",
	}
}

// NewRateLimitError creates a 429 Too Many Requests response.
// retryAfter specifies seconds until the client should retry.
func NewRateLimitError(requestID string, retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeRateLimit,
		Title:       TitleRateLimit,
		Status:      http.StatusTooManyRequests,
		Detail:      "Rate limit exceeded",
		RequestID:   requestID,
		UserMessage: "Too many requests. Please wait before trying again.",
		RetryAfter:  &retryAfter,
	}
}

// NewUpstreamError creates a 500 response for reflection-provider failures.
// The provider's raw error body is passed through in detail so operators can
// diagnose the failure without digging through logs.
func NewUpstreamError(requestID, upstreamBody string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeUpstream,
		Title:       TitleUpstream,
		Status:      http.StatusInternalServerError,
		Detail:      upstreamBody,
		RequestID:   requestID,
		UserMessage: "We couldn't generate your reflection right now. Please try again later.",
	}
}

// NewInternalError creates a 500 Internal Server Error response.
// IMPORTANT: This intentionally hides internal error details from the client.
// The actual error should be logged server-side.
func NewInternalError(requestID string) *ProblemDetails {
	return &ProblemDetails{
		Type:        TypeInternal,
		Title:       TitleInternal,
		Status:      http.StatusInternalServerError,
		Detail:      "An unexpected error occurred",
		RequestID:   requestID,
		UserMessage: "Something went wrong. Please try again later.",
	}
}
