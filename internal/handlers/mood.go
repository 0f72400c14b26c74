package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/quietmind/backend/internal/apierror"
	"github.com/quietmind/backend/internal/logger"
	"github.com/quietmind/backend/internal/middleware"
	"github.com/quietmind/backend/internal/models"
	"github.com/quietmind/backend/internal/service"
	"github.com/quietmind/backend/pkg/insightgen"
)

type MoodHandler struct {
	moodService    service.MoodService
	insightService service.InsightService
}

// NewMoodHandler creates a new mood handler
func NewMoodHandler(moodService service.MoodService, insightService service.InsightService) *MoodHandler {
	return &MoodHandler{
		moodService:    moodService,
		insightService: insightService,
	}
}

// CreateMood handles POST /api/v1/moods
func (h *MoodHandler) CreateMood(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Missing authorization token"))
		return
	}

	var req models.CreateMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID, err.Error(), "Invalid JSON format"))
		return
	}

	if strings.TrimSpace(req.Feeling) == "" {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
			{Field: "feeling", Message: "is required", Code: "required"},
		}))
		return
	}

	mood, err := h.moodService.CreateMood(c.Request.Context(), userID, &req)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to create mood", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusCreated, mood)
}

// GetMoods handles GET /api/v1/moods
func (h *MoodHandler) GetMoods(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Missing authorization token"))
		return
	}

	moods, err := h.moodService.GetUserMoods(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to fetch moods", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, moods)
}

// GetUserMoods handles GET /api/v1/users/:id/moods
// Users may only read their own history; any other id is forbidden.
func (h *MoodHandler) GetUserMoods(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Missing authorization token"))
		return
	}

	requestedID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewBadRequestError(requestID,
			"User id must be an integer", "Invalid user id"))
		return
	}

	if requestedID != userID {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewForbiddenError(requestID))
		return
	}

	moods, err := h.moodService.GetUserMoods(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to fetch moods", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, moods)
}

// TodayCheckin handles GET /api/v1/moods/today-checkin
func (h *MoodHandler) TodayCheckin(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Missing authorization token"))
		return
	}

	status, err := h.moodService.TodayCheckin(c.Request.Context(), userID)
	if err != nil {
		requestID := apierror.GetRequestID(c)
		logger.Ctx(c.Request.Context()).Error("failed to check today's check-in", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, status)
}

// WeeklySummary handles GET /api/v1/moods/weekly-summary?weekStart=YYYY-MM-DD
func (h *MoodHandler) WeeklySummary(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Missing authorization token"))
		return
	}

	summary, err := h.moodService.WeeklySummary(c.Request.Context(), userID, c.Query("weekStart"))
	if err != nil {
		requestID := apierror.GetRequestID(c)

		if errors.Is(err, service.ErrInvalidDate) {
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "weekStart", Message: "must be a YYYY-MM-DD or RFC3339 date", Code: "invalid_format"},
			}))
			return
		}

		logger.Ctx(c.Request.Context()).Error("failed to build weekly summary", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, summary)
}

// WeeklyInsight handles GET /api/v1/moods/weekly-insight?weekStart=YYYY-MM-DD
func (h *MoodHandler) WeeklyInsight(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		requestID := apierror.GetRequestID(c)
		apierror.WriteProblem(c, apierror.NewUnauthorizedError(requestID, "Missing authorization token"))
		return
	}

	insight, err := h.insightService.WeeklyInsight(c.Request.Context(), userID, c.Query("weekStart"))
	if err != nil {
		requestID := apierror.GetRequestID(c)

		if errors.Is(err, service.ErrInvalidDate) {
			apierror.WriteProblem(c, apierror.NewValidationError(requestID, []apierror.FieldError{
				{Field: "weekStart", Message: "must be a YYYY-MM-DD or RFC3339 date", Code: "invalid_format"},
			}))
			return
		}

		// Provider failures surface the raw upstream body for diagnosis
		var upstream *insightgen.UpstreamError
		if errors.As(err, &upstream) {
			logger.Ctx(c.Request.Context()).Error("reflection provider failed",
				logger.Int("upstream_status", upstream.Status),
				logger.Err(err),
			)
			apierror.WriteProblem(c, apierror.NewUpstreamError(requestID, upstream.Body))
			return
		}

		logger.Ctx(c.Request.Context()).Error("failed to build weekly insight", logger.Err(err))
		apierror.WriteProblem(c, apierror.NewInternalError(requestID))
		return
	}

	c.JSON(http.StatusOK, insight)
}
