package api

import (
	"errors"
	"net/http"

	"fitforge/planner-app/internal/repository"
	"fitforge/planner-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecommendationHandler holds the recommendation service dependency.
type RecommendationHandler struct {
	recommendationService service.RecommendationService
}

// NewRecommendationHandler creates a new RecommendationHandler.
func NewRecommendationHandler(recommendationService service.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{recommendationService: recommendationService}
}

// --- Handler Methods ---

// GetDaily godoc
// @Summary Get today's workout recommendation
// @Description Answers "what should I do today" from the active plan and
// @Description recent history. Optionally pins a specific plan.
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Param planId query string false "Plan ID (defaults to the active plan)"
// @Success 200 {object} planner.Recommendation
// @Failure 400 {object} gin.H "Invalid plan ID"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /recommendations/daily [get]
func (h *RecommendationHandler) GetDaily(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	planID := primitive.NilObjectID
	if raw := c.Query("planId"); raw != "" {
		parsed, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid planId format.")
			return
		}
		planID = parsed
	}

	recommendation, err := h.recommendationService.GetDailyRecommendation(c.Request.Context(), userID, planID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to build recommendation")
		return
	}

	c.JSON(http.StatusOK, recommendation)
}

// GetProgression godoc
// @Summary Get the suggested progression for a planned workout
// @Tags Recommendations
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Planned workout ID"
// @Success 200 {object} planner.Suggestion
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{workoutId}/progression [get]
func (h *RecommendationHandler) GetProgression(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}

	suggestion, err := h.recommendationService.GetProgression(c.Request.Context(), userID, workoutID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			abortWithError(c, http.StatusNotFound, "planned workout not found")
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to build progression")
		}
		return
	}

	c.JSON(http.StatusOK, suggestion)
}
