package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/service"

	"github.com/gin-gonic/gin"
)

// PlanHandler holds the plan service dependency.
type PlanHandler struct {
	planService service.PlanService
}

// NewPlanHandler creates a new PlanHandler.
func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs for API (Data Transfer Objects) ---

// GeneratePlanRequest defines the expected JSON for plan generation.
type GeneratePlanRequest struct {
	Name            string   `json:"name" binding:"required"`
	Goal            string   `json:"goal" binding:"required"`
	DurationWeeks   int      `json:"durationWeeks" binding:"omitempty,min=1,max=52"`
	WorkoutsPerWeek int      `json:"workoutsPerWeek" binding:"omitempty,min=1,max=7"`
	Equipment       []string `json:"equipment"`
	Limitations     []string `json:"limitations"`
	PreferredCardio []string `json:"preferredCardio"`
	SpecificFocus   []string `json:"specificFocus"`
	TimePerWorkout  int      `json:"timePerWorkout"`
	ExperienceLevel string   `json:"experienceLevel" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	PrimarySport    string   `json:"primarySport"`
	TrainingPhase   string   `json:"trainingPhase"`
}

// UpdateGoalRequest changes a plan's goal label.
type UpdateGoalRequest struct {
	Goal string `json:"goal" binding:"required"`
}

// LogWorkoutRequest records a completed session.
type LogWorkoutRequest struct {
	SetsCompleted int     `json:"setsCompleted" binding:"min=0"`
	RepsCompleted int     `json:"repsCompleted" binding:"min=0"`
	Weight        float64 `json:"weight" binding:"min=0"`
	CompletedAt   string  `json:"completedAt"` // RFC 3339; empty means now
}

// PlanResponse is the DTO for returning plan details.
type PlanResponse struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Goal          string             `json:"goal"`
	DurationWeeks int                `json:"durationWeeks"`
	Details       domain.PlanDetails `json:"details"`
	IsActive      bool               `json:"isActive"`
	PrimarySport  string             `json:"primarySport,omitempty"`
	TrainingPhase string             `json:"trainingPhase,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	Warning       string             `json:"warning,omitempty"`
	Basic         bool               `json:"basic,omitempty"`
}

// MapPlanToResponse converts a domain.FitnessPlan to PlanResponse DTO.
func MapPlanToResponse(plan *domain.FitnessPlan) PlanResponse {
	if plan == nil {
		return PlanResponse{}
	}
	return PlanResponse{
		ID:            plan.ID.Hex(),
		Name:          plan.Name,
		Goal:          plan.Goal,
		DurationWeeks: plan.DurationWeeks,
		Details:       plan.Details,
		IsActive:      plan.IsActive,
		PrimarySport:  plan.PrimarySport,
		TrainingPhase: plan.TrainingPhase,
		CreatedAt:     plan.CreatedAt,
	}
}

// MapPlansToResponse converts a slice of plans to response DTOs.
func MapPlansToResponse(plans []domain.FitnessPlan) []PlanResponse {
	responses := make([]PlanResponse, len(plans))
	for i := range plans {
		responses[i] = MapPlanToResponse(&plans[i])
	}
	return responses
}

// --- Handler Methods ---

// GeneratePlan godoc
// @Summary Generate a fitness plan
// @Description Composes, validates and stores a full multi-week plan for
// @Description the authenticated user. Previous active plans are deactivated.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param plan body GeneratePlanRequest true "Plan parameters"
// @Success 201 {object} PlanResponse "Plan created"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /plans [post]
func (h *PlanHandler) GeneratePlan(c *gin.Context) {
	var req GeneratePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	input := service.PlanInput{
		Name:          req.Name,
		Goal:          req.Goal,
		DurationWeeks: req.DurationWeeks,
		Details: domain.PlanDetails{
			WorkoutsPerWeek: req.WorkoutsPerWeek,
			Equipment:       req.Equipment,
			Limitations:     req.Limitations,
			PreferredCardio: req.PreferredCardio,
			SpecificFocus:   req.SpecificFocus,
			TimePerWorkout:  req.TimePerWorkout,
			ExperienceLevel: domain.ParseExperienceLevel(req.ExperienceLevel),
		},
		PrimarySport:  req.PrimarySport,
		TrainingPhase: req.TrainingPhase,
	}

	generated, err := h.planService.GeneratePlan(c.Request.Context(), userID, input)
	if err != nil {
		if errors.Is(err, service.ErrInvalidPlanInput) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to generate plan")
		}
		return
	}

	resp := MapPlanToResponse(generated.Plan)
	resp.Warning = generated.Warning
	resp.Basic = generated.Basic
	c.JSON(http.StatusCreated, resp)
}

// ListActivePlans godoc
// @Summary List the user's active plans
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Success 200 {array} PlanResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /plans [get]
func (h *PlanHandler) ListActivePlans(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}

	plans, err := h.planService.GetActivePlans(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list plans")
		return
	}

	c.JSON(http.StatusOK, MapPlansToResponse(plans))
}

// GetPlan godoc
// @Summary Get one plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} PlanResponse
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId} [get]
func (h *PlanHandler) GetPlan(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	plan, err := h.planService.GetPlanByID(c.Request.Context(), userID, planID)
	if err != nil {
		h.mapPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, MapPlanToResponse(plan))
}

// GetWeekSchedule godoc
// @Summary Get one week of a plan's workout grid
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param week query int false "Week number (default 1)"
// @Success 200 {array} domain.PlannedWorkout
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId}/schedule [get]
func (h *PlanHandler) GetWeekSchedule(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	week, _ := strconv.Atoi(c.DefaultQuery("week", "1"))
	workouts, err := h.planService.GetWeekSchedule(c.Request.Context(), userID, planID, week)
	if err != nil {
		h.mapPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, workouts)
}

// UpdateGoal godoc
// @Summary Change a plan's goal
// @Description Updates the goal label; the stored workout grid is kept.
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Param goal body UpdateGoalRequest true "New goal"
// @Success 200 {object} gin.H "Goal updated"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId}/goal [put]
func (h *PlanHandler) UpdateGoal(c *gin.Context) {
	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := userObjectID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	if err := h.planService.UpdatePlanGoal(c.Request.Context(), userID, planID, req.Goal); err != nil {
		h.mapPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "goal updated"})
}

// DeactivatePlan godoc
// @Summary Deactivate a plan
// @Description Soft-deletes the plan; its history remains queryable.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {object} gin.H "Plan deactivated"
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId} [delete]
func (h *PlanHandler) DeactivatePlan(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	if err := h.planService.DeactivatePlan(c.Request.Context(), userID, planID); err != nil {
		h.mapPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "plan deactivated"})
}

// GetSummary godoc
// @Summary Get per-week progress for a plan
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 200 {array} domain.WeekSummary
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /plans/{planId}/summary [get]
func (h *PlanHandler) GetSummary(c *gin.Context) {
	userID, ok := userObjectID(c)
	if !ok {
		return
	}
	planID, ok := pathObjectID(c, "planId")
	if !ok {
		return
	}

	summary, err := h.planService.GetPlanSummary(c.Request.Context(), userID, planID)
	if err != nil {
		h.mapPlanError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// LogWorkout godoc
// @Summary Log a completed workout
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param workoutId path string true "Planned workout ID"
// @Param log body LogWorkoutRequest true "Completion details"
// @Success 201 {object} domain.WorkoutLog
// @Failure 403 {object} gin.H "Forbidden"
// @Failure 404 {object} gin.H "Not found"
// @Router /workouts/{workoutId}/logs [post]
func (h *PlanHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	userID, ok := userObjectID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}

	var completedAt time.Time
	if req.CompletedAt != "" {
		parsed, err := time.Parse(time.RFC3339, req.CompletedAt)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "completedAt must be RFC 3339")
			return
		}
		completedAt = parsed
	}

	entry, err := h.planService.LogWorkout(c.Request.Context(), userID, service.LogInput{
		PlannedWorkoutID: workoutID,
		SetsCompleted:    req.SetsCompleted,
		RepsCompleted:    req.RepsCompleted,
		Weight:           req.Weight,
		CompletedAt:      completedAt,
	})
	if err != nil {
		if errors.Is(err, service.ErrWorkoutNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else if errors.Is(err, service.ErrPlanAccessDenied) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to log workout")
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

func (h *PlanHandler) mapPlanError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidPlanInput):
		abortWithError(c, http.StatusBadRequest, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
