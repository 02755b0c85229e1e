package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/repository"
	"fitforge/planner-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating a catalog exercise.
type CreateExerciseRequest struct {
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description"`
	Category          string   `json:"category" binding:"required"`
	BodyPart          string   `json:"bodyPart"` // slash-delimited, e.g. "Chest/Triceps"
	Equipment         string   `json:"equipment"`
	Level             string   `json:"level" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
	Instructions      string   `json:"instructions"`
	Contraindications []string `json:"contraindications"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description,omitempty"`
	Category          string    `json:"category"`
	BodyPart          string    `json:"bodyPart,omitempty"`
	Equipment         string    `json:"equipment,omitempty"`
	Level             string    `json:"level,omitempty"`
	Instructions      string    `json:"instructions,omitempty"`
	Contraindications []string  `json:"contraindications,omitempty"`
	MediaURL          string    `json:"mediaUrl,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// MediaUploadResponse carries a presigned PUT URL for demo media.
type MediaUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                ex.ID.Hex(),
		Title:             ex.Title,
		Description:       ex.Description,
		Category:          string(ex.Category),
		BodyPart:          ex.BodyPart,
		Equipment:         ex.Equipment,
		Level:             ex.Level,
		Instructions:      ex.Instructions,
		Contraindications: ex.Contraindications,
		MediaURL:          ex.MediaURL,
		CreatedAt:         ex.CreatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to response DTOs.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i, ex := range exercises {
		responses[i] = MapExerciseToResponse(&ex)
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise godoc
// @Summary Create a catalog exercise
// @Description Adds a new exercise to the shared catalog.
// @Tags Exercises
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param exercise body CreateExerciseRequest true "Exercise details"
// @Success 201 {object} ExerciseResponse "Exercise created successfully"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [post]
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(
		c.Request.Context(),
		req.Title,
		req.Description,
		domain.ExerciseCategory(req.Category),
		req.BodyPart,
		req.Equipment,
		req.Level,
		req.Instructions,
		req.Contraindications,
	)
	if err != nil {
		if errors.Is(err, service.ErrValidationFailed) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to create exercise")
		}
		return
	}

	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// ListExercises godoc
// @Summary List catalog exercises
// @Description Queries the exercise catalog. All filters are optional.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param category query string false "Exercise category"
// @Param bodyPart query string false "Comma-separated body part keywords"
// @Param level query string false "Experience level"
// @Param limit query int false "Maximum results (default 50)"
// @Success 200 {array} ExerciseResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /exercises [get]
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	filter := repository.ExerciseFilter{
		Category: domain.ExerciseCategory(c.Query("category")),
		Level:    c.Query("level"),
	}
	if bodyPart := c.Query("bodyPart"); bodyPart != "" {
		filter.BodyPartKeywords = strings.Split(bodyPart, ",")
	}

	limit := int64(50)
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	exercises, err := h.exerciseService.ListExercises(c.Request.Context(), filter, limit)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to list exercises")
		return
	}

	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}

// GetExercise godoc
// @Summary Get one catalog exercise
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Success 200 {object} ExerciseResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id} [get]
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	exercise, err := h.exerciseService.GetExerciseByID(c.Request.Context(), exerciseID)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to fetch exercise")
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToResponse(exercise))
}

// RequestMediaUpload godoc
// @Summary Request a demo media upload URL
// @Description Reserves an object key for the exercise's demo media and
// @Description returns a presigned PUT URL.
// @Tags Exercises
// @Produce json
// @Security BearerAuth
// @Param id path string true "Exercise ID"
// @Param contentType query string false "Content type of the upload (default video/mp4)"
// @Success 200 {object} MediaUploadResponse
// @Failure 404 {object} gin.H "Not found"
// @Router /exercises/{id}/media [post]
func (h *ExerciseHandler) RequestMediaUpload(c *gin.Context) {
	exerciseID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	contentType := c.DefaultQuery("contentType", "video/mp4")
	uploadURL, objectKey, err := h.exerciseService.RequestMediaUpload(c.Request.Context(), exerciseID, contentType)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to prepare media upload")
		}
		return
	}

	c.JSON(http.StatusOK, MediaUploadResponse{UploadURL: uploadURL, ObjectKey: objectKey})
}
