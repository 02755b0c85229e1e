package api

import (
	"net/http"

	"fitforge/planner-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	exerciseService service.ExerciseService,
	planService service.PlanService,
	recommendationService service.RecommendationService,
) {

	authHandler := NewAuthHandler(authService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	planHandler := NewPlanHandler(planService)
	recommendationHandler := NewRecommendationHandler(recommendationService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.GET("/:id", exerciseHandler.GetExercise)
			exerciseGroup.POST("/:id/media", exerciseHandler.RequestMediaUpload)
		}

		// --- Plans ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("", planHandler.GeneratePlan)
			planGroup.GET("", planHandler.ListActivePlans)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.DELETE("/:planId", planHandler.DeactivatePlan)
			planGroup.GET("/:planId/schedule", planHandler.GetWeekSchedule)
			planGroup.PUT("/:planId/goal", planHandler.UpdateGoal)
			planGroup.GET("/:planId/summary", planHandler.GetSummary)
		}

		// --- Planned Workouts ---
		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("/:workoutId/logs", planHandler.LogWorkout)
			workoutGroup.GET("/:workoutId/progression", recommendationHandler.GetProgression)
		}

		// --- Recommendations ---
		protected.GET("/recommendations/daily", recommendationHandler.GetDaily)
	}
}
