package service

import (
	"context"

	"fitforge/planner-app/internal/planner"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Service Interface ---
type RecommendationService interface {
	// GetDailyRecommendation answers "what should I do today". planID may
	// be the zero ObjectID to use the user's active plan.
	GetDailyRecommendation(ctx context.Context, userID, planID primitive.ObjectID) (*planner.Recommendation, error)
	// GetProgression recommends the next session's load for one planned workout.
	GetProgression(ctx context.Context, userID, plannedWorkoutID primitive.ObjectID) (*planner.Suggestion, error)
}

// --- Service Implementation ---

// recommendationService implements the RecommendationService interface.
type recommendationService struct {
	recommender *planner.Recommender
}

// NewRecommendationService creates a new instance of recommendationService.
func NewRecommendationService(recommender *planner.Recommender) RecommendationService {
	return &recommendationService{recommender: recommender}
}

func (s *recommendationService) GetDailyRecommendation(ctx context.Context, userID, planID primitive.ObjectID) (*planner.Recommendation, error) {
	return s.recommender.Daily(ctx, userID, planID)
}

func (s *recommendationService) GetProgression(ctx context.Context, userID, plannedWorkoutID primitive.ObjectID) (*planner.Suggestion, error) {
	return s.recommender.SuggestedProgression(ctx, userID, plannedWorkoutID)
}
