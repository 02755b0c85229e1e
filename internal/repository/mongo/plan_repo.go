package mongo

import (
	"context"
	"errors"
	"time"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const planCollectionName = "fitness_plans"

// mongoPlanRepository implements repository.PlanRepository
type mongoPlanRepository struct {
	collection *mongo.Collection
	workouts   *mongo.Collection
}

// NewMongoPlanRepository creates a new fitness plan repository backed by MongoDB.
func NewMongoPlanRepository(db *mongo.Database) repository.PlanRepository {
	return &mongoPlanRepository{
		collection: db.Collection(planCollectionName),
		workouts:   db.Collection(plannedWorkoutCollectionName),
	}
}

// Create inserts a new plan and deactivates the user's previous active plans,
// keeping at most one plan active per user.
func (r *mongoPlanRepository) Create(ctx context.Context, plan *domain.FitnessPlan) (primitive.ObjectID, error) {
	if plan.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("plan user ID is required")
	}
	if plan.Name == "" || plan.Goal == "" {
		return primitive.NilObjectID, errors.New("plan name and goal are required")
	}

	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now
	plan.IsActive = true

	_, err := r.collection.UpdateMany(ctx,
		bson.M{"userId": plan.UserID, "isActive": true},
		bson.M{"$set": bson.M{"isActive": false, "updatedAt": now}},
	)
	if err != nil {
		return primitive.NilObjectID, err
	}

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves a plan by its ID.
func (r *mongoPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.FitnessPlan, error) {
	var plan domain.FitnessPlan
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetActiveByUser retrieves the user's active plans, newest first.
func (r *mongoPlanRepository) GetActiveByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.FitnessPlan, error) {
	filter := bson.M{"userId": userID, "isActive": true}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.FitnessPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// LatestByUser retrieves the user's newest plan regardless of active state.
func (r *mongoPlanRepository) LatestByUser(ctx context.Context, userID primitive.ObjectID) (*domain.FitnessPlan, error) {
	var plan domain.FitnessPlan
	filter := bson.M{"userId": userID}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// UpdateGoal changes the goal label of an existing plan.
func (r *mongoPlanRepository) UpdateGoal(ctx context.Context, id primitive.ObjectID, goal string) error {
	if goal == "" {
		return errors.New("goal cannot be empty")
	}

	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"goal": goal, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Deactivate soft-deletes a plan. The workout grid and logs are kept.
func (r *mongoPlanRepository) Deactivate(ctx context.Context, id primitive.ObjectID) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"isActive": false, "updatedAt": time.Now().UTC()}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Summary aggregates per-week progress for a plan: planned exercise count,
// how many were logged, average logged weight and distinct days trained.
func (r *mongoPlanRepository) Summary(ctx context.Context, id primitive.ObjectID) ([]domain.WeekSummary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"planId": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         logCollectionName,
			"localField":   "_id",
			"foreignField": "plannedWorkoutId",
			"as":           "logs",
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":            "$week",
			"totalExercises": bson.M{"$sum": 1},
			"exercisesCompleted": bson.M{"$sum": bson.M{
				"$cond": bson.A{bson.M{"$gt": bson.A{bson.M{"$size": "$logs"}, 0}}, 1, 0},
			}},
			"avgWeight": bson.M{"$avg": bson.M{"$avg": "$logs.weight"}},
			"days":      bson.M{"$addToSet": "$day"},
		}}},
		{{Key: "$project", Value: bson.M{
			"totalExercises":     1,
			"exercisesCompleted": 1,
			"avgWeight":          bson.M{"$ifNull": bson.A{"$avgWeight", 0}},
			"daysWorked":         bson.M{"$size": "$days"},
		}}},
		{{Key: "$sort", Value: bson.M{"_id": 1}}},
	}

	cursor, err := r.workouts.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var summaries []domain.WeekSummary
	if err = cursor.All(ctx, &summaries); err != nil {
		return nil, err
	}
	return summaries, nil
}

// EnsurePlanIndexes creates necessary indexes for the fitness plans collection.
func EnsurePlanIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "isActive", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
