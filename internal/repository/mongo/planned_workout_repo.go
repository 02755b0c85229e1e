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

const plannedWorkoutCollectionName = "plan_workouts"

// mongoPlannedWorkoutRepository implements repository.PlannedWorkoutRepository
type mongoPlannedWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoPlannedWorkoutRepository creates a workout grid repository backed by MongoDB.
func NewMongoPlannedWorkoutRepository(db *mongo.Database) repository.PlannedWorkoutRepository {
	return &mongoPlannedWorkoutRepository{
		collection: db.Collection(plannedWorkoutCollectionName),
	}
}

// CreateMany inserts a plan's full workout grid in one batch.
func (r *mongoPlannedWorkoutRepository) CreateMany(ctx context.Context, workouts []domain.PlannedWorkout) error {
	if len(workouts) == 0 {
		return nil
	}

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(workouts))
	for i := range workouts {
		if workouts[i].PlanID == primitive.NilObjectID {
			return errors.New("planned workout requires a plan ID")
		}
		if workouts[i].Day < 1 || workouts[i].Day > 7 {
			return errors.New("planned workout day must be between 1 and 7")
		}
		workouts[i].ID = primitive.NewObjectID()
		workouts[i].CreatedAt = now
		docs = append(docs, workouts[i])
	}

	_, err := r.collection.InsertMany(ctx, docs)
	return err
}

// GetByID retrieves a single planned workout.
func (r *mongoPlannedWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.PlannedWorkout, error) {
	var workout domain.PlannedWorkout
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// GetForDay retrieves the workouts scheduled for one day of one plan week.
func (r *mongoPlannedWorkoutRepository) GetForDay(ctx context.Context, planID primitive.ObjectID, week, day int) ([]domain.PlannedWorkout, error) {
	filter := bson.M{"planId": planID, "week": week, "day": day}
	return r.find(ctx, filter)
}

// GetForWeek retrieves every workout of one plan week, ordered by day.
func (r *mongoPlannedWorkoutRepository) GetForWeek(ctx context.Context, planID primitive.ObjectID, week int) ([]domain.PlannedWorkout, error) {
	filter := bson.M{"planId": planID, "week": week}
	return r.find(ctx, filter)
}

func (r *mongoPlannedWorkoutRepository) find(ctx context.Context, filter bson.M) ([]domain.PlannedWorkout, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "day", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var workouts []domain.PlannedWorkout
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// EnsurePlannedWorkoutIndexes creates necessary indexes for the workout grid collection.
func EnsurePlannedWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "planId", Value: 1}, {Key: "week", Value: 1}, {Key: "day", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "exerciseId", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
