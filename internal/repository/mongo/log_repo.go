package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const logCollectionName = "workout_logs"

// mongoLogRepository implements repository.WorkoutLogRepository
type mongoLogRepository struct {
	collection *mongo.Collection
}

// NewMongoLogRepository creates a workout history repository backed by MongoDB.
func NewMongoLogRepository(db *mongo.Database) repository.WorkoutLogRepository {
	return &mongoLogRepository{
		collection: db.Collection(logCollectionName),
	}
}

// Create appends a workout log entry.
func (r *mongoLogRepository) Create(ctx context.Context, entry *domain.WorkoutLog) (primitive.ObjectID, error) {
	if entry.UserID == primitive.NilObjectID || entry.PlannedWorkoutID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("log user ID and planned workout ID are required")
	}

	entry.ID = primitive.NewObjectID()
	if entry.CompletedAt.IsZero() {
		entry.CompletedAt = time.Now().UTC()
	}

	result, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// RecentByExercise retrieves the user's latest logs for one exercise,
// newest first.
func (r *mongoLogRepository) RecentByExercise(ctx context.Context, userID, exerciseID primitive.ObjectID, limit int64) ([]domain.WorkoutLog, error) {
	filter := bson.M{"userId": userID, "exerciseId": exerciseID}
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: -1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var logs []domain.WorkoutLog
	if err = cursor.All(ctx, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

// CountSince counts the user's log entries at or after the given time.
func (r *mongoLogRepository) CountSince(ctx context.Context, userID primitive.ObjectID, since time.Time) (int64, error) {
	filter := bson.M{"userId": userID, "completedAt": bson.M{"$gte": since}}
	return r.collection.CountDocuments(ctx, filter)
}

// CountForWorkoutBetween counts log entries for one planned workout in
// the half-open interval [from, to).
func (r *mongoLogRepository) CountForWorkoutBetween(ctx context.Context, plannedWorkoutID primitive.ObjectID, from, to time.Time) (int64, error) {
	filter := bson.M{
		"plannedWorkoutId": plannedWorkoutID,
		"completedAt":      bson.M{"$gte": from, "$lt": to},
	}
	return r.collection.CountDocuments(ctx, filter)
}

// LastTrainedBodyPart returns the time of the user's most recent log for
// any exercise whose body part matches keyword, or nil when never trained.
func (r *mongoLogRepository) LastTrainedBodyPart(ctx context.Context, userID primitive.ObjectID, keyword string) (*time.Time, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         exerciseCollectionName,
			"localField":   "exerciseId",
			"foreignField": "_id",
			"as":           "exercise",
		}}},
		{{Key: "$unwind", Value: "$exercise"}},
		{{Key: "$match", Value: bson.M{"exercise.bodyPart": primitive.Regex{
			Pattern: regexp.QuoteMeta(keyword),
			Options: "i",
		}}}},
		{{Key: "$group", Value: bson.M{
			"_id":      nil,
			"lastDate": bson.M{"$max": "$completedAt"},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		LastDate time.Time `bson:"lastDate"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return &results[0].LastDate, nil
}

// BodyPartsTrainedSince returns the distinct body parts of exercises the
// user has logged at or after the given time.
func (r *mongoLogRepository) BodyPartsTrainedSince(ctx context.Context, userID primitive.ObjectID, since time.Time) ([]string, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": userID, "completedAt": bson.M{"$gte": since}}}},
		{{Key: "$lookup", Value: bson.M{
			"from":         exerciseCollectionName,
			"localField":   "exerciseId",
			"foreignField": "_id",
			"as":           "exercise",
		}}},
		{{Key: "$unwind", Value: "$exercise"}},
		{{Key: "$group", Value: bson.M{"_id": "$exercise.bodyPart"}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var results []struct {
		BodyPart string `bson:"_id"`
	}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, err
	}

	parts := make([]string, 0, len(results))
	for _, res := range results {
		if res.BodyPart != "" {
			parts = append(parts, res.BodyPart)
		}
	}
	return parts, nil
}

// EnsureLogIndexes creates necessary indexes for the workout logs collection.
func EnsureLogIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "exerciseId", Value: 1}, {Key: "completedAt", Value: -1}},
		},
		{
			Keys: bson.D{{Key: "plannedWorkoutId", Value: 1}, {Key: "completedAt", Value: -1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
