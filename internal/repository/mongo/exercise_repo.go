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

const exerciseCollectionName = "exercises"

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoExerciseRepository creates a new exercise catalog repository backed by MongoDB.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		collection: db.Collection(exerciseCollectionName),
	}
}

// Create inserts a new catalog exercise.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (primitive.ObjectID, error) {
	if exercise.Title == "" || exercise.Category == "" {
		return primitive.NilObjectID, errors.New("exercise title and category are required")
	}

	exercise.ID = primitive.NewObjectID()
	exercise.CreatedAt = time.Now().UTC()

	result, err := r.collection.InsertOne(ctx, exercise)
	if err != nil {
		return primitive.NilObjectID, err
	}

	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted ID")
	}

	return insertedID, nil
}

// GetByID retrieves an exercise by its ID.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Exercise, error) {
	var exercise domain.Exercise
	filter := bson.M{"_id": id}

	err := r.collection.FindOne(ctx, filter).Decode(&exercise)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	exercise.NormalizeTags()
	return &exercise, nil
}

// Query retrieves catalog exercises matching the filter. Zero-value filter
// fields are ignored, so an empty filter returns up to limit exercises.
func (r *mongoExerciseRepository) Query(ctx context.Context, f repository.ExerciseFilter, limit int64) ([]domain.Exercise, error) {
	filter := bson.M{}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.TitleKeyword != "" {
		filter["title"] = primitive.Regex{
			Pattern: regexp.QuoteMeta(f.TitleKeyword),
			Options: "i",
		}
	}
	if len(f.BodyPartKeywords) > 0 {
		or := make([]bson.M, 0, len(f.BodyPartKeywords))
		for _, keyword := range f.BodyPartKeywords {
			or = append(or, bson.M{"bodyPart": primitive.Regex{
				Pattern: regexp.QuoteMeta(keyword),
				Options: "i",
			}})
		}
		filter["$or"] = or
	}
	if len(f.EquipmentIn) > 0 {
		filter["equipment"] = bson.M{"$in": f.EquipmentIn}
	}
	if len(f.ExcludeContraindications) > 0 {
		filter["contraindications"] = bson.M{"$nin": f.ExcludeContraindications}
	}
	if len(f.ExcludeIDs) > 0 {
		filter["_id"] = bson.M{"$nin": f.ExcludeIDs}
	}
	if f.Level != "" {
		filter["level"] = f.Level
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	if limit > 0 {
		findOptions.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var exercises []domain.Exercise
	if err = cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}

	for i := range exercises {
		exercises[i].NormalizeTags()
	}
	return exercises, nil
}

// SetMediaKey records the object storage key of an exercise's demo media.
func (r *mongoExerciseRepository) SetMediaKey(ctx context.Context, id primitive.ObjectID, key string) error {
	filter := bson.M{"_id": id}
	update := bson.M{"$set": bson.M{"mediaKey": key}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureExerciseIndexes creates necessary indexes for the exercises collection.
func EnsureExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "category", Value: 1}, {Key: "level", Value: 1}},
		},
		{
			Keys:    bson.D{{Key: "title", Value: "text"}, {Key: "bodyPart", Value: "text"}},
			Options: options.Index().SetName("exercise_text_search"),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
