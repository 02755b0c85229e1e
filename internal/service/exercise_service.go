package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fitforge/planner-app/internal/domain"
	"fitforge/planner-app/internal/repository"
	"fitforge/planner-app/internal/storage"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("exercise validation failed")
)

// --- Service Interface ---
type ExerciseService interface {
	CreateExercise(ctx context.Context, title, description string, category domain.ExerciseCategory, bodyPart, equipment, level, instructions string, contraindications []string) (*domain.Exercise, error)
	GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error)
	ListExercises(ctx context.Context, filter repository.ExerciseFilter, limit int64) ([]domain.Exercise, error)
	// RequestMediaUpload reserves an object key for an exercise's demo
	// media and returns a presigned PUT URL for the actual upload.
	RequestMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (uploadURL, objectKey string, err error)
}

// --- Service Implementation ---

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	fileStorage  storage.FileStorage
}

// NewExerciseService creates a new instance of exerciseService. fileStorage
// may be nil when object storage is not configured; media URLs are then
// simply omitted.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, fileStorage storage.FileStorage) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		fileStorage:  fileStorage,
	}
}

// CreateExercise adds a new exercise to the catalog.
func (s *exerciseService) CreateExercise(ctx context.Context, title, description string, category domain.ExerciseCategory, bodyPart, equipment, level, instructions string, contraindications []string) (*domain.Exercise, error) {
	if title == "" || category == "" {
		return nil, ErrValidationFailed
	}

	exercise := &domain.Exercise{
		Title:             title,
		Description:       description,
		Category:          category,
		BodyPart:          bodyPart,
		Equipment:         equipment,
		Level:             level,
		Instructions:      instructions,
		Contraindications: contraindications,
	}

	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	return s.exerciseRepo.GetByID(ctx, exerciseID)
}

// GetExerciseByID retrieves a single exercise, attaching a presigned media
// URL when demo media exists.
func (s *exerciseService) GetExerciseByID(ctx context.Context, exerciseID primitive.ObjectID) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrExerciseNotFound
		}
		return nil, err
	}
	s.attachMediaURL(ctx, exercise)
	return exercise, nil
}

// ListExercises queries the catalog.
func (s *exerciseService) ListExercises(ctx context.Context, filter repository.ExerciseFilter, limit int64) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.Query(ctx, filter, limit)
	if err != nil {
		return nil, err
	}
	for i := range exercises {
		s.attachMediaURL(ctx, &exercises[i])
	}
	return exercises, nil
}

// RequestMediaUpload reserves an object key and presigns the upload.
// Replacing existing media deletes the superseded object; a failed delete
// only orphans the old object.
func (s *exerciseService) RequestMediaUpload(ctx context.Context, exerciseID primitive.ObjectID, contentType string) (string, string, error) {
	if s.fileStorage == nil {
		return "", "", errors.New("object storage is not configured")
	}
	exercise, err := s.exerciseRepo.GetByID(ctx, exerciseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", "", ErrExerciseNotFound
		}
		return "", "", err
	}

	objectKey := fmt.Sprintf("exercises/%s/%s", exerciseID.Hex(), uuid.NewString())
	uploadURL, err := s.fileStorage.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return "", "", err
	}

	if err := s.exerciseRepo.SetMediaKey(ctx, exerciseID, objectKey); err != nil {
		return "", "", err
	}

	if exercise.MediaKey != "" {
		if err := s.fileStorage.DeleteObject(ctx, exercise.MediaKey); err != nil {
			log.Printf("WARN: failed to delete replaced media %q for exercise %s: %v", exercise.MediaKey, exerciseID.Hex(), err)
		}
	}
	return uploadURL, objectKey, nil
}

// attachMediaURL fills MediaURL with a presigned download link. Failures
// only lose the media link, never the exercise itself.
func (s *exerciseService) attachMediaURL(ctx context.Context, exercise *domain.Exercise) {
	if s.fileStorage == nil || exercise.MediaKey == "" {
		return
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, exercise.MediaKey, storage.DefaultPresignedURLExpiry)
	if err != nil {
		log.Printf("WARN: failed to presign media URL for exercise %s: %v", exercise.ID.Hex(), err)
		return
	}
	exercise.MediaURL = url
}
