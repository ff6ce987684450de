package service

import (
	"alcyxob/exercise-log/internal/domain"
	"alcyxob/exercise-log/internal/logger"
	"alcyxob/exercise-log/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrExerciseConflict = errors.New("exercise with the same name already exists")
	ErrValidationFailed = errors.New("exercise validation failed")
	// ErrStorage wraps every other persistence failure.
	ErrStorage = errors.New("storage failure")
)

// MaxExerciseNameLength mirrors the width of the nome column.
const MaxExerciseNameLength = 140

// CreateExerciseInput carries the fields accepted when registering an exercise.
type CreateExerciseInput struct {
	Name        string
	Series      int
	Repetitions int
	Weight      float64
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, in CreateExerciseInput) (*domain.Exercise, error)
	ListExercises(ctx context.Context) ([]domain.Exercise, error)
	GetExerciseByName(ctx context.Context, name string) (*domain.Exercise, error)
	DeleteExerciseByName(ctx context.Context, name string) error
	AddDescription(ctx context.Context, exerciseID int64, text string) (*domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
	log          *logger.Logger
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository, log *logger.Logger) ExerciseService {
	if log == nil {
		log = logger.NewNop()
	}
	return &exerciseService{
		exerciseRepo: exerciseRepo,
		log:          log.With("service", "ExerciseService"),
	}
}

// CreateExercise validates and stores a new exercise.
func (s *exerciseService) CreateExercise(ctx context.Context, in CreateExerciseInput) (*domain.Exercise, error) {
	// The name is stored exactly as sent; trimming only decides emptiness.
	name := in.Name
	switch {
	case strings.TrimSpace(name) == "":
		return nil, fmt.Errorf("%w: nome is required", ErrValidationFailed)
	case utf8.RuneCountInString(name) > MaxExerciseNameLength:
		return nil, fmt.Errorf("%w: nome exceeds %d characters", ErrValidationFailed, MaxExerciseNameLength)
	case in.Series < 0 || in.Repetitions < 0 || in.Weight < 0:
		return nil, fmt.Errorf("%w: series, repeticoes and quilos must not be negative", ErrValidationFailed)
	}

	s.log.Debug("Adding exercise", "nome", name)
	exercise, err := s.exerciseRepo.Create(ctx, &domain.Exercise{
		Name:        name,
		Series:      in.Series,
		Repetitions: in.Repetitions,
		Weight:      in.Weight,
	})
	if err != nil {
		if errors.Is(err, repository.ErrConflict) {
			s.log.Warn("Exercise name already stored", "nome", name)
			return nil, ErrExerciseConflict
		}
		s.log.Warn("Failed to add exercise", "nome", name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.log.Debug("Added exercise", "nome", name, "id", exercise.ID)
	return exercise, nil
}

// ListExercises returns every stored exercise; an empty slice when there are none.
func (s *exerciseService) ListExercises(ctx context.Context) ([]domain.Exercise, error) {
	exercises, err := s.exerciseRepo.List(ctx)
	if err != nil {
		s.log.Warn("Failed to list exercises", "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	s.log.Debug("Listed exercises", "count", len(exercises))
	return exercises, nil
}

// GetExerciseByName retrieves a single exercise with its descriptions.
func (s *exerciseService) GetExerciseByName(ctx context.Context, name string) (*domain.Exercise, error) {
	exercise, err := s.exerciseRepo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Exercise not found", "nome", name)
			return nil, ErrExerciseNotFound
		}
		s.log.Warn("Failed to fetch exercise", "nome", name, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	return exercise, nil
}

// DeleteExerciseByName removes the exercise and, by cascade, its descriptions.
func (s *exerciseService) DeleteExerciseByName(ctx context.Context, name string) error {
	removed, err := s.exerciseRepo.DeleteByName(ctx, name)
	if err != nil {
		s.log.Warn("Failed to delete exercise", "nome", name, "error", err)
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}
	if removed == 0 {
		s.log.Warn("Exercise to delete not found", "nome", name)
		return ErrExerciseNotFound
	}
	s.log.Debug("Deleted exercise", "nome", name)
	return nil
}

// AddDescription appends a description to the exercise identified by exerciseID.
func (s *exerciseService) AddDescription(ctx context.Context, exerciseID int64, text string) (*domain.Exercise, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: texto is required", ErrValidationFailed)
	}
	if utf8.RuneCountInString(text) > domain.MaxDescriptionLength {
		return nil, fmt.Errorf("%w: texto exceeds %d characters", ErrValidationFailed, domain.MaxDescriptionLength)
	}

	exercise, err := s.exerciseRepo.AddDescription(ctx, exerciseID, &domain.Description{Text: text})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.log.Warn("Exercise for description not found", "exercicio_id", exerciseID)
			return nil, ErrExerciseNotFound
		}
		s.log.Warn("Failed to add description", "exercicio_id", exerciseID, "error", err)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}
	s.log.Debug("Added description", "exercicio_id", exerciseID, "total", exercise.DescriptionCount())
	return exercise, nil
}
