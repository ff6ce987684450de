package gorm

import (
	"alcyxob/exercise-log/internal/domain"
	"alcyxob/exercise-log/internal/repository"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// gormExerciseRepository implements repository.ExerciseRepository on a relational database.
type gormExerciseRepository struct {
	db *gorm.DB
}

// NewGormExerciseRepository creates a new Exercise repository backed by gorm.
func NewGormExerciseRepository(db *gorm.DB) repository.ExerciseRepository {
	return &gormExerciseRepository{db: db}
}

// Create inserts a new exercise into the database.
func (r *gormExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise == nil || exercise.Name == "" {
		return nil, errors.New("exercise name is required")
	}

	rec := newExerciseRecord(exercise)
	rec.ID = 0
	if rec.InsertedAt.IsZero() {
		rec.InsertedAt = time.Now().UTC()
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rec).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	return rec.toDomain(nil), nil
}

// List retrieves every exercise with its descriptions.
func (r *gormExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	db := r.db.WithContext(ctx)

	var recs []exerciseRecord
	if err := db.Order("pk_exercicio ASC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	if len(recs) == 0 {
		return []domain.Exercise{}, nil
	}

	ids := make([]int64, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	var descs []descriptionRecord
	if err := db.Where("exercicio IN ?", ids).Order("id ASC").Find(&descs).Error; err != nil {
		return nil, fmt.Errorf("list descriptions: %w", err)
	}
	byExercise := make(map[int64][]descriptionRecord, len(recs))
	for _, d := range descs {
		byExercise[d.ExerciseRef] = append(byExercise[d.ExerciseRef], d)
	}

	exercises := make([]domain.Exercise, 0, len(recs))
	for _, rec := range recs {
		exercises = append(exercises, *rec.toDomain(byExercise[rec.ID]))
	}
	return exercises, nil
}

// GetByID retrieves an exercise aggregate by its primary key.
func (r *gormExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	return r.loadAggregate(r.db.WithContext(ctx), "pk_exercicio = ?", id)
}

// GetByName retrieves an exercise aggregate by its unique name.
func (r *gormExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return r.loadAggregate(r.db.WithContext(ctx), "nome = ?", name)
}

// DeleteByName removes the named exercise together with its descriptions.
func (r *gormExerciseRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	var removed int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rec exerciseRecord
		err := tx.Select("pk_exercicio").Where("nome = ?", name).Take(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		// The FK cascades too; deleting here keeps connections without FK enforcement consistent.
		if err := tx.Where("exercicio = ?", rec.ID).Delete(&descriptionRecord{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&exerciseRecord{}, rec.ID)
		if res.Error != nil {
			return res.Error
		}
		removed = res.RowsAffected
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("delete exercise %q: %w", name, err)
	}
	return removed, nil
}

// AddDescription inserts a description for an existing exercise and returns the reloaded aggregate.
func (r *gormExerciseRepository) AddDescription(ctx context.Context, exerciseID int64, description *domain.Description) (*domain.Exercise, error) {
	if description == nil {
		return nil, errors.New("description is required")
	}

	var out *domain.Exercise
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var owner exerciseRecord
		if err := tx.Select("pk_exercicio").Where("pk_exercicio = ?", exerciseID).Take(&owner).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrNotFound
			}
			return err
		}

		rec := descriptionRecord{
			Text:        description.Text,
			InsertedAt:  description.InsertedAt,
			ExerciseRef: owner.ID,
		}
		if rec.InsertedAt.IsZero() {
			rec.InsertedAt = time.Now().UTC()
		}
		if err := tx.Omit(clause.Associations).Create(&rec).Error; err != nil {
			return err
		}

		ex, err := r.loadAggregate(tx, "pk_exercicio = ?", owner.ID)
		if err != nil {
			return err
		}
		out = ex
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("add description to exercise %d: %w", exerciseID, err)
	}
	return out, nil
}

// loadAggregate fetches one exercise and joins its descriptions through the foreign key.
func (r *gormExerciseRepository) loadAggregate(db *gorm.DB, query string, arg interface{}) (*domain.Exercise, error) {
	var rec exerciseRecord
	if err := db.Where(query, arg).Take(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	descs, err := descriptionsFor(db, rec.ID)
	if err != nil {
		return nil, err
	}
	return rec.toDomain(descs), nil
}

func descriptionsFor(db *gorm.DB, exerciseID int64) ([]descriptionRecord, error) {
	var descs []descriptionRecord
	if err := db.Where("exercicio = ?", exerciseID).Order("id ASC").Find(&descs).Error; err != nil {
		return nil, err
	}
	return descs, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
