package mongo

import (
	"alcyxob/exercise-log/internal/domain"
	"alcyxob/exercise-log/internal/repository"
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	exerciseCollectionName    = "exercicio"
	descriptionCollectionName = "descricao"
)

type exerciseDocument struct {
	ID          int64     `bson:"_id"`
	Name        string    `bson:"nome"`
	Series      int       `bson:"series"`
	Repetitions int       `bson:"repeticoes"`
	Weight      float64   `bson:"quilos"`
	InsertedAt  time.Time `bson:"data_insercao"`
}

type descriptionDocument struct {
	ID          int64     `bson:"_id"`
	Text        string    `bson:"texto"`
	InsertedAt  time.Time `bson:"data_insercao"`
	ExerciseRef int64     `bson:"exercicio"`
}

// mongoExerciseRepository implements repository.ExerciseRepository
type mongoExerciseRepository struct {
	exercises    *mongo.Collection
	descriptions *mongo.Collection
	counters     *mongo.Collection
}

// NewMongoExerciseRepository creates a new Exercise repository backed by MongoDB.
// EnsureExerciseIndexes must have run for the name uniqueness to be enforced.
func NewMongoExerciseRepository(db *mongo.Database) repository.ExerciseRepository {
	return &mongoExerciseRepository{
		exercises:    db.Collection(exerciseCollectionName),
		descriptions: db.Collection(descriptionCollectionName),
		counters:     db.Collection(countersCollectionName),
	}
}

// Create inserts a new exercise into the database.
func (r *mongoExerciseRepository) Create(ctx context.Context, exercise *domain.Exercise) (*domain.Exercise, error) {
	if exercise == nil || exercise.Name == "" {
		return nil, errors.New("exercise name is required")
	}

	// Numeric ids keep the wire format identical to the relational backend
	id, err := nextSequence(ctx, r.counters, exerciseCollectionName)
	if err != nil {
		return nil, fmt.Errorf("allocate exercise id: %w", err)
	}
	doc := exerciseDocument{
		ID:          id,
		Name:        exercise.Name,
		Series:      exercise.Series,
		Repetitions: exercise.Repetitions,
		Weight:      exercise.Weight,
		InsertedAt:  exercise.InsertedAt,
	}
	if doc.InsertedAt.IsZero() { // Default to insertion time
		doc.InsertedAt = time.Now().UTC()
	}

	if _, err := r.exercises.InsertOne(ctx, doc); err != nil {
		// Check for duplicate key error (unique index on nome)
		if mongo.IsDuplicateKeyError(err) {
			return nil, repository.ErrConflict
		}
		return nil, fmt.Errorf("insert exercise: %w", err)
	}
	return doc.toDomain(nil), nil
}

// List retrieves every exercise with its descriptions, ordered by id.
func (r *mongoExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	cursor, err := r.exercises.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	defer cursor.Close(ctx)

	// Decode all documents found by the cursor
	var docs []exerciseDocument
	if err = cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode exercises: %w", err)
	}
	if len(docs) == 0 {
		return []domain.Exercise{}, nil
	}

	ids := make([]int64, len(docs))
	for i, d := range docs {
		ids[i] = d.ID
	}
	// One query for every exercise's descriptions, grouped in memory below
	descs, err := r.findDescriptions(ctx, bson.M{"exercicio": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	byExercise := make(map[int64][]descriptionDocument, len(docs))
	for _, d := range descs {
		byExercise[d.ExerciseRef] = append(byExercise[d.ExerciseRef], d)
	}

	exercises := make([]domain.Exercise, 0, len(docs))
	for _, d := range docs {
		exercises = append(exercises, *d.toDomain(byExercise[d.ID]))
	}
	return exercises, nil
}

// GetByID retrieves an exercise aggregate by its id.
func (r *mongoExerciseRepository) GetByID(ctx context.Context, id int64) (*domain.Exercise, error) {
	return r.loadAggregate(ctx, bson.M{"_id": id})
}

// GetByName retrieves an exercise aggregate by its unique name.
func (r *mongoExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	return r.loadAggregate(ctx, bson.M{"nome": name})
}

// DeleteByName removes the named exercise's descriptions and then the exercise itself.
// A failure part way leaves the exercise in place, so a retry finishes the job.
func (r *mongoExerciseRepository) DeleteByName(ctx context.Context, name string) (int64, error) {
	// Resolve the id first; descriptions reference it, not the name
	var doc exerciseDocument
	err := r.exercises.FindOne(ctx, bson.M{"nome": name}, options.FindOne().SetProjection(bson.M{"_id": 1})).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("find exercise %q: %w", name, err)
	}

	// Cascade before removing the owner so no description is left orphaned
	if _, err := r.descriptions.DeleteMany(ctx, bson.M{"exercicio": doc.ID}); err != nil {
		return 0, fmt.Errorf("delete descriptions of exercise %d: %w", doc.ID, err)
	}

	result, err := r.exercises.DeleteOne(ctx, bson.M{"_id": doc.ID})
	if err != nil {
		return 0, fmt.Errorf("delete exercise %q: %w", name, err)
	}
	return result.DeletedCount, nil
}

// AddDescription appends a description to an existing exercise.
func (r *mongoExerciseRepository) AddDescription(ctx context.Context, exerciseID int64, description *domain.Description) (*domain.Exercise, error) {
	if description == nil {
		return nil, errors.New("description is required")
	}

	// The owner must exist before anything is written
	count, err := r.exercises.CountDocuments(ctx, bson.M{"_id": exerciseID}, options.Count().SetLimit(1))
	if err != nil {
		return nil, fmt.Errorf("find exercise %d: %w", exerciseID, err)
	}
	if count == 0 {
		return nil, repository.ErrNotFound
	}

	id, err := nextSequence(ctx, r.counters, descriptionCollectionName)
	if err != nil {
		return nil, fmt.Errorf("allocate description id: %w", err)
	}
	doc := descriptionDocument{
		ID:          id,
		Text:        description.Text,
		InsertedAt:  description.InsertedAt,
		ExerciseRef: exerciseID,
	}
	if doc.InsertedAt.IsZero() { // Default to insertion time
		doc.InsertedAt = time.Now().UTC()
	}
	if _, err := r.descriptions.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert description: %w", err)
	}

	return r.GetByID(ctx, exerciseID)
}

func (r *mongoExerciseRepository) loadAggregate(ctx context.Context, filter bson.M) (*domain.Exercise, error) {
	var doc exerciseDocument
	if err := r.exercises.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	descs, err := r.findDescriptions(ctx, bson.M{"exercicio": doc.ID})
	if err != nil {
		return nil, err
	}
	return doc.toDomain(descs), nil
}

func (r *mongoExerciseRepository) findDescriptions(ctx context.Context, filter bson.M) ([]descriptionDocument, error) {
	cursor, err := r.descriptions.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find descriptions: %w", err)
	}
	defer cursor.Close(ctx)

	var descs []descriptionDocument
	if err = cursor.All(ctx, &descs); err != nil {
		return nil, fmt.Errorf("decode descriptions: %w", err)
	}
	return descs, nil
}

func (d exerciseDocument) toDomain(descs []descriptionDocument) *domain.Exercise {
	ex := &domain.Exercise{
		ID:           d.ID,
		Name:         d.Name,
		Series:       d.Series,
		Repetitions:  d.Repetitions,
		Weight:       d.Weight,
		InsertedAt:   d.InsertedAt,
		Descriptions: make([]domain.Description, 0, len(descs)),
	}
	for _, desc := range descs {
		ex.Descriptions = append(ex.Descriptions, domain.Description{
			ID:          desc.ID,
			Text:        desc.Text,
			InsertedAt:  desc.InsertedAt,
			ExerciseRef: desc.ExerciseRef,
		})
	}
	return ex
}

// EnsureExerciseIndexes creates necessary indexes for the exercicio and descricao collections.
func EnsureExerciseIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(exerciseCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "nome", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("exercicio_nome_unique"),
	})
	if err != nil {
		return fmt.Errorf("create %s indexes: %w", exerciseCollectionName, err)
	}

	_, err = db.Collection(descriptionCollectionName).Indexes().CreateOne(ctx, mongo.IndexModel{
		// Serves the foreign-key lookup that rebuilds an exercise's description list
		Keys:    bson.D{{Key: "exercicio", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index(),
	})
	if err != nil {
		return fmt.Errorf("create %s indexes: %w", descriptionCollectionName, err)
	}
	return nil
}
