package api

import "alcyxob/exercise-log/internal/domain"

// --- Response DTOs ---

// DescriptionView is one entry of an exercise's description list.
type DescriptionView struct {
	Text string `json:"texto"`
}

// ExerciseView is the full projection of an exercise: attributes plus descriptions.
type ExerciseView struct {
	ID                int64             `json:"id"`
	Name              string            `json:"nome"`
	Series            int               `json:"series"`
	Repetitions       int               `json:"repeticoes"`
	Weight            float64           `json:"quilos"`
	TotalDescriptions int               `json:"total_descricoes"`
	Descriptions      []DescriptionView `json:"descricoes"`
}

// ExerciseSummary is the lighter projection used by the listing: no id, no descriptions.
type ExerciseSummary struct {
	Name        string  `json:"nome"`
	Series      int     `json:"series"`
	Repetitions int     `json:"repeticoes"`
	Weight      float64 `json:"quilos"`
}

// ExerciseListView wraps the listing.
type ExerciseListView struct {
	Exercises []ExerciseSummary `json:"exercicios"`
}

// DeleteExerciseResponse confirms a removal; id carries the removed exercise's name.
type DeleteExerciseResponse struct {
	Message string `json:"mesage"`
	Name    string `json:"id"`
}

// ErrorResponse is the body of every failed request. The "mesage" key is kept
// as-is because existing clients read it.
type ErrorResponse struct {
	Message string `json:"mesage"`
}

// MapExerciseToView converts a domain.Exercise aggregate to its ExerciseView.
func MapExerciseToView(ex *domain.Exercise) ExerciseView {
	if ex == nil {
		return ExerciseView{Descriptions: []DescriptionView{}}
	}
	descriptions := make([]DescriptionView, len(ex.Descriptions))
	for i, d := range ex.Descriptions {
		descriptions[i] = DescriptionView{Text: d.Text}
	}
	return ExerciseView{
		ID:                ex.ID,
		Name:              ex.Name,
		Series:            ex.Series,
		Repetitions:       ex.Repetitions,
		Weight:            ex.Weight,
		TotalDescriptions: len(descriptions),
		Descriptions:      descriptions,
	}
}

// MapExercisesToListView converts a slice of domain.Exercise to the listing view.
func MapExercisesToListView(exercises []domain.Exercise) ExerciseListView {
	summaries := make([]ExerciseSummary, len(exercises))
	for i, ex := range exercises {
		summaries[i] = ExerciseSummary{
			Name:        ex.Name,
			Series:      ex.Series,
			Repetitions: ex.Repetitions,
			Weight:      ex.Weight,
		}
	}
	return ExerciseListView{Exercises: summaries}
}
