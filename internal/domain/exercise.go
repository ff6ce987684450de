// internal/domain/exercise.go
package domain

import "time"

// Exercise represents a named workout entry with its set/rep/weight attributes.
type Exercise struct {
	ID          int64
	Name        string // Unique across all exercises
	Series      int
	Repetitions int
	Weight      float64 // Kilos
	InsertedAt  time.Time

	// Descriptions is loaded by the repository from the foreign key on Description,
	// ordered by insertion (id). Never persisted as part of the exercise row.
	Descriptions []Description
}

// DescriptionCount returns how many descriptions the loaded aggregate carries.
func (e *Exercise) DescriptionCount() int {
	if e == nil {
		return 0
	}
	return len(e.Descriptions)
}
