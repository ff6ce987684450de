package domain

import "time"

// MaxDescriptionLength is the maximum number of characters a description text may hold.
const MaxDescriptionLength = 4000

// Description is a free-text annotation owned by exactly one Exercise.
type Description struct {
	ID          int64
	Text        string
	InsertedAt  time.Time
	ExerciseRef int64 // Owning Exercise, never zero once stored
}
