package gorm

import (
	"alcyxob/exercise-log/internal/domain"
	"time"
)

// exerciseRecord maps to the exercicio table.
type exerciseRecord struct {
	ID          int64     `gorm:"column:pk_exercicio;primaryKey;autoIncrement"`
	Name        string    `gorm:"column:nome;type:varchar(140);not null;uniqueIndex"`
	Series      int       `gorm:"column:series"`
	Repetitions int       `gorm:"column:repeticoes"`
	Weight      float64   `gorm:"column:quilos"`
	InsertedAt  time.Time `gorm:"column:data_insercao"`
}

func (exerciseRecord) TableName() string { return "exercicio" }

// descriptionRecord maps to the descricao table. The Exercise association only
// exists so the migration emits the foreign key; it is never loaded or saved.
type descriptionRecord struct {
	ID          int64           `gorm:"column:id;primaryKey;autoIncrement"`
	Text        string          `gorm:"column:texto;type:varchar(4000)"`
	InsertedAt  time.Time       `gorm:"column:data_insercao"`
	ExerciseRef int64           `gorm:"column:exercicio;not null;index"`
	Exercise    *exerciseRecord `gorm:"foreignKey:ExerciseRef;references:ID;constraint:OnDelete:CASCADE"`
}

func (descriptionRecord) TableName() string { return "descricao" }

func newExerciseRecord(ex *domain.Exercise) exerciseRecord {
	return exerciseRecord{
		ID:          ex.ID,
		Name:        ex.Name,
		Series:      ex.Series,
		Repetitions: ex.Repetitions,
		Weight:      ex.Weight,
		InsertedAt:  ex.InsertedAt,
	}
}

func (r exerciseRecord) toDomain(descriptions []descriptionRecord) *domain.Exercise {
	ex := &domain.Exercise{
		ID:           r.ID,
		Name:         r.Name,
		Series:       r.Series,
		Repetitions:  r.Repetitions,
		Weight:       r.Weight,
		InsertedAt:   r.InsertedAt,
		Descriptions: make([]domain.Description, 0, len(descriptions)),
	}
	for _, d := range descriptions {
		ex.Descriptions = append(ex.Descriptions, d.toDomain())
	}
	return ex
}

func (d descriptionRecord) toDomain() domain.Description {
	return domain.Description{
		ID:          d.ID,
		Text:        d.Text,
		InsertedAt:  d.InsertedAt,
		ExerciseRef: d.ExerciseRef,
	}
}
