package api

import (
	"alcyxob/exercise-log/internal/logger"
	"alcyxob/exercise-log/internal/service"
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
)

// Defaults applied when the optional creation fields are absent.
const (
	DefaultSeries      = 3
	DefaultRepetitions = 10
	DefaultWeight      = 25.5
)

// Fixed client-facing messages.
const (
	msgExerciseConflict        = "Exercicio de mesmo nome já salvo na base"
	msgStorageFailure          = "Não foi possível salvar novo item"
	msgExerciseNotFound        = "Exercicio não encontrado na base :/"
	msgDescriptionOwnerMissing = "Exercicio não encontrado na base"
	msgExerciseRemoved         = "Exercicio removido"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
	log             *logger.Logger
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService, log *logger.Logger) *ExerciseHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &ExerciseHandler{exerciseService: exerciseService, log: log.With("handler", "ExerciseHandler")}
}

// --- Request DTOs ---

// CreateExerciseRequest is bound from form fields (or JSON with the same keys).
type CreateExerciseRequest struct {
	Name        string   `form:"nome" json:"nome" binding:"required"`
	Series      *int     `form:"series" json:"series" binding:"omitempty,min=0"`
	Repetitions *int     `form:"repeticoes" json:"repeticoes" binding:"omitempty,min=0"`
	Weight      *float64 `form:"quilos" json:"quilos" binding:"omitempty,min=0"`
}

// toInput fills absent optional fields with their defaults.
func (r CreateExerciseRequest) toInput() service.CreateExerciseInput {
	in := service.CreateExerciseInput{
		Name:        r.Name,
		Series:      DefaultSeries,
		Repetitions: DefaultRepetitions,
		Weight:      DefaultWeight,
	}
	if r.Series != nil {
		in.Series = *r.Series
	}
	if r.Repetitions != nil {
		in.Repetitions = *r.Repetitions
	}
	if r.Weight != nil {
		in.Weight = *r.Weight
	}
	return in
}

// ExerciseQuery identifies an exercise by name in the query string.
type ExerciseQuery struct {
	Name string `form:"nome" binding:"required"`
}

// AddDescriptionRequest is bound from form fields (or JSON with the same keys).
// ExerciseID is a pointer so that 0 counts as present; an id with no stored
// exercise is reported as not found by the service.
type AddDescriptionRequest struct {
	ExerciseID *int64 `form:"exercicio_id" json:"exercicio_id" binding:"required"`
	Text       string `form:"texto" json:"texto" binding:"required,max=4000"`
}

// --- Handler Methods ---

// AddExercise handles POST /exercicio.
func (h *ExerciseHandler) AddExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warn("Invalid exercise payload", "error", err)
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), req.toInput())
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseConflict):
			abortWithError(c, http.StatusConflict, msgExerciseConflict)
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, msgStorageFailure)
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToView(exercise))
}

// ListExercises handles GET /exercicios.
func (h *ExerciseHandler) ListExercises(c *gin.Context) {
	exercises, err := h.exerciseService.ListExercises(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusBadRequest, msgStorageFailure)
		return
	}
	c.JSON(http.StatusOK, MapExercisesToListView(exercises))
}

// GetExercise handles GET /exercicio?nome=.
func (h *ExerciseHandler) GetExercise(c *gin.Context) {
	var query ExerciseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.GetExerciseByName(c.Request.Context(), query.Name)
	if err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, msgExerciseNotFound)
		} else {
			abortWithError(c, http.StatusBadRequest, msgStorageFailure)
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToView(exercise))
}

// DeleteExercise handles DELETE /exercicio?nome=.
// Some clients encode the name twice, so it is decoded twice more after query parsing.
func (h *ExerciseHandler) DeleteExercise(c *gin.Context) {
	var query ExerciseQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	name := unescapeTwice(query.Name)

	if err := h.exerciseService.DeleteExerciseByName(c.Request.Context(), name); err != nil {
		if errors.Is(err, service.ErrExerciseNotFound) {
			abortWithError(c, http.StatusNotFound, msgExerciseNotFound)
		} else {
			abortWithError(c, http.StatusBadRequest, msgStorageFailure)
		}
		return
	}

	c.JSON(http.StatusOK, DeleteExerciseResponse{Message: msgExerciseRemoved, Name: name})
}

// AddDescription handles POST /descricao.
func (h *ExerciseHandler) AddDescription(c *gin.Context) {
	var req AddDescriptionRequest
	if err := c.ShouldBind(&req); err != nil {
		h.log.Warn("Invalid description payload", "error", err)
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.exerciseService.AddDescription(c.Request.Context(), *req.ExerciseID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExerciseNotFound):
			abortWithError(c, http.StatusNotFound, msgDescriptionOwnerMissing)
		case errors.Is(err, service.ErrValidationFailed):
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		default:
			abortWithError(c, http.StatusBadRequest, msgStorageFailure)
		}
		return
	}

	c.JSON(http.StatusOK, MapExerciseToView(exercise))
}

// unescapeTwice percent-decodes s two times, stopping at the last decode that succeeded.
func unescapeTwice(s string) string {
	for i := 0; i < 2; i++ {
		decoded, err := url.PathUnescape(s)
		if err != nil {
			break
		}
		s = decoded
	}
	return s
}
