package api

import (
	"alcyxob/exercise-log/internal/domain"
	"alcyxob/exercise-log/internal/logger"
	"alcyxob/exercise-log/internal/service"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// failingExerciseService returns a storage error from every operation.
// The real service logs those failures itself.
type failingExerciseService struct{}

func (failingExerciseService) storageErr() error {
	return fmt.Errorf("%w: connection reset", service.ErrStorage)
}

func (s failingExerciseService) CreateExercise(context.Context, service.CreateExerciseInput) (*domain.Exercise, error) {
	return nil, s.storageErr()
}

func (s failingExerciseService) ListExercises(context.Context) ([]domain.Exercise, error) {
	return nil, s.storageErr()
}

func (s failingExerciseService) GetExerciseByName(context.Context, string) (*domain.Exercise, error) {
	return nil, s.storageErr()
}

func (s failingExerciseService) DeleteExerciseByName(context.Context, string) error {
	return s.storageErr()
}

func (s failingExerciseService) AddDescription(context.Context, int64, string) (*domain.Exercise, error) {
	return nil, s.storageErr()
}

func TestHandlersDoNotRelogServiceFailures(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.DebugLevel)
	h := NewExerciseHandler(failingExerciseService{}, &logger.Logger{SugaredLogger: zap.New(core).Sugar()})

	r := gin.New()
	r.POST("/exercicio", h.AddExercise)
	r.GET("/exercicios", h.ListExercises)
	r.GET("/exercicio", h.GetExercise)
	r.DELETE("/exercicio", h.DeleteExercise)
	r.POST("/descricao", h.AddDescription)

	responses := []struct {
		name string
		code int
	}{
		{"add exercise", doForm(t, r, http.MethodPost, "/exercicio", url.Values{"nome": {"Supino"}}).Code},
		{"list", doRequest(t, r, http.MethodGet, "/exercicios").Code},
		{"get", doRequest(t, r, http.MethodGet, "/exercicio?nome=Supino").Code},
		{"delete", doRequest(t, r, http.MethodDelete, "/exercicio?nome=Supino").Code},
		{"add description", doForm(t, r, http.MethodPost, "/descricao", url.Values{"exercicio_id": {"1"}, "texto": {"x"}}).Code},
	}
	for _, resp := range responses {
		if resp.code != http.StatusBadRequest {
			t.Fatalf("%s: status=%d, want %d", resp.name, resp.code, http.StatusBadRequest)
		}
	}

	if n := logs.Len(); n != 0 {
		t.Fatalf("expected no handler log entries for service failures, got %d: %v", n, logs.All())
	}
}
