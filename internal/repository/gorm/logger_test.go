package gorm

import (
	"alcyxob/exercise-log/internal/domain"
	"alcyxob/exercise-log/internal/logger"
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

func newObservedLogger() (*logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	return &logger.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestDuplicateNameIsNotLoggedAsQueryFailure(t *testing.T) {
	log, logs := newObservedLogger()
	db, err := ConnectDB(DriverSQLite, ":memory:", log)
	if err != nil {
		t.Fatalf("connect sqlite: %v", err)
	}
	t.Cleanup(func() { _ = DisconnectDB(db) })
	repo := NewGormExerciseRepository(db)

	seedExercise(t, repo, "Supino")
	if _, err := repo.Create(context.Background(), &domain.Exercise{Name: "Supino"}); err == nil {
		t.Fatal("expected conflict")
	}
	if _, err := repo.GetByName(context.Background(), "Ausente"); err == nil {
		t.Fatal("expected not found")
	}

	if n := logs.FilterLevelExact(zap.ErrorLevel).Len(); n != 0 {
		t.Fatalf("expected no error entries, got %d: %v", n, logs.All())
	}
}

func TestTraceLogsUnexpectedErrors(t *testing.T) {
	log, logs := newObservedLogger()
	l := newZapGormLogger(log)
	fc := func() (string, int64) { return "SELECT 1", 0 }

	l.Trace(context.Background(), time.Now(), fc, errors.New("disk I/O error"))
	l.Trace(context.Background(), time.Now(), fc, gorm.ErrDuplicatedKey)
	l.Trace(context.Background(), time.Now(), fc, gorm.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now(), fc, nil)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d: %v", len(entries), entries)
	}
	if entries[0].Level != zap.ErrorLevel || entries[0].ContextMap()["sql"] != "SELECT 1" {
		t.Fatalf("unexpected entry: %+v", entries[0])
	}
	if entries[0].ContextMap()["component"] != "gorm" {
		t.Fatalf("missing component field: %v", entries[0].ContextMap())
	}
}

func TestTraceReportsSlowQueries(t *testing.T) {
	log, logs := newObservedLogger()
	l := newZapGormLogger(log)
	fc := func() (string, int64) { return "SELECT 1", 1 }

	l.Trace(context.Background(), time.Now().Add(-2*time.Second), fc, nil)

	if n := logs.FilterLevelExact(zap.WarnLevel).FilterMessage("Slow query").Len(); n != 1 {
		t.Fatalf("expected 1 slow query entry, got %d", n)
	}
}

func TestTraceSilentModeLogsNothing(t *testing.T) {
	log, logs := newObservedLogger()
	l := newZapGormLogger(log).LogMode(gormLogger.Silent)

	l.Trace(context.Background(), time.Now(), func() (string, int64) { return "SELECT 1", 0 }, errors.New("boom"))
	if logs.Len() != 0 {
		t.Fatalf("expected silence, got %v", logs.All())
	}
}
