package service

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"errors"
	"testing"
)

func newProgressService(t *testing.T) (*ProgressService, *model.Lesson) {
	t.Helper()
	db := newTestDB(t)
	_, lesson := seedSubjectWithLesson(t, db, []int{3})
	svc := NewProgressService(repository.NewProgressRepository(db), repository.NewLessonRepository(db))
	return svc, lesson
}

func TestProgressService_DefaultNotStarted(t *testing.T) {
	svc, lesson := newProgressService(t)

	status, err := svc.StatusFor(42, lesson.ID)
	if err != nil {
		t.Fatalf("StatusFor() error = %v", err)
	}
	if status != model.ProgressNotStarted {
		t.Errorf("status = %q, want %q", status, model.ProgressNotStarted)
	}
}

func TestProgressService_RecordIdempotent(t *testing.T) {
	svc, lesson := newProgressService(t)

	for i := 0; i < 2; i++ {
		if err := svc.Record(42, lesson.ID, model.ProgressCompleted); err != nil {
			t.Fatalf("Record() #%d error = %v", i+1, err)
		}
	}

	rows, err := svc.ForUser(42)
	if err != nil {
		t.Fatalf("ForUser() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Status != model.ProgressCompleted {
		t.Errorf("status = %q, want %q", rows[0].Status, model.ProgressCompleted)
	}
}

func TestProgressService_ForwardOnly(t *testing.T) {
	svc, lesson := newProgressService(t)

	if err := svc.Record(42, lesson.ID, model.ProgressCompleted); err != nil {
		t.Fatalf("Record(completed) error = %v", err)
	}
	// 回退写入按成功处理，但不覆盖更高状态
	if err := svc.Record(42, lesson.ID, model.ProgressInProgress); err != nil {
		t.Fatalf("Record(in_progress) error = %v", err)
	}

	status, err := svc.StatusFor(42, lesson.ID)
	if err != nil {
		t.Fatalf("StatusFor() error = %v", err)
	}
	if status != model.ProgressCompleted {
		t.Errorf("status = %q, want %q after downgrade attempt", status, model.ProgressCompleted)
	}
}

func TestProgressService_Upgrade(t *testing.T) {
	svc, lesson := newProgressService(t)

	if err := svc.Record(42, lesson.ID, model.ProgressInProgress); err != nil {
		t.Fatalf("Record(in_progress) error = %v", err)
	}
	if err := svc.Record(42, lesson.ID, model.ProgressCompleted); err != nil {
		t.Fatalf("Record(completed) error = %v", err)
	}

	status, err := svc.StatusFor(42, lesson.ID)
	if err != nil {
		t.Fatalf("StatusFor() error = %v", err)
	}
	if status != model.ProgressCompleted {
		t.Errorf("status = %q, want %q", status, model.ProgressCompleted)
	}
}

func TestProgressService_InvalidStatus(t *testing.T) {
	svc, lesson := newProgressService(t)

	err := svc.Record(42, lesson.ID, model.ProgressStatus("done"))
	if !errors.Is(err, util.ErrInvalidProgressState) {
		t.Errorf("Record(done) error = %v, want ErrInvalidProgressState", err)
	}
}

func TestProgressService_UnknownLesson(t *testing.T) {
	svc, _ := newProgressService(t)

	err := svc.Record(42, 9999, model.ProgressCompleted)
	if !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("Record(unknown lesson) error = %v, want ErrLessonNotFound", err)
	}
}

func TestProgressService_UsersIsolated(t *testing.T) {
	svc, lesson := newProgressService(t)

	if err := svc.Record(1, lesson.ID, model.ProgressCompleted); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	status, err := svc.StatusFor(2, lesson.ID)
	if err != nil {
		t.Fatalf("StatusFor() error = %v", err)
	}
	if status != model.ProgressNotStarted {
		t.Errorf("other user's status = %q, want %q", status, model.ProgressNotStarted)
	}
}

func TestProgressService_MapByLesson(t *testing.T) {
	svc, lesson := newProgressService(t)

	if err := svc.Record(42, lesson.ID, model.ProgressInProgress); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	m, err := svc.MapByLesson(42)
	if err != nil {
		t.Fatalf("MapByLesson() error = %v", err)
	}
	row, ok := m[lesson.ID]
	if !ok {
		t.Fatalf("lesson %d missing from map", lesson.ID)
	}
	if row.Status != model.ProgressInProgress {
		t.Errorf("status = %q, want %q", row.Status, model.ProgressInProgress)
	}
}
