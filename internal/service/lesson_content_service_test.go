package service

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gorm.io/gorm"
)

func newLessonContentService(t *testing.T) (*LessonContentService, *ProgressService, *model.Lesson, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	_, lesson := seedSubjectWithLesson(t, db, []int{3})

	progressRepo := repository.NewProgressRepository(db)
	lessonRepo := repository.NewLessonRepository(db)
	content := NewLessonContentService(
		repository.NewMaterialRepository(db),
		repository.NewQuizRepository(db),
		lessonRepo,
		progressRepo,
		nil,
		db,
	)
	progress := NewProgressService(progressRepo, lessonRepo)
	return content, progress, lesson, db
}

func newLessonContentServiceWithStorage(t *testing.T) (*LessonContentService, *model.Lesson, string) {
	t.Helper()
	db := newTestDB(t)
	_, lesson := seedSubjectWithLesson(t, db, []int{3})

	storageDir := t.TempDir()
	storage := &StorageService{Provider: &LocalStorageProvider{
		Config: &config.StorageConfig{Type: "local", LocalPath: storageDir},
	}}
	content := NewLessonContentService(
		repository.NewMaterialRepository(db),
		repository.NewQuizRepository(db),
		repository.NewLessonRepository(db),
		repository.NewProgressRepository(db),
		storage,
		db,
	)
	return content, lesson, storageDir
}

func TestLessonContentService_AttachFileRejectsMismatchedContent(t *testing.T) {
	content, lesson, _ := newLessonContentServiceWithStorage(t)

	material, err := content.CreateMaterial(lesson.ID, "Clip", "", model.MaterialVideo)
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}

	// 脚本内容冒充视频的 Content-Type，嗅探结果必须压过客户端声明
	payload := "#!/bin/sh\necho pwned\n"
	_, err = content.AttachMaterialFile(context.Background(), material.ID, "clip.mp4",
		strings.NewReader(payload), int64(len(payload)), "video/mp4")
	if !errors.Is(err, util.ErrInvalidFileContent) {
		t.Fatalf("AttachMaterialFile() error = %v, want ErrInvalidFileContent", err)
	}

	stored, err := content.MaterialRepo.FindByID(material.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if stored.FileURL != "" {
		t.Errorf("FileURL = %q, want empty after rejected upload", stored.FileURL)
	}
}

func TestLessonContentService_AttachFileStoresDocument(t *testing.T) {
	content, lesson, storageDir := newLessonContentServiceWithStorage(t)

	material, err := content.CreateMaterial(lesson.ID, "Handout", "", model.MaterialDocument)
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}

	payload := "Plain text study notes for the fractions lesson."
	stored, err := content.AttachMaterialFile(context.Background(), material.ID, "notes.txt",
		strings.NewReader(payload), int64(len(payload)), "application/octet-stream")
	if err != nil {
		t.Fatalf("AttachMaterialFile() error = %v", err)
	}
	if !strings.HasPrefix(stored.FileURL, "/uploads/materials/") {
		t.Errorf("FileURL = %q, want /uploads/materials/ prefix", stored.FileURL)
	}
	if stored.FileObject == "" {
		t.Fatal("FileObject not recorded")
	}
	if _, err := os.Stat(filepath.Join(storageDir, stored.FileObject)); err != nil {
		t.Errorf("stored object missing on disk: %v", err)
	}
}

func TestLessonContentService_AttachFileReplacesPrevious(t *testing.T) {
	content, lesson, storageDir := newLessonContentServiceWithStorage(t)

	material, err := content.CreateMaterial(lesson.ID, "Handout", "", model.MaterialDocument)
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}

	ctx := context.Background()
	payload := "first version"
	first, err := content.AttachMaterialFile(ctx, material.ID, "notes.txt",
		strings.NewReader(payload), int64(len(payload)), "text/plain")
	if err != nil {
		t.Fatalf("first AttachMaterialFile() error = %v", err)
	}
	firstObject := first.FileObject

	payload = "second version"
	second, err := content.AttachMaterialFile(ctx, material.ID, "notes.txt",
		strings.NewReader(payload), int64(len(payload)), "text/plain")
	if err != nil {
		t.Fatalf("second AttachMaterialFile() error = %v", err)
	}
	if second.FileObject == firstObject {
		t.Fatal("replacement upload reused the previous object name")
	}

	if _, err := os.Stat(filepath.Join(storageDir, firstObject)); !os.IsNotExist(err) {
		t.Errorf("replaced object still on disk (stat err = %v)", err)
	}
	if _, err := os.Stat(filepath.Join(storageDir, second.FileObject)); err != nil {
		t.Errorf("new object missing on disk: %v", err)
	}
}

func TestLessonContentService_MaterialOrderAppended(t *testing.T) {
	content, _, lesson, _ := newLessonContentService(t)

	first, err := content.CreateMaterial(lesson.ID, "Intro", "text one", model.MaterialText)
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}
	second, err := content.CreateMaterial(lesson.ID, "Deep dive", "text two", model.MaterialText)
	if err != nil {
		t.Fatalf("CreateMaterial() error = %v", err)
	}

	if first.OrderIndex != 0 || second.OrderIndex != 1 {
		t.Errorf("order indexes = %d, %d, want 0, 1", first.OrderIndex, second.OrderIndex)
	}

	materials, err := content.MaterialsForLesson(lesson.ID)
	if err != nil {
		t.Fatalf("MaterialsForLesson() error = %v", err)
	}
	if len(materials) != 2 || materials[0].ID != first.ID || materials[1].ID != second.ID {
		t.Fatalf("materials out of order: %+v", materials)
	}
}

func TestLessonContentService_CreateMaterialValidation(t *testing.T) {
	content, _, lesson, _ := newLessonContentService(t)

	if _, err := content.CreateMaterial(lesson.ID, "Clip", "", model.MaterialType("audio")); !errors.Is(err, util.ErrInvalidMaterialType) {
		t.Errorf("invalid type error = %v, want ErrInvalidMaterialType", err)
	}
	if _, err := content.CreateMaterial(lesson.ID, "  ", "", model.MaterialText); !errors.Is(err, util.ErrTitleRequired) {
		t.Errorf("blank title error = %v, want ErrTitleRequired", err)
	}
	if _, err := content.CreateMaterial(9999, "Intro", "", model.MaterialText); !errors.Is(err, util.ErrLessonNotFound) {
		t.Errorf("unknown lesson error = %v, want ErrLessonNotFound", err)
	}
}

func TestLessonContentService_CreateQuestion(t *testing.T) {
	content, _, lesson, _ := newLessonContentService(t)

	quiz, err := content.CreateQuiz(lesson.ID, "Checkpoint", "")
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	q1, err := content.CreateQuestion(quiz.ID, "2+2?", []string{"3", "4"}, "4")
	if err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}
	q2, err := content.CreateQuestion(quiz.ID, "3+3?", []string{"5", "6"}, "6")
	if err != nil {
		t.Fatalf("CreateQuestion() error = %v", err)
	}
	if q1.OrderIndex != 0 || q2.OrderIndex != 1 {
		t.Errorf("order indexes = %d, %d, want 0, 1", q1.OrderIndex, q2.OrderIndex)
	}

	if _, err := content.CreateQuestion(quiz.ID, "2+2?", []string{"3", "5"}, "4"); !errors.Is(err, util.ErrAnswerNotInOptions) {
		t.Errorf("answer outside options error = %v, want ErrAnswerNotInOptions", err)
	}

	questions, err := content.QuestionsForQuiz(quiz.ID)
	if err != nil {
		t.Fatalf("QuestionsForQuiz() error = %v", err)
	}
	if len(questions) != 2 {
		t.Fatalf("got %d questions, want 2", len(questions))
	}
	if len(questions[0].Options) != 2 || questions[0].Options[1] != "4" {
		t.Errorf("options round-trip failed: %+v", questions[0].Options)
	}
}

func TestLessonContentService_SubmitAttemptMarksProgress(t *testing.T) {
	content, progress, lesson, _ := newLessonContentService(t)

	quiz, err := content.CreateQuiz(lesson.ID, "Checkpoint", "")
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	attempt, err := content.SubmitAttempt(quiz.ID, 42, 80)
	if err != nil {
		t.Fatalf("SubmitAttempt() error = %v", err)
	}
	if attempt.Score != 80 {
		t.Errorf("score = %d, want 80", attempt.Score)
	}

	status, err := progress.StatusFor(42, lesson.ID)
	if err != nil {
		t.Fatalf("StatusFor() error = %v", err)
	}
	if status != model.ProgressCompleted {
		t.Errorf("status = %q, want %q after attempt", status, model.ProgressCompleted)
	}
}

func TestLessonContentService_SubmitAttemptHistory(t *testing.T) {
	content, _, lesson, _ := newLessonContentService(t)

	quiz, err := content.CreateQuiz(lesson.ID, "Checkpoint", "")
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	for _, score := range []int{60, 90} {
		if _, err := content.SubmitAttempt(quiz.ID, 42, score); err != nil {
			t.Fatalf("SubmitAttempt(%d) error = %v", score, err)
		}
	}

	attempts, err := content.AttemptsForUser(quiz.ID, 42)
	if err != nil {
		t.Fatalf("AttemptsForUser() error = %v", err)
	}
	if len(attempts) != 2 {
		t.Fatalf("got %d attempts, want 2", len(attempts))
	}
}

func TestLessonContentService_SubmitAttemptValidation(t *testing.T) {
	content, _, lesson, _ := newLessonContentService(t)

	quiz, err := content.CreateQuiz(lesson.ID, "Checkpoint", "")
	if err != nil {
		t.Fatalf("CreateQuiz() error = %v", err)
	}

	if _, err := content.SubmitAttempt(quiz.ID, 42, -1); !errors.Is(err, util.ErrNegativeScore) {
		t.Errorf("negative score error = %v, want ErrNegativeScore", err)
	}
	if _, err := content.SubmitAttempt(9999, 42, 50); !errors.Is(err, util.ErrQuizNotFound) {
		t.Errorf("unknown quiz error = %v, want ErrQuizNotFound", err)
	}
}
