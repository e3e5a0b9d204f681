package service

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/pkg/database"
	"edulearn_backend/pkg/logger"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 每个测试一个独立的 sqlite 库，表结构与生产迁移一致
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	logger.Log = zap.NewNop()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedSubjectWithLesson(t *testing.T, db *gorm.DB, grades []int) (*model.Subject, *model.Lesson) {
	t.Helper()

	subject := &model.Subject{Name: "Mathematics", TeacherID: 1}
	for _, g := range grades {
		subject.Grades = append(subject.Grades, model.SubjectGrade{Grade: g})
	}
	if err := db.Create(subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	lesson := &model.Lesson{SubjectID: subject.ID, Title: "Fractions"}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("seed lesson: %v", err)
	}
	return subject, lesson
}
