package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) FindByID(id uint) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, id).Error
	return &lesson, err
}

// FindBySubject 按创建顺序返回学科下的课时
func (r *LessonRepository) FindBySubject(subjectID uint) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.
		Where("subject_id = ?", subjectID).
		Order("id").
		Find(&lessons).Error
	return lessons, err
}
