package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type AIContentRepository struct {
	DB *gorm.DB
}

func NewAIContentRepository(db *gorm.DB) *AIContentRepository {
	return &AIContentRepository{DB: db}
}

func (r *AIContentRepository) Create(content *model.AIGeneratedContent) error {
	return r.DB.Create(content).Error
}

// FindByLesson 课时维度的生成历史，新的在前
func (r *AIContentRepository) FindByLesson(lessonID uint) ([]model.AIGeneratedContent, error) {
	var rows []model.AIGeneratedContent
	err := r.DB.
		Where("lesson_id = ?", lessonID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// FindBySubject 学科维度的生成历史，新的在前
func (r *AIContentRepository) FindBySubject(subjectID uint) ([]model.AIGeneratedContent, error) {
	var rows []model.AIGeneratedContent
	err := r.DB.
		Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}
