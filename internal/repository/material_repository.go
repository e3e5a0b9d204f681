package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type MaterialRepository struct {
	DB *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{DB: db}
}

func (r *MaterialRepository) Create(material *model.Material) error {
	return r.DB.Create(material).Error
}

func (r *MaterialRepository) FindByID(id uint) (*model.Material, error) {
	var material model.Material
	err := r.DB.First(&material, id).Error
	return &material, err
}

func (r *MaterialRepository) FindByLesson(lessonID uint) ([]model.Material, error) {
	var materials []model.Material
	err := r.DB.
		Where("lesson_id = ?", lessonID).
		Order("order_index").
		Find(&materials).Error
	return materials, err
}

func (r *MaterialRepository) CountByLesson(lessonID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Material{}).
		Where("lesson_id = ?", lessonID).
		Count(&count).Error
	return count, err
}

func (r *MaterialRepository) Update(material *model.Material) error {
	return r.DB.Save(material).Error
}
