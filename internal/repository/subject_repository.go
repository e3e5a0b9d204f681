package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type SubjectRepository struct {
	DB *gorm.DB
}

func NewSubjectRepository(db *gorm.DB) *SubjectRepository {
	return &SubjectRepository{DB: db}
}

// Create 学科与其年级行在同一事务内落库
func (r *SubjectRepository) Create(subject *model.Subject) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(subject).Error
	})
}

func (r *SubjectRepository) FindByID(id uint) (*model.Subject, error) {
	var subject model.Subject
	err := r.DB.Preload("Grades").First(&subject, id).Error
	return &subject, err
}

// FindByGrade 返回年级集合包含 grade 的学科，按创建顺序
func (r *SubjectRepository) FindByGrade(grade int) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.
		Joins("JOIN subject_grades ON subject_grades.subject_id = subjects.id").
		Where("subject_grades.grade = ?", grade).
		Preload("Grades").
		Order("subjects.id").
		Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepository) FindByTeacher(teacherID uint) ([]model.Subject, error) {
	var subjects []model.Subject
	err := r.DB.
		Where("teacher_id = ?", teacherID).
		Preload("Grades").
		Order("id").
		Find(&subjects).Error
	return subjects, err
}
