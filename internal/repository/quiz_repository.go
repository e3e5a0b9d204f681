package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) FindByID(id uint) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, id).Error
	return &quiz, err
}

func (r *QuizRepository) FindByLesson(lessonID uint) ([]model.Quiz, error) {
	var quizzes []model.Quiz
	err := r.DB.
		Where("lesson_id = ?", lessonID).
		Order("id").
		Find(&quizzes).Error
	return quizzes, err
}

func (r *QuizRepository) CreateQuestion(question *model.QuizQuestion) error {
	return r.DB.Create(question).Error
}

func (r *QuizRepository) FindQuestionsByQuiz(quizID uint) ([]model.QuizQuestion, error) {
	var questions []model.QuizQuestion
	err := r.DB.
		Where("quiz_id = ?", quizID).
		Order("order_index").
		Find(&questions).Error
	return questions, err
}

func (r *QuizRepository) CountQuestions(quizID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.QuizQuestion{}).
		Where("quiz_id = ?", quizID).
		Count(&count).Error
	return count, err
}

func (r *QuizRepository) FindAttempts(quizID, userID uint) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.DB.
		Where("quiz_id = ? AND user_id = ?", quizID, userID).
		Order("completed_at DESC").
		Find(&attempts).Error
	return attempts, err
}
