package repository

import (
	"edulearn_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindByUser(userID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) FindByKey(lessonID, userID uint) (*model.LessonProgress, error) {
	var row model.LessonProgress
	err := r.DB.
		Where("lesson_id = ? AND user_id = ?", lessonID, userID).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// Upsert 按 (lesson_id, user_id) 写入状态，只进不退：
// 已存状态不低于新状态时保持不变。幂等，可重复调用
func (r *ProgressRepository) Upsert(lessonID, userID uint, status model.ProgressStatus) error {
	return r.upsertTx(r.DB, lessonID, userID, status)
}

// UpsertTx 在外部事务内执行同样的写入，供测验提交与进度联动使用
func (r *ProgressRepository) UpsertTx(tx *gorm.DB, lessonID, userID uint, status model.ProgressStatus) error {
	return r.upsertTx(tx, lessonID, userID, status)
}

func (r *ProgressRepository) upsertTx(db *gorm.DB, lessonID, userID uint, status model.ProgressStatus) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var existing model.LessonProgress
		err := tx.
			Where("lesson_id = ? AND user_id = ?", lessonID, userID).
			First(&existing).Error

		if err == gorm.ErrRecordNotFound {
			row := model.LessonProgress{
				LessonID: lessonID,
				UserID:   userID,
				Status:   status,
			}
			return tx.Create(&row).Error
		}
		if err != nil {
			return err
		}

		if status.Rank() <= existing.Status.Rank() {
			return nil
		}

		return tx.Model(&existing).Update("status", status).Error
	})
}
