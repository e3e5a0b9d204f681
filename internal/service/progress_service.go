package service

import (
	"edulearn_backend/internal/model"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/util"

	"gorm.io/gorm"
)

type ProgressService struct {
	ProgressRepo *repository.ProgressRepository
	LessonRepo   *repository.LessonRepository
}

func NewProgressService(progressRepo *repository.ProgressRepository, lessonRepo *repository.LessonRepository) *ProgressService {
	return &ProgressService{
		ProgressRepo: progressRepo,
		LessonRepo:   lessonRepo,
	}
}

// Record 记录学生在课时上的状态。状态只进不退：
// 回退写入保持已存状态并按成功返回，重复写入同状态为幂等空操作
func (s *ProgressService) Record(userID, lessonID uint, status model.ProgressStatus) error {
	if !status.Valid() {
		return util.ErrInvalidProgressState
	}

	if _, err := s.LessonRepo.FindByID(lessonID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return util.ErrLessonNotFound
		}
		return err
	}

	return s.ProgressRepo.Upsert(lessonID, userID, status)
}

// ForUser 返回该学生全部进度行，调用方按课时建索引
func (s *ProgressService) ForUser(userID uint) ([]model.LessonProgress, error) {
	return s.ProgressRepo.FindByUser(userID)
}

// MapByLesson 课时 ID → 进度行的查找表
func (s *ProgressService) MapByLesson(userID uint) (map[uint]model.LessonProgress, error) {
	rows, err := s.ProgressRepo.FindByUser(userID)
	if err != nil {
		return nil, err
	}
	m := make(map[uint]model.LessonProgress, len(rows))
	for _, row := range rows {
		m[row.LessonID] = row
	}
	return m, nil
}

// StatusFor 无记录时视为 not_started
func (s *ProgressService) StatusFor(userID, lessonID uint) (model.ProgressStatus, error) {
	row, err := s.ProgressRepo.FindByKey(lessonID, userID)
	if err == gorm.ErrRecordNotFound {
		return model.ProgressNotStarted, nil
	}
	if err != nil {
		return "", err
	}
	return row.Status, nil
}
