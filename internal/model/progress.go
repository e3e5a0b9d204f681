package model

type ProgressStatus string

const (
	ProgressNotStarted ProgressStatus = "not_started"
	ProgressInProgress ProgressStatus = "in_progress"
	ProgressCompleted  ProgressStatus = "completed"
)

// Rank 状态在前进序中的位置，用于只进不退的写入策略
func (s ProgressStatus) Rank() int {
	switch s {
	case ProgressNotStarted:
		return 0
	case ProgressInProgress:
		return 1
	case ProgressCompleted:
		return 2
	}
	return -1
}

func (s ProgressStatus) Valid() bool {
	return s.Rank() >= 0
}

// LessonProgress 每个学生在每个课时上的完成状态，(lesson_id, user_id) 唯一
type LessonProgress struct {
	BaseModel
	LessonID uint           `gorm:"uniqueIndex:idx_lesson_user;not null" json:"lessonId"`
	UserID   uint           `gorm:"uniqueIndex:idx_lesson_user;not null" json:"userId"`
	Status   ProgressStatus `gorm:"size:20;not null;default:'not_started'" json:"status"`
}

func (LessonProgress) TableName() string {
	return "progress"
}
