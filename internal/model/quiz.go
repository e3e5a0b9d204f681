package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// swagger:model Quiz
type Quiz struct {
	BaseModel
	LessonID    uint   `gorm:"index;not null" json:"lessonId"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"size:500" json:"description,omitempty"` // 可选
}

func (Quiz) TableName() string {
	return "quizzes"
}

// StringArray 以 JSON 存储的字符串数组列
type StringArray []string

func (a StringArray) Value() (driver.Value, error) {
	return json.Marshal(a)
}

func (a *StringArray) Scan(value interface{}) error {
	if value == nil {
		*a = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, a)
	case string:
		return json.Unmarshal([]byte(v), a)
	}
	return errors.New("unsupported type for StringArray")
}

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel
	QuizID   uint        `gorm:"uniqueIndex:idx_quiz_order;not null" json:"quizId"`
	Question string      `gorm:"type:text;not null" json:"question"`
	Options  StringArray `gorm:"type:json" json:"options"`
	// CorrectAnswer 必须等于 Options 中的某一项
	CorrectAnswer string `gorm:"size:500;not null" json:"correctAnswer"`
	OrderIndex    int    `gorm:"uniqueIndex:idx_quiz_order;not null" json:"orderIndex"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel
	QuizID      uint      `gorm:"index;not null" json:"quizId"`
	UserID      uint      `gorm:"index;not null" json:"userId"`
	Score       int       `gorm:"not null" json:"score"`
	CompletedAt time.Time `json:"completedAt"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}
