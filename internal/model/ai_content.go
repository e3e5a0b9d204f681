package model

type AIContentType string

const (
	AIContentQuiz       AIContentType = "quiz"
	AIContentFlashcards AIContentType = "flashcards"
)

func (t AIContentType) Valid() bool {
	return t == AIContentQuiz || t == AIContentFlashcards
}

// AIGeneratedContent 一次生成调用落库的条目批次，创建后不再变更，
// 按课时/学科累积历史
// swagger:model AIGeneratedContent
type AIGeneratedContent struct {
	UUIDBase
	SubjectID uint          `gorm:"index;not null" json:"subjectId"`
	LessonID  uint          `gorm:"index;not null" json:"lessonId"`
	Type      AIContentType `gorm:"size:20;not null" json:"type"`
	// Content 校验通过后的条目列表（JSON 序列化）
	Content string `gorm:"type:longtext;not null" json:"content"`
}

func (AIGeneratedContent) TableName() string {
	return "ai_generated_content"
}
