package model

// swagger:model Lesson
type Lesson struct {
	BaseModel
	SubjectID uint   `gorm:"index;not null" json:"subjectId"`
	Title     string `gorm:"size:200;not null" json:"title"`
}

func (Lesson) TableName() string {
	return "lessons"
}
