package model

// swagger:model Subject
type Subject struct {
	BaseModel
	Name      string         `gorm:"size:200;not null" json:"name"`
	TeacherID uint           `gorm:"index;not null" json:"teacherId"`
	Grades    []SubjectGrade `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE" json:"grades"`
}

func (Subject) TableName() string {
	return "subjects"
}

// GradeLevels 返回该学科覆盖的年级段列表
func (s *Subject) GradeLevels() []int {
	grades := make([]int, 0, len(s.Grades))
	for _, g := range s.Grades {
		grades = append(grades, g.Grade)
	}
	return grades
}

// SubjectGrade 学科与年级段的关联行，年级集合以关系表建模，
// 便于按年级做 JOIN 查询
type SubjectGrade struct {
	ID        uint `gorm:"primaryKey;autoIncrement" json:"-"`
	SubjectID uint `gorm:"uniqueIndex:idx_subject_grade;not null" json:"-"`
	Grade     int  `gorm:"uniqueIndex:idx_subject_grade;not null" json:"grade"`
}

func (SubjectGrade) TableName() string {
	return "subject_grades"
}
