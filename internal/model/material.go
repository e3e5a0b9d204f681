package model

type MaterialType string

const (
	MaterialText     MaterialType = "text"
	MaterialVideo    MaterialType = "video"
	MaterialDocument MaterialType = "document"
)

// swagger:model Material
type Material struct {
	BaseModel
	LessonID uint         `gorm:"uniqueIndex:idx_lesson_order;not null" json:"lessonId"`
	Title    string       `gorm:"size:200;not null" json:"title"`
	Content  string       `gorm:"type:text" json:"content"`
	Type     MaterialType `gorm:"size:20;not null" json:"type"`
	// OrderIndex 追加式排序，创建时取课时下已有材料数
	OrderIndex int `gorm:"uniqueIndex:idx_lesson_order;not null" json:"orderIndex"`

	// 附件（文档/视频上传后由存储层回填）
	FileURL string `gorm:"size:512" json:"fileUrl,omitempty"`
	// FileObject 存储层对象名，替换上传时用于清理旧对象
	FileObject      string  `gorm:"size:512" json:"-"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"` // 视频时长，ffmpeg 探测
}

func (Material) TableName() string {
	return "materials"
}

func (t MaterialType) Valid() bool {
	switch t {
	case MaterialText, MaterialVideo, MaterialDocument:
		return true
	}
	return false
}
