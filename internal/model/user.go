package model

type UserRole string

const (
	Student UserRole = "student"
	Teacher UserRole = "teacher"
)

// swagger:model User
type User struct {
	BaseModel
	Username string   `gorm:"size:100;uniqueIndex;not null" json:"username"`
	Password string   `gorm:"size:100;not null" json:"-"`
	FullName string   `gorm:"size:100;not null" json:"fullName"`
	Age      int      `gorm:"not null" json:"age"`
	Role     UserRole `gorm:"size:20;default:'student'" json:"role"` // 创建后不可变更
}

func (User) TableName() string {
	return "users"
}
