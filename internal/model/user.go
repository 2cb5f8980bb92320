package model

// ── 用户角色 ──

const (
	RoleAdmin   = "ADMIN"
	RoleTeacher = "TEACHER"
	RoleStudent = "STUDENT"
	RoleParent  = "PARENT"
)

// User 用户表 — 对应 users
type User struct {
	UserID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name         string  `gorm:"type:varchar(100);not null"                     json:"name"`
	Email        string  `gorm:"type:varchar(255);not null"                     json:"email"`
	PasswordHash string  `gorm:"type:varchar(255);not null"                     json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:'STUDENT'"    json:"role"`
	ClassID      *string `gorm:"type:uuid"                                      json:"class_id,omitempty"` // 仅学生
	SoftDeleteModel

	// 关联
	Class *Class `gorm:"foreignKey:ClassID;references:ClassID" json:"class,omitempty"`
}

// TableName 指定表名
func (User) TableName() string { return "users" }
