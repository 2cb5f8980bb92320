package model

// Class 班级表 — 对应 classes
type Class struct {
	ClassID   string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"class_id"`
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"` // 如 "Grade 10 A"
	TeacherID *string `gorm:"type:uuid"                                      json:"teacher_id,omitempty"` // 班主任
	SoftDeleteModel

	// 关联
	Teacher *User `gorm:"foreignKey:TeacherID;references:UserID" json:"teacher,omitempty"`
}

// TableName 指定表名
func (Class) TableName() string { return "classes" }
