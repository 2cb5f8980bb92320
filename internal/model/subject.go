package model

// Subject 科目表 — 对应 subjects
type Subject struct {
	SubjectID string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"subject_id"`
	Name      string  `gorm:"type:varchar(100);not null"                     json:"name"` // 如 "Mathematics"
	Code      string  `gorm:"type:varchar(20);not null"                      json:"code"` // 如 "MTH101"
	ClassID   string  `gorm:"type:uuid;not null"                             json:"class_id"`
	TeacherID *string `gorm:"type:uuid"                                      json:"teacher_id,omitempty"` // 任课教师
	SoftDeleteModel

	// 关联
	Class   *Class `gorm:"foreignKey:ClassID;references:ClassID"   json:"class,omitempty"`
	Teacher *User  `gorm:"foreignKey:TeacherID;references:UserID"  json:"teacher,omitempty"`
}

// TableName 指定表名
func (Subject) TableName() string { return "subjects" }
