package dto

// ── 科目模块 DTO ──

// CreateSubjectRequest 创建科目请求
type CreateSubjectRequest struct {
	Name      string  `json:"name"       binding:"required,min=2,max=100"`
	Code      string  `json:"code"       binding:"required,min=2,max=20"`
	ClassID   string  `json:"class_id"   binding:"required,uuid"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// UpdateSubjectRequest 更新科目请求
type UpdateSubjectRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	Code      *string `json:"code"       binding:"omitempty,min=2,max=20"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// SubjectListRequest 科目列表查询参数
type SubjectListRequest struct {
	ClassID string `form:"class_id" binding:"omitempty,uuid"`
}

// SubjectResponse 科目信息响应
type SubjectResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Code      string      `json:"code"`
	Class     *ClassBrief `json:"class,omitempty"`
	Teacher   *UserBrief  `json:"teacher,omitempty"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// SubjectBrief 科目简要信息（嵌入课表响应）
type SubjectBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Code string `json:"code,omitempty"`
}
