package dto

// ── 班级模块 DTO ──

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	Name      string  `json:"name"       binding:"required,min=2,max=100"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// UpdateClassRequest 更新班级请求
type UpdateClassRequest struct {
	Name      *string `json:"name"       binding:"omitempty,min=2,max=100"`
	TeacherID *string `json:"teacher_id" binding:"omitempty,uuid"`
}

// ClassResponse 班级信息响应
type ClassResponse struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Teacher   *UserBrief `json:"teacher,omitempty"` // 班主任
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

// ClassBrief 班级简要信息（嵌入其他响应）
type ClassBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
