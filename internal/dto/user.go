package dto

// ── 用户模块 DTO ──

// CreateUserRequest 创建用户请求（管理员操作）
type CreateUserRequest struct {
	Name     string  `json:"name"     binding:"required,min=2,max=100"`
	Email    string  `json:"email"    binding:"required,email"`
	Password string  `json:"password" binding:"required,min=8,max=64"`
	Role     string  `json:"role"     binding:"required,oneof=ADMIN TEACHER STUDENT PARENT"`
	ClassID  *string `json:"class_id" binding:"omitempty,uuid"` // 仅学生
}

// UpdateUserRequest 更新用户请求
type UpdateUserRequest struct {
	Name    *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Email   *string `json:"email"    binding:"omitempty,email"`
	Role    *string `json:"role"     binding:"omitempty,oneof=ADMIN TEACHER STUDENT PARENT"`
	ClassID *string `json:"class_id" binding:"omitempty,uuid"`
}

// UserListRequest 用户列表查询参数
type UserListRequest struct {
	Role    string `form:"role"     binding:"omitempty,oneof=ADMIN TEACHER STUDENT PARENT"`
	ClassID string `form:"class_id" binding:"omitempty,uuid"`
}

// UserResponse 用户信息响应
type UserResponse struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Role      string      `json:"role"`
	ClassID   *string     `json:"class_id,omitempty"`
	Class     *ClassBrief `json:"class,omitempty"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
}

// UserBrief 用户简要信息（嵌入其他响应）
type UserBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
