package dto

// ── 教室模块 DTO ──

// CreateRoomRequest 创建教室请求
type CreateRoomRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Capacity int    `json:"capacity" binding:"omitempty,min=1,max=1000"`
	Location string `json:"location" binding:"omitempty,max=200"`
}

// UpdateRoomRequest 更新教室请求
type UpdateRoomRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=2,max=100"`
	Capacity *int    `json:"capacity" binding:"omitempty,min=1,max=1000"`
	Location *string `json:"location" binding:"omitempty,max=200"`
}

// RoomResponse 教室信息响应
type RoomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Capacity  int    `json:"capacity"`
	Location  string `json:"location,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// RoomBrief 教室简要信息（嵌入课表响应）
type RoomBrief struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
