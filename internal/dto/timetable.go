package dto

// ── 课表模块 DTO ──
//
// 创建与更新共用 SlotRequest：更新为全字段替换（非局部合并），
// 与创建走完全相同的校验与冲突检测路径。

// SlotRequest 创建/更新课表项请求
type SlotRequest struct {
	ClassID      string  `json:"class_id"      binding:"required,uuid"`
	SubjectID    string  `json:"subject_id"    binding:"required,uuid"`
	TeacherID    string  `json:"teacher_id"    binding:"required,uuid"`
	RoomID       *string `json:"room_id"       binding:"omitempty,uuid"` // 缺省表示未分配教室
	DayOfWeek    string  `json:"day_of_week"   binding:"required,oneof=MON TUE WED THU FRI SAT"`
	StartTime    string  `json:"start_time"    binding:"required"` // "08:00"
	EndTime      string  `json:"end_time"      binding:"required"` // "09:00"
	AcademicYear string  `json:"academic_year" binding:"required,min=4,max=9"`
	Term         string  `json:"term"          binding:"required,oneof=TERM_1 TERM_2 TERM_3"`
	Kind         string  `json:"kind"          binding:"omitempty,oneof=CLASS EXAM"`
	Locked       bool    `json:"locked"`
}

// SlotListRequest 课表项列表查询参数（所有过滤字段可任意组合）
type SlotListRequest struct {
	ClassID      string `form:"class_id"      binding:"omitempty,uuid"`
	TeacherID    string `form:"teacher_id"    binding:"omitempty,uuid"`
	RoomID       string `form:"room_id"       binding:"omitempty,uuid"`
	AcademicYear string `form:"academic_year" binding:"omitempty,max=9"`
	Term         string `form:"term"          binding:"omitempty,oneof=TERM_1 TERM_2 TERM_3"`
	DayOfWeek    string `form:"day_of_week"   binding:"omitempty,oneof=MON TUE WED THU FRI SAT"`
}

// SlotResponse 课表项信息响应
type SlotResponse struct {
	ID           string        `json:"id"`
	Class        *ClassBrief   `json:"class,omitempty"`
	Subject      *SubjectBrief `json:"subject,omitempty"`
	Teacher      *UserBrief    `json:"teacher,omitempty"`
	Room         *RoomBrief    `json:"room,omitempty"`
	ClassID      string        `json:"class_id"`
	SubjectID    string        `json:"subject_id"`
	TeacherID    string        `json:"teacher_id"`
	RoomID       *string       `json:"room_id,omitempty"`
	DayOfWeek    string        `json:"day_of_week"`
	StartTime    string        `json:"start_time"`
	EndTime      string        `json:"end_time"`
	AcademicYear string        `json:"academic_year"`
	Term         string        `json:"term"`
	Kind         string        `json:"kind"`
	Locked       bool          `json:"locked"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

// ── 日视图 ──

// 日视图条目类型
const (
	DayItemSlot = "slot"
	DayItemFree = "free"
)

// DayScheduleItem 日视图条目：课表项或派生的空闲时段
type DayScheduleItem struct {
	Type string        `json:"type"` // slot | free
	Slot *SlotResponse `json:"slot,omitempty"`
	From string        `json:"from,omitempty"` // 仅 free：空闲开始 "HH:MM"
	To   string        `json:"to,omitempty"`   // 仅 free：空闲结束 "HH:MM"
}

// DayScheduleRequest 日视图查询参数
type DayScheduleRequest struct {
	DayOfWeek    string `form:"day_of_week"   binding:"required,oneof=MON TUE WED THU FRI SAT"`
	ClassID      string `form:"class_id"      binding:"omitempty,uuid"`
	TeacherID    string `form:"teacher_id"    binding:"omitempty,uuid"`
	AcademicYear string `form:"academic_year" binding:"required,max=9"`
	Term         string `form:"term"          binding:"required,oneof=TERM_1 TERM_2 TERM_3"`
}

// DayScheduleResponse 日视图响应
type DayScheduleResponse struct {
	Day     string            `json:"day"`
	Items   []DayScheduleItem `json:"items"`
	Current *SlotResponse     `json:"current,omitempty"` // 正在进行的课（仅查询当天时有值）
}
