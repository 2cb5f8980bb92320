package model

// ── 星期 ──

const (
	DayMon = "MON"
	DayTue = "TUE"
	DayWed = "WED"
	DayThu = "THU"
	DayFri = "FRI"
	DaySat = "SAT"
)

// WeekDays 课表覆盖的星期（周一至周六），按展示顺序
var WeekDays = []string{DayMon, DayTue, DayWed, DayThu, DayFri, DaySat}

// ── 学期 ──

const (
	Term1 = "TERM_1"
	Term2 = "TERM_2"
	Term3 = "TERM_3"
)

// ── 课表项类型 ──

const (
	SlotKindClass = "CLASS"
	SlotKindExam  = "EXAM"
)

// TimetableSlot 课表项表 — 对应 timetable_slots
//
// start_time/end_time 为零填充 "HH:MM" 字符串，语义为左闭右开区间
// [start, end)：08:00-09:00 与 09:00-10:00 相邻但不冲突。
// 冲突只在同一 (academic_year, term, day_of_week) 范围内评估。
type TimetableSlot struct {
	SlotID       string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"slot_id"`
	ClassID      string  `gorm:"type:uuid;not null"                             json:"class_id"`
	SubjectID    string  `gorm:"type:uuid;not null"                             json:"subject_id"`
	TeacherID    string  `gorm:"type:uuid;not null"                             json:"teacher_id"`
	RoomID       *string `gorm:"type:uuid"                                      json:"room_id,omitempty"` // NULL 表示未分配教室
	DayOfWeek    string  `gorm:"type:varchar(3);not null"                       json:"day_of_week"`
	StartTime    string  `gorm:"type:varchar(5);not null"                       json:"start_time"` // "08:00"
	EndTime      string  `gorm:"type:varchar(5);not null"                       json:"end_time"`   // "09:00"
	AcademicYear string  `gorm:"type:varchar(9);not null"                       json:"academic_year"` // 如 "2025"
	Term         string  `gorm:"type:varchar(10);not null"                      json:"term"`
	Kind         string  `gorm:"type:varchar(10);not null;default:'CLASS'"      json:"kind"`
	Locked       bool    `gorm:"not null;default:false"                         json:"locked"` // 锁定后常规路径禁止改删
	BaseModel

	// 关联
	Class   *Class   `gorm:"foreignKey:ClassID;references:ClassID"     json:"class,omitempty"`
	Subject *Subject `gorm:"foreignKey:SubjectID;references:SubjectID" json:"subject,omitempty"`
	Teacher *User    `gorm:"foreignKey:TeacherID;references:UserID"    json:"teacher,omitempty"`
	Room    *Room    `gorm:"foreignKey:RoomID;references:RoomID"       json:"room,omitempty"`
}

// TableName 指定表名
func (TimetableSlot) TableName() string { return "timetable_slots" }
