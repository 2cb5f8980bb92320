package model

// Room 教室表 — 对应 rooms
type Room struct {
	RoomID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"` // 如 "Room 101"
	Capacity int    `gorm:"type:smallint;not null;default:30"              json:"capacity"`
	Location string `gorm:"type:varchar(200)"                              json:"location,omitempty"` // 如 "Building A, First Floor"
	SoftDeleteModel
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
