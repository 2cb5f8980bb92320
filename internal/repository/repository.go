package repository

import "gorm.io/gorm"

// Repository 所有 Repository 的聚合入口
type Repository struct {
	User          UserRepository
	Class         ClassRepository
	Subject       SubjectRepository
	Room          RoomRepository
	TimetableSlot TimetableSlotRepository
}

// NewRepository 创建 Repository 聚合
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Class:         NewClassRepo(db),
		Subject:       NewSubjectRepo(db),
		Room:          NewRoomRepo(db),
		TimetableSlot: NewTimetableSlotRepo(db),
	}
}
