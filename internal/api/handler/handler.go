package handler

import "github.com/TinaTech-Developers/school-management-system/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Auth      *AuthHandler
	User      *UserHandler
	Class     *ClassHandler
	Subject   *SubjectHandler
	Room      *RoomHandler
	Timetable *TimetableHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:      NewAuthHandler(svc.Auth),
		User:      NewUserHandler(svc.User),
		Class:     NewClassHandler(svc.Class),
		Subject:   NewSubjectHandler(svc.Subject),
		Room:      NewRoomHandler(svc.Room),
		Timetable: NewTimetableHandler(svc.Timetable, svc.TimetableView, svc.Export),
	}
}
