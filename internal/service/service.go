package service

import (
	"go.uber.org/zap"

	"github.com/TinaTech-Developers/school-management-system/config"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
	"github.com/TinaTech-Developers/school-management-system/pkg/jwt"
	"github.com/TinaTech-Developers/school-management-system/pkg/redis"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Auth          AuthService
	User          UserService
	Class         ClassService
	Subject       SubjectService
	Room          RoomService
	Timetable     TimetableService
	TimetableView TimetableViewService
	Export        ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:          NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:          NewUserService(repo, logger),
		Class:         NewClassService(repo, logger),
		Subject:       NewSubjectService(repo, logger),
		Room:          NewRoomService(repo, logger),
		Timetable:     NewTimetableService(repo, logger),
		TimetableView: NewTimetableViewService(repo, logger),
		Export:        NewExportService(repo, logger),
	}
}
