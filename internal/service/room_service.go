package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
)

// ── 教室模块业务错误 ──

var (
	ErrRoomNotFound     = errors.New("教室不存在")
	ErrRoomHasTimetable = errors.New("教室仍有课表项，禁止删除")
)

// RoomService 教室业务接口
type RoomService interface {
	Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error)
	GetByID(ctx context.Context, id string) (*dto.RoomResponse, error)
	List(ctx context.Context) ([]dto.RoomResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type roomService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewRoomService 创建 RoomService 实例
func NewRoomService(repo *repository.Repository, logger *zap.Logger) RoomService {
	return &roomService{repo: repo, logger: logger}
}

func (s *roomService) Create(ctx context.Context, req *dto.CreateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room := &model.Room{
		Name:     req.Name,
		Capacity: req.Capacity,
		Location: req.Location,
	}
	if room.Capacity == 0 {
		room.Capacity = 30
	}
	room.CreatedBy = &callerID
	room.UpdatedBy = &callerID

	if err := s.repo.Room.Create(ctx, room); err != nil {
		s.logger.Error("创建教室失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toRoomResponse(room), nil
}

func (s *roomService) GetByID(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toRoomResponse(room), nil
}

func (s *roomService) List(ctx context.Context) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx)
	if err != nil {
		s.logger.Error("列出教室失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	result := make([]dto.RoomResponse, 0, len(rooms))
	for i := range rooms {
		result = append(result, *toRoomResponse(&rooms[i]))
	}
	return result, nil
}

func (s *roomService) Update(ctx context.Context, id string, req *dto.UpdateRoomRequest, callerID string) (*dto.RoomResponse, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询教室失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	if req.Name != nil {
		room.Name = *req.Name
	}
	if req.Capacity != nil {
		room.Capacity = *req.Capacity
	}
	if req.Location != nil {
		room.Location = *req.Location
	}
	room.UpdatedBy = &callerID

	if err := s.repo.Room.Update(ctx, room); err != nil {
		s.logger.Error("更新教室失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toRoomResponse(room), nil
}

func (s *roomService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Room.GetByID(ctx, id); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrRoomNotFound
		}
		return pkgerrors.AsStoreUnavailable(err)
	}

	// 仍被课表引用的教室不可删除
	slots, err := s.repo.TimetableSlot.List(ctx, repository.SlotFilter{RoomID: id})
	if err != nil {
		return pkgerrors.AsStoreUnavailable(err)
	}
	if len(slots) > 0 {
		return ErrRoomHasTimetable
	}

	if err := s.repo.Room.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除教室失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.AsStoreUnavailable(err)
	}
	return nil
}

// toRoomResponse 将教室模型映射为响应
func toRoomResponse(room *model.Room) *dto.RoomResponse {
	return &dto.RoomResponse{
		ID:        room.RoomID,
		Name:      room.Name,
		Capacity:  room.Capacity,
		Location:  room.Location,
		CreatedAt: room.CreatedAt.Format(time.RFC3339),
		UpdatedAt: room.UpdatedAt.Format(time.RFC3339),
	}
}
