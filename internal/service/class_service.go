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

// ── 班级模块业务错误 ──

var (
	ErrClassNotFound     = errors.New("班级不存在")
	ErrClassTeacherBad   = errors.New("班主任引用无效")
	ErrClassHasTimetable = errors.New("班级仍有课表项，禁止删除")
)

// ClassService 班级业务接口
type ClassService interface {
	Create(ctx context.Context, req *dto.CreateClassRequest, callerID string) (*dto.ClassResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ClassResponse, error)
	List(ctx context.Context) ([]dto.ClassResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateClassRequest, callerID string) (*dto.ClassResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type classService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewClassService 创建 ClassService 实例
func NewClassService(repo *repository.Repository, logger *zap.Logger) ClassService {
	return &classService{repo: repo, logger: logger}
}

func (s *classService) Create(ctx context.Context, req *dto.CreateClassRequest, callerID string) (*dto.ClassResponse, error) {
	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	class := &model.Class{
		Name:      req.Name,
		TeacherID: req.TeacherID,
	}
	class.CreatedBy = &callerID
	class.UpdatedBy = &callerID

	if err := s.repo.Class.Create(ctx, class); err != nil {
		s.logger.Error("创建班级失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toClassResponse(class), nil
}

func (s *classService) GetByID(ctx context.Context, id string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toClassResponse(class), nil
}

func (s *classService) List(ctx context.Context) ([]dto.ClassResponse, error) {
	classes, err := s.repo.Class.List(ctx)
	if err != nil {
		s.logger.Error("列出班级失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	result := make([]dto.ClassResponse, 0, len(classes))
	for i := range classes {
		result = append(result, *toClassResponse(&classes[i]))
	}
	return result, nil
}

func (s *classService) Update(ctx context.Context, id string, req *dto.UpdateClassRequest, callerID string) (*dto.ClassResponse, error) {
	class, err := s.repo.Class.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrClassNotFound
		}
		s.logger.Error("查询班级失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	if req.Name != nil {
		class.Name = *req.Name
	}
	if req.TeacherID != nil {
		if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
			return nil, err
		}
		class.TeacherID = req.TeacherID
	}
	class.UpdatedBy = &callerID

	if err := s.repo.Class.Update(ctx, class); err != nil {
		s.logger.Error("更新班级失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toClassResponse(class), nil
}

func (s *classService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Class.GetByID(ctx, id); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrClassNotFound
		}
		return pkgerrors.AsStoreUnavailable(err)
	}

	// 仍被课表引用的班级不可删除
	slots, err := s.repo.TimetableSlot.List(ctx, repository.SlotFilter{ClassID: id})
	if err != nil {
		return pkgerrors.AsStoreUnavailable(err)
	}
	if len(slots) > 0 {
		return ErrClassHasTimetable
	}

	if err := s.repo.Class.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除班级失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.AsStoreUnavailable(err)
	}
	return nil
}

// checkTeacher 校验班主任引用存在且角色为教师；nil 表示暂不指派
func (s *classService) checkTeacher(ctx context.Context, teacherID *string) error {
	if teacherID == nil {
		return nil
	}
	teacher, err := s.repo.User.GetByID(ctx, *teacherID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrClassTeacherBad
		}
		return pkgerrors.AsStoreUnavailable(err)
	}
	if teacher.Role != model.RoleTeacher {
		return ErrClassTeacherBad
	}
	return nil
}

// toClassResponse 将班级模型映射为响应
func toClassResponse(class *model.Class) *dto.ClassResponse {
	resp := &dto.ClassResponse{
		ID:        class.ClassID,
		Name:      class.Name,
		CreatedAt: class.CreatedAt.Format(time.RFC3339),
		UpdatedAt: class.UpdatedAt.Format(time.RFC3339),
	}
	if class.Teacher != nil {
		resp.Teacher = &dto.UserBrief{ID: class.Teacher.UserID, Name: class.Teacher.Name}
	}
	return resp
}
