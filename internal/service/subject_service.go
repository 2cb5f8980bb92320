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

// ── 科目模块业务错误 ──

var (
	ErrSubjectNotFound      = errors.New("科目不存在")
	ErrSubjectClassNotFound = errors.New("科目所属班级不存在")
	ErrSubjectTeacherBad    = errors.New("任课教师引用无效")
	ErrSubjectHasTimetable  = errors.New("科目仍有课表项，禁止删除")
)

// SubjectService 科目业务接口
type SubjectService interface {
	Create(ctx context.Context, req *dto.CreateSubjectRequest, callerID string) (*dto.SubjectResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error)
	List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest, callerID string) (*dto.SubjectResponse, error)
	Delete(ctx context.Context, id string, callerID string) error
}

type subjectService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewSubjectService 创建 SubjectService 实例
func NewSubjectService(repo *repository.Repository, logger *zap.Logger) SubjectService {
	return &subjectService{repo: repo, logger: logger}
}

func (s *subjectService) Create(ctx context.Context, req *dto.CreateSubjectRequest, callerID string) (*dto.SubjectResponse, error) {
	if _, err := s.repo.Class.GetByID(ctx, req.ClassID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrSubjectClassNotFound
		}
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
		return nil, err
	}

	subject := &model.Subject{
		Name:      req.Name,
		Code:      req.Code,
		ClassID:   req.ClassID,
		TeacherID: req.TeacherID,
	}
	subject.CreatedBy = &callerID
	subject.UpdatedBy = &callerID

	if err := s.repo.Subject.Create(ctx, subject); err != nil {
		s.logger.Error("创建科目失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) GetByID(ctx context.Context, id string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) List(ctx context.Context, req *dto.SubjectListRequest) ([]dto.SubjectResponse, error) {
	subjects, err := s.repo.Subject.List(ctx, req.ClassID)
	if err != nil {
		s.logger.Error("列出科目失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	result := make([]dto.SubjectResponse, 0, len(subjects))
	for i := range subjects {
		result = append(result, *toSubjectResponse(&subjects[i]))
	}
	return result, nil
}

func (s *subjectService) Update(ctx context.Context, id string, req *dto.UpdateSubjectRequest, callerID string) (*dto.SubjectResponse, error) {
	subject, err := s.repo.Subject.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrSubjectNotFound
		}
		s.logger.Error("查询科目失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	if req.Name != nil {
		subject.Name = *req.Name
	}
	if req.Code != nil {
		subject.Code = *req.Code
	}
	if req.TeacherID != nil {
		if err := s.checkTeacher(ctx, req.TeacherID); err != nil {
			return nil, err
		}
		subject.TeacherID = req.TeacherID
	}
	subject.UpdatedBy = &callerID

	if err := s.repo.Subject.Update(ctx, subject); err != nil {
		s.logger.Error("更新科目失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toSubjectResponse(subject), nil
}

func (s *subjectService) Delete(ctx context.Context, id string, callerID string) error {
	if _, err := s.repo.Subject.GetByID(ctx, id); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrSubjectNotFound
		}
		return pkgerrors.AsStoreUnavailable(err)
	}

	// 仍被课表引用的科目不可删除
	slots, err := s.repo.TimetableSlot.List(ctx, repository.SlotFilter{SubjectID: id})
	if err != nil {
		return pkgerrors.AsStoreUnavailable(err)
	}
	if len(slots) > 0 {
		return ErrSubjectHasTimetable
	}

	if err := s.repo.Subject.Delete(ctx, id, callerID); err != nil {
		s.logger.Error("删除科目失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.AsStoreUnavailable(err)
	}
	return nil
}

// checkTeacher 校验任课教师引用；nil 表示暂不指派
func (s *subjectService) checkTeacher(ctx context.Context, teacherID *string) error {
	if teacherID == nil {
		return nil
	}
	teacher, err := s.repo.User.GetByID(ctx, *teacherID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrSubjectTeacherBad
		}
		return pkgerrors.AsStoreUnavailable(err)
	}
	if teacher.Role != model.RoleTeacher {
		return ErrSubjectTeacherBad
	}
	return nil
}

// toSubjectResponse 将科目模型映射为响应
func toSubjectResponse(subject *model.Subject) *dto.SubjectResponse {
	resp := &dto.SubjectResponse{
		ID:        subject.SubjectID,
		Name:      subject.Name,
		Code:      subject.Code,
		CreatedAt: subject.CreatedAt.Format(time.RFC3339),
		UpdatedAt: subject.UpdatedAt.Format(time.RFC3339),
	}
	if subject.Class != nil {
		resp.Class = &dto.ClassBrief{ID: subject.Class.ClassID, Name: subject.Class.Name}
	}
	if subject.Teacher != nil {
		resp.Teacher = &dto.UserBrief{ID: subject.Teacher.UserID, Name: subject.Teacher.Name}
	}
	return resp
}
