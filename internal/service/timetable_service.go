package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
)

// ── 课表模块业务错误 ──

var (
	ErrSlotNotFound        = errors.New("课表项不存在")
	ErrSlotLocked          = errors.New("课表项已锁定，禁止修改或删除")
	ErrSlotTimeInvalid     = errors.New("时间格式无效，应为零填充 HH:MM")
	ErrSlotTimeRange       = errors.New("开始时间必须早于结束时间")
	ErrSlotClassNotFound   = errors.New("班级不存在")
	ErrSlotSubjectNotFound = errors.New("科目不存在")
	ErrSlotTeacherNotFound = errors.New("教师不存在")
	ErrSlotTeacherInvalid  = errors.New("teacher_id 指向的用户不是教师")
	ErrSlotRoomNotFound    = errors.New("教室不存在")
)

// ConflictError 排课冲突错误，携带第一个检出的碰撞课表项
type ConflictError struct {
	Conflicting *model.TimetableSlot
}

func (e *ConflictError) Error() string {
	if e.Conflicting == nil {
		return "排课冲突"
	}
	return fmt.Sprintf("排课冲突: 与 %s %s-%s 的课表项占用同一资源",
		e.Conflicting.DayOfWeek, e.Conflicting.StartTime, e.Conflicting.EndTime)
}

// ── TimetableService 接口 ──────────────────────────────────
//
// 设计说明：
//   - 创建与更新共用同一校验 + 冲突预检路径：更新为全字段替换，
//     预检时按 ID 排除自身旧状态，否则与自己原时段必然"冲突"。
//   - 冲突保证分两层：应用层预检（findConflict）产出可读的冲突详情；
//     数据库唯一索引（按资源 × 范围 × 开始时间）兜底并发竞争，
//     落库时的唯一约束冲突同样翻译为 ConflictError。
//   - locked = true 的课表项拒绝常规更新与删除（考试等固定安排）。
// ─────────────────────────────────────────────────────────────

// TimetableService 课表业务接口
type TimetableService interface {
	Create(ctx context.Context, req *dto.SlotRequest, callerID string) (*dto.SlotResponse, error)
	GetByID(ctx context.Context, id string) (*dto.SlotResponse, error)
	List(ctx context.Context, req *dto.SlotListRequest) ([]dto.SlotResponse, error)
	Update(ctx context.Context, id string, req *dto.SlotRequest, callerID string) (*dto.SlotResponse, error)
	Delete(ctx context.Context, id string) error
}

type timetableService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, logger: logger}
}

// ────────────────────── Create ──────────────────────

func (s *timetableService) Create(ctx context.Context, req *dto.SlotRequest, callerID string) (*dto.SlotResponse, error) {
	if err := s.validateTimes(req); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	slot := slotFromRequest(req)
	slot.CreatedBy = &callerID
	slot.UpdatedBy = &callerID

	// 应用层冲突预检：同 (academic_year, term) 范围内逐项比对
	existing, err := s.repo.TimetableSlot.ListByScope(ctx, slot.AcademicYear, slot.Term)
	if err != nil {
		s.logger.Error("查询冲突预检集合失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	if hit := findConflict(slot, existing, ""); hit != nil {
		return nil, s.conflictError(ctx, hit)
	}

	if err := s.repo.TimetableSlot.Create(ctx, slot); err != nil {
		// 并发竞争败者：唯一索引兜底，重查定位碰撞项
		if pkgerrors.IsDuplicateKey(err) {
			return nil, s.conflictFromRace(ctx, slot)
		}
		s.logger.Error("创建课表项失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	return s.reload(ctx, slot.SlotID)
}

// ────────────────────── GetByID ──────────────────────

func (s *timetableService) GetByID(ctx context.Context, id string) (*dto.SlotResponse, error) {
	slot, err := s.repo.TimetableSlot.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询课表项失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toSlotResponse(slot), nil
}

// ────────────────────── List ──────────────────────

func (s *timetableService) List(ctx context.Context, req *dto.SlotListRequest) ([]dto.SlotResponse, error) {
	slots, err := s.repo.TimetableSlot.List(ctx, repository.SlotFilter{
		ClassID:      req.ClassID,
		TeacherID:    req.TeacherID,
		RoomID:       req.RoomID,
		AcademicYear: req.AcademicYear,
		Term:         req.Term,
		DayOfWeek:    req.DayOfWeek,
	})
	if err != nil {
		s.logger.Error("列出课表项失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	result := make([]dto.SlotResponse, 0, len(slots))
	for i := range slots {
		result = append(result, *toSlotResponse(&slots[i]))
	}
	return result, nil
}

// ────────────────────── Update ──────────────────────

func (s *timetableService) Update(ctx context.Context, id string, req *dto.SlotRequest, callerID string) (*dto.SlotResponse, error) {
	current, err := s.repo.TimetableSlot.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, ErrSlotNotFound
		}
		s.logger.Error("查询课表项失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	if current.Locked {
		return nil, ErrSlotLocked
	}

	if err := s.validateTimes(req); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	// 全字段替换
	slot := slotFromRequest(req)
	slot.SlotID = current.SlotID
	slot.CreatedAt = current.CreatedAt
	slot.CreatedBy = current.CreatedBy
	slot.UpdatedBy = &callerID

	existing, err := s.repo.TimetableSlot.ListByScope(ctx, slot.AcademicYear, slot.Term)
	if err != nil {
		s.logger.Error("查询冲突预检集合失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	if hit := findConflict(slot, existing, slot.SlotID); hit != nil {
		return nil, s.conflictError(ctx, hit)
	}

	if err := s.repo.TimetableSlot.Update(ctx, slot); err != nil {
		if pkgerrors.IsDuplicateKey(err) {
			return nil, s.conflictFromRace(ctx, slot)
		}
		s.logger.Error("更新课表项失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	return s.reload(ctx, slot.SlotID)
}

// ────────────────────── Delete ──────────────────────

func (s *timetableService) Delete(ctx context.Context, id string) error {
	slot, err := s.repo.TimetableSlot.GetByID(ctx, id)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrSlotNotFound
		}
		s.logger.Error("查询课表项失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.AsStoreUnavailable(err)
	}
	if slot.Locked {
		return ErrSlotLocked
	}

	if err := s.repo.TimetableSlot.Delete(ctx, id); err != nil {
		s.logger.Error("删除课表项失败", zap.String("id", id), zap.Error(err))
		return pkgerrors.AsStoreUnavailable(err)
	}
	return nil
}

// ────────────────────── 内部辅助 ──────────────────────

// validateTimes 校验时间格式与顺序
func (s *timetableService) validateTimes(req *dto.SlotRequest) error {
	start, err := minuteOfDay(req.StartTime)
	if err != nil {
		return ErrSlotTimeInvalid
	}
	end, err := minuteOfDay(req.EndTime)
	if err != nil {
		return ErrSlotTimeInvalid
	}
	if start >= end {
		return ErrSlotTimeRange
	}
	return nil
}

// checkReferences 校验班级/科目/教师/教室引用均真实存在
func (s *timetableService) checkReferences(ctx context.Context, req *dto.SlotRequest) error {
	if _, err := s.repo.Class.GetByID(ctx, req.ClassID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrSlotClassNotFound
		}
		return pkgerrors.AsStoreUnavailable(err)
	}
	if _, err := s.repo.Subject.GetByID(ctx, req.SubjectID); err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrSlotSubjectNotFound
		}
		return pkgerrors.AsStoreUnavailable(err)
	}
	teacher, err := s.repo.User.GetByID(ctx, req.TeacherID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return ErrSlotTeacherNotFound
		}
		return pkgerrors.AsStoreUnavailable(err)
	}
	if teacher.Role != model.RoleTeacher {
		return ErrSlotTeacherInvalid
	}
	if req.RoomID != nil {
		if _, err := s.repo.Room.GetByID(ctx, *req.RoomID); err != nil {
			if pkgerrors.IsNotFound(err) {
				return ErrSlotRoomNotFound
			}
			return pkgerrors.AsStoreUnavailable(err)
		}
	}
	return nil
}

// conflictError 构造携带碰撞详情的 ConflictError，尽量带上关联预加载
func (s *timetableService) conflictError(ctx context.Context, hit *model.TimetableSlot) error {
	if full, err := s.repo.TimetableSlot.GetByID(ctx, hit.SlotID); err == nil {
		return &ConflictError{Conflicting: full}
	}
	return &ConflictError{Conflicting: hit}
}

// conflictFromRace 处理唯一索引兜底拦下的并发写：重查范围集合定位碰撞项
func (s *timetableService) conflictFromRace(ctx context.Context, slot *model.TimetableSlot) error {
	existing, err := s.repo.TimetableSlot.ListByScope(ctx, slot.AcademicYear, slot.Term)
	if err == nil {
		if hit := findConflict(slot, existing, slot.SlotID); hit != nil {
			return s.conflictError(ctx, hit)
		}
	}
	return &ConflictError{}
}

// reload 回查关联后构造响应
func (s *timetableService) reload(ctx context.Context, id string) (*dto.SlotResponse, error) {
	slot, err := s.repo.TimetableSlot.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("回查课表项失败", zap.String("id", id), zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}
	return toSlotResponse(slot), nil
}

// slotFromRequest 将请求映射为模型，kind 缺省为 CLASS
func slotFromRequest(req *dto.SlotRequest) *model.TimetableSlot {
	kind := req.Kind
	if kind == "" {
		kind = model.SlotKindClass
	}
	return &model.TimetableSlot{
		ClassID:      req.ClassID,
		SubjectID:    req.SubjectID,
		TeacherID:    req.TeacherID,
		RoomID:       req.RoomID,
		DayOfWeek:    req.DayOfWeek,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		AcademicYear: req.AcademicYear,
		Term:         req.Term,
		Kind:         kind,
		Locked:       req.Locked,
	}
}

// toSlotResponse 将模型映射为响应
func toSlotResponse(slot *model.TimetableSlot) *dto.SlotResponse {
	resp := &dto.SlotResponse{
		ID:           slot.SlotID,
		ClassID:      slot.ClassID,
		SubjectID:    slot.SubjectID,
		TeacherID:    slot.TeacherID,
		RoomID:       slot.RoomID,
		DayOfWeek:    slot.DayOfWeek,
		StartTime:    slot.StartTime,
		EndTime:      slot.EndTime,
		AcademicYear: slot.AcademicYear,
		Term:         slot.Term,
		Kind:         slot.Kind,
		Locked:       slot.Locked,
		CreatedAt:    slot.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    slot.UpdatedAt.Format(time.RFC3339),
	}
	if slot.Class != nil {
		resp.Class = &dto.ClassBrief{ID: slot.Class.ClassID, Name: slot.Class.Name}
	}
	if slot.Subject != nil {
		resp.Subject = &dto.SubjectBrief{ID: slot.Subject.SubjectID, Name: slot.Subject.Name, Code: slot.Subject.Code}
	}
	if slot.Teacher != nil {
		resp.Teacher = &dto.UserBrief{ID: slot.Teacher.UserID, Name: slot.Teacher.Name}
	}
	if slot.Room != nil {
		resp.Room = &dto.RoomBrief{ID: slot.Room.RoomID, Name: slot.Room.Name}
	}
	return resp
}
