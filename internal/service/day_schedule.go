package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
)

// ── 日视图构建 ──────────────────────────────────────────────
//
// 将某一天的课表项按开始时间升序排列，并在相邻课表项之间
// 推导出空闲时段（free period）条目。空闲时段不落库，纯展示派生。
//
// 仅当后一项的开始时间严格晚于前一项的结束时间才产生空闲条目；
// 相邻（09:00 结束、09:00 开始）或重叠（锁定项允许共存的历史数据）
// 不产生。首项之前与末项之后不补空闲。
// ─────────────────────────────────────────────────────────────

// TimetableViewService 课表视图业务接口
type TimetableViewService interface {
	// DaySchedule 构建某天的课表视图；nowMinutes 非负时标记正在进行的课
	DaySchedule(ctx context.Context, req *dto.DayScheduleRequest, nowMinutes int) (*dto.DayScheduleResponse, error)
}

type timetableViewService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTimetableViewService 创建 TimetableViewService 实例
func NewTimetableViewService(repo *repository.Repository, logger *zap.Logger) TimetableViewService {
	return &timetableViewService{repo: repo, logger: logger}
}

func (s *timetableViewService) DaySchedule(ctx context.Context, req *dto.DayScheduleRequest, nowMinutes int) (*dto.DayScheduleResponse, error) {
	slots, err := s.repo.TimetableSlot.List(ctx, repository.SlotFilter{
		ClassID:      req.ClassID,
		TeacherID:    req.TeacherID,
		AcademicYear: req.AcademicYear,
		Term:         req.Term,
		DayOfWeek:    req.DayOfWeek,
	})
	if err != nil {
		s.logger.Error("查询日课表失败", zap.Error(err))
		return nil, pkgerrors.AsStoreUnavailable(err)
	}

	resp := &dto.DayScheduleResponse{
		Day:   req.DayOfWeek,
		Items: buildDaySchedule(slots),
	}
	if nowMinutes >= 0 {
		if cur := currentSlot(slots, nowMinutes); cur != nil {
			resp.Current = toSlotResponse(cur)
		}
	}
	return resp, nil
}

// buildDaySchedule 按开始时间排序并在间隙处插入空闲条目
func buildDaySchedule(slots []model.TimetableSlot) []dto.DayScheduleItem {
	sorted := make([]model.TimetableSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartTime < sorted[j].StartTime // 零填充 HH:MM 可按字典序比较
	})

	items := make([]dto.DayScheduleItem, 0, len(sorted))
	for i := range sorted {
		if i > 0 {
			prevEnd := sorted[i-1].EndTime
			if sorted[i].StartTime > prevEnd {
				items = append(items, dto.DayScheduleItem{
					Type: dto.DayItemFree,
					From: prevEnd,
					To:   sorted[i].StartTime,
				})
			}
		}
		items = append(items, dto.DayScheduleItem{
			Type: dto.DayItemSlot,
			Slot: toSlotResponse(&sorted[i]),
		})
	}
	return items
}

// currentSlot 返回 nowMinutes 落在其 [start, end) 区间内的课表项，无则返回 nil
func currentSlot(slots []model.TimetableSlot, nowMinutes int) *model.TimetableSlot {
	for i := range slots {
		start, err1 := minuteOfDay(slots[i].StartTime)
		end, err2 := minuteOfDay(slots[i].EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if nowMinutes >= start && nowMinutes < end {
			return &slots[i]
		}
	}
	return nil
}
