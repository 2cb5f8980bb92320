package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	ics "github.com/arran4/golang-ical"
	"go.uber.org/zap"

	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
)

// ── 导出模块业务错误 ──

var (
	ErrExportNoSlots        = errors.New("该教师在此学期暂无课表")
	ErrExportTeacherUnknown = errors.New("教师不存在")
)

// 课表星期 → time.Weekday
var exportWeekdays = map[string]time.Weekday{
	model.DayMon: time.Monday,
	model.DayTue: time.Tuesday,
	model.DayWed: time.Wednesday,
	model.DayThu: time.Thursday,
	model.DayFri: time.Friday,
	model.DaySat: time.Saturday,
}

// ExportService 导出业务接口
//
// 设计说明：
//   - 将教师在某学年学期的全部课表项导出为 iCalendar (RFC 5545) 订阅源，
//     日历客户端（Google Calendar / Outlook）可直接导入。
//   - 每个课表项生成一个带 RRULE:FREQ=WEEKLY 的重复事件，DTSTART 取
//     请求当周之后该星期的下一次出现。
//   - 返回序列化文本与建议文件名，HTTP 头由 Handler 层设置。
type ExportService interface {
	// TeacherCalendar 导出教师课表为 ICS 文本
	TeacherCalendar(ctx context.Context, teacherID, academicYear, term string) (string, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
	now    func() time.Time // 测试注入
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger, now: time.Now}
}

func (s *exportService) TeacherCalendar(ctx context.Context, teacherID, academicYear, term string) (string, string, error) {
	teacher, err := s.repo.User.GetByID(ctx, teacherID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return "", "", ErrExportTeacherUnknown
		}
		s.logger.Error("查询教师失败", zap.Error(err))
		return "", "", pkgerrors.AsStoreUnavailable(err)
	}

	slots, err := s.repo.TimetableSlot.List(ctx, repository.SlotFilter{
		TeacherID:    teacherID,
		AcademicYear: academicYear,
		Term:         term,
	})
	if err != nil {
		s.logger.Error("查询教师课表失败", zap.Error(err))
		return "", "", pkgerrors.AsStoreUnavailable(err)
	}
	if len(slots) == 0 {
		return "", "", ErrExportNoSlots
	}

	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//school-management-system//timetable//CN")

	now := s.now()
	for i := range slots {
		slot := &slots[i]
		start, end, err := nextOccurrence(now, slot)
		if err != nil {
			continue // 历史脏数据不阻断整体导出
		}

		event := cal.AddEvent(fmt.Sprintf("slot-%s@school-management-system", slot.SlotID))
		event.SetCreatedTime(now)
		event.SetDtStampTime(now)
		event.SetStartAt(start)
		event.SetEndAt(end)
		event.SetSummary(slotSummary(slot))
		if slot.Room != nil {
			event.SetLocation(slot.Room.Name)
		}
		event.AddRrule("FREQ=WEEKLY")
	}

	filename := fmt.Sprintf("timetable_%s_%s_%s.ics", teacher.Name, academicYear, term)
	return cal.Serialize(), filename, nil
}

// nextOccurrence 计算课表项在 now 之后（含当天）的下一次发生区间
func nextOccurrence(now time.Time, slot *model.TimetableSlot) (time.Time, time.Time, error) {
	weekday, ok := exportWeekdays[slot.DayOfWeek]
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("未知星期: %q", slot.DayOfWeek)
	}
	startMin, err := minuteOfDay(slot.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	endMin, err := minuteOfDay(slot.EndTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	days := (int(weekday) - int(now.Weekday()) + 7) % 7
	day := now.AddDate(0, 0, days)
	start := time.Date(day.Year(), day.Month(), day.Day(), startMin/60, startMin%60, 0, 0, now.Location())
	end := time.Date(day.Year(), day.Month(), day.Day(), endMin/60, endMin%60, 0, 0, now.Location())
	return start, end, nil
}

// slotSummary 组装事件标题，如 "Mathematics / Grade 10 A"
func slotSummary(slot *model.TimetableSlot) string {
	subject := slot.SubjectID
	if slot.Subject != nil {
		subject = slot.Subject.Name
	}
	class := slot.ClassID
	if slot.Class != nil {
		class = slot.Class.Name
	}
	summary := fmt.Sprintf("%s / %s", subject, class)
	if slot.Kind == model.SlotKindExam {
		summary = "[考试] " + summary
	}
	return summary
}
