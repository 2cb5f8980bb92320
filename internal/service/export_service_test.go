package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
)

func setupTestExportService(t *testing.T) (*exportService, *mockSlotRepo, *mockUserRepo) {
	t.Helper()

	userRepo := newMockUserRepo()
	slotRepo := newMockSlotRepo()
	repo := &repository.Repository{
		User:          userRepo,
		Class:         newMockClassRepo(),
		Subject:       newMockSubjectRepo(),
		Room:          newMockRoomRepo(),
		TimetableSlot: slotRepo,
	}

	if err := userRepo.Create(context.Background(), &model.User{
		UserID: "teacher-1", Name: "Wang", Email: "wang@example.com", Role: model.RoleTeacher,
	}); err != nil {
		t.Fatalf("预置教师失败: %v", err)
	}

	svc := NewExportService(repo, zap.NewNop()).(*exportService)
	// 固定时钟：2025-09-01 是周一
	svc.now = func() time.Time {
		return time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	}
	return svc, slotRepo, userRepo
}

func TestExportService_TeacherCalendar(t *testing.T) {
	svc, slotRepo, _ := setupTestExportService(t)
	ctx := context.Background()

	slot := makeSlot("s1", "class-a", "teacher-1", nil, model.DayTue, "08:00", "09:00")
	slotRepo.slots[slot.SlotID] = &slot

	text, filename, err := svc.TeacherCalendar(ctx, "teacher-1", "2025", model.Term1)
	if err != nil {
		t.Fatalf("TeacherCalendar 应成功: %v", err)
	}
	if !strings.Contains(text, "BEGIN:VCALENDAR") || !strings.Contains(text, "BEGIN:VEVENT") {
		t.Error("输出应为 iCalendar 文本")
	}
	if !strings.Contains(text, "RRULE:FREQ=WEEKLY") {
		t.Error("事件应带每周重复规则")
	}
	if !strings.Contains(text, "slot-s1@school-management-system") {
		t.Error("事件 UID 应含课表项 ID")
	}
	// 周一 12:00 之后的下一个周二是 2025-09-02
	if !strings.Contains(text, "20250902T080000") {
		t.Errorf("DTSTART 应为下一个周二 08:00，实际输出:\n%s", text)
	}
	if filename != "timetable_Wang_2025_TERM_1.ics" {
		t.Errorf("文件名不符: %s", filename)
	}
}

func TestExportService_TeacherCalendar_Empty(t *testing.T) {
	svc, _, _ := setupTestExportService(t)

	_, _, err := svc.TeacherCalendar(context.Background(), "teacher-1", "2025", model.Term1)
	if !errors.Is(err, ErrExportNoSlots) {
		t.Errorf("期望 ErrExportNoSlots，实际: %v", err)
	}

	_, _, err = svc.TeacherCalendar(context.Background(), "teacher-missing", "2025", model.Term1)
	if !errors.Is(err, ErrExportTeacherUnknown) {
		t.Errorf("期望 ErrExportTeacherUnknown，实际: %v", err)
	}
}
