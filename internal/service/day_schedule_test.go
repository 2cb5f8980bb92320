package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
)

// ── buildDaySchedule 测试 ──

func TestBuildDaySchedule_FreePeriodInGap(t *testing.T) {
	// 08-09、09-10、11-12 → 10:00-11:00 应派生空闲时段
	slots := []model.TimetableSlot{
		makeSlot("s3", "class-a", "teacher-1", nil, model.DayMon, "11:00", "12:00"),
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00"),
		makeSlot("s2", "class-a", "teacher-2", nil, model.DayMon, "09:00", "10:00"),
	}

	items := buildDaySchedule(slots)
	if len(items) != 4 {
		t.Fatalf("期望 4 个条目（3 课 + 1 空闲），实际=%d", len(items))
	}

	wantTypes := []string{dto.DayItemSlot, dto.DayItemSlot, dto.DayItemFree, dto.DayItemSlot}
	for i, want := range wantTypes {
		if items[i].Type != want {
			t.Errorf("条目 %d 期望类型 %s，实际=%s", i, want, items[i].Type)
		}
	}

	free := items[2]
	if free.From != "10:00" || free.To != "11:00" {
		t.Errorf("空闲时段期望 10:00-11:00，实际=%s-%s", free.From, free.To)
	}

	// 课表项按开始时间升序
	if items[0].Slot.ID != "s1" || items[1].Slot.ID != "s2" || items[3].Slot.ID != "s3" {
		t.Error("课表项应按开始时间升序排列")
	}
}

func TestBuildDaySchedule_NoGapNoFree(t *testing.T) {
	slots := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00"),
		makeSlot("s2", "class-a", "teacher-2", nil, model.DayMon, "09:00", "10:00"),
	}

	items := buildDaySchedule(slots)
	if len(items) != 2 {
		t.Fatalf("相邻无间隙不应派生空闲时段，实际条目数=%d", len(items))
	}
	for _, item := range items {
		if item.Type != dto.DayItemSlot {
			t.Errorf("不应出现 %s 条目", item.Type)
		}
	}
}

func TestBuildDaySchedule_Empty(t *testing.T) {
	items := buildDaySchedule(nil)
	if len(items) != 0 {
		t.Errorf("空输入应返回空条目，实际=%d", len(items))
	}
}

// ── currentSlot 测试 ──

func TestCurrentSlot(t *testing.T) {
	slots := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00"),
		makeSlot("s2", "class-a", "teacher-2", nil, model.DayMon, "09:00", "10:00"),
	}

	// 08:30 → s1
	if cur := currentSlot(slots, 8*60+30); cur == nil || cur.SlotID != "s1" {
		t.Error("08:30 应命中 s1")
	}
	// 09:00 → 左闭右开，s1 已结束，s2 开始
	if cur := currentSlot(slots, 9*60); cur == nil || cur.SlotID != "s2" {
		t.Error("09:00 应命中 s2（区间左闭右开）")
	}
	// 10:00 → 无课
	if cur := currentSlot(slots, 10*60); cur != nil {
		t.Errorf("10:00 不应命中任何课，实际=%s", cur.SlotID)
	}
	// 07:00 → 无课
	if cur := currentSlot(slots, 7*60); cur != nil {
		t.Error("07:00 不应命中任何课")
	}
}

// ── DaySchedule 服务测试 ──

func TestTimetableViewService_DaySchedule(t *testing.T) {
	slotRepo := newMockSlotRepo()
	repo := &repository.Repository{
		User:          newMockUserRepo(),
		Class:         newMockClassRepo(),
		Subject:       newMockSubjectRepo(),
		Room:          newMockRoomRepo(),
		TimetableSlot: slotRepo,
	}
	svc := NewTimetableViewService(repo, zap.NewNop())
	ctx := context.Background()

	for _, s := range []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00"),
		makeSlot("s2", "class-a", "teacher-2", nil, model.DayMon, "11:00", "12:00"),
		makeSlot("s3", "class-b", "teacher-1", nil, model.DayMon, "09:00", "10:00"), // 另一班级，不应出现
	} {
		slot := s
		slotRepo.slots[slot.SlotID] = &slot
	}

	req := &dto.DayScheduleRequest{
		DayOfWeek:    model.DayMon,
		ClassID:      "class-a",
		AcademicYear: "2025",
		Term:         model.Term1,
	}

	// nowMinutes=08:30：s1 正在进行
	resp, err := svc.DaySchedule(ctx, req, 8*60+30)
	if err != nil {
		t.Fatalf("DaySchedule 应成功: %v", err)
	}
	if resp.Day != model.DayMon {
		t.Errorf("期望 Day=MON，实际=%s", resp.Day)
	}
	if len(resp.Items) != 3 { // 2 课 + 1 空闲 (09:00-11:00)
		t.Fatalf("期望 3 个条目，实际=%d", len(resp.Items))
	}
	if resp.Items[1].Type != dto.DayItemFree || resp.Items[1].From != "09:00" || resp.Items[1].To != "11:00" {
		t.Errorf("空闲时段期望 09:00-11:00，实际=%+v", resp.Items[1])
	}
	if resp.Current == nil || resp.Current.ID != "s1" {
		t.Error("08:30 的当前课应为 s1")
	}

	// 非当天查询（nowMinutes 为负）不标记当前课
	resp2, err := svc.DaySchedule(ctx, req, -1)
	if err != nil {
		t.Fatalf("DaySchedule 应成功: %v", err)
	}
	if resp2.Current != nil {
		t.Error("非当天查询不应标记当前课")
	}
}
