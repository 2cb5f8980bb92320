package service

import (
	"testing"

	"github.com/TinaTech-Developers/school-management-system/internal/model"
)

// ── 测试辅助 ──

func strPtr(s string) *string { return &s }

func makeSlot(id, classID, teacherID string, roomID *string, day, start, end string) model.TimetableSlot {
	return model.TimetableSlot{
		SlotID:       id,
		ClassID:      classID,
		SubjectID:    "subject-001",
		TeacherID:    teacherID,
		RoomID:       roomID,
		DayOfWeek:    day,
		StartTime:    start,
		EndTime:      end,
		AcademicYear: "2025",
		Term:         model.Term1,
		Kind:         model.SlotKindClass,
	}
}

// ── findConflict 测试 ──

func TestFindConflict_ClassOverlap(t *testing.T) {
	existing := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00"),
	}
	cand := makeSlot("", "class-a", "teacher-2", nil, model.DayMon, "08:30", "09:30")

	hit := findConflict(&cand, existing, "")
	if hit == nil {
		t.Fatal("同班级时间重叠应判定冲突")
	}
	if hit.SlotID != "s1" {
		t.Errorf("期望命中 s1，实际=%s", hit.SlotID)
	}
}

func TestFindConflict_TeacherOverlapAcrossClasses(t *testing.T) {
	existing := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayTue, "10:00", "11:00"),
	}
	// 不同班级但同一教师
	cand := makeSlot("", "class-b", "teacher-1", nil, model.DayTue, "10:30", "11:30")

	if findConflict(&cand, existing, "") == nil {
		t.Error("同教师跨班级时间重叠应判定冲突")
	}
}

func TestFindConflict_RoomOverlap(t *testing.T) {
	existing := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", strPtr("room-101"), model.DayWed, "14:00", "15:00"),
	}
	cand := makeSlot("", "class-b", "teacher-2", strPtr("room-101"), model.DayWed, "14:00", "15:00")

	if findConflict(&cand, existing, "") == nil {
		t.Error("同教室时间重叠应判定冲突")
	}
}

func TestFindConflict_NoRoomNeverCollidesOnRoom(t *testing.T) {
	// 双方均未分配教室：教室维度不参与碰撞
	existing := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayThu, "08:00", "09:00"),
	}
	cand := makeSlot("", "class-b", "teacher-2", nil, model.DayThu, "08:00", "09:00")

	if hit := findConflict(&cand, existing, ""); hit != nil {
		t.Errorf("未分配教室且班级教师均不同不应冲突，实际命中=%s", hit.SlotID)
	}

	// 单方未分配教室同样不冲突
	cand2 := makeSlot("", "class-b", "teacher-2", strPtr("room-101"), model.DayThu, "08:00", "09:00")
	if findConflict(&cand2, existing, "") != nil {
		t.Error("单方未分配教室不应在教室维度冲突")
	}
}

func TestFindConflict_AdjacentNotConflict(t *testing.T) {
	// 左闭右开：09:00 结束与 09:00 开始相邻不冲突
	existing := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00"),
	}
	cand := makeSlot("", "class-a", "teacher-1", nil, model.DayMon, "09:00", "10:00")

	if findConflict(&cand, existing, "") != nil {
		t.Error("首尾相接的区间不应判定冲突")
	}

	before := makeSlot("", "class-a", "teacher-1", nil, model.DayMon, "07:00", "08:00")
	if findConflict(&before, existing, "") != nil {
		t.Error("在前方首尾相接的区间不应判定冲突")
	}
}

func TestFindConflict_ContainmentConflicts(t *testing.T) {
	existing := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "10:00"),
	}
	// 完全被包含
	inner := makeSlot("", "class-a", "teacher-2", nil, model.DayMon, "08:30", "09:30")
	if findConflict(&inner, existing, "") == nil {
		t.Error("被包含区间应判定冲突")
	}
	// 完全包含
	outer := makeSlot("", "class-a", "teacher-2", nil, model.DayMon, "07:00", "11:00")
	if findConflict(&outer, existing, "") == nil {
		t.Error("包含区间应判定冲突")
	}
}

func TestFindConflict_ScopeMismatchNoConflict(t *testing.T) {
	base := makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00")
	existing := []model.TimetableSlot{base}

	otherDay := makeSlot("", "class-a", "teacher-1", nil, model.DayTue, "08:00", "09:00")
	if findConflict(&otherDay, existing, "") != nil {
		t.Error("不同星期不应冲突")
	}

	otherTerm := makeSlot("", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00")
	otherTerm.Term = model.Term2
	if findConflict(&otherTerm, existing, "") != nil {
		t.Error("不同学期不应冲突")
	}

	otherYear := makeSlot("", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00")
	otherYear.AcademicYear = "2026"
	if findConflict(&otherYear, existing, "") != nil {
		t.Error("不同学年不应冲突")
	}
}

func TestFindConflict_ExcludeSelf(t *testing.T) {
	existing := []model.TimetableSlot{
		makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:00"),
	}
	// 更新场景：候选与库中自身旧状态重叠，但按 ID 排除后无冲突
	cand := makeSlot("s1", "class-a", "teacher-1", nil, model.DayMon, "08:00", "09:30")

	if findConflict(&cand, existing, "s1") != nil {
		t.Error("更新时排除自身后不应与旧状态冲突")
	}
	if findConflict(&cand, existing, "") == nil {
		t.Error("不排除自身时应检出与旧状态的重叠")
	}
}

// ── minuteOfDay 测试 ──

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"08:05", 485, false},
		{"23:59", 1439, false},
		{"24:00", 0, true},
		{"08:60", 0, true},
		{"8:00", 0, true}, // 必须零填充
		{"08-00", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := minuteOfDay(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("minuteOfDay(%q) 期望报错", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("minuteOfDay(%q) 不应报错: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("minuteOfDay(%q)=%d，期望=%d", c.in, got, c.want)
		}
	}
}
