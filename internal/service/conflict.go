package service

import (
	"fmt"
	"strconv"

	"github.com/TinaTech-Developers/school-management-system/internal/model"
)

// ── 冲突检测器 ──────────────────────────────────────────────
//
// 纯函数，无副作用：给定候选课表项与既有课表项集合，判断是否存在资源碰撞。
//
// 判定规则：
//   - 范围匹配：academic_year、term、day_of_week 三者完全相等
//   - 时间重叠：左闭右开区间，candidate.start < other.end 且 other.start < candidate.end
//     （09:00 结束与 09:00 开始相邻不冲突）
//   - 资源碰撞：班级相同，或教师相同，或双方均指定教室且教室相同
//     （未分配教室的课表项不参与教室维度的碰撞）
//
// 任一碰撞即足以拒绝，返回第一个命中的课表项；集合遍历顺序不作保证。
// ─────────────────────────────────────────────────────────────

// findConflict 在 existing 中寻找与 candidate 碰撞的课表项，无碰撞返回 nil
// excludeID 非空时跳过该 ID（更新场景下排除自身旧状态）
func findConflict(candidate *model.TimetableSlot, existing []model.TimetableSlot, excludeID string) *model.TimetableSlot {
	candStart, err1 := minuteOfDay(candidate.StartTime)
	candEnd, err2 := minuteOfDay(candidate.EndTime)
	if err1 != nil || err2 != nil {
		return nil // 时间格式在校验阶段已拦截
	}

	for i := range existing {
		other := &existing[i]

		if excludeID != "" && other.SlotID == excludeID {
			continue
		}

		// 范围匹配
		if other.AcademicYear != candidate.AcademicYear ||
			other.Term != candidate.Term ||
			other.DayOfWeek != candidate.DayOfWeek {
			continue
		}

		// 时间重叠（左闭右开）
		otherStart, err1 := minuteOfDay(other.StartTime)
		otherEnd, err2 := minuteOfDay(other.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if candStart >= otherEnd || otherStart >= candEnd {
			continue
		}

		// 资源碰撞
		if other.ClassID == candidate.ClassID {
			return other
		}
		if other.TeacherID == candidate.TeacherID {
			return other
		}
		if candidate.RoomID != nil && other.RoomID != nil && *candidate.RoomID == *other.RoomID {
			return other
		}
	}

	return nil
}

// minuteOfDay 将零填充 "HH:MM" 解析为自午夜起的分钟数
func minuteOfDay(s string) (int, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("时间格式无效: %q", s)
	}
	hour, err := strconv.Atoi(s[:2])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("时间格式无效: %q", s)
	}
	minute, err := strconv.Atoi(s[3:])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("时间格式无效: %q", s)
	}
	return hour*60 + minute, nil
}
