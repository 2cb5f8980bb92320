package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/TinaTech-Developers/school-management-system/internal/model"
)

// SlotFilter 课表项列表过滤条件，字段为空时不参与过滤
type SlotFilter struct {
	ClassID      string
	SubjectID    string
	TeacherID    string
	RoomID       string
	AcademicYear string
	Term         string
	DayOfWeek    string
}

// TimetableSlotRepository 课表项数据访问接口
type TimetableSlotRepository interface {
	Create(ctx context.Context, slot *model.TimetableSlot) error
	GetByID(ctx context.Context, id string) (*model.TimetableSlot, error)
	// ListByScope 返回同一 (academic_year, term) 范围内的全部课表项，
	// 供应用层冲突预检使用。更新场景由冲突检测器按 excludeID 自行排除。
	ListByScope(ctx context.Context, academicYear, term string) ([]model.TimetableSlot, error)
	List(ctx context.Context, filter SlotFilter) ([]model.TimetableSlot, error)
	Update(ctx context.Context, slot *model.TimetableSlot) error
	Delete(ctx context.Context, id string) error
}

type timetableSlotRepo struct {
	db *gorm.DB
}

// NewTimetableSlotRepo 创建 TimetableSlotRepository 实例
func NewTimetableSlotRepo(db *gorm.DB) TimetableSlotRepository {
	return &timetableSlotRepo{db: db}
}

func (r *timetableSlotRepo) Create(ctx context.Context, slot *model.TimetableSlot) error {
	return r.db.WithContext(ctx).Create(slot).Error
}

func (r *timetableSlotRepo) GetByID(ctx context.Context, id string) (*model.TimetableSlot, error) {
	var slot model.TimetableSlot
	err := r.db.WithContext(ctx).
		Preload("Class").
		Preload("Subject").
		Preload("Teacher").
		Preload("Room").
		Where("slot_id = ?", id).
		First(&slot).Error
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

func (r *timetableSlotRepo) ListByScope(ctx context.Context, academicYear, term string) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	err := r.db.WithContext(ctx).
		Where("academic_year = ? AND term = ?", academicYear, term).
		Find(&slots).Error
	return slots, err
}

func (r *timetableSlotRepo) List(ctx context.Context, filter SlotFilter) ([]model.TimetableSlot, error) {
	var slots []model.TimetableSlot
	db := r.db.WithContext(ctx)

	if filter.ClassID != "" {
		db = db.Where("class_id = ?", filter.ClassID)
	}
	if filter.SubjectID != "" {
		db = db.Where("subject_id = ?", filter.SubjectID)
	}
	if filter.TeacherID != "" {
		db = db.Where("teacher_id = ?", filter.TeacherID)
	}
	if filter.RoomID != "" {
		db = db.Where("room_id = ?", filter.RoomID)
	}
	if filter.AcademicYear != "" {
		db = db.Where("academic_year = ?", filter.AcademicYear)
	}
	if filter.Term != "" {
		db = db.Where("term = ?", filter.Term)
	}
	if filter.DayOfWeek != "" {
		db = db.Where("day_of_week = ?", filter.DayOfWeek)
	}

	err := db.Preload("Class").
		Preload("Subject").
		Preload("Teacher").
		Preload("Room").
		Order("day_of_week ASC, start_time ASC").
		Find(&slots).Error
	return slots, err
}

func (r *timetableSlotRepo) Update(ctx context.Context, slot *model.TimetableSlot) error {
	return r.db.WithContext(ctx).Save(slot).Error
}

func (r *timetableSlotRepo) Delete(ctx context.Context, id string) error {
	// 硬删除：课表项无软删除语义，删除后同一时段可立即重新排课
	return r.db.WithContext(ctx).
		Where("slot_id = ?", id).
		Delete(&model.TimetableSlot{}).Error
}
