package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/repository"
)

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return gorm.ErrDuplicatedKey
		}
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) List(_ context.Context, role string, classID string) ([]model.User, error) {
	var result []model.User
	for _, u := range m.users {
		if role != "" && u.Role != role {
			continue
		}
		if classID != "" && (u.ClassID == nil || *u.ClassID != classID) {
			continue
		}
		result = append(result, *u)
	}
	return result, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

// ── Mock ClassRepository ──

type mockClassRepo struct {
	classes map[string]*model.Class
}

func newMockClassRepo() *mockClassRepo {
	return &mockClassRepo{classes: make(map[string]*model.Class)}
}

func (m *mockClassRepo) Create(_ context.Context, class *model.Class) error {
	if class.ClassID == "" {
		class.ClassID = "class-" + class.Name
	}
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) GetByID(_ context.Context, id string) (*model.Class, error) {
	if c, ok := m.classes[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockClassRepo) List(_ context.Context) ([]model.Class, error) {
	var result []model.Class
	for _, c := range m.classes {
		result = append(result, *c)
	}
	return result, nil
}

func (m *mockClassRepo) Update(_ context.Context, class *model.Class) error {
	m.classes[class.ClassID] = class
	return nil
}

func (m *mockClassRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.classes, id)
	return nil
}

// ── Mock SubjectRepository ──

type mockSubjectRepo struct {
	subjects map[string]*model.Subject
}

func newMockSubjectRepo() *mockSubjectRepo {
	return &mockSubjectRepo{subjects: make(map[string]*model.Subject)}
}

func (m *mockSubjectRepo) Create(_ context.Context, subject *model.Subject) error {
	if subject.SubjectID == "" {
		subject.SubjectID = "subject-" + subject.Code
	}
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) GetByID(_ context.Context, id string) (*model.Subject, error) {
	if s, ok := m.subjects[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSubjectRepo) List(_ context.Context, classID string) ([]model.Subject, error) {
	var result []model.Subject
	for _, s := range m.subjects {
		if classID != "" && s.ClassID != classID {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSubjectRepo) Update(_ context.Context, subject *model.Subject) error {
	m.subjects[subject.SubjectID] = subject
	return nil
}

func (m *mockSubjectRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.subjects, id)
	return nil
}

// ── Mock RoomRepository ──

type mockRoomRepo struct {
	rooms map[string]*model.Room
}

func newMockRoomRepo() *mockRoomRepo {
	return &mockRoomRepo{rooms: make(map[string]*model.Room)}
}

func (m *mockRoomRepo) Create(_ context.Context, room *model.Room) error {
	if room.RoomID == "" {
		room.RoomID = "room-" + room.Name
	}
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) GetByID(_ context.Context, id string) (*model.Room, error) {
	if r, ok := m.rooms[id]; ok {
		return r, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockRoomRepo) List(_ context.Context) ([]model.Room, error) {
	var result []model.Room
	for _, r := range m.rooms {
		result = append(result, *r)
	}
	return result, nil
}

func (m *mockRoomRepo) Update(_ context.Context, room *model.Room) error {
	m.rooms[room.RoomID] = room
	return nil
}

func (m *mockRoomRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.rooms, id)
	return nil
}

// ── Mock TimetableSlotRepository ──
//
// 写入时模拟数据库唯一索引：同 (资源, 学年, 学期, 星期, 开始时间)
// 已存在则返回 gorm.ErrDuplicatedKey，与 TranslateError 行为一致。

type mockSlotRepo struct {
	slots   map[string]*model.TimetableSlot
	counter int
}

func newMockSlotRepo() *mockSlotRepo {
	return &mockSlotRepo{slots: make(map[string]*model.TimetableSlot)}
}

func (m *mockSlotRepo) uniqueViolated(slot *model.TimetableSlot) bool {
	for _, s := range m.slots {
		if s.SlotID == slot.SlotID {
			continue
		}
		if s.AcademicYear != slot.AcademicYear || s.Term != slot.Term ||
			s.DayOfWeek != slot.DayOfWeek || s.StartTime != slot.StartTime {
			continue
		}
		if s.ClassID == slot.ClassID || s.TeacherID == slot.TeacherID {
			return true
		}
		if s.RoomID != nil && slot.RoomID != nil && *s.RoomID == *slot.RoomID {
			return true
		}
	}
	return false
}

func (m *mockSlotRepo) Create(_ context.Context, slot *model.TimetableSlot) error {
	if m.uniqueViolated(slot) {
		return gorm.ErrDuplicatedKey
	}
	if slot.SlotID == "" {
		m.counter++
		slot.SlotID = fmt.Sprintf("slot-%03d", m.counter)
	}
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) GetByID(_ context.Context, id string) (*model.TimetableSlot, error) {
	if s, ok := m.slots[id]; ok {
		return s, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSlotRepo) ListByScope(_ context.Context, academicYear, term string) ([]model.TimetableSlot, error) {
	var result []model.TimetableSlot
	for _, s := range m.slots {
		if s.AcademicYear == academicYear && s.Term == term {
			result = append(result, *s)
		}
	}
	return result, nil
}

func (m *mockSlotRepo) List(_ context.Context, filter repository.SlotFilter) ([]model.TimetableSlot, error) {
	var result []model.TimetableSlot
	for _, s := range m.slots {
		if filter.ClassID != "" && s.ClassID != filter.ClassID {
			continue
		}
		if filter.SubjectID != "" && s.SubjectID != filter.SubjectID {
			continue
		}
		if filter.TeacherID != "" && s.TeacherID != filter.TeacherID {
			continue
		}
		if filter.RoomID != "" && (s.RoomID == nil || *s.RoomID != filter.RoomID) {
			continue
		}
		if filter.AcademicYear != "" && s.AcademicYear != filter.AcademicYear {
			continue
		}
		if filter.Term != "" && s.Term != filter.Term {
			continue
		}
		if filter.DayOfWeek != "" && s.DayOfWeek != filter.DayOfWeek {
			continue
		}
		result = append(result, *s)
	}
	return result, nil
}

func (m *mockSlotRepo) Update(_ context.Context, slot *model.TimetableSlot) error {
	if _, ok := m.slots[slot.SlotID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if m.uniqueViolated(slot) {
		return gorm.ErrDuplicatedKey
	}
	m.slots[slot.SlotID] = slot
	return nil
}

func (m *mockSlotRepo) Delete(_ context.Context, id string) error {
	delete(m.slots, id)
	return nil
}
