package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/internal/service"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
	"github.com/TinaTech-Developers/school-management-system/pkg/response"
)

// time.Weekday → 课表星期（周日不在课表范围内）
var weekdayCodes = map[time.Weekday]string{
	time.Monday:    model.DayMon,
	time.Tuesday:   model.DayTue,
	time.Wednesday: model.DayWed,
	time.Thursday:  model.DayThu,
	time.Friday:    model.DayFri,
	time.Saturday:  model.DaySat,
}

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
	viewSvc      service.TimetableViewService
	exportSvc    service.ExportService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(
	timetableSvc service.TimetableService,
	viewSvc service.TimetableViewService,
	exportSvc service.ExportService,
) *TimetableHandler {
	return &TimetableHandler{
		timetableSvc: timetableSvc,
		viewSvc:      viewSvc,
		exportSvc:    exportSvc,
	}
}

// CreateSlot 创建课表项
// POST /api/v1/timetable/slots
func (h *TimetableHandler) CreateSlot(c *gin.Context) {
	var req dto.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slot, err := h.timetableSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.Created(c, slot)
}

// GetSlot 获取课表项详情
// GET /api/v1/timetable/slots/:id
func (h *TimetableHandler) GetSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课表项ID不能为空")
		return
	}

	slot, err := h.timetableSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, slot)
}

// ListSlots 获取课表项列表（按班级/教师/教室/学年/学期/星期任意组合过滤）
// GET /api/v1/timetable/slots
func (h *TimetableHandler) ListSlots(c *gin.Context) {
	var req dto.SlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	slots, err := h.timetableSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, gin.H{"list": slots})
}

// ListMySlots 获取当前用户视角的课表
// GET /api/v1/timetable/my
// 学生按 token 中的班级过滤，教师按自身 ID 过滤
func (h *TimetableHandler) ListMySlots(c *gin.Context) {
	var req dto.SlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	role, ok := MustGetRole(c)
	if !ok {
		return
	}

	switch role {
	case model.RoleTeacher:
		req.TeacherID = userID
	case model.RoleStudent:
		classID := GetClassID(c)
		if classID == "" {
			response.BadRequest(c, 16001, "当前学生未归属任何班级")
			return
		}
		req.ClassID = classID
	default:
		response.BadRequest(c, 16002, "此视角仅支持教师与学生")
		return
	}

	slots, err := h.timetableSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, gin.H{"list": slots})
}

// UpdateSlot 更新课表项（全字段替换）
// PUT /api/v1/timetable/slots/:id
func (h *TimetableHandler) UpdateSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课表项ID不能为空")
		return
	}

	var req dto.SlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slot, err := h.timetableSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteSlot 删除课表项
// DELETE /api/v1/timetable/slots/:id
func (h *TimetableHandler) DeleteSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "课表项ID不能为空")
		return
	}

	if err := h.timetableSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, nil)
}

// DaySchedule 获取某天的课表视图（含空闲时段派生）
// GET /api/v1/timetable/day
// 仅当查询的星期与服务器当天相同才标记"正在进行的课"
func (h *TimetableHandler) DaySchedule(c *gin.Context) {
	var req dto.DayScheduleRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	now := time.Now()
	nowMinutes := -1
	if weekdayCodes[now.Weekday()] == req.DayOfWeek {
		nowMinutes = now.Hour()*60 + now.Minute()
	}

	schedule, err := h.viewSvc.DaySchedule(c.Request.Context(), &req, nowMinutes)
	if err != nil {
		h.handleTimetableError(c, err)
		return
	}

	response.OK(c, schedule)
}

// ExportTeacherCalendar 导出教师课表为 iCalendar 订阅源
// GET /api/v1/timetable/teachers/:id/calendar.ics?academic_year=2025&term=TERM_1
func (h *TimetableHandler) ExportTeacherCalendar(c *gin.Context) {
	teacherID := c.Param("id")
	academicYear := c.Query("academic_year")
	term := c.Query("term")
	if teacherID == "" || academicYear == "" || term == "" {
		response.BadRequest(c, 10001, "teacher_id、academic_year、term 均不能为空")
		return
	}

	text, filename, err := h.exportSvc.TeacherCalendar(c.Request.Context(), teacherID, academicYear, term)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrExportTeacherUnknown):
			response.NotFound(c, 17001, "教师不存在")
		case errors.Is(err, service.ErrExportNoSlots):
			response.NotFound(c, 17002, "该教师在此学期暂无课表")
		case errors.Is(err, pkgerrors.ErrStoreUnavailable):
			response.StoreUnavailable(c, 17003, "存储服务暂不可用，请稍后重试")
		default:
			response.InternalError(c)
		}
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(text))
}

// handleTimetableError 统一处理课表模块业务错误
func (h *TimetableHandler) handleTimetableError(c *gin.Context, err error) {
	var conflict *service.ConflictError
	switch {
	case errors.As(err, &conflict):
		// 409 响应的 data 携带碰撞课表项，前端据此展示冲突详情
		response.Conflict(c, 16003, conflict.Error(), conflict.Conflicting)
	case errors.Is(err, service.ErrSlotNotFound):
		response.NotFound(c, 16004, "课表项不存在")
	case errors.Is(err, service.ErrSlotLocked):
		response.Conflict(c, 16005, "课表项已锁定，禁止修改或删除", nil)
	case errors.Is(err, service.ErrSlotTimeInvalid):
		response.BadRequest(c, 16006, "时间格式无效，应为零填充 HH:MM")
	case errors.Is(err, service.ErrSlotTimeRange):
		response.BadRequest(c, 16007, "开始时间必须早于结束时间")
	case errors.Is(err, service.ErrSlotClassNotFound):
		response.BadRequest(c, 16008, "班级不存在")
	case errors.Is(err, service.ErrSlotSubjectNotFound):
		response.BadRequest(c, 16009, "科目不存在")
	case errors.Is(err, service.ErrSlotTeacherNotFound):
		response.BadRequest(c, 16010, "教师不存在")
	case errors.Is(err, service.ErrSlotTeacherInvalid):
		response.BadRequest(c, 16011, "teacher_id 指向的用户不是教师")
	case errors.Is(err, service.ErrSlotRoomNotFound):
		response.BadRequest(c, 16012, "教室不存在")
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		response.StoreUnavailable(c, 16013, "存储服务暂不可用，请稍后重试")
	default:
		response.InternalError(c)
	}
}
