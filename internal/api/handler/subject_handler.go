package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/service"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
	"github.com/TinaTech-Developers/school-management-system/pkg/response"
)

// SubjectHandler 科目模块 HTTP 处理器
type SubjectHandler struct {
	subjectSvc service.SubjectService
}

// NewSubjectHandler 创建 SubjectHandler
func NewSubjectHandler(subjectSvc service.SubjectService) *SubjectHandler {
	return &SubjectHandler{subjectSvc: subjectSvc}
}

// CreateSubject 创建科目
// POST /api/v1/subjects
func (h *SubjectHandler) CreateSubject(c *gin.Context) {
	var req dto.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	subject, err := h.subjectSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.Created(c, subject)
}

// GetSubject 获取科目详情
// GET /api/v1/subjects/:id
func (h *SubjectHandler) GetSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	subject, err := h.subjectSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// ListSubjects 获取科目列表
// GET /api/v1/subjects
func (h *SubjectHandler) ListSubjects(c *gin.Context) {
	var req dto.SubjectListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	subjects, err := h.subjectSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, gin.H{"list": subjects})
}

// UpdateSubject 更新科目
// PUT /api/v1/subjects/:id
func (h *SubjectHandler) UpdateSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	var req dto.UpdateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	subject, err := h.subjectSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, subject)
}

// DeleteSubject 删除科目（软删除，有课表项时拒绝）
// DELETE /api/v1/subjects/:id
func (h *SubjectHandler) DeleteSubject(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "科目ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.subjectSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleSubjectError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleSubjectError 统一处理科目模块业务错误
func (h *SubjectHandler) handleSubjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSubjectNotFound):
		response.NotFound(c, 14001, "科目不存在")
	case errors.Is(err, service.ErrSubjectClassNotFound):
		response.BadRequest(c, 14002, "科目所属班级不存在")
	case errors.Is(err, service.ErrSubjectTeacherBad):
		response.BadRequest(c, 14003, "任课教师引用无效")
	case errors.Is(err, service.ErrSubjectHasTimetable):
		response.Conflict(c, 14004, "科目仍有课表项，禁止删除", nil)
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		response.StoreUnavailable(c, 14005, "存储服务暂不可用，请稍后重试")
	default:
		response.InternalError(c)
	}
}
