package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/service"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
	"github.com/TinaTech-Developers/school-management-system/pkg/response"
)

// ClassHandler 班级模块 HTTP 处理器
type ClassHandler struct {
	classSvc service.ClassService
}

// NewClassHandler 创建 ClassHandler
func NewClassHandler(classSvc service.ClassService) *ClassHandler {
	return &ClassHandler{classSvc: classSvc}
}

// CreateClass 创建班级
// POST /api/v1/classes
func (h *ClassHandler) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.Created(c, class)
}

// GetClass 获取班级详情
// GET /api/v1/classes/:id
func (h *ClassHandler) GetClass(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	class, err := h.classSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// ListClasses 获取班级列表
// GET /api/v1/classes
func (h *ClassHandler) ListClasses(c *gin.Context) {
	classes, err := h.classSvc.List(c.Request.Context())
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, gin.H{"list": classes})
}

// UpdateClass 更新班级
// PUT /api/v1/classes/:id
func (h *ClassHandler) UpdateClass(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	var req dto.UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	class, err := h.classSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, class)
}

// DeleteClass 删除班级（软删除，有课表项时拒绝）
// DELETE /api/v1/classes/:id
func (h *ClassHandler) DeleteClass(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "班级ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.classSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleClassError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleClassError 统一处理班级模块业务错误
func (h *ClassHandler) handleClassError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrClassNotFound):
		response.NotFound(c, 13001, "班级不存在")
	case errors.Is(err, service.ErrClassTeacherBad):
		response.BadRequest(c, 13002, "班主任引用无效")
	case errors.Is(err, service.ErrClassHasTimetable):
		response.Conflict(c, 13003, "班级仍有课表项，禁止删除", nil)
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		response.StoreUnavailable(c, 13004, "存储服务暂不可用，请稍后重试")
	default:
		response.InternalError(c)
	}
}
