package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/TinaTech-Developers/school-management-system/internal/dto"
	"github.com/TinaTech-Developers/school-management-system/internal/service"
	pkgerrors "github.com/TinaTech-Developers/school-management-system/pkg/errors"
	"github.com/TinaTech-Developers/school-management-system/pkg/response"
)

// RoomHandler 教室模块 HTTP 处理器
type RoomHandler struct {
	roomSvc service.RoomService
}

// NewRoomHandler 创建 RoomHandler
func NewRoomHandler(roomSvc service.RoomService) *RoomHandler {
	return &RoomHandler{roomSvc: roomSvc}
}

// CreateRoom 创建教室
// POST /api/v1/rooms
func (h *RoomHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.Created(c, room)
}

// GetRoom 获取教室详情
// GET /api/v1/rooms/:id
func (h *RoomHandler) GetRoom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教室ID不能为空")
		return
	}

	room, err := h.roomSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// ListRooms 获取教室列表
// GET /api/v1/rooms
func (h *RoomHandler) ListRooms(c *gin.Context) {
	rooms, err := h.roomSvc.List(c.Request.Context())
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// UpdateRoom 更新教室
// PUT /api/v1/rooms/:id
func (h *RoomHandler) UpdateRoom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教室ID不能为空")
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	room, err := h.roomSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, room)
}

// DeleteRoom 删除教室（软删除，有课表项时拒绝）
// DELETE /api/v1/rooms/:id
func (h *RoomHandler) DeleteRoom(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "教室ID不能为空")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.roomSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleRoomError(c, err)
		return
	}

	response.OK(c, nil)
}

// handleRoomError 统一处理教室模块业务错误
func (h *RoomHandler) handleRoomError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRoomNotFound):
		response.NotFound(c, 15001, "教室不存在")
	case errors.Is(err, service.ErrRoomHasTimetable):
		response.Conflict(c, 15002, "教室仍有课表项，禁止删除", nil)
	case errors.Is(err, pkgerrors.ErrStoreUnavailable):
		response.StoreUnavailable(c, 15003, "存储服务暂不可用，请稍后重试")
	default:
		response.InternalError(c)
	}
}
