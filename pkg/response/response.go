package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ── 错误类别 ──
//
// 前端依据 kind 渲染不同 UI：表单内联错误 / 冲突详情弹窗 / 刷新提示 / 重试横幅

const (
	KindValidation       = "VALIDATION"
	KindConflict         = "CONFLICT"
	KindNotFound         = "NOT_FOUND"
	KindStoreUnavailable = "STORE_UNAVAILABLE"
)

// Response 统一响应结构（与 API 文档约定一致）
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Kind    string      `json:"kind,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Details string      `json:"details,omitempty"`
}

// Pagination 分页元数据
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// PageData 分页响应数据
type PageData struct {
	List       interface{} `json:"list"`
	Pagination Pagination  `json:"pagination"`
}

// ── 成功响应 ──

// OK 200 成功响应
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// Created 201 创建成功
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

// OKPage 200 分页成功
func OKPage(c *gin.Context, list interface{}, total int64, page, pageSize int) {
	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data: PageData{
			List: list,
			Pagination: Pagination{
				Page:       page,
				PageSize:   pageSize,
				Total:      total,
				TotalPages: totalPages,
			},
		},
	})
}

// ── 错误响应 ──

// Error 通用错误响应
func Error(c *gin.Context, httpStatus int, code int, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Message: message,
	})
}

// ErrorKind 携带错误类别的错误响应
func ErrorKind(c *gin.Context, httpStatus int, code int, kind, message string) {
	c.JSON(httpStatus, Response{
		Code:    code,
		Kind:    kind,
		Message: message,
	})
}

// ── 常见快捷方式 ──

// BadRequest 400 输入校验失败
func BadRequest(c *gin.Context, code int, message string) {
	ErrorKind(c, http.StatusBadRequest, code, KindValidation, message)
}

// Unauthorized 401
func Unauthorized(c *gin.Context, code int, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden 403
func Forbidden(c *gin.Context, code int, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound 404 资源不存在
func NotFound(c *gin.Context, code int, message string) {
	ErrorKind(c, http.StatusNotFound, code, KindNotFound, message)
}

// Conflict 409 业务冲突，data 携带冲突对象供前端展示
func Conflict(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(http.StatusConflict, Response{
		Code:    code,
		Kind:    KindConflict,
		Message: message,
		Data:    data,
	})
}

// StoreUnavailable 503 存储层暂不可用，调用方可退避重试
func StoreUnavailable(c *gin.Context, code int, message string) {
	ErrorKind(c, http.StatusServiceUnavailable, code, KindStoreUnavailable, message)
}

// InternalError 500
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, 50000, "服务器内部错误")
}
