package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/TinaTech-Developers/school-management-system/pkg/jwt"
	"github.com/TinaTech-Developers/school-management-system/pkg/response"
)

// MustGetUserID 从 Gin 上下文中安全提取 user_id。
// 如果 JWT 中间件未正确注入 user_id，返回 false 并写入 401 响应。
// 调用方应在 ok=false 时直接 return。
func MustGetUserID(c *gin.Context) (string, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// MustGetRole 从 Gin 上下文中安全提取 role。
func MustGetRole(c *gin.Context) (string, bool) {
	v, exists := c.Get("role")
	if !exists {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		response.Unauthorized(c, 10002, "未认证")
		return "", false
	}
	return s, true
}

// GetClassID 从 Gin 上下文中提取 class_id（学生 token 才有值，允许为空）。
func GetClassID(c *gin.Context) string {
	v, exists := c.Get("class_id")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}

// GetClaims 从 Gin 上下文中提取完整 JWT claims（登出时加黑名单需要 jti 与过期时间）。
func GetClaims(c *gin.Context) *jwt.Claims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, _ := v.(*jwt.Claims)
	return claims
}
