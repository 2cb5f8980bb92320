package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TinaTech-Developers/school-management-system/config"
	"github.com/TinaTech-Developers/school-management-system/internal/api/handler"
	"github.com/TinaTech-Developers/school-management-system/internal/api/middleware"
	"github.com/TinaTech-Developers/school-management-system/internal/model"
	"github.com/TinaTech-Developers/school-management-system/pkg/jwt"
	"github.com/TinaTech-Developers/school-management-system/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证，登录接口限流防爆破）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			// 用户模块（管理员）
			users := authorized.Group("/users", middleware.RoleAuth(model.RoleAdmin))
			{
				users.GET("", h.User.ListUsers)
				users.GET("/:id", h.User.GetUser)
				users.POST("", h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser)
				users.DELETE("/:id", h.User.DeleteUser)
			}

			// 班级模块
			classes := authorized.Group("/classes")
			{
				classes.GET("", h.Class.ListClasses)
				classes.GET("/:id", h.Class.GetClass)
				classes.POST("", middleware.RoleAuth(model.RoleAdmin), h.Class.CreateClass)
				classes.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Class.UpdateClass)
				classes.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Class.DeleteClass)
			}

			// 科目模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.ListSubjects)
				subjects.GET("/:id", h.Subject.GetSubject)
				subjects.POST("", middleware.RoleAuth(model.RoleAdmin), h.Subject.CreateSubject)
				subjects.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Subject.UpdateSubject)
				subjects.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Subject.DeleteSubject)
			}

			// 教室模块
			rooms := authorized.Group("/rooms")
			{
				rooms.GET("", h.Room.ListRooms)
				rooms.GET("/:id", h.Room.GetRoom)
				rooms.POST("", middleware.RoleAuth(model.RoleAdmin), h.Room.CreateRoom)
				rooms.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.UpdateRoom)
				rooms.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Room.DeleteRoom)
			}

			// 课表模块：读开放给所有登录角色，写仅管理员
			timetable := authorized.Group("/timetable")
			{
				timetable.GET("/slots", h.Timetable.ListSlots)
				timetable.GET("/slots/:id", h.Timetable.GetSlot)
				timetable.GET("/my", h.Timetable.ListMySlots)
				timetable.GET("/day", h.Timetable.DaySchedule)
				timetable.GET("/teachers/:id/calendar.ics", h.Timetable.ExportTeacherCalendar)
				timetable.POST("/slots", middleware.RoleAuth(model.RoleAdmin), h.Timetable.CreateSlot)
				timetable.PUT("/slots/:id", middleware.RoleAuth(model.RoleAdmin), h.Timetable.UpdateSlot)
				timetable.DELETE("/slots/:id", middleware.RoleAuth(model.RoleAdmin), h.Timetable.DeleteSlot)
			}
		}
	}

	return r
}
