package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mini-mcu/config"
	"mini-mcu/internal/api/handler"
	"mini-mcu/internal/api/middleware"
	"mini-mcu/pkg/jwt"
	"mini-mcu/pkg/redis"
)

// jsonBodyLimit caps every non-upload request body.
const jsonBodyLimit = 1 << 20

// Setup builds the gin engine. rdb may be nil, which disables rate limiting.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── Global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	uploadLimit := int64(cfg.Server.MaxUploadMB) << 20
	jsonLimit := middleware.BodyLimit(jsonBodyLimit)
	staff := middleware.RoleAuth(middleware.RoleMaster, middleware.RoleManager, middleware.RoleNurse)
	admins := middleware.RoleAuth(middleware.RoleMaster, middleware.RoleManager)

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr))
	{
		uploads := v1.Group("/uploads", middleware.BodyLimit(uploadLimit))
		{
			uploads.POST("/master", admins, h.Upload.UploadMaster)
			uploads.POST("/checkups", staff,
				middleware.RateLimit(rdb, cfg.MCU.UploadRateLimit, time.Minute),
				h.Upload.UploadCheckups)
		}

		logs := v1.Group("/upload-logs", admins, jsonLimit)
		{
			logs.GET("", h.UploadLog.ListLogs)
			logs.GET("/:name", h.UploadLog.GetLog)
			logs.DELETE("/:name", h.UploadLog.UndoLog)
			logs.POST("/undo", h.UploadLog.UndoLogs)
			logs.DELETE("", h.UploadLog.PurgeLogs)
		}

		employees := v1.Group("/employees", staff, jsonLimit)
		{
			employees.GET("", h.Employee.ListEmployees)
			employees.GET("/:uid", h.Employee.GetEmployee)
			employees.PATCH("/:uid", h.Employee.UpdateEmployee)
			employees.GET("/:uid/checkups", h.Employee.ListCheckups)
			employees.POST("/:uid/checkups", h.Employee.CreateCheckup)
		}

		dashboard := v1.Group("/dashboard", staff)
		{
			dashboard.GET("/summary", h.Dashboard.Summary)
			dashboard.GET("/mcu-expiry", h.Dashboard.MCUExpiry)
		}

		lokasi := v1.Group("/lokasi", jsonLimit)
		{
			lokasi.GET("", staff, h.Lokasi.ListLokasi)
			lokasi.POST("", admins, h.Lokasi.CreateLokasi)
			lokasi.DELETE("/:nama", middleware.RoleAuth(middleware.RoleMaster), h.Lokasi.DeleteLokasi)
		}

		v1.GET("/templates/checkup", staff, h.Template.CheckupTemplate)
		v1.POST("/metrics/status", jsonLimit, h.Metrics.Status)
	}

	return r
}
