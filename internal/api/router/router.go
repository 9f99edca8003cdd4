package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ryusei20030204-code/RT/config"
	"github.com/ryusei20030204-code/RT/internal/api/handler"
	"github.com/ryusei20030204-code/RT/internal/api/middleware"
	"github.com/ryusei20030204-code/RT/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(cfg.Upload.MaxSizeMB << 20))

	// 投稿类接口限流（Redis 未配置时降级放行）
	submitLimit := middleware.RateLimit(rdb, 30, time.Minute)

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 大学名列表（检索过滤器的默认全选项）
		v1.GET("/universities", h.Lab.ListUniversities)

		// 研究室模块
		labs := v1.Group("/labs")
		{
			labs.GET("", h.Lab.ListLabs)
			labs.POST("", submitLimit, h.Lab.CreateLab)

			// 掲示板模块（按研究室）
			labs.GET("/:name/comments", h.Comment.ListComments)
			labs.POST("/:name/comments", submitLimit, h.Comment.CreateComment)

			// 附件模块（按研究室）
			labs.GET("/:name/attachments", h.Attachment.ListAttachments)
			labs.POST("/:name/attachments", submitLimit, h.Attachment.UploadAttachment)
			labs.GET("/:name/attachments/:filename", h.Attachment.DownloadAttachment)
		}

		// 导出模块
		v1.GET("/export/labs", h.Export.ExportLabs)
	}

	return r
}
