package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ryusei20030204-code/RT/config"
	"github.com/ryusei20030204-code/RT/internal/api/handler"
	"github.com/ryusei20030204-code/RT/internal/api/router"
	"github.com/ryusei20030204-code/RT/internal/repository"
	"github.com/ryusei20030204-code/RT/internal/service"
	"github.com/ryusei20030204-code/RT/pkg/database"
	applogger "github.com/ryusei20030204-code/RT/pkg/logger"
	"github.com/ryusei20030204-code/RT/pkg/redis"
)

func main() {
	// 1. 加载配置
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化日志失败: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("应用启动中...",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
	)

	// 3. 选择记录存储后端（启动时决定一次，不按请求重新评估）
	//    凭据齐备时优先远程数据库，否则回退本地 CSV 平面文件
	var db *gorm.DB
	var recordRepo repository.RecordRepository
	if cfg.Database.Configured() {
		db, err = database.NewDB(&cfg.Database, logger)
		if err != nil {
			logger.Fatal("数据库连接失败", zap.Error(err))
		}

		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("获取底层 sql.DB 失败", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("数据库迁移失败", zap.Error(err))
		}

		recordRepo = repository.NewGormRecordRepo(db)
		logger.Info("记录存储后端: 远程数据库")
	} else {
		recordRepo = repository.NewCSVRecordRepo(cfg.Storage.DataFile, cfg.Storage.CommentsFile)
		logger.Info("记录存储后端: 本地 CSV",
			zap.String("data_file", cfg.Storage.DataFile),
			zap.String("comments_file", cfg.Storage.CommentsFile),
		)
	}

	// 4. 选择附件存储后端：MinIO 已配置时优先，否则本地目录
	var attachmentRepo repository.AttachmentRepository
	if cfg.Minio.Configured() {
		attachmentRepo, err = repository.NewMinioAttachmentRepo(context.Background(), &cfg.Minio, logger)
		if err != nil {
			logger.Fatal("初始化 MinIO 附件后端失败", zap.Error(err))
		}
		logger.Info("附件存储后端: MinIO", zap.String("bucket", cfg.Minio.Bucket))
	} else {
		attachmentRepo, err = repository.NewLocalAttachmentRepo(cfg.Storage.UploadDir)
		if err != nil {
			logger.Fatal("初始化本地附件目录失败", zap.Error(err))
		}
		logger.Info("附件存储后端: 本地目录", zap.String("dir", cfg.Storage.UploadDir))
	}

	// 5. 连接 Redis（可选：连接失败时降级运行，限流功能不可用）
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = redis.NewClient(&cfg.Redis, logger)
		if err != nil {
			logger.Warn("Redis 连接失败，限流功能将不可用", zap.Error(err))
			rdb = nil
		}
	}

	// 6. 依赖注入: Repository → Service → Handler
	repo := &repository.Repository{
		Record:     recordRepo,
		Attachment: attachmentRepo,
	}
	svc := service.NewService(cfg, repo, logger)
	h := handler.NewHandler(svc)

	// 7. 初始化路由
	engine := router.Setup(cfg, h, rdb, logger)

	// 8. 启动 HTTP 服务器（优雅关闭）
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP 服务器已启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP 服务器异常", zap.Error(err))
		}
	}()

	// 9. 监听系统信号，优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("收到关闭信号，开始优雅关闭...", zap.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("服务器关闭异常", zap.Error(err))
	}

	// 关闭数据库连接（仅远程后端）
	if db != nil {
		if closeDB, err := db.DB(); err == nil {
			closeDB.Close()
		}
	}

	// 关闭 Redis 连接
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("服务器已关闭")
}
