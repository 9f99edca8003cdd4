package service

import (
	"go.uber.org/zap"

	"github.com/ryusei20030204-code/RT/config"
	"github.com/ryusei20030204-code/RT/internal/repository"
)

// Service 所有 Service 的聚合入口
type Service struct {
	Lab        LabService
	Comment    CommentService
	Attachment AttachmentService
	Export     ExportService
}

// NewService 创建 Service 聚合
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	logger *zap.Logger,
) *Service {
	return &Service{
		Lab:        NewLabService(repo, cfg.Cache.LabsTTL, logger),
		Comment:    NewCommentService(repo, logger),
		Attachment: NewAttachmentService(repo, cfg.Upload.AllowedExts, logger),
		Export:     NewExportService(repo, logger),
	}
}
