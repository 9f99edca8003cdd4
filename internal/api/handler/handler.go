package handler

import "github.com/ryusei20030204-code/RT/internal/service"

// Handler 所有 Handler 的聚合入口
type Handler struct {
	Lab        *LabHandler
	Comment    *CommentHandler
	Attachment *AttachmentHandler
	Export     *ExportHandler
}

// NewHandler 创建 Handler 聚合
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Lab:        NewLabHandler(svc.Lab),
		Comment:    NewCommentHandler(svc.Comment),
		Attachment: NewAttachmentHandler(svc.Attachment),
		Export:     NewExportHandler(svc.Export),
	}
}
