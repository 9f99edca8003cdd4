package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ryusei20030204-code/RT/internal/service"
	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
	"github.com/ryusei20030204-code/RT/pkg/response"
)

// AttachmentHandler 附件模块 HTTP 处理器
type AttachmentHandler struct {
	attachmentSvc service.AttachmentService
}

// NewAttachmentHandler 创建 AttachmentHandler
func NewAttachmentHandler(attachmentSvc service.AttachmentService) *AttachmentHandler {
	return &AttachmentHandler{attachmentSvc: attachmentSvc}
}

// ListAttachments 获取指定研究室的附件列表
// GET /api/v1/labs/:name/attachments
func (h *AttachmentHandler) ListAttachments(c *gin.Context) {
	labName := c.Param("name")

	attachments, err := h.attachmentSvc.ListByLab(c.Request.Context(), labName)
	if err != nil {
		h.handleAttachmentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": attachments, "total": len(attachments)})
}

// UploadAttachment 上传附件（multipart 表单，字段名 file）
// POST /api/v1/labs/:name/attachments
func (h *AttachmentHandler) UploadAttachment(c *gin.Context) {
	labName := c.Param("name")

	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, 10001, "缺少上传文件")
		return
	}

	attachment, err := h.attachmentSvc.Upload(c.Request.Context(), labName, fh)
	if err != nil {
		h.handleAttachmentError(c, err)
		return
	}

	response.Created(c, attachment)
}

// DownloadAttachment 下载附件
// GET /api/v1/labs/:name/attachments/:filename
func (h *AttachmentHandler) DownloadAttachment(c *gin.Context) {
	labName := c.Param("name")
	filename := c.Param("filename")

	rc, size, contentType, err := h.attachmentSvc.Download(c.Request.Context(), labName, filename)
	if err != nil {
		h.handleAttachmentError(c, err)
		return
	}
	defer rc.Close()

	// 文件名多为日文，按 RFC 5987 编码
	encodedFilename := url.QueryEscape(filename)
	extraHeaders := map[string]string{
		"Content-Disposition": "attachment; filename*=UTF-8''" + encodedFilename,
	}
	c.DataFromReader(http.StatusOK, size, contentType, rc, extraHeaders)
}

// handleAttachmentError 附件模块错误统一映射
func (h *AttachmentHandler) handleAttachmentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrAttachmentLabRequired):
		response.BadRequest(c, 13003, "研究室名不能为空")
	case errors.Is(err, service.ErrFileTypeNotAllowed):
		response.BadRequest(c, 13001, "不支持的文件类型（允许: pdf/png/jpg/jpeg）")
	case errors.Is(err, apperrors.ErrAttachmentNotFound):
		response.NotFound(c, 13002, "附件不存在")
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		response.ServiceUnavailable(c, 20001, "数据存储暂时不可用，请稍后重试")
	default:
		response.InternalError(c)
	}
}
