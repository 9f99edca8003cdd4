package handler

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"github.com/ryusei20030204-code/RT/internal/dto"
	"github.com/ryusei20030204-code/RT/internal/service"
	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
	"github.com/ryusei20030204-code/RT/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler 导出模块 HTTP 处理器
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler 创建 ExportHandler
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportLabs 导出研究室一覧（过滤条件与检索接口一致）
// GET /api/v1/export/labs?university=...&keyword=...
func (h *ExportHandler) ExportLabs(c *gin.Context) {
	var req dto.LabListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	buf, filename, err := h.exportSvc.ExportLabs(c.Request.Context(), req.Universities, req.Keyword)
	if err != nil {
		h.handleExportError(c, err)
		return
	}

	// 设置下载响应头
	encodedFilename := url.QueryEscape(filename)
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+encodedFilename)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (h *ExportHandler) handleExportError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		response.ServiceUnavailable(c, 20001, "数据存储暂时不可用，请稍后重试")
	case errors.Is(err, service.ErrExportGenerateFail):
		response.InternalError(c)
	default:
		response.InternalError(c)
	}
}
