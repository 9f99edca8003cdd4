package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ryusei20030204-code/RT/internal/dto"
	"github.com/ryusei20030204-code/RT/internal/service"
	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
	"github.com/ryusei20030204-code/RT/pkg/response"
)

// LabHandler 研究室模块 HTTP 处理器
type LabHandler struct {
	labSvc service.LabService
}

// NewLabHandler 创建 LabHandler
func NewLabHandler(labSvc service.LabService) *LabHandler {
	return &LabHandler{labSvc: labSvc}
}

// ListLabs 检索研究室
// GET /api/v1/labs?university=東京大学&university=京都大学&keyword=制御
func (h *LabHandler) ListLabs(c *gin.Context) {
	var req dto.LabListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	labs, available, err := h.labSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleLabError(c, err)
		return
	}

	data := gin.H{"list": labs, "total": len(labs)}
	if !available {
		// 数据不可用降级为空结果，附带用户可见警告，不视为错误
		response.OKWithWarning(c, data, "暂无数据：数据表不存在或尚无记录")
		return
	}
	response.OK(c, data)
}

// ListUniversities 获取大学名列表（检索过滤器的默认全选项）
// GET /api/v1/universities
func (h *LabHandler) ListUniversities(c *gin.Context) {
	universities, err := h.labSvc.ListUniversities(c.Request.Context())
	if err != nil {
		h.handleLabError(c, err)
		return
	}

	response.OK(c, gin.H{"list": universities})
}

// CreateLab 新規登録
// POST /api/v1/labs
func (h *LabHandler) CreateLab(c *gin.Context) {
	var req dto.CreateLabRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	lab, err := h.labSvc.Submit(c.Request.Context(), &req)
	if err != nil {
		h.handleLabError(c, err)
		return
	}

	response.Created(c, lab)
}

// handleLabError 研究室模块错误统一映射
func (h *LabHandler) handleLabError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrLabNameRequired):
		response.BadRequest(c, 11001, "研究室名不能为空")
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		response.ServiceUnavailable(c, 20001, "数据存储暂时不可用，请稍后重试")
	default:
		response.InternalError(c)
	}
}
