package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/ryusei20030204-code/RT/internal/dto"
	"github.com/ryusei20030204-code/RT/internal/service"
	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
	"github.com/ryusei20030204-code/RT/pkg/response"
)

// CommentHandler 掲示板模块 HTTP 处理器
type CommentHandler struct {
	commentSvc service.CommentService
}

// NewCommentHandler 创建 CommentHandler
func NewCommentHandler(commentSvc service.CommentService) *CommentHandler {
	return &CommentHandler{commentSvc: commentSvc}
}

// ListComments 获取指定研究室的投稿列表（新しい順）
// GET /api/v1/labs/:name/comments
func (h *CommentHandler) ListComments(c *gin.Context) {
	labName := c.Param("name")

	comments, err := h.commentSvc.ListByLab(c.Request.Context(), labName)
	if err != nil {
		h.handleCommentError(c, err)
		return
	}

	response.OK(c, gin.H{"list": comments, "total": len(comments)})
}

// CreateComment 投稿
// POST /api/v1/labs/:name/comments
func (h *CommentHandler) CreateComment(c *gin.Context) {
	labName := c.Param("name")

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	if err := h.commentSvc.Submit(c.Request.Context(), labName, &req); err != nil {
		h.handleCommentError(c, err)
		return
	}

	response.Created(c, nil)
}

// handleCommentError 掲示板模块错误统一映射
func (h *CommentHandler) handleCommentError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCommentLabRequired):
		response.BadRequest(c, 12002, "研究室名不能为空")
	case errors.Is(err, service.ErrCommentBodyRequired):
		response.BadRequest(c, 12001, "评论内容不能为空")
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		response.ServiceUnavailable(c, 20001, "数据存储暂时不可用，请稍后重试")
	default:
		response.InternalError(c)
	}
}
