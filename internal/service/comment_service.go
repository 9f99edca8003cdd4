package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/ryusei20030204-code/RT/internal/dto"
	"github.com/ryusei20030204-code/RT/internal/model"
	"github.com/ryusei20030204-code/RT/internal/repository"
)

// ── 掲示板模块业务错误 ──

var (
	ErrCommentBodyRequired = errors.New("评论内容不能为空")
	ErrCommentLabRequired  = errors.New("研究室名不能为空")
)

// CommentService 掲示板业务接口
type CommentService interface {
	// ListByLab 返回指定研究室的全部投稿，新しい順（存储顺序的倒序）
	ListByLab(ctx context.Context, labName string) ([]dto.CommentResponse, error)
	// Submit 投稿：body 必填，author 留空补默认显示名；
	// 时间戳由存储层在写入时生成
	Submit(ctx context.Context, labName string, req *dto.CreateCommentRequest) error
}

type commentService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCommentService 创建 CommentService 实例
func NewCommentService(repo *repository.Repository, logger *zap.Logger) CommentService {
	return &commentService{repo: repo, logger: logger}
}

func (s *commentService) ListByLab(ctx context.Context, labName string) ([]dto.CommentResponse, error) {
	if labName == "" {
		return nil, ErrCommentLabRequired
	}

	comments, err := s.repo.Record.LoadComments(ctx)
	if err != nil {
		s.logger.Error("读取评论表失败", zap.Error(err))
		return nil, err
	}

	// 研究室名精确匹配（区分大小写），倒序输出
	result := make([]dto.CommentResponse, 0)
	for i := len(comments) - 1; i >= 0; i-- {
		c := &comments[i]
		if c.LabName != labName {
			continue
		}
		result = append(result, dto.CommentResponse{
			LabName:  c.LabName,
			Author:   c.Author,
			PostedAt: c.PostedAt,
			Body:     c.Body,
		})
	}
	return result, nil
}

func (s *commentService) Submit(ctx context.Context, labName string, req *dto.CreateCommentRequest) error {
	if labName == "" {
		return ErrCommentLabRequired
	}
	if req.Body == "" {
		// 必填校验失败：不写入任何行
		return ErrCommentBodyRequired
	}

	author := req.Author
	if author == "" {
		author = model.DefaultAuthor
	}

	if err := s.repo.Record.AppendComment(ctx, labName, author, req.Body); err != nil {
		s.logger.Error("追加评论失败", zap.String("lab_name", labName), zap.Error(err))
		return err
	}
	return nil
}
