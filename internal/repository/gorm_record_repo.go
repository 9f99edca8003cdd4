package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/ryusei20030204-code/RT/internal/model"
	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
)

// gormRecordRepo RecordRepository 的远程 PostgreSQL 实现
// 表结构由迁移保证存在（见 pkg/database/migrations）；自增 id 保证存储顺序
type gormRecordRepo struct {
	db *gorm.DB
}

// NewGormRecordRepo 创建远程数据库后端的 RecordRepository
func NewGormRecordRepo(db *gorm.DB) RecordRepository {
	return &gormRecordRepo{db: db}
}

func (r *gormRecordRepo) LoadLabs(ctx context.Context) ([]model.Lab, error) {
	var labs []model.Lab
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&labs).Error
	if err != nil {
		return nil, fmt.Errorf("%w: 查询研究室表失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return labs, nil
}

func (r *gormRecordRepo) AppendLab(ctx context.Context, lab *model.Lab) error {
	if err := r.db.WithContext(ctx).Create(lab).Error; err != nil {
		return fmt.Errorf("%w: 写入研究室表失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

func (r *gormRecordRepo) LoadComments(ctx context.Context) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("%w: 查询评论表失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return comments, nil
}

func (r *gormRecordRepo) AppendComment(ctx context.Context, labName, author, body string) error {
	comment := &model.Comment{
		LabName:  labName,
		Author:   author,
		PostedAt: time.Now().Format(model.CommentTimeLayout),
		Body:     body,
	}
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return fmt.Errorf("%w: 写入评论表失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}
