package repository

import (
	"context"

	"github.com/ryusei20030204-code/RT/internal/model"
)

// RecordRepository 研究室表与评论表的数据访问接口
//
// 两个可互换后端：本地 CSV 平面文件、远程 PostgreSQL（表 data / comments）。
// 语义约定：
//   - Load 系列按存储顺序返回全部记录；底层表完全缺失时返回空切片而非错误，
//     调用方把"无表"与"空表"同等对待（无数据可用）
//   - Append 系列只追加，不查重；传输层失败以 pkg/errors.ErrStoreUnavailable 包装上抛，不自动重试
//   - AppendComment 的投稿时间由存储层在写入时生成（分钟精度），调用方不提供
type RecordRepository interface {
	LoadLabs(ctx context.Context) ([]model.Lab, error)
	AppendLab(ctx context.Context, lab *model.Lab) error
	LoadComments(ctx context.Context) ([]model.Comment, error)
	AppendComment(ctx context.Context, labName, author, body string) error
}
