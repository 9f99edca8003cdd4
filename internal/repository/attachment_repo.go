package repository

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ryusei20030204-code/RT/internal/model"
	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
)

// AttachmentRepository 附件（上传文件）存储接口
//
// 存储键 = 研究室名 + "_" + 原始文件名；同键写入为静默覆盖，无版本管理。
// 两个可互换后端：本地目录、MinIO 对象存储。
type AttachmentRepository interface {
	// Save 写入附件内容，返回存储键；已存在同键时覆盖
	Save(ctx context.Context, labName, filename string, r io.Reader, size int64) (string, error)
	// ListForLab 扫描全部存储键，保留前缀为 "<研究室名>_" 的条目
	ListForLab(ctx context.Context, labName string) ([]model.AttachmentInfo, error)
	// Read 按存储键读取内容；键不存在时返回 pkg/errors.ErrAttachmentNotFound
	Read(ctx context.Context, key string) (io.ReadCloser, int64, error)
}

// localAttachmentRepo AttachmentRepository 的本地目录实现
// 一个附件对应 uploads/ 下的一个文件，文件名即存储键
type localAttachmentRepo struct {
	dir string
}

// NewLocalAttachmentRepo 创建本地目录后端；目录不存在时自动创建
func NewLocalAttachmentRepo(dir string) (AttachmentRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("创建上传目录失败: %w", err)
	}
	return &localAttachmentRepo{dir: dir}, nil
}

func (r *localAttachmentRepo) Save(_ context.Context, labName, filename string, src io.Reader, _ int64) (string, error) {
	key := model.AttachmentKey(labName, filename)

	f, err := os.Create(filepath.Join(r.dir, key))
	if err != nil {
		return "", fmt.Errorf("%w: 创建附件文件失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, src); err != nil {
		return "", fmt.Errorf("%w: 写入附件内容失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return key, nil
}

func (r *localAttachmentRepo) ListForLab(_ context.Context, labName string) ([]model.AttachmentInfo, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: 读取上传目录失败: %v", apperrors.ErrStoreUnavailable, err)
	}

	prefix := model.AttachmentPrefix(labName)
	infos := make([]model.AttachmentInfo, 0)
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), prefix) {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, model.AttachmentInfo{
			Key:      e.Name(),
			Filename: strings.TrimPrefix(e.Name(), prefix),
			Size:     fi.Size(),
		})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}

func (r *localAttachmentRepo) Read(_ context.Context, key string) (io.ReadCloser, int64, error) {
	f, err := os.Open(filepath.Join(r.dir, key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, apperrors.ErrAttachmentNotFound
		}
		return nil, 0, fmt.Errorf("%w: 打开附件失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, 0, fmt.Errorf("%w: 读取附件信息失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return f, fi.Size(), nil
}
