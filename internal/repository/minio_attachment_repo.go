package repository

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/ryusei20030204-code/RT/config"
	"github.com/ryusei20030204-code/RT/internal/model"
	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
)

// minioAttachmentRepo AttachmentRepository 的 MinIO 对象存储实现
// 对象键沿用 "<研究室名>_<原始文件名>" 约定，与本地目录后端可互换
type minioAttachmentRepo struct {
	client *minio.Client
	bucket string
}

// NewMinioAttachmentRepo 创建 MinIO 后端；桶不存在时自动创建
func NewMinioAttachmentRepo(ctx context.Context, cfg *config.MinioConfig, logger *zap.Logger) (AttachmentRepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建 MinIO 客户端失败: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("检查 MinIO 桶失败: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("创建 MinIO 桶失败: %w", err)
		}
		logger.Info("已创建 MinIO 桶", zap.String("bucket", cfg.Bucket))
	}

	return &minioAttachmentRepo{client: client, bucket: cfg.Bucket}, nil
}

func (r *minioAttachmentRepo) Save(ctx context.Context, labName, filename string, src io.Reader, size int64) (string, error) {
	key := model.AttachmentKey(labName, filename)
	_, err := r.client.PutObject(ctx, r.bucket, key, src, size, minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("%w: MinIO 上传失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return key, nil
}

func (r *minioAttachmentRepo) ListForLab(ctx context.Context, labName string) ([]model.AttachmentInfo, error) {
	prefix := model.AttachmentPrefix(labName)
	infos := make([]model.AttachmentInfo, 0)

	for obj := range r.client.ListObjects(ctx, r.bucket, minio.ListObjectsOptions{Prefix: prefix}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("%w: MinIO 列举对象失败: %v", apperrors.ErrStoreUnavailable, obj.Err)
		}
		infos = append(infos, model.AttachmentInfo{
			Key:      obj.Key,
			Filename: strings.TrimPrefix(obj.Key, prefix),
			Size:     obj.Size,
		})
	}
	return infos, nil
}

func (r *minioAttachmentRepo) Read(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	obj, err := r.client.GetObject(ctx, r.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: MinIO 读取对象失败: %v", apperrors.ErrStoreUnavailable, err)
	}

	// GetObject 为惰性读取，Stat 触发一次请求以区分"键不存在"
	stat, err := obj.Stat()
	if err != nil {
		obj.Close()
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, 0, apperrors.ErrAttachmentNotFound
		}
		return nil, 0, fmt.Errorf("%w: MinIO 读取对象失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return obj, stat.Size, nil
}
