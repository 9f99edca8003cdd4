package service

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/ryusei20030204-code/RT/internal/dto"
	"github.com/ryusei20030204-code/RT/internal/model"
	"github.com/ryusei20030204-code/RT/internal/repository"
)

// ── 附件模块业务错误 ──

var (
	ErrFileTypeNotAllowed    = errors.New("不支持的文件类型")
	ErrAttachmentLabRequired = errors.New("研究室名不能为空")
)

// AttachmentService 附件（過去問・解答共有）业务接口
type AttachmentService interface {
	// Upload 保存上传文件；同一研究室同名文件静默覆盖
	// 扩展名白名单（pdf/png/jpg/jpeg）在此层强制
	Upload(ctx context.Context, labName string, fh *multipart.FileHeader) (*dto.AttachmentResponse, error)
	// ListByLab 列出指定研究室的全部附件
	ListByLab(ctx context.Context, labName string) ([]dto.AttachmentResponse, error)
	// Download 按研究室名+文件名读取附件内容，返回 (内容, 大小, Content-Type)
	Download(ctx context.Context, labName, filename string) (io.ReadCloser, int64, string, error)
}

type attachmentService struct {
	repo        *repository.Repository
	allowedExts map[string]struct{}
	logger      *zap.Logger
}

// NewAttachmentService 创建 AttachmentService 实例
func NewAttachmentService(repo *repository.Repository, allowedExts []string, logger *zap.Logger) AttachmentService {
	extSet := make(map[string]struct{}, len(allowedExts))
	for _, ext := range allowedExts {
		extSet[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &attachmentService{repo: repo, allowedExts: extSet, logger: logger}
}

func (s *attachmentService) Upload(ctx context.Context, labName string, fh *multipart.FileHeader) (*dto.AttachmentResponse, error) {
	if labName == "" {
		return nil, ErrAttachmentLabRequired
	}

	// 只保留文件名本体，防止路径穿越
	filename := filepath.Base(fh.Filename)
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := s.allowedExts[ext]; !ok {
		return nil, ErrFileTypeNotAllowed
	}

	src, err := fh.Open()
	if err != nil {
		s.logger.Error("打开上传文件失败", zap.String("filename", filename), zap.Error(err))
		return nil, err
	}
	defer src.Close()

	key, err := s.repo.Attachment.Save(ctx, labName, filename, src, fh.Size)
	if err != nil {
		s.logger.Error("保存附件失败",
			zap.String("lab_name", labName),
			zap.String("filename", filename),
			zap.Error(err),
		)
		return nil, err
	}

	return &dto.AttachmentResponse{Key: key, Filename: filename, Size: fh.Size}, nil
}

func (s *attachmentService) ListByLab(ctx context.Context, labName string) ([]dto.AttachmentResponse, error) {
	if labName == "" {
		return nil, ErrAttachmentLabRequired
	}

	infos, err := s.repo.Attachment.ListForLab(ctx, labName)
	if err != nil {
		s.logger.Error("列举附件失败", zap.String("lab_name", labName), zap.Error(err))
		return nil, err
	}

	result := make([]dto.AttachmentResponse, 0, len(infos))
	for _, info := range infos {
		result = append(result, dto.AttachmentResponse{
			Key:      info.Key,
			Filename: info.Filename,
			Size:     info.Size,
		})
	}
	return result, nil
}

func (s *attachmentService) Download(ctx context.Context, labName, filename string) (io.ReadCloser, int64, string, error) {
	if labName == "" {
		return nil, 0, "", ErrAttachmentLabRequired
	}

	filename = filepath.Base(filename)
	key := model.AttachmentKey(labName, filename)

	rc, size, err := s.repo.Attachment.Read(ctx, key)
	if err != nil {
		return nil, 0, "", err
	}

	// 按扩展名推断 Content-Type，推断不出时按通用二进制处理
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return rc, size, contentType, nil
}
