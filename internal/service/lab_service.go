package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/ryusei20030204-code/RT/internal/dto"
	"github.com/ryusei20030204-code/RT/internal/model"
	"github.com/ryusei20030204-code/RT/internal/repository"
)

// ── 研究室模块业务错误 ──

var ErrLabNameRequired = errors.New("研究室名不能为空")

// LabService 研究室业务接口
type LabService interface {
	// List 按大学集合与关键词检索研究室；universities 未指定时默认全部大学
	// 第二个返回值表示存储中是否存在任何记录：false 对应"数据不可用"，
	// 调用方据此附带用户可见的警告而非报错
	List(ctx context.Context, req *dto.LabListRequest) ([]dto.LabResponse, bool, error)
	// ListUniversities 返回去重后的大学名列表（按首次出现顺序）
	ListUniversities(ctx context.Context) ([]string, error)
	// Submit 新規登録：仅研究室名必填，其余字段留空时补默认值；
	// 不查重，成功后失效读缓存
	Submit(ctx context.Context, req *dto.CreateLabRequest) (*dto.LabResponse, error)
}

type labService struct {
	repo   *repository.Repository
	cache  *labCache
	logger *zap.Logger
}

// NewLabService 创建 LabService 实例
func NewLabService(repo *repository.Repository, cacheTTL time.Duration, logger *zap.Logger) LabService {
	return &labService{
		repo:   repo,
		cache:  newLabCache(cacheTTL),
		logger: logger,
	}
}

func (s *labService) List(ctx context.Context, req *dto.LabListRequest) ([]dto.LabResponse, bool, error) {
	labs, err := s.cache.GetOrLoad(ctx, s.repo.Record.LoadLabs)
	if err != nil {
		s.logger.Error("读取研究室列表失败", zap.Error(err))
		return nil, false, err
	}

	universities := req.Universities
	if universities == nil {
		// 未指定大学过滤条件时默认全部大学，避免空集合导致空结果
		universities = distinctUniversities(labs)
	}

	filtered := FilterLabs(labs, universities, req.Keyword)

	result := make([]dto.LabResponse, 0, len(filtered))
	for i := range filtered {
		result = append(result, toLabResponse(&filtered[i]))
	}
	return result, len(labs) > 0, nil
}

func (s *labService) ListUniversities(ctx context.Context) ([]string, error) {
	labs, err := s.cache.GetOrLoad(ctx, s.repo.Record.LoadLabs)
	if err != nil {
		s.logger.Error("读取研究室列表失败", zap.Error(err))
		return nil, err
	}
	return distinctUniversities(labs), nil
}

func (s *labService) Submit(ctx context.Context, req *dto.CreateLabRequest) (*dto.LabResponse, error) {
	if req.Name == "" {
		return nil, ErrLabNameRequired
	}

	lab := &model.Lab{
		University:     req.University,
		Department:     req.Department,
		Name:           req.Name,
		Keywords:       req.Keywords,
		Textbook:       req.Textbook,
		PurchaseLink:   defaultIfBlank(req.PurchaseLink, model.PlaceholderLink),
		ExamSubjects:   req.ExamSubjects,
		OfficialLink:   defaultIfBlank(req.OfficialLink, model.PlaceholderLink),
		EnglishReq:     defaultIfBlank(req.EnglishReq, model.DefaultEnglishReq),
		ExamSchedule:   defaultIfBlank(req.ExamSchedule, model.DefaultExamSchedule),
		PastExamMethod: defaultIfBlank(req.PastExamMethod, model.DefaultPastExamMethod),
	}

	if err := s.repo.Record.AppendLab(ctx, lab); err != nil {
		s.logger.Error("追加研究室记录失败", zap.String("lab_name", lab.Name), zap.Error(err))
		return nil, err
	}

	// 追加成功后失效读缓存，保证下一次读取立即包含新记录
	s.cache.Invalidate()

	resp := toLabResponse(lab)
	return &resp, nil
}

// ── 内部辅助方法 ──

func defaultIfBlank(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func toLabResponse(lab *model.Lab) dto.LabResponse {
	return dto.LabResponse{
		University:     lab.University,
		Department:     lab.Department,
		Name:           lab.Name,
		Keywords:       lab.Keywords,
		Textbook:       lab.Textbook,
		PurchaseLink:   lab.PurchaseLink,
		ExamSubjects:   lab.ExamSubjects,
		OfficialLink:   lab.OfficialLink,
		EnglishReq:     lab.EnglishReq,
		ExamSchedule:   lab.ExamSchedule,
		PastExamMethod: lab.PastExamMethod,
	}
}
