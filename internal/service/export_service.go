package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/ryusei20030204-code/RT/internal/model"
	"github.com/ryusei20030204-code/RT/internal/repository"
)

// ── 导出模块业务错误 ──

var ErrExportGenerateFail = errors.New("生成 Excel 文件失败")

// 导出工作表列头与 CSV 后端列头一致
var labExportHeader = []string{
	"大学名", "研究科", "研究室名", "キーワード", "指定教科書",
	"Amazonリンク", "試験科目", "公式リンク", "英語要件", "試験日程", "過去問入手方法",
}

const labExportSheet = "研究室一覧"

// ExportService 导出业务接口
//
// 设计说明：
//   - 将（可选过滤后的）研究室一覧导出为 Excel (.xlsx)，供线下整理与分享
//   - 过滤语义与检索接口完全一致（同一过滤引擎）
//   - 导出以 bytes.Buffer 返回，由 Handler 层设置 HTTP 响应头后写入 Response
type ExportService interface {
	// ExportLabs 导出研究室一覧为 Excel；universities 为 nil 时默认全部大学
	ExportLabs(ctx context.Context, universities []string, keyword string) (*bytes.Buffer, string, error)
}

type exportService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewExportService 创建 ExportService 实例
func NewExportService(repo *repository.Repository, logger *zap.Logger) ExportService {
	return &exportService{repo: repo, logger: logger}
}

func (s *exportService) ExportLabs(ctx context.Context, universities []string, keyword string) (*bytes.Buffer, string, error) {
	labs, err := s.repo.Record.LoadLabs(ctx)
	if err != nil {
		s.logger.Error("读取研究室列表失败", zap.Error(err))
		return nil, "", err
	}

	if universities == nil {
		universities = distinctUniversities(labs)
	}
	filtered := FilterLabs(labs, universities, keyword)

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", labExportSheet); err != nil {
		return nil, "", ErrExportGenerateFail
	}

	if err := s.writeLabRows(f, filtered); err != nil {
		s.logger.Error("写入导出工作表失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		s.logger.Error("序列化 Excel 失败", zap.Error(err))
		return nil, "", ErrExportGenerateFail
	}

	filename := fmt.Sprintf("%s_%s.xlsx", labExportSheet, time.Now().Format("20060102"))
	return buf, filename, nil
}

func (s *exportService) writeLabRows(f *excelize.File, labs []model.Lab) error {
	header := make([]interface{}, len(labExportHeader))
	for i, h := range labExportHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(labExportSheet, "A1", &header); err != nil {
		return err
	}

	for i := range labs {
		lab := &labs[i]
		row := []interface{}{
			lab.University, lab.Department, lab.Name, lab.Keywords, lab.Textbook,
			lab.PurchaseLink, lab.ExamSubjects, lab.OfficialLink,
			lab.EnglishReq, lab.ExamSchedule, lab.PastExamMethod,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(labExportSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}
