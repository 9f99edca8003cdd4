package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
)

func newTestExportService(recordRepo *mockRecordRepo) ExportService {
	repo, _, _ := newTestRepository()
	repo.Record = recordRepo
	return NewExportService(repo, zap.NewNop())
}

func TestExportService_ExportLabs(t *testing.T) {
	recordRepo := newMockRecordRepo()
	recordRepo.labs = sampleLabs()
	svc := newTestExportService(recordRepo)

	buf, filename, err := svc.ExportLabs(context.Background(), nil, "")
	if err != nil {
		t.Fatalf("ExportLabs 失败: %v", err)
	}
	if !strings.HasPrefix(filename, "研究室一覧_") || !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("导出文件名格式错误: %q", filename)
	}

	// 回读校验生成的工作簿
	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("回读 Excel 失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("研究室一覧")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	// 表头 + 4 条记录
	if len(rows) != 5 {
		t.Fatalf("行数错误: got %d, want 5", len(rows))
	}
	if rows[0][0] != "大学名" || rows[0][2] != "研究室名" {
		t.Errorf("表头错误: %v", rows[0])
	}
	if rows[1][2] != "画像処理研究室" {
		t.Errorf("首条记录错误: %v", rows[1])
	}
}

func TestExportService_ExportLabs_FilterConsistency(t *testing.T) {
	recordRepo := newMockRecordRepo()
	recordRepo.labs = sampleLabs()
	svc := newTestExportService(recordRepo)

	// 过滤语义与检索接口一致
	buf, _, err := svc.ExportLabs(context.Background(), []string{"京都大学"}, "")
	if err != nil {
		t.Fatalf("ExportLabs 失败: %v", err)
	}

	f, err := excelize.OpenReader(buf)
	if err != nil {
		t.Fatalf("回读 Excel 失败: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("研究室一覧")
	if err != nil {
		t.Fatalf("读取工作表失败: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("过滤后行数错误: got %d, want 2", len(rows))
	}
	if rows[1][2] != "ロボティクス研究室" {
		t.Errorf("过滤结果错误: %v", rows[1])
	}
}

func TestExportService_ExportLabs_StoreUnavailable(t *testing.T) {
	recordRepo := newMockRecordRepo()
	recordRepo.failLoads = true
	svc := newTestExportService(recordRepo)

	_, _, err := svc.ExportLabs(context.Background(), nil, "")
	if !errors.Is(err, apperrors.ErrStoreUnavailable) {
		t.Errorf("后端故障应返回 ErrStoreUnavailable, got %v", err)
	}
}
