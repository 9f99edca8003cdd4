package repository

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"

	"github.com/ryusei20030204-code/RT/internal/model"
)

// 列头与既有数据文件保持一致（data.csv 为 utf-8-sig 编码的日文列头）
var labCSVHeader = []string{
	"大学名", "研究科", "研究室名", "キーワード", "指定教科書",
	"Amazonリンク", "試験科目", "公式リンク", "英語要件", "試験日程", "過去問入手方法",
}

var commentCSVHeader = []string{"研究室名", "名前", "日付", "内容"}

const utf8BOM = "\xef\xbb\xbf"

// csvRecordRepo RecordRepository 的本地平面文件实现
// 追加操作以互斥锁串行化；行级追加即为后端保证的原子粒度
type csvRecordRepo struct {
	dataPath     string
	commentsPath string
	mu           sync.Mutex
}

// NewCSVRecordRepo 创建 CSV 后端的 RecordRepository
func NewCSVRecordRepo(dataPath, commentsPath string) RecordRepository {
	return &csvRecordRepo{dataPath: dataPath, commentsPath: commentsPath}
}

func (r *csvRecordRepo) LoadLabs(_ context.Context) ([]model.Lab, error) {
	rows, header, err := readCSVFile(r.dataPath)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		// 文件不存在：按"无数据可用"处理
		return nil, nil
	}

	idx := headerIndex(header)
	labs := make([]model.Lab, 0, len(rows))
	for _, rec := range rows {
		labs = append(labs, model.Lab{
			University:     fieldAt(rec, idx["大学名"]),
			Department:     fieldAt(rec, idx["研究科"]),
			Name:           fieldAt(rec, idx["研究室名"]),
			Keywords:       fieldAt(rec, idx["キーワード"]),
			Textbook:       fieldAt(rec, idx["指定教科書"]),
			PurchaseLink:   fieldAt(rec, idx["Amazonリンク"]),
			ExamSubjects:   fieldAt(rec, idx["試験科目"]),
			OfficialLink:   fieldAt(rec, idx["公式リンク"]),
			EnglishReq:     fieldAt(rec, idx["英語要件"]),
			ExamSchedule:   fieldAt(rec, idx["試験日程"]),
			PastExamMethod: fieldAt(rec, idx["過去問入手方法"]),
		})
	}
	return labs, nil
}

func (r *csvRecordRepo) AppendLab(_ context.Context, lab *model.Lab) error {
	row := []string{
		lab.University, lab.Department, lab.Name, lab.Keywords, lab.Textbook,
		lab.PurchaseLink, lab.ExamSubjects, lab.OfficialLink,
		lab.EnglishReq, lab.ExamSchedule, lab.PastExamMethod,
	}
	return r.appendRow(r.dataPath, labCSVHeader, row)
}

func (r *csvRecordRepo) LoadComments(_ context.Context) ([]model.Comment, error) {
	rows, header, err := readCSVFile(r.commentsPath)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		return nil, nil
	}

	idx := headerIndex(header)
	comments := make([]model.Comment, 0, len(rows))
	for _, rec := range rows {
		comments = append(comments, model.Comment{
			LabName:  fieldAt(rec, idx["研究室名"]),
			Author:   fieldAt(rec, idx["名前"]),
			PostedAt: fieldAt(rec, idx["日付"]),
			Body:     fieldAt(rec, idx["内容"]),
		})
	}
	return comments, nil
}

func (r *csvRecordRepo) AppendComment(_ context.Context, labName, author, body string) error {
	stamp := time.Now().Format(model.CommentTimeLayout)
	return r.appendRow(r.commentsPath, commentCSVHeader, []string{labName, author, stamp, body})
}

// appendRow 追加一行；文件不存在时先写 BOM 与列头
func (r *csvRecordRepo) appendRow(path string, header, row []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: 打开文件 %s 失败: %v", apperrors.ErrStoreUnavailable, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("%w: 读取文件信息失败: %v", apperrors.ErrStoreUnavailable, err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if _, err := f.WriteString(utf8BOM); err != nil {
			return fmt.Errorf("%w: 写入文件失败: %v", apperrors.ErrStoreUnavailable, err)
		}
		if err := w.Write(header); err != nil {
			return fmt.Errorf("%w: 写入列头失败: %v", apperrors.ErrStoreUnavailable, err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("%w: 写入数据行失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("%w: 写入数据行失败: %v", apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

// readCSVFile 读取整个 CSV 文件
// 文件不存在时返回 (nil, nil, nil)；返回值为 (数据行, 列头, error)
func readCSVFile(path string) ([][]string, []string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("%w: 打开文件 %s 失败: %v", apperrors.ErrStoreUnavailable, path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	skipBOM(br)

	cr := csv.NewReader(br)
	cr.FieldsPerRecord = -1 // 容忍列数不一致的历史行

	all, err := cr.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: 解析 %s 失败: %v", apperrors.ErrStoreUnavailable, path, err)
	}
	if len(all) == 0 {
		return [][]string{}, nil, nil
	}
	return all[1:], all[0], nil
}

// skipBOM 跳过 utf-8-sig 编码文件开头的 BOM
func skipBOM(br *bufio.Reader) {
	head, err := br.Peek(3)
	if err != nil && err != io.EOF {
		return
	}
	if string(head) == utf8BOM {
		br.Discard(3)
	}
}

// headerIndex 构建列名到列下标的映射；缺失的列按 -1 处理
func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for _, name := range labCSVHeader {
		idx[name] = -1
	}
	for _, name := range commentCSVHeader {
		idx[name] = -1
	}
	for i, name := range header {
		idx[name] = i
	}
	return idx
}

// fieldAt 取一行中指定下标的字段；下标越界或列缺失时返回空串
// （某一后端缺少"試験科目"列时按空串匹配，不报错）
func fieldAt(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return rec[i]
}
