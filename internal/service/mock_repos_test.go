package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ryusei20030204-code/RT/internal/model"
	"github.com/ryusei20030204-code/RT/internal/repository"
	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
)

// ── Mock RecordRepository ──

type mockRecordRepo struct {
	labs     []model.Lab
	comments []model.Comment

	loadLabsCalls int
	failLoads     bool
	failAppends   bool
}

func newMockRecordRepo() *mockRecordRepo {
	return &mockRecordRepo{}
}

func (m *mockRecordRepo) LoadLabs(_ context.Context) ([]model.Lab, error) {
	m.loadLabsCalls++
	if m.failLoads {
		return nil, fmt.Errorf("%w: 模拟存储故障", apperrors.ErrStoreUnavailable)
	}
	return append([]model.Lab(nil), m.labs...), nil
}

func (m *mockRecordRepo) AppendLab(_ context.Context, lab *model.Lab) error {
	if m.failAppends {
		return fmt.Errorf("%w: 模拟存储故障", apperrors.ErrStoreUnavailable)
	}
	m.labs = append(m.labs, *lab)
	return nil
}

func (m *mockRecordRepo) LoadComments(_ context.Context) ([]model.Comment, error) {
	if m.failLoads {
		return nil, fmt.Errorf("%w: 模拟存储故障", apperrors.ErrStoreUnavailable)
	}
	return append([]model.Comment(nil), m.comments...), nil
}

func (m *mockRecordRepo) AppendComment(_ context.Context, labName, author, body string) error {
	if m.failAppends {
		return fmt.Errorf("%w: 模拟存储故障", apperrors.ErrStoreUnavailable)
	}
	m.comments = append(m.comments, model.Comment{
		LabName:  labName,
		Author:   author,
		PostedAt: time.Now().Format(model.CommentTimeLayout),
		Body:     body,
	})
	return nil
}

// ── Mock AttachmentRepository ──

type mockAttachmentRepo struct {
	objects map[string][]byte
}

func newMockAttachmentRepo() *mockAttachmentRepo {
	return &mockAttachmentRepo{objects: make(map[string][]byte)}
}

func (m *mockAttachmentRepo) Save(_ context.Context, labName, filename string, r io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	key := model.AttachmentKey(labName, filename)
	m.objects[key] = data
	return key, nil
}

func (m *mockAttachmentRepo) ListForLab(_ context.Context, labName string) ([]model.AttachmentInfo, error) {
	prefix := model.AttachmentPrefix(labName)
	keys := make([]string, 0)
	for k := range m.objects {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	infos := make([]model.AttachmentInfo, 0, len(keys))
	for _, k := range keys {
		infos = append(infos, model.AttachmentInfo{
			Key:      k,
			Filename: strings.TrimPrefix(k, prefix),
			Size:     int64(len(m.objects[k])),
		})
	}
	return infos, nil
}

func (m *mockAttachmentRepo) Read(_ context.Context, key string) (io.ReadCloser, int64, error) {
	data, ok := m.objects[key]
	if !ok {
		return nil, 0, apperrors.ErrAttachmentNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), int64(len(data)), nil
}

// ── 测试辅助 ──

func newTestRepository() (*repository.Repository, *mockRecordRepo, *mockAttachmentRepo) {
	recordRepo := newMockRecordRepo()
	attachmentRepo := newMockAttachmentRepo()
	repo := &repository.Repository{
		Record:     recordRepo,
		Attachment: attachmentRepo,
	}
	return repo, recordRepo, attachmentRepo
}
