package repository

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	apperrors "github.com/ryusei20030204-code/RT/pkg/errors"
)

func newTestLocalAttachmentRepo(t *testing.T) AttachmentRepository {
	t.Helper()
	repo, err := NewLocalAttachmentRepo(t.TempDir())
	if err != nil {
		t.Fatalf("创建本地附件后端失败: %v", err)
	}
	return repo
}

func TestLocalAttachmentRepo_SaveAndRead(t *testing.T) {
	repo := newTestLocalAttachmentRepo(t)

	key, err := repo.Save(context.Background(), "画像処理研究室", "過去問2025.pdf", strings.NewReader("pdf-content"), 11)
	if err != nil {
		t.Fatalf("Save 失败: %v", err)
	}
	if key != "画像処理研究室_過去問2025.pdf" {
		t.Errorf("存储键错误: got %q", key)
	}

	rc, size, err := repo.Read(context.Background(), key)
	if err != nil {
		t.Fatalf("Read 失败: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	if string(data) != "pdf-content" {
		t.Errorf("读回内容错误: got %q", data)
	}
	if size != int64(len("pdf-content")) {
		t.Errorf("大小错误: got %d", size)
	}
}

func TestLocalAttachmentRepo_Overwrite(t *testing.T) {
	repo := newTestLocalAttachmentRepo(t)

	for _, content := range []string{"旧版内容", "新版"} {
		if _, err := repo.Save(context.Background(), "画像処理研究室", "解答.pdf", strings.NewReader(content), int64(len(content))); err != nil {
			t.Fatalf("Save 失败: %v", err)
		}
	}

	rc, size, err := repo.Read(context.Background(), "画像処理研究室_解答.pdf")
	if err != nil {
		t.Fatalf("Read 失败: %v", err)
	}
	defer rc.Close()
	data, _ := io.ReadAll(rc)
	// 同键覆盖后旧内容不残留（文件被截断重写）
	if string(data) != "新版" {
		t.Errorf("覆盖后内容错误: got %q", data)
	}
	if size != int64(len("新版")) {
		t.Errorf("覆盖后大小错误: got %d", size)
	}
}

func TestLocalAttachmentRepo_ListForLab(t *testing.T) {
	repo := newTestLocalAttachmentRepo(t)

	uploads := []struct{ lab, file string }{
		{"画像処理研究室", "c.pdf"},
		{"ロボティクス研究室", "b.pdf"},
		{"画像処理研究室", "a.png"},
	}
	for _, u := range uploads {
		if _, err := repo.Save(context.Background(), u.lab, u.file, strings.NewReader("x"), 1); err != nil {
			t.Fatalf("Save %s/%s 失败: %v", u.lab, u.file, err)
		}
	}

	infos, err := repo.ListForLab(context.Background(), "画像処理研究室")
	if err != nil {
		t.Fatalf("ListForLab 失败: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("应只列出本研究室的附件, got %d 条", len(infos))
	}
	// 键序稳定
	if infos[0].Filename != "a.png" || infos[1].Filename != "c.pdf" {
		t.Errorf("列表顺序/文件名错误: %+v", infos)
	}
	for _, info := range infos {
		if !strings.HasPrefix(info.Key, "画像処理研究室_") {
			t.Errorf("存储键前缀错误: %q", info.Key)
		}
	}
}

func TestLocalAttachmentRepo_ListForLab_Empty(t *testing.T) {
	repo := newTestLocalAttachmentRepo(t)

	infos, err := repo.ListForLab(context.Background(), "存在しない研究室")
	if err != nil {
		t.Fatalf("ListForLab 失败: %v", err)
	}
	if len(infos) != 0 {
		t.Errorf("无附件时应返回空列表, got %d 条", len(infos))
	}
}

func TestLocalAttachmentRepo_Read_NotFound(t *testing.T) {
	repo := newTestLocalAttachmentRepo(t)

	_, _, err := repo.Read(context.Background(), "画像処理研究室_不存在.pdf")
	if !errors.Is(err, apperrors.ErrAttachmentNotFound) {
		t.Errorf("缺失键应返回 ErrAttachmentNotFound, got %v", err)
	}
}
