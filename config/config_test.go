package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("写入测试文件失败: %v", err)
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	// 凭据文件指向不存在的路径，确保不受工作目录影响
	writeFile(t, cfgPath, "db:\n  credentials_file: "+filepath.Join(dir, "creds.yaml")+"\n")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("默认端口错误: got %d, want 8080", cfg.Server.Port)
	}
	if cfg.Storage.DataFile != "data.csv" || cfg.Storage.CommentsFile != "comments.csv" {
		t.Errorf("默认存储路径错误: %+v", cfg.Storage)
	}
	if cfg.Cache.LabsTTL != 60*time.Second {
		t.Errorf("默认缓存 TTL 错误: got %v, want 60s", cfg.Cache.LabsTTL)
	}
	if cfg.Database.Configured() {
		t.Error("未提供数据库连接信息时 Configured 应为 false")
	}
	if cfg.Minio.Configured() {
		t.Error("未提供 MinIO 连接信息时 Configured 应为 false")
	}
	if len(cfg.Upload.AllowedExts) != 4 {
		t.Errorf("默认扩展名白名单错误: %v", cfg.Upload.AllowedExts)
	}
}

func TestLoad_CredentialsFileOverridesEnv(t *testing.T) {
	dir := t.TempDir()
	credsPath := filepath.Join(dir, "db_credentials.yaml")
	writeFile(t, credsPath, `
host: db.internal
port: 5433
name: gradmatch
user: app
password: file-secret
`)
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "db:\n  credentials_file: "+credsPath+"\n")

	// 环境变量提供的值应被凭据文件覆盖
	t.Setenv("GRADMATCH_DB_HOST", "env-host")
	t.Setenv("GRADMATCH_DB_PASSWORD", "env-secret")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}

	if cfg.Database.Host != "db.internal" {
		t.Errorf("凭据文件应覆盖环境变量: host got %q, want %q", cfg.Database.Host, "db.internal")
	}
	if cfg.Database.Password != "file-secret" {
		t.Errorf("凭据文件应覆盖环境变量: password got %q", cfg.Database.Password)
	}
	if cfg.Database.Port != 5433 {
		t.Errorf("凭据文件端口未生效: got %d", cfg.Database.Port)
	}
	if !cfg.Database.Configured() {
		t.Error("凭据齐备时 Configured 应为 true")
	}

	want := "host=db.internal port=5433 user=app password=file-secret dbname=gradmatch sslmode=disable"
	if got := cfg.Database.DSN(); got != want {
		t.Errorf("DSN 错误:\n got  %q\n want %q", got, want)
	}
}

func TestLoad_EnvFallbackWhenNoCredentialsFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, "db:\n  credentials_file: "+filepath.Join(dir, "missing.yaml")+"\n")

	t.Setenv("GRADMATCH_DB_HOST", "env-host")
	t.Setenv("GRADMATCH_DB_NAME", "gradmatch")
	t.Setenv("GRADMATCH_DB_USER", "app")

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load 失败: %v", err)
	}

	// 凭据文件缺失不报错，回退环境变量
	if cfg.Database.Host != "env-host" {
		t.Errorf("应回退环境变量: host got %q", cfg.Database.Host)
	}
	if !cfg.Database.Configured() {
		t.Error("环境变量凭据齐备时 Configured 应为 true")
	}
}

func TestLoad_ValidateRejectsBadPort(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	writeFile(t, cfgPath, `
server:
  port: 70000
db:
  credentials_file: ""
`)

	if _, err := Load(cfgPath); err == nil {
		t.Error("非法端口应校验失败")
	}
}
