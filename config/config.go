package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 应用全局配置结构体
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"db"`
	Minio    MinioConfig    `mapstructure:"minio"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP 服务器配置
type ServerConfig struct {
	Port int        `mapstructure:"port"`
	CORS CORSConfig `mapstructure:"cors"`
}

// CORSConfig 跨域配置
type CORSConfig struct {
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// StorageConfig 本地平面文件存储配置（CSV 后端与上传目录）
type StorageConfig struct {
	DataFile     string `mapstructure:"data_file"`
	CommentsFile string `mapstructure:"comments_file"`
	UploadDir    string `mapstructure:"upload_dir"`
}

// DatabaseConfig 远程 PostgreSQL 数据库配置
// 凭据解析顺序：本地凭据文件优先，其次环境变量；两者都缺失时视为未配置，
// 启动时回退到本地 CSV 后端。
type DatabaseConfig struct {
	CredentialsFile string `mapstructure:"credentials_file"`
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	Name            string `mapstructure:"name"`
	User            string `mapstructure:"user"`
	Password        string `mapstructure:"password"`
	SSLMode         string `mapstructure:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns"`
	MaxIdleConns    int    `mapstructure:"max_idle_conns"`
}

// DSN 生成 PostgreSQL 连接字符串
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode,
	)
}

// Configured 远程数据库后端是否已配置
func (c *DatabaseConfig) Configured() bool {
	return c.Host != "" && c.Name != "" && c.User != ""
}

// MinioConfig 远程对象存储配置（附件后端，可选）
type MinioConfig struct {
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

// Configured 远程附件后端是否已配置
func (c *MinioConfig) Configured() bool {
	return c.Endpoint != "" && c.AccessKey != "" && c.Bucket != ""
}

// RedisConfig Redis 配置（限流用，可选）
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// UploadConfig 文件上传配置
type UploadConfig struct {
	MaxSizeMB   int64    `mapstructure:"max_size_mb"`
	AllowedExts []string `mapstructure:"allowed_exts"`
}

// CacheConfig 读缓存配置
type CacheConfig struct {
	LabsTTL time.Duration `mapstructure:"labs_ttl"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load 从配置文件与环境变量加载配置
// 优先级：数据库凭据文件 > 环境变量 > 配置文件 > 默认值
func Load(path string) (*Config, error) {
	v := viper.New()

	// ── 默认值 ──
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.cors.allow_origins", []string{"http://localhost:5173"})

	v.SetDefault("storage.data_file", "data.csv")
	v.SetDefault("storage.comments_file", "comments.csv")
	v.SetDefault("storage.upload_dir", "uploads")

	// db.host 默认空串：为空即视为远程后端未配置
	// （空默认值同时让 AutomaticEnv 的键对 Unmarshal 可见）
	v.SetDefault("db.credentials_file", "db_credentials.yaml")
	v.SetDefault("db.host", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open_conns", 25)
	v.SetDefault("db.max_idle_conns", 10)

	v.SetDefault("minio.endpoint", "")
	v.SetDefault("minio.access_key", "")
	v.SetDefault("minio.secret_key", "")
	v.SetDefault("minio.bucket", "")
	v.SetDefault("minio.use_ssl", false)

	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("upload.max_size_mb", 20)
	v.SetDefault("upload.allowed_exts", []string{"pdf", "png", "jpg", "jpeg"})

	v.SetDefault("cache.labs_ttl", "60s")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// ── 配置文件 ──
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	// ── 环境变量 ──
	v.SetEnvPrefix("GRADMATCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
		// 配置文件不存在时仅依赖默认值和环境变量
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	// ── 数据库凭据解析：本地凭据文件优先于环境变量 ──
	if err := cfg.resolveDatabaseCredentials(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveDatabaseCredentials 从本地凭据文件加载数据库连接信息。
// 文件存在时其内容覆盖环境变量/配置文件提供的值；文件不存在不视为错误。
func (c *Config) resolveDatabaseCredentials() error {
	path := c.Database.CredentialsFile
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("读取数据库凭据文件失败: %w", err)
	}

	cv := viper.New()
	cv.SetConfigFile(path)
	if err := cv.ReadInConfig(); err != nil {
		return fmt.Errorf("解析数据库凭据文件失败: %w", err)
	}

	creds := c.Database
	if err := cv.Unmarshal(&creds); err != nil {
		return fmt.Errorf("解析数据库凭据失败: %w", err)
	}
	creds.CredentialsFile = path
	c.Database = creds
	return nil
}

// Validate 校验关键配置项
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("配置校验失败: server.port 必须在 1-65535 之间")
	}
	if c.Storage.DataFile == "" || c.Storage.CommentsFile == "" {
		return fmt.Errorf("配置校验失败: storage.data_file / storage.comments_file 不能为空")
	}
	if c.Cache.LabsTTL < 0 {
		return fmt.Errorf("配置校验失败: cache.labs_ttl 不能为负数")
	}
	if c.Upload.MaxSizeMB <= 0 {
		return fmt.Errorf("配置校验失败: upload.max_size_mb 必须为正数")
	}
	return nil
}
