package config

import (
	"fmt"
	"net"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const defaultJWTSecret = "mock-presign-secret-change-in-production"

// Config 应用配置结构
type Config struct {
	// 环境配置
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// 服务监听
	Host   string `envconfig:"MOCK_HOST" default:"0.0.0.0"`
	Port   string `envconfig:"MOCK_PORT" default:"8100"`
	Reload bool   `envconfig:"MOCK_RELOAD" default:"false"`

	// CORS配置
	AllowCORS      bool     `envconfig:"MOCK_ALLOW_CORS" default:"true"`
	AllowedOrigins []string `envconfig:"ALLOWED_ORIGINS" default:"*"`

	// 数据与持久化
	PersistChanges bool   `envconfig:"MOCK_PERSIST_CHANGES" default:"false"`
	DataPath       string `envconfig:"MOCK_DATA_PATH" default:"mock_data/data.json"`
	PostgresDSN    string `envconfig:"POSTGRES_DSN"`

	// 对象存储
	JWTSecret      string        `envconfig:"JWT_SECRET" default:"mock-presign-secret-change-in-production"`
	StorageBaseURL string        `envconfig:"STORAGE_BASE_URL" default:"https://your-oss-domain.com"`
	PresignTTL     time.Duration `envconfig:"PRESIGN_TTL" default:"15m"`
	MaxUploadBytes int64         `envconfig:"MAX_UPLOAD_BYTES" default:"33554432"`
}

// LoadConfig 加载配置：先按环境读取 .env 文件，再从环境变量解析
func LoadConfig() (*Config, error) {
	env := os.Getenv("ENVIRONMENT")
	if env == "" {
		env = "development" // 默认开发环境
	}

	// 按环境加载对应的 .env 文件，文件不存在时静默跳过；已存在的环境变量不会被覆盖
	switch env {
	case "production":
		_ = godotenv.Load(".env.production")
	default:
		_ = godotenv.Load(".env.local")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	// Trim whitespace to avoid trailing spaces/newlines from env sources
	cfg.PostgresDSN = strings.TrimSpace(cfg.PostgresDSN)
	cfg.StorageBaseURL = strings.TrimRight(strings.TrimSpace(cfg.StorageBaseURL), "/")
	for i, origin := range cfg.AllowedOrigins {
		cfg.AllowedOrigins[i] = strings.TrimSpace(origin)
	}

	return &cfg, nil
}

// Cached config (initialized once per process)
var (
	cachedConfig *Config
	cachedErr    error
	configOnce   sync.Once
)

// GetCached returns the process-wide cached Config.
func GetCached() (*Config, error) {
	configOnce.Do(func() {
		cachedConfig, cachedErr = LoadConfig()
	})
	return cachedConfig, cachedErr
}

// Validate 验证配置
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("MOCK_PORT is required")
	}
	if c.DataPath == "" {
		return fmt.Errorf("MOCK_DATA_PATH is required")
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive")
	}

	// 验证JWT密钥
	if c.JWTSecret == "" || c.JWTSecret == defaultJWTSecret {
		if c.IsProduction() {
			return fmt.Errorf("JWT_SECRET must be set in production")
		}
	}

	return nil
}

// Addr 监听地址
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// UsesDefaultSecret reports whether presigned URLs are signed with the built-in key.
func (c *Config) UsesDefaultSecret() bool {
	return c.JWTSecret == defaultJWTSecret
}

// PersistenceMode 返回持久化方式：disabled / file / postgres
func (c *Config) PersistenceMode() string {
	switch {
	case !c.PersistChanges:
		return "disabled"
	case c.PostgresDSN != "":
		return "postgres"
	default:
		return "file"
	}
}

// IsProduction 检查是否为生产环境
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsDevelopment 检查是否为开发环境
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
