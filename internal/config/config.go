package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Database DatabaseConfig `mapstructure:"database"` // PostgreSQL配置
	Scrape   ScrapeConfig   `mapstructure:"scrape"`   // 页面采集配置
	S3       S3Config       `mapstructure:"s3"`       // 快照归档（S3）配置
	Sync     SyncConfig     `mapstructure:"sync"`     // 数据同步配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// DatabaseConfig PostgreSQL数据库配置
type DatabaseConfig struct {
	DSN             string        `mapstructure:"dsn"`               // 连接DSN
	MaxOpenConns    int           `mapstructure:"max_open_conns"`    // 最大打开连接数
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`    // 最大空闲连接数
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"` // 连接最大存活时间
}

// ScrapeConfig 页面采集配置（两个固定数据源）
type ScrapeConfig struct {
	LeagueTableURL string `mapstructure:"league_table_url"` // 积分榜页面地址
	TopScorersURL  string `mapstructure:"top_scorers_url"`  // 射手榜页面地址
	UserAgent      string `mapstructure:"user_agent"`       // 请求User-Agent
	Timeout        int    `mapstructure:"timeout"`          // 请求超时（秒）
	Proxy          string `mapstructure:"proxy"`            // 代理地址
}

// S3Config 快照归档配置
type S3Config struct {
	Region          string `mapstructure:"region"`     // AWS区域
	Bucket          string `mapstructure:"bucket"`     // 存储桶名称
	KeyPrefix       string `mapstructure:"key_prefix"` // 对象key前缀
	AccessKeyID     string `mapstructure:"-"`          // 仅从环境变量读取
	SecretAccessKey string `mapstructure:"-"`          // 仅从环境变量读取
}

// SyncConfig 数据同步配置
type SyncConfig struct {
	Season       string `mapstructure:"season"`         // 当前赛季（如"2023-2024"）
	RunOnStartup bool   `mapstructure:"run_on_startup"` // 启动时是否立即执行一次同步
}

// LoadConfig 加载配置文件（config/config.yaml），敏感项从 .env 覆盖（不提交 git）
func LoadConfig() (*Config, error) {
	// 1. 加载 .env（若存在），env 中的值会覆盖 config.yaml 中同名字段
	_ = godotenv.Load() // 忽略错误（.env 可不存在）

	// 2. 读取 config.yaml
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	viper.SetTypeByDefaultValue(true)
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}

	// 3. 敏感字段：用 env 覆盖（优先级 env > yaml）
	overrideFromEnv(&cfg)
	applyDefaults(&cfg)
	return &cfg, nil
}

// overrideFromEnv 用环境变量覆盖敏感配置
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.S3.Region = v
	}
	if v := os.Getenv("AWS_BUCKET_NAME"); v != "" {
		cfg.S3.Bucket = v
	}
	// AWS密钥只从环境变量读取，缺省时走SDK默认凭证链
	cfg.S3.AccessKeyID = os.Getenv("AWS_ACCESS_KEY_ID")
	cfg.S3.SecretAccessKey = os.Getenv("AWS_SECRET_ACCESS_KEY")
}

// applyDefaults 填充缺省值
func applyDefaults(cfg *Config) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "debug"
	}
	if cfg.Scrape.UserAgent == "" {
		cfg.Scrape.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if cfg.Scrape.Timeout <= 0 {
		cfg.Scrape.Timeout = 30
	}
	if cfg.S3.KeyPrefix == "" {
		cfg.S3.KeyPrefix = "premier_league"
	}
	if cfg.Sync.Season == "" {
		cfg.Sync.Season = "2023-2024"
	}
}

// Validate 启动时校验必填项，配置错误是唯一允许的致命退出路径
func (c *Config) Validate() error {
	if c.Database.DSN == "" {
		return errors.New("数据库DSN未配置（database.dsn 或 DATABASE_URL）")
	}
	if c.Scrape.LeagueTableURL == "" || c.Scrape.TopScorersURL == "" {
		return errors.New("采集页面地址未配置（scrape.league_table_url / scrape.top_scorers_url）")
	}
	if c.S3.Region == "" {
		return errors.New("S3区域未配置（s3.region 或 AWS_REGION）")
	}
	if c.S3.Bucket == "" {
		return errors.New("S3存储桶未配置（s3.bucket 或 AWS_BUCKET_NAME）")
	}
	return nil
}
