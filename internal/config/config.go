package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 全局配置结构体（完全匹配config.yaml）
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`   // 服务器配置
	Upstream UpstreamConfig `mapstructure:"upstream"` // 上游平台配置
	Refresh  RefreshConfig  `mapstructure:"refresh"`  // 刷新调度与缓存配置
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port int    `mapstructure:"port"` // 服务端口
	Mode string `mapstructure:"mode"` // Gin运行模式：debug/release/test
}

// UpstreamConfig 上游平台（SHOWROOM）配置
type UpstreamConfig struct {
	BaseURL         string `mapstructure:"base_url"`          // API基础地址
	UserAgent       string `mapstructure:"user_agent"`        // 通用客户端标识头
	Timeout         int    `mapstructure:"timeout"`           // 单次请求超时（秒）
	Proxy           string `mapstructure:"proxy"`             // 代理地址
	EventPageBudget int    `mapstructure:"event_page_budget"` // 活动目录分页上限
	RankingMaxPages int    `mapstructure:"ranking_max_pages"` // 单个候选排名接口分页上限
}

// RefreshConfig 刷新调度与各缓存TTL（秒）
type RefreshConfig struct {
	IntervalSec       int `mapstructure:"interval_sec"`         // 会话刷新间隔
	CatalogTTLSec     int `mapstructure:"catalog_ttl_sec"`      // 活动目录缓存TTL
	RoomMapTTLSec     int `mapstructure:"room_map_ttl_sec"`     // RoomMap缓存TTL
	LiveTTLSec        int `mapstructure:"live_ttl_sec"`         // 直播索引缓存TTL
	GiftCatalogTTLSec int `mapstructure:"gift_catalog_ttl_sec"` // 礼物目录缓存TTL
}

// RequestTimeout 单次上游请求超时
func (u *UpstreamConfig) RequestTimeout() time.Duration {
	return time.Duration(u.Timeout) * time.Second
}

// Interval 会话刷新间隔
func (r *RefreshConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSec) * time.Second
}

// CatalogTTL 活动目录缓存TTL
func (r *RefreshConfig) CatalogTTL() time.Duration {
	return time.Duration(r.CatalogTTLSec) * time.Second
}

// RoomMapTTL RoomMap缓存TTL
func (r *RefreshConfig) RoomMapTTL() time.Duration {
	return time.Duration(r.RoomMapTTLSec) * time.Second
}

// LiveTTL 直播索引缓存TTL
func (r *RefreshConfig) LiveTTL() time.Duration {
	return time.Duration(r.LiveTTLSec) * time.Second
}

// GiftCatalogTTL 礼物目录缓存TTL
func (r *RefreshConfig) GiftCatalogTTL() time.Duration {
	return time.Duration(r.GiftCatalogTTLSec) * time.Second
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
	if v := os.Getenv("SHOWROOM_PROXY"); v != "" {
		cfg.Upstream.Proxy = v
	}
	if v := os.Getenv("SHOWROOM_BASE_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
}

// applyDefaults 缺省值兜底，保证配置残缺时服务仍可启动
func applyDefaults(cfg *Config) {
	if cfg.Upstream.Timeout <= 0 {
		cfg.Upstream.Timeout = 5
	}
	if cfg.Upstream.EventPageBudget <= 0 {
		cfg.Upstream.EventPageBudget = 10
	}
	if cfg.Upstream.RankingMaxPages <= 0 {
		cfg.Upstream.RankingMaxPages = 10
	}
	if cfg.Upstream.UserAgent == "" {
		cfg.Upstream.UserAgent = "Mozilla/5.0"
	}
	if cfg.Refresh.IntervalSec <= 0 {
		cfg.Refresh.IntervalSec = 5
	}
	if cfg.Refresh.CatalogTTLSec <= 0 {
		cfg.Refresh.CatalogTTLSec = 3600
	}
	if cfg.Refresh.RoomMapTTLSec <= 0 {
		cfg.Refresh.RoomMapTTLSec = 3600
	}
	if cfg.Refresh.LiveTTLSec <= 0 {
		cfg.Refresh.LiveTTLSec = 30
	}
	if cfg.Refresh.GiftCatalogTTLSec <= 0 {
		cfg.Refresh.GiftCatalogTTLSec = 3600
	}
}
