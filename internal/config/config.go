package config

import (
	"fmt"
	"os"
	"time"

	pkgconfig "rockalpatio/pkg/config"
)

// OutboxConfig 变更事件分发配置
type OutboxConfig struct {
	Interval   time.Duration `yaml:"interval"`
	BatchSize  int           `yaml:"batch_size"`
	MaxRetries int           `yaml:"max_retries"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	// json（默认）或 console
	Format string `yaml:"format"`
}

type Config struct {
	Server pkgconfig.ServerConfig `yaml:"server"`
	DB     pkgconfig.DBConfig     `yaml:"db"`
	Redis  pkgconfig.RedisConfig  `yaml:"redis"`
	MQ     pkgconfig.MQConfig     `yaml:"mq"`
	JWT    pkgconfig.JWTConfig    `yaml:"jwt"`
	Otel   pkgconfig.OtelConfig   `yaml:"otel"`
	Outbox OutboxConfig           `yaml:"outbox"`
	Log    LogConfig              `yaml:"log"`
}

func defaults() Config {
	return Config{
		Server: pkgconfig.ServerConfig{Port: ":8080"},
		DB:     pkgconfig.DBConfig{Host: "localhost", Port: 5432, SSLMode: "disable"},
		Redis:  pkgconfig.RedisConfig{Addr: "localhost:6379"},
		JWT:    pkgconfig.JWTConfig{TTL: 24 * time.Hour},
		Otel:   pkgconfig.OtelConfig{ServiceName: "rockalpatio-dashboard", SampleRatio: 1, Insecure: true},
		Outbox: OutboxConfig{Interval: 2 * time.Second, BatchSize: 100, MaxRetries: 5},
		Log:    LogConfig{Level: "info", Format: "json"},
	}
}

// Load 读取 configDir 下的 base.yaml + <env>.yaml，再用环境变量覆盖
func Load(env, configDir string) (*Config, error) {
	merged, err := pkgconfig.LoadConfig(env, configDir)
	if err != nil {
		return nil, err
	}

	cfg := defaults()
	if err := pkgconfig.Decode(merged, &cfg); err != nil {
		return nil, err
	}

	// 环境变量覆盖（生产环境使用）
	pkgconfig.OverrideServerFromEnv(&cfg.Server)
	pkgconfig.OverrideDBFromEnv(&cfg.DB)
	pkgconfig.OverrideRedisFromEnv(&cfg.Redis)
	pkgconfig.OverrideMQFromEnv(&cfg.MQ)
	pkgconfig.OverrideJWTFromEnv(&cfg.JWT)
	pkgconfig.OverrideOtelFromEnv(&cfg.Otel)
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}
	if format := os.Getenv("LOG_FORMAT"); format != "" {
		cfg.Log.Format = format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查启动所必需的配置
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt.secret is required (set JWT_SECRET)")
	}
	if c.DB.Name == "" {
		return fmt.Errorf("db.name is required")
	}
	if c.Outbox.Interval <= 0 {
		return fmt.Errorf("outbox.interval must be positive")
	}
	return nil
}
