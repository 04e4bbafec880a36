package config

import (
	"os"
	"strconv"
	"time"
)

// DBConfig 数据库配置
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"sslmode"`
	MaxConns int32  `yaml:"max_conns"`
	// 慢查询阈值，0 表示使用默认值 100ms
	SlowQuery time.Duration `yaml:"slow_query"`
}

// MQConfig 消息队列配置，URL 为空时不启动事件分发
type MQConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig JWT配置
type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port string `yaml:"port"`
}

// OtelConfig OpenTelemetry 配置
type OtelConfig struct {
	Enabled     bool    `yaml:"enabled"`
	Endpoint    string  `yaml:"endpoint"`
	ServiceName string  `yaml:"service_name"`
	Environment string  `yaml:"environment"`
	SampleRatio float64 `yaml:"sample_ratio"`
	Insecure    bool    `yaml:"insecure"`
}

// 以下 Override* 用环境变量覆盖已解码的配置；变量未设置、为空或无法解析时保持原值

func envString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envInt(dst *int, key string) {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func envBool(dst *bool, key string) {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func envFloat(dst *float64, key string) {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		*dst = v
	}
}

func envDuration(dst *time.Duration, key string) {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		*dst = v
	}
}

func OverrideDBFromEnv(cfg *DBConfig) {
	envString(&cfg.Host, "DB_HOST")
	envInt(&cfg.Port, "DB_PORT")
	envString(&cfg.User, "DB_USER")
	envString(&cfg.Password, "DB_PASSWORD")
	envString(&cfg.Name, "DB_NAME")
	envString(&cfg.SSLMode, "DB_SSLMODE")
	envDuration(&cfg.SlowQuery, "DB_SLOW_QUERY")
}

func OverrideMQFromEnv(cfg *MQConfig) {
	envString(&cfg.URL, "MQ_URL")
}

func OverrideRedisFromEnv(cfg *RedisConfig) {
	envString(&cfg.Addr, "REDIS_ADDR")
	envString(&cfg.Password, "REDIS_PASSWORD")
	envInt(&cfg.DB, "REDIS_DB")
}

func OverrideJWTFromEnv(cfg *JWTConfig) {
	envString(&cfg.Secret, "JWT_SECRET")
	envDuration(&cfg.TTL, "JWT_TTL")
}

func OverrideServerFromEnv(cfg *ServerConfig) {
	envString(&cfg.Port, "SERVER_PORT")
}

// OverrideOtelFromEnv 使用 OpenTelemetry 标准变量名
func OverrideOtelFromEnv(cfg *OtelConfig) {
	envString(&cfg.Endpoint, "OTEL_EXPORTER_OTLP_ENDPOINT")
	envString(&cfg.ServiceName, "OTEL_SERVICE_NAME")
	envBool(&cfg.Enabled, "OTEL_ENABLED")
	envFloat(&cfg.SampleRatio, "OTEL_TRACES_SAMPLER_ARG")
}
