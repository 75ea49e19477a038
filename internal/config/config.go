package config

import (
	"github.com/modan/fas/internal/logger"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Payment  PaymentConfig  `mapstructure:"payment"`
	Review   ReviewConfig   `mapstructure:"review"`
	Task     TaskConfig     `mapstructure:"task"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// RedisConfig summary/dashboard cache. Empty addr disables caching.
type RedisConfig struct {
	Addr       string `mapstructure:"addr"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"`
	TTLSeconds int    `mapstructure:"ttl_seconds"`
}

// PaymentConfig payout gateway and fee rates applied when a settlement
// is created. Empty gateway_url runs payouts in dry-run mode.
type PaymentConfig struct {
	GatewayURL       string  `mapstructure:"gateway_url"`
	TimeoutSeconds   int     `mapstructure:"timeout_seconds"`
	PGFeeRate        float64 `mapstructure:"pg_fee_rate"`
	PlatformFeeRate  float64 `mapstructure:"platform_fee_rate"`
	FirstPaymentRate float64 `mapstructure:"first_payment_rate"`
}

type ReviewConfig struct {
	RejectReasonPresets []string `mapstructure:"reject_reason_presets"`
}

type TaskConfig struct {
	Interval    int `mapstructure:"interval"`     // lifecycle job interval, seconds
	StatsHour   int `mapstructure:"stats_hour"`   // daily stats snapshot time
	StatsMinute int `mapstructure:"stats_minute"`
	BulkWorkers int `mapstructure:"bulk_workers"` // tracking upload pool size
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error, fatal
	Output string `mapstructure:"output"` // stdout, file
	File   string `mapstructure:"file"`
}

// DefaultRejectReasonPresets is served when no presets are configured and is
// the same list console clients fall back to when the endpoint is unreachable.
var DefaultRejectReasonPresets = []string{
	"스토리 내용이 부족합니다. 프로젝트 소개를 보완해 주세요.",
	"환불/교환 정책이 명시되어 있지 않습니다.",
	"리워드 구성에 설명 또는 예상 발송 시기가 누락되었습니다.",
	"목표 금액 산정 근거가 불분명합니다.",
	"금지 품목 또는 정책 위반 소지가 있습니다.",
}

func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AddConfigPath("/etc/fas")

	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "debug")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", 5432)
	viper.SetDefault("database.user", "postgres")
	viper.SetDefault("database.password", "")
	viper.SetDefault("database.dbname", "funding_admin")
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("redis.addr", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.ttl_seconds", 60)
	viper.SetDefault("payment.gateway_url", "")
	viper.SetDefault("payment.timeout_seconds", 10)
	viper.SetDefault("payment.pg_fee_rate", 0.033)
	viper.SetDefault("payment.platform_fee_rate", 0.05)
	viper.SetDefault("payment.first_payment_rate", 0.5)
	viper.SetDefault("review.reject_reason_presets", DefaultRejectReasonPresets)
	viper.SetDefault("task.interval", 60)
	viper.SetDefault("task.stats_hour", 0)
	viper.SetDefault("task.stats_minute", 10)
	viper.SetDefault("task.bulk_workers", 8)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.output", "stdout")
	viper.SetDefault("log.file", "logs/app.log")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logger.Warn("Warning: Could not read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		logger.Fatal("Unable to decode config into struct: %v", err)
	}

	return &config
}
