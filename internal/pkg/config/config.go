package config

import (
	"errors"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// 媒体删除策略
const (
	// DeleteMediaFirst 先删外部媒体再删记录，媒体删除失败则中止
	DeleteMediaFirst = "media-first"
	// DeleteRecordFirst 先删记录，媒体交给清理队列异步删除
	DeleteRecordFirst = "record-first"
)

// Config 全局配置结构体
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Redis      RedisConfig      `mapstructure:"redis"`
	JWT        JWTConfig        `mapstructure:"jwt"`
	App        AppConfig        `mapstructure:"app"`
	OSS        OSSConfig        `mapstructure:"oss"`
	Media      MediaConfig      `mapstructure:"media"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Pagination PaginationConfig `mapstructure:"pagination"`
	CORS       CORSConfig       `mapstructure:"cors"`
}

type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	Mode           string        `mapstructure:"mode"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Port     string `mapstructure:"port"`
	SSLMode  string `mapstructure:"sslmode"`
	TimeZone string `mapstructure:"timezone"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Expire int64  `mapstructure:"expire"` // 小时
}

type AppConfig struct {
	Env   string `mapstructure:"env"`
	Debug bool   `mapstructure:"debug"`
}

type OSSConfig struct {
	Endpoint        string `mapstructure:"endpoint"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	AccessKeySecret string `mapstructure:"access_key_secret"`
	BucketName      string `mapstructure:"bucket_name"`
}

type MediaConfig struct {
	DeletePolicy   string `mapstructure:"delete_policy"`
	CleanupWorkers int    `mapstructure:"cleanup_workers"`
	CleanupQueue   int    `mapstructure:"cleanup_queue"`
	MaxRetry       int    `mapstructure:"max_retry"`
}

type RateLimitConfig struct {
	QPS   float64 `mapstructure:"qps"`
	Burst int     `mapstructure:"burst"`
}

type PaginationConfig struct {
	MaxLimit int `mapstructure:"max_limit"`
}

// CORSConfig 跨域白名单，响应带 credentials 所以不能用 *
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

var GlobalConfig Config

// Validate 验证配置
func (c *Config) Validate() error {
	// JWT 配置验证
	if c.JWT.Secret == "" || c.JWT.Secret == "your_super_secret_key" {
		return errors.New("please set a secure JWT secret in production")
	}
	if len(c.JWT.Secret) < 32 {
		return errors.New("JWT secret should be at least 32 characters")
	}

	// 数据库配置验证
	if c.Database.Host == "" || c.Database.User == "" || c.Database.DBName == "" {
		return errors.New("database configuration is incomplete")
	}

	// Redis 配置验证
	if c.Redis.Addr == "" {
		return errors.New("redis address is required")
	}

	if len(c.CORS.AllowedOrigins) == 0 {
		return errors.New("cors.allowed_origins is required")
	}
	for _, o := range c.CORS.AllowedOrigins {
		if !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return errors.New("cors.allowed_origins entries must be http(s) origins, got " + o)
		}
	}

	switch c.Media.DeletePolicy {
	case DeleteMediaFirst, DeleteRecordFirst:
	default:
		return errors.New("media.delete_policy must be media-first or record-first")
	}

	return nil
}

// SetDefaults 设置默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.timezone", "UTC")
	v.SetDefault("jwt.expire", 24)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.debug", true)
	v.SetDefault("media.delete_policy", DeleteMediaFirst)
	v.SetDefault("media.cleanup_workers", 2)
	v.SetDefault("media.cleanup_queue", 256)
	v.SetDefault("media.max_retry", 3)
	v.SetDefault("ratelimit.qps", 100)
	v.SetDefault("ratelimit.burst", 200)
	v.SetDefault("pagination.max_limit", 100)
	v.SetDefault("cors.allowed_origins", []string{"http://localhost:3000"})
}

// Load 从文件与环境变量读取配置，不做校验
func Load(v *viper.Viper, env string) (Config, error) {
	// 根据环境选择配置文件
	configName := "config"
	if env != "" && env != "dev" {
		configName = "config." + env
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
		log.Printf("Warning: Config file not found, using defaults or env vars: %v", err)
	}

	// 绑定环境变量，database.host -> DATABASE_HOST
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadConfig 加载配置
func LoadConfig() {
	// .env 可选
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: failed to load .env: %v", err)
	}

	// 获取环境变量，默认为dev
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}

	cfg, err := Load(viper.GetViper(), env)
	if err != nil {
		log.Fatalf("Unable to decode into struct: %v", err)
	}
	GlobalConfig = cfg

	// 验证配置
	if err := GlobalConfig.Validate(); err != nil {
		log.Fatalf("Configuration validation failed: %v", err)
	}

	log.Printf("Configuration loaded and validated successfully. Environment: %s", GlobalConfig.App.Env)
}
