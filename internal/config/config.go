package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Log       LogConfig
	Store     StoreConfig
	Database  DatabaseConfig
	Redis     RedisConfig
	AI        AIConfig
	Dashboard DashboardConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	JWT       JWTConfig
	Admin     AdminConfig
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时字段（非配置文件）
	ConfigFile string `mapstructure:"-"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type LogConfig struct {
	File       string `mapstructure:"file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
}

// StoreConfig 选择实体存储后端，默认纯内存
type StoreConfig struct {
	Driver   string `mapstructure:"driver"`
	Seed     bool   `mapstructure:"seed"`
	SeedFile string `mapstructure:"seed_file"`
}

type DatabaseConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	DBName     string
	Charset    string
	ParseTime  bool
	SQLitePath string `mapstructure:"sqlite_path"`
}

type RedisConfig struct {
	Enabled      bool
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout_seconds"`
}

type AIConfig struct {
	BaseURL  string        `mapstructure:"base_url"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout_seconds"`
	CacheTTL time.Duration `mapstructure:"cache_ttl_minutes"`
}

type DashboardConfig struct {
	HoursMode              string    `mapstructure:"hours_mode"`
	PlaceholderWeeklyHours []float64 `mapstructure:"placeholder_weekly_hours"`
	PlaceholderTodayHours  float64   `mapstructure:"placeholder_today_hours"`
	Timezone               string    `mapstructure:"timezone"`
}

type StorageConfig struct {
	Type               string `mapstructure:"type"`
	LocalPath          string `mapstructure:"local_path"`
	MinioEndpoint      string `mapstructure:"minio_endpoint"`
	MinioAccessID      string `mapstructure:"minio_access_key"`
	MinioSecret        string `mapstructure:"minio_secret_key"`
	MinioBucket        string `mapstructure:"minio_bucket"`
	MinioUseSSL        bool   `mapstructure:"minio_use_ssl"`
	SnapshotOnShutdown bool   `mapstructure:"snapshot_on_shutdown"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type AdminConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Username     string `mapstructure:"username"`
	PasswordHash string `mapstructure:"password_hash"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

const (
	HoursModePlaceholder = "placeholder"
	HoursModeDerived     = "derived"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "5000")
	v.SetDefault("server.mode", "debug")

	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age", 30)

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.seed", true)

	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("database.sqlite_path", "data/dashboard.db")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 1)
	v.SetDefault("redis.dial_timeout_seconds", 5)

	v.SetDefault("ai.base_url", "https://api.openai.com/v1")
	v.SetDefault("ai.model", "gpt-4o")
	v.SetDefault("ai.timeout_seconds", 60)
	v.SetDefault("ai.cache_ttl_minutes", 0)

	v.SetDefault("dashboard.hours_mode", HoursModePlaceholder)
	v.SetDefault("dashboard.placeholder_weekly_hours", []float64{2.5, 3, 1.5, 4, 2, 3.5, 2})
	v.SetDefault("dashboard.placeholder_today_hours", 2.5)
	v.SetDefault("dashboard.timezone", "Local")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "uploads")

	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("admin.username", "admin")

	v.SetDefault("cors.allowed_origins", []string{"http://localhost:5173", "http://localhost:5000"})
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("LEARNDASH")
	v.AutomaticEnv()

	setDefaults(v)

	// Server
	v.BindEnv("server.port", "PORT")
	v.BindEnv("server.mode", "SERVER_MODE")

	// Store / Database
	v.BindEnv("store.driver", "STORE_DRIVER")
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// AI
	v.BindEnv("ai.base_url", "AI_BASE_URL")
	v.BindEnv("ai.api_key", "OPENAI_API_KEY")
	v.BindEnv("ai.model", "AI_MODEL")

	// JWT / Admin
	v.BindEnv("jwt.secret", "JWT_SECRET")
	v.BindEnv("admin.password_hash", "ADMIN_PASSWORD_HASH")

	// Storage
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		// 没有配置文件时使用默认值
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	cfg.ConfigFile = v.ConfigFileUsed()

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour
	cfg.AI.Timeout = cfg.AI.Timeout * time.Second
	cfg.Redis.DialTimeout = cfg.Redis.DialTimeout * time.Second
	cfg.AI.CacheTTL = cfg.AI.CacheTTL * time.Minute

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cfg.Storage.Type == "local" {
		if _, err := os.Stat(cfg.Storage.LocalPath); os.IsNotExist(err) {
			os.MkdirAll(cfg.Storage.LocalPath, 0755)
		}
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Store.Driver {
	case "memory", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}

	switch c.Dashboard.HoursMode {
	case HoursModePlaceholder, HoursModeDerived:
	default:
		return fmt.Errorf("unsupported dashboard hours_mode %q", c.Dashboard.HoursMode)
	}
	if len(c.Dashboard.PlaceholderWeeklyHours) != 7 {
		return fmt.Errorf("dashboard.placeholder_weekly_hours must have 7 entries, got %d", len(c.Dashboard.PlaceholderWeeklyHours))
	}
	if _, err := c.Dashboard.Location(); err != nil {
		return fmt.Errorf("dashboard.timezone: %w", err)
	}

	// 生产环境校验 JWT Secret 强度
	if c.Admin.Enabled && c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.Admin.Enabled && c.Admin.PasswordHash == "" {
		return errors.New("admin.password_hash is required when admin is enabled")
	}

	return nil
}

// Location 解析仪表盘统计使用的时区
func (d DashboardConfig) Location() (*time.Location, error) {
	if d.Timezone == "" || d.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(d.Timezone)
}
