package config

import (
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Cache     CacheConfig
	Finance   FinanceConfig
	Scheduler SchedulerConfig
	Export    ExportConfig
	Notify    NotifyConfig
	App       AppConfig
}

// AppConfig holds process-level toggles. Demo runs the service on the
// in-memory repositories with seeded inventory, no database required.
type AppConfig struct {
	Demo bool
}

type ServerConfig struct {
	Port           string
	AdminPort      string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type CacheConfig struct {
	Enabled              bool
	RedisURL             string
	RedisHost            string
	RedisPort            string
	RedisPassword        string
	RedisDB              int
	StatisticsTTLSeconds int
}

// FinanceConfig is the revenue/margin baseline the metrics projection
// folds recorded losses into.
type FinanceConfig struct {
	BaseRevenue   float64
	BaseMarginPct float64
}

type SchedulerConfig struct {
	Enabled  bool
	CronSpec string
}

type ExportConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

type NotifyConfig struct {
	WebhookURL     string
	TimeoutSeconds int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		viper.SetDefault("SERVER_PORT", "8080")
		viper.SetDefault("SERVER_ADMIN_PORT", "8081")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("DB_HOST", "localhost")
		viper.SetDefault("DB_PORT", "5432")
		viper.SetDefault("DB_USER", "postgres")
		viper.SetDefault("DB_PASSWORD", "postgres")
		viper.SetDefault("DB_NAME", "lossledger")
		viper.SetDefault("DB_SSLMODE", "disable")
		viper.SetDefault("CACHE_ENABLED", false)
		viper.SetDefault("REDIS_URL", "")
		viper.SetDefault("REDIS_HOST", "127.0.0.1")
		viper.SetDefault("REDIS_PORT", "6379")
		viper.SetDefault("REDIS_PASSWORD", "")
		viper.SetDefault("REDIS_DB", 0)
		viper.SetDefault("CACHE_STATS_TTL_SECONDS", 60)
		viper.SetDefault("FINANCE_BASE_REVENUE", 45230.0)
		viper.SetDefault("FINANCE_BASE_MARGIN_PCT", 68.5)
		viper.SetDefault("SCHEDULER_ENABLED", true)
		viper.SetDefault("SCHEDULER_CRON", "*/30 * * * *")
		viper.SetDefault("EXPORT_ENDPOINT", "")
		viper.SetDefault("EXPORT_ACCESS_KEY", "")
		viper.SetDefault("EXPORT_SECRET_KEY", "")
		viper.SetDefault("EXPORT_BUCKET", "loss-reports")
		viper.SetDefault("EXPORT_REGION", "us-east-1")
		viper.SetDefault("EXPORT_USE_SSL", true)
		viper.SetDefault("NOTIFY_WEBHOOK_URL", "")
		viper.SetDefault("NOTIFY_TIMEOUT_SECONDS", 5)
		viper.SetDefault("APP_DEMO", false)

		// Read from environment variables
		viper.AutomaticEnv()

		instance = &Config{
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				AdminPort:      viper.GetString("SERVER_ADMIN_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			Database: DatabaseConfig{
				Host:     viper.GetString("DB_HOST"),
				Port:     viper.GetString("DB_PORT"),
				User:     viper.GetString("DB_USER"),
				Password: viper.GetString("DB_PASSWORD"),
				DBName:   viper.GetString("DB_NAME"),
				SSLMode:  viper.GetString("DB_SSLMODE"),
			},
			Cache: CacheConfig{
				Enabled:              viper.GetBool("CACHE_ENABLED"),
				RedisURL:             viper.GetString("REDIS_URL"),
				RedisHost:            viper.GetString("REDIS_HOST"),
				RedisPort:            viper.GetString("REDIS_PORT"),
				RedisPassword:        viper.GetString("REDIS_PASSWORD"),
				RedisDB:              viper.GetInt("REDIS_DB"),
				StatisticsTTLSeconds: viper.GetInt("CACHE_STATS_TTL_SECONDS"),
			},
			Finance: FinanceConfig{
				BaseRevenue:   viper.GetFloat64("FINANCE_BASE_REVENUE"),
				BaseMarginPct: viper.GetFloat64("FINANCE_BASE_MARGIN_PCT"),
			},
			Scheduler: SchedulerConfig{
				Enabled:  viper.GetBool("SCHEDULER_ENABLED"),
				CronSpec: viper.GetString("SCHEDULER_CRON"),
			},
			Export: ExportConfig{
				Endpoint:  viper.GetString("EXPORT_ENDPOINT"),
				AccessKey: viper.GetString("EXPORT_ACCESS_KEY"),
				SecretKey: viper.GetString("EXPORT_SECRET_KEY"),
				Bucket:    viper.GetString("EXPORT_BUCKET"),
				Region:    viper.GetString("EXPORT_REGION"),
				UseSSL:    viper.GetBool("EXPORT_USE_SSL"),
			},
			Notify: NotifyConfig{
				WebhookURL:     viper.GetString("NOTIFY_WEBHOOK_URL"),
				TimeoutSeconds: viper.GetInt("NOTIFY_TIMEOUT_SECONDS"),
			},
			App: AppConfig{
				Demo: viper.GetBool("APP_DEMO"),
			},
		}
	})

	return instance
}
