package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	// HTTP server
	Server ServerConfig `mapstructure:"server"`

	// PostgreSQL
	Postgres PostgresConfig `mapstructure:"postgres"`

	// Redis
	Redis RedisConfig `mapstructure:"redis"`

	// NATS
	NATS NATSConfig `mapstructure:"nats"`

	// Prometheus
	Prometheus PrometheusConfig `mapstructure:"prometheus"`

	// Auth / JWT
	Auth AuthConfig `mapstructure:"auth"`

	// Uploaded images
	Upload UploadConfig `mapstructure:"upload"`

	// Engagement event log retention
	Retention RetentionConfig `mapstructure:"retention"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type PostgresConfig struct {
	Host              string `mapstructure:"host"`
	User              string `mapstructure:"user"`
	Password          string `mapstructure:"password"`
	Database          string `mapstructure:"database"`
	Port              int    `mapstructure:"port"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns"`
	MinConns          int32  `mapstructure:"min_conns"`
	MaxConnLifetime   string `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime   string `mapstructure:"max_conn_idle_time"`
	HealthCheckPeriod string `mapstructure:"health_check_period"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NATSConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	User        string `mapstructure:"user"`
	Password    string `mapstructure:"password"`
	MonitorPort int    `mapstructure:"monitor_port"`
}

type PrometheusConfig struct {
	Port   int    `mapstructure:"port"`
	Target string `mapstructure:"target"`
}

type AuthConfig struct {
	Secret                 string `mapstructure:"secret"`
	AccessTokenExpireHours int    `mapstructure:"access_token_expire_hours"`
	RefreshTokenExpireDays int    `mapstructure:"refresh_token_expire_days"`
}

type UploadConfig struct {
	// Dir is the public static directory uploaded images are written to.
	Dir string `mapstructure:"dir"`
	// PublicPath is the URL prefix the directory is served under.
	PublicPath string `mapstructure:"public_path"`
	// MaxSizeBytes caps a single upload. Defaults to 5MB.
	MaxSizeBytes int64 `mapstructure:"max_size_bytes"`
}

type RetentionConfig struct {
	// EventRetentionDays is how long view/click event rows are kept.
	// Zero disables pruning.
	EventRetentionDays int `mapstructure:"event_retention_days"`
}

const DefaultUploadMaxSize = 5 * 1024 * 1024

func Load() (*Config, error) {
	// Load local .env for development (ignored when missing).
	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	v := viper.New()

	// Search for config/config.yaml (plus root for overrides).
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Allow environment variables to override YAML entries.
	v.SetEnvPrefix("")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	setDefaults(v)
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("auth.access_token_expire_hours", 2)
	v.SetDefault("auth.refresh_token_expire_days", 7)
	v.SetDefault("upload.dir", "./public/uploads")
	v.SetDefault("upload.public_path", "/uploads")
	v.SetDefault("upload.max_size_bytes", DefaultUploadMaxSize)
	v.SetDefault("retention.event_retention_days", 0)
}

func bindEnvVars(v *viper.Viper) {
	// Server
	v.BindEnv("server.port", "APP_PORT")

	// PostgreSQL
	v.BindEnv("postgres.host", "PG_HOST")
	v.BindEnv("postgres.user", "PG_USER")
	v.BindEnv("postgres.password", "PG_PASSWORD")
	v.BindEnv("postgres.database", "PG_DB")
	v.BindEnv("postgres.port", "PG_PORT")
	v.BindEnv("postgres.sslmode", "PG_SSLMODE")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")
	v.BindEnv("redis.db", "REDIS_DB")

	// NATS
	v.BindEnv("nats.host", "NATS_HOST")
	v.BindEnv("nats.port", "NATS_PORT")
	v.BindEnv("nats.user", "NATS_USER")
	v.BindEnv("nats.password", "NATS_PASSWORD")
	v.BindEnv("nats.monitor_port", "NATS_MONITOR_PORT")

	// Prometheus
	v.BindEnv("prometheus.port", "PROM_PORT")
	v.BindEnv("prometheus.target", "PROM_TARGET")

	// Auth
	v.BindEnv("auth.secret", "JWT_SECRET")
	v.BindEnv("auth.access_token_expire_hours", "JWT_ACCESS_EXPIRE_HOURS")
	v.BindEnv("auth.refresh_token_expire_days", "JWT_REFRESH_EXPIRE_DAYS")

	// Uploads
	v.BindEnv("upload.dir", "UPLOAD_DIR")
	v.BindEnv("upload.public_path", "UPLOAD_PUBLIC_PATH")
	v.BindEnv("upload.max_size_bytes", "UPLOAD_MAX_SIZE_BYTES")

	// Retention
	v.BindEnv("retention.event_retention_days", "EVENT_RETENTION_DAYS")
}
