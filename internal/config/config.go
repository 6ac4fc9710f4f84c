package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server   ServerConfig
	Renewer  RenewerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
	FileHost FileHostConfig
	Cache    CacheConfig
}

type ServerConfig struct {
	Port            int           `envconfig:"API_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"API_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"API_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"API_SHUTDOWN_TIMEOUT" default:"10s"`
}

type RenewerConfig struct {
	Interval time.Duration `envconfig:"RENEWER_INTERVAL" default:"1h"`
	PageSize int           `envconfig:"RENEWER_PAGE_SIZE" default:"100"`
	// MaxInFlight bounds concurrent upstream calls within one page.
	MaxInFlight     int           `envconfig:"RENEWER_MAX_IN_FLIGHT" default:"8"`
	ShutdownTimeout time.Duration `envconfig:"RENEWER_SHUTDOWN_TIMEOUT" default:"30s"`
}

type DatabaseConfig struct {
	Host     string `envconfig:"POSTGRES_HOST" default:"localhost"`
	Port     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	User     string `envconfig:"POSTGRES_USER" default:"vidshare"`
	Password string `envconfig:"POSTGRES_PASSWORD" default:"vidshare"`
	DBName   string `envconfig:"POSTGRES_DB" default:"vidshare"`
	SSLMode  string `envconfig:"POSTGRES_SSLMODE" default:"disable"`
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

type RedisConfig struct {
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD" default:""`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type RabbitMQConfig struct {
	Host     string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port     int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User     string `envconfig:"RABBITMQ_USER" default:"vidshare"`
	Password string `envconfig:"RABBITMQ_PASSWORD" default:"vidshare"`
	VHost    string `envconfig:"RABBITMQ_VHOST" default:"/"`
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf(
		"amqp://%s:%s@%s:%d%s",
		c.User, c.Password, c.Host, c.Port, c.VHost,
	)
}

type FileHostConfig struct {
	BaseURL      string        `envconfig:"FILEHOST_BASE_URL" default:"https://api.telegram.org"`
	BotToken     string        `envconfig:"FILEHOST_BOT_TOKEN" required:"true"`
	Timeout      time.Duration `envconfig:"FILEHOST_TIMEOUT" default:"10s"`
	ProbeTimeout time.Duration `envconfig:"FILEHOST_PROBE_TIMEOUT" default:"5s"`
}

type CacheConfig struct {
	TTL time.Duration `envconfig:"CACHE_TTL" default:"5m"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return &cfg, nil
}
