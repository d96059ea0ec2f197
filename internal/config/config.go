package config

import (
	"fmt"
	"time"

	"github.com/Gaaaybe/Aetherium/internal/utils"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервиса сил.
type Config struct {
	// Сервер
	Port        string `envconfig:"SERVER_PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`
	Env         string `envconfig:"ENV" default:"production"`

	// PostgreSQL
	DBHost        string        `envconfig:"DB_HOST" required:"true"`
	DBPort        string        `envconfig:"DB_PORT" default:"5432"`
	DBUser        string        `envconfig:"DB_USER" required:"true"`
	DBName        string        `envconfig:"DB_NAME" required:"true"`
	DBSSLMode     string        `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns    int           `envconfig:"DB_MAX_CONNECTIONS" default:"10"`
	DBIdleTimeout time.Duration `envconfig:"DB_MAX_IDLE_MINUTES" default:"5m"`
	// Секрет, без envconfig тега
	DBPassword string `ignored:"true"`

	// Redis (кэш каталога)
	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisDB         int           `envconfig:"REDIS_DB" default:"0"`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"10m"`
	RedisPassword   string        `ignored:"true"`
	// Каталог с efeitos.json и modificacoes.json. Пусто - импорт при старте выключен.
	CatalogSeedDir string `envconfig:"CATALOG_SEED_DIR"`

	// RabbitMQ
	RabbitMQURL           string `envconfig:"RABBITMQ_URL" required:"true"`
	VisibilityEventsQueue string `envconfig:"VISIBILITY_EVENTS_QUEUE" default:"power_visibility_events"`
}

// GetDSN возвращает строку подключения к PostgreSQL.
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig читает переменные окружения и секреты.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var err error
	cfg.DBPassword, err = utils.ReadSecret("db_password")
	if err != nil {
		return nil, err
	}

	// пароль Redis необязателен
	if password, err := utils.ReadSecret("redis_password"); err == nil {
		cfg.RedisPassword = password
	}

	return &cfg, nil
}
