package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Переменные окружения, перекрывающие файл
const (
	EnvAPIURL         = "BOOKING_API_URL"
	EnvWSURL          = "BOOKING_WS_URL"
	EnvSessionBackend = "BOOKING_SESSION_BACKEND"
	EnvDBPassword     = "BOOKING_DB_PASSWORD"
	EnvRedisPassword  = "BOOKING_REDIS_PASSWORD"
)

// Бэкенды хранения личности
const (
	SessionBackendFile     = "file"
	SessionBackendRedis    = "redis"
	SessionBackendPostgres = "postgres"
)

// ErrInvalidConfig возвращается при некорректной конфигурации
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация агента
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	API      APIConfig      `toml:"api"`
	Realtime RealtimeConfig `toml:"realtime"`
	Session  SessionConfig  `toml:"session"`
	Redis    RedisConfig    `toml:"redis"`
	Database DatabaseConfig `toml:"database"`
}

// ServerConfig локальный HTTP API агента; таймауты в секундах
type ServerConfig struct {
	HTTPPort        int     `toml:"http_port"`
	ReadTimeout     int     `toml:"read_timeout"`
	WriteTimeout    int     `toml:"write_timeout"`
	IdleTimeout     int     `toml:"idle_timeout"`
	ShutdownTimeout int     `toml:"shutdown_timeout"`
	RateLimitRPS    float64 `toml:"rate_limit_rps"` // 0 выключает ограничение
	RateLimitBurst  int     `toml:"rate_limit_burst"`
}

// LogsConfig логирование
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig метрики Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// APIConfig REST-шлюз бэкенда бронирований
type APIConfig struct {
	URL            string  `toml:"url"`
	Timeout        int     `toml:"timeout"` // секунды
	RateLimitRPS   float64 `toml:"rate_limit_rps"`
	RateLimitBurst int     `toml:"rate_limit_burst"`
}

// RealtimeConfig STOMP-канал уведомлений
type RealtimeConfig struct {
	URL            string `toml:"url"`
	ReconnectDelay int    `toml:"reconnect_delay"` // секунды
}

// SessionConfig хранение личности между запусками
type SessionConfig struct {
	Backend string `toml:"backend"`
	Profile string `toml:"profile"`
	File    string `toml:"file"`
}

// RedisConfig подключение к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды, 0 без истечения
}

// DatabaseConfig подключение к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Default конфигурация по умолчанию
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8090,
			ReadTimeout:     10,
			WriteTimeout:    30,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
			RateLimitRPS:    50,
			RateLimitBurst:  100,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Enabled:     true,
			ServiceName: "booking-client",
			Path:        "/metrics",
		},
		API: APIConfig{
			URL:            "http://localhost:8080/api",
			Timeout:        10,
			RateLimitRPS:   20,
			RateLimitBurst: 10,
		},
		Realtime: RealtimeConfig{
			URL:            "ws://localhost:8080/ws",
			ReconnectDelay: 5,
		},
		Session: SessionConfig{
			Backend: SessionBackendFile,
			Profile: "default",
			File:    ".booking-client/identity.json",
		},
		Redis: RedisConfig{Addr: "localhost:6379"},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			DBName:          "booking_client",
			SSLMode:         "disable",
			MaxOpenConns:    5,
			MaxIdleConns:    2,
			ConnMaxLifetime: 300,
		},
	}
}

// Load читает конфигурацию из TOML-файла поверх значений по умолчанию
// Отсутствующий файл не ошибка; переменные окружения применяются после файла
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: failed to decode %s: %v", ErrInvalidConfig, path, err)
			}
		}
	}

	cfg.applyEnv(os.LookupEnv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIURL); ok && v != "" {
		c.API.URL = v
	}
	if v, ok := lookup(EnvWSURL); ok && v != "" {
		c.Realtime.URL = v
	}
	if v, ok := lookup(EnvSessionBackend); ok && v != "" {
		c.Session.Backend = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := lookup(EnvDBPassword); ok {
		c.Database.Password = v
	}
	if v, ok := lookup(EnvRedisPassword); ok {
		c.Redis.Password = v
	}
}

// Validate проверяет обязательные поля
func (c *Config) Validate() error {
	if c.API.URL == "" {
		return fmt.Errorf("%w: api.url is required", ErrInvalidConfig)
	}
	if c.Realtime.URL == "" {
		return fmt.Errorf("%w: realtime.url is required", ErrInvalidConfig)
	}
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port out of range: %d", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalidConfig)
	}
	if c.API.RateLimitBurst < 0 || c.Server.RateLimitBurst < 0 {
		return fmt.Errorf("%w: rate_limit_burst must not be negative", ErrInvalidConfig)
	}

	switch c.Session.Backend {
	case SessionBackendFile:
		if c.Session.File == "" {
			return fmt.Errorf("%w: session.file is required for file backend", ErrInvalidConfig)
		}
	case SessionBackendRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for redis backend", ErrInvalidConfig)
		}
	case SessionBackendPostgres:
		if c.Database.DBName == "" {
			return fmt.Errorf("%w: database.dbname is required for postgres backend", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown session.backend %q", ErrInvalidConfig, c.Session.Backend)
	}
	if c.Session.Profile == "" {
		return fmt.Errorf("%w: session.profile is required", ErrInvalidConfig)
	}
	return nil
}

// APITimeout таймаут запросов к бэкенду
func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.API.Timeout) * time.Second
}

// ReconnectDelay задержка переподключения realtime-канала
func (c *Config) ReconnectDelay() time.Duration {
	return time.Duration(c.Realtime.ReconnectDelay) * time.Second
}

// SessionTTL время жизни личности в Redis
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Redis.TTL) * time.Second
}
