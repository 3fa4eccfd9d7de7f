package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const minCronSecretLength = 16

var (
	// ErrReadConfig возвращается, когда не удалось прочитать файл конфигурации
	ErrReadConfig = errors.New("config: failed to read config file")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Schedule ScheduleConfig `toml:"schedule"`
	Jobs     JobsConfig     `toml:"jobs"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ScheduleConfig настройки движка расписания
type ScheduleConfig struct {
	Timezone            string `toml:"timezone"`
	DefaultHorizonWeeks int    `toml:"default_horizon_weeks"`

	location *time.Location
}

// Location часовой пояс студии (заполняется при Validate)
func (s ScheduleConfig) Location() *time.Location {
	if s.location == nil {
		return time.UTC
	}
	return s.location
}

// JobsConfig настройки периодических задач
type JobsConfig struct {
	CronSecret string `toml:"cron_secret"`
	AutoRun    bool   `toml:"auto_run"`
	Interval   int    `toml:"interval"` // секунды
}

// EventsConfig настройки публикации событий в NATS
type EventsConfig struct {
	Enabled       bool   `toml:"enabled"`
	NatsURL       string `toml:"nats_url"`
	SubjectPrefix string `toml:"subject_prefix"`
}

// Load читает конфигурацию из toml файла, подгружает .env (если есть)
// и переопределяет секреты из переменных окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadConfig, path, err)
	}

	// .env не обязателен
	_ = godotenv.Load()
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{
			Level: "info",
		},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "coach-scheduler",
		},
		Schedule: ScheduleConfig{
			Timezone:            "UTC",
			DefaultHorizonWeeks: 6,
		},
		Jobs: JobsConfig{
			Interval: 3600,
		},
		Events: EventsConfig{
			SubjectPrefix: "scheduler",
		},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Database.Port = port
		}
	}
	if v := os.Getenv("JOBS_CRON_SECRET"); v != "" {
		cfg.Jobs.CronSecret = v
	}
	if v := os.Getenv("EVENTS_NATS_URL"); v != "" {
		cfg.Events.NatsURL = v
	}
}

// Validate проверяет корректность конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port must be in 1..65535", ErrInvalidConfig)
	}

	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}

	loc, err := time.LoadLocation(c.Schedule.Timezone)
	if err != nil {
		return fmt.Errorf("%w: schedule.timezone %q: %v", ErrInvalidConfig, c.Schedule.Timezone, err)
	}
	c.Schedule.location = loc

	if c.Schedule.DefaultHorizonWeeks < 1 {
		return fmt.Errorf("%w: schedule.default_horizon_weeks must be >= 1", ErrInvalidConfig)
	}

	// Пустой секрет отключает вызов по Bearer токену, остается только роль admin
	if c.Jobs.CronSecret != "" && len(c.Jobs.CronSecret) < minCronSecretLength {
		return fmt.Errorf("%w: jobs.cron_secret must be at least %d characters", ErrInvalidConfig, minCronSecretLength)
	}

	if c.Jobs.AutoRun && c.Jobs.Interval <= 0 {
		return fmt.Errorf("%w: jobs.interval must be positive when auto_run is enabled", ErrInvalidConfig)
	}

	if c.Events.Enabled && c.Events.NatsURL == "" {
		return fmt.Errorf("%w: events.nats_url is required when events are enabled", ErrInvalidConfig)
	}

	return nil
}
