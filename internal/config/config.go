package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const (
	LedgerBackendPostgres = "postgres"
	LedgerBackendMemory   = "memory"

	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Ledger   LedgerConfig   `toml:"ledger"`
	Logs     LogsConfig     `toml:"logs"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Business BusinessConfig `toml:"business"`
	Events   EventsConfig   `toml:"events"`
}

// ServerConfig таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	AutoMigrate     bool   `toml:"auto_migrate"`
}

// LedgerConfig выбор хранилища записей: postgres или memory
type LedgerConfig struct {
	Backend string `toml:"backend"`
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BusinessConfig часовой пояс, в котором считаются рабочие часы и 24 часа до записи
type BusinessConfig struct {
	Timezone string `toml:"timezone"`
}

type EventsConfig struct {
	Enabled      bool     `toml:"enabled"`
	Brokers      []string `toml:"brokers"`
	Topic        string   `toml:"topic"`
	WriteTimeout int      `toml:"write_timeout"`
}

// DSN строка подключения к PostgreSQL (формат key=value понимают и lib/pq, и pgx)
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// Location загружает часовой пояс бизнеса
func (b BusinessConfig) Location() (*time.Location, error) {
	return time.LoadLocation(b.Timezone)
}

// Load читает TOML файл, затем .env (если есть) и переменные окружения
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	// .env не обязателен
	_ = godotenv.Load()

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Driver:          DriverPostgres,
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Ledger:   LedgerConfig{Backend: LedgerBackendPostgres},
		Logs:     LogsConfig{Level: "info"},
		Metrics:  MetricsConfig{Path: "/metrics", ServiceName: "capture-booking"},
		Business: BusinessConfig{Timezone: "America/Sao_Paulo"},
		Events:   EventsConfig{Topic: "appointments.events", WriteTimeout: 5},
	}
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a number", ErrInvalidConfig, key, v)
		}
		*dst = n
		return nil
	}
	setBool := func(key string, dst *bool) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%q is not a boolean", ErrInvalidConfig, key, v)
		}
		*dst = b
		return nil
	}

	if err := setInt("HTTP_PORT", &cfg.Server.HTTPPort); err != nil {
		return err
	}
	setString("DB_DRIVER", &cfg.Database.Driver)
	setString("DB_HOST", &cfg.Database.Host)
	if err := setInt("DB_PORT", &cfg.Database.Port); err != nil {
		return err
	}
	setString("DB_USER", &cfg.Database.User)
	setString("DB_PASSWORD", &cfg.Database.Password)
	setString("DB_NAME", &cfg.Database.DBName)
	setString("DB_SSLMODE", &cfg.Database.SSLMode)
	if err := setBool("DB_AUTO_MIGRATE", &cfg.Database.AutoMigrate); err != nil {
		return err
	}
	setString("LEDGER_BACKEND", &cfg.Ledger.Backend)
	setString("LOG_LEVEL", &cfg.Logs.Level)
	setString("BUSINESS_TIMEZONE", &cfg.Business.Timezone)
	if err := setBool("METRICS_ENABLED", &cfg.Metrics.Enabled); err != nil {
		return err
	}
	if err := setBool("EVENTS_ENABLED", &cfg.Events.Enabled); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("KAFKA_BROKERS"); ok && v != "" {
		cfg.Events.Brokers = strings.Split(v, ",")
	}
	setString("KAFKA_TOPIC", &cfg.Events.Topic)

	return nil
}

// Validate проверяет согласованность настроек
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port=%d", ErrInvalidConfig, c.Server.HTTPPort)
	}

	switch c.Ledger.Backend {
	case LedgerBackendPostgres:
		switch c.Database.Driver {
		case DriverPostgres, DriverPgx:
		default:
			return fmt.Errorf("%w: database.driver=%q (expected %q or %q)",
				ErrInvalidConfig, c.Database.Driver, DriverPostgres, DriverPgx)
		}
		if c.Database.Host == "" || c.Database.DBName == "" {
			return fmt.Errorf("%w: database.host and database.dbname are required", ErrInvalidConfig)
		}
	case LedgerBackendMemory:
	default:
		return fmt.Errorf("%w: ledger.backend=%q (expected %q or %q)",
			ErrInvalidConfig, c.Ledger.Backend, LedgerBackendPostgres, LedgerBackendMemory)
	}

	if _, err := c.Business.Location(); err != nil {
		return fmt.Errorf("%w: business.timezone=%q: %v", ErrInvalidConfig, c.Business.Timezone, err)
	}

	if c.Events.Enabled && (len(c.Events.Brokers) == 0 || c.Events.Topic == "") {
		return fmt.Errorf("%w: events.brokers and events.topic are required when events are enabled", ErrInvalidConfig)
	}

	return nil
}
