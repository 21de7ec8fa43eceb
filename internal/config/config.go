package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	VenueService IntegrationConfig  `toml:"venue_service"`
	GuestService IntegrationConfig  `toml:"guest_service"`
	Booking      BookingConfig      `toml:"booking"`
}

// ServerConfig настройки HTTP-сервера
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

// DSN возвращает строку подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// IntegrationConfig настройки клиента внешнего сервиса
type IntegrationConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

// BookingConfig бизнес-настройки движка бронирования
type BookingConfig struct {
	// Допустимое отставание времени начала от текущего момента, минуты
	GraceMinutes int `toml:"grace_minutes"`
	// Политика тарификации многодневных бронирований: "flat_base" или "per_day_overrides"
	PricingPolicy string `toml:"pricing_policy"`
	// Максимум попыток вставки при коллизии номера подтверждения
	ConfirmationInsertTries int `toml:"confirmation_insert_tries"`
	// Множитель доплаты за гостя (1.0 = доплата отключена)
	GuestCountMultiplier float64 `toml:"guest_count_multiplier"`
}

// Load читает конфигурацию из TOML-файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "swimago-reservations"
	}
	if cfg.Booking.ConfirmationInsertTries == 0 {
		cfg.Booking.ConfirmationInsertTries = 3
	}
	if cfg.Booking.GuestCountMultiplier == 0 {
		cfg.Booking.GuestCountMultiplier = 1.0
	}
	if cfg.Booking.PricingPolicy == "" {
		cfg.Booking.PricingPolicy = "per_day_overrides"
	}

	return &cfg, nil
}
