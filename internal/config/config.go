package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса, загружается из TOML файла
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Redis          RedisConfig          `toml:"redis"`
	CatalogService CatalogServiceConfig `toml:"catalog_service"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Scoring        ScoringConfig        `toml:"scoring"`
	Roster         RosterConfig         `toml:"roster"`
	Cache          CacheConfig          `toml:"cache"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
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
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к базе данных
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// RedisConfig настройки подключения к Redis
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// CatalogServiceConfig настройки клиента CatalogService
type CatalogServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки метрик Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	ServiceName string `toml:"service_name"`
	Path        string `toml:"path"`
}

// ScoringConfig веса компонент оценки мастера.
// Нулевые значения означают веса по умолчанию
type ScoringConfig struct {
	WorkloadWeight    float64 `toml:"workload_weight"`
	SkillWeight       float64 `toml:"skill_weight"`
	PreferenceWeight  float64 `toml:"preference_weight"`
	WaitTimeWeight    float64 `toml:"wait_time_weight"`
	PerformanceWeight float64 `toml:"performance_weight"`
}

// IsZero заданы ли веса в конфигурации
func (c *ScoringConfig) IsZero() bool {
	return c.WorkloadWeight == 0 && c.SkillWeight == 0 && c.PreferenceWeight == 0 &&
		c.WaitTimeWeight == 0 && c.PerformanceWeight == 0
}

// RosterConfig параметры построения расписаний смен.
// Нулевые значения означают параметры по умолчанию
type RosterConfig struct {
	HistoricalWeeks       int     `toml:"historical_weeks"`
	DemandDivisor         int     `toml:"demand_divisor"`
	MinStaffCoverage      int     `toml:"min_staff_coverage"`
	MinShiftHours         int     `toml:"min_shift_hours"`
	MaxShiftHours         int     `toml:"max_shift_hours"`
	DefaultMaxWeeklyHours int     `toml:"default_max_weekly_hours"`
	AllowSplitShifts      bool    `toml:"allow_split_shifts"`
	PeakDemandPerHour     float64 `toml:"peak_demand_per_hour"`
}

// CacheConfig настройки кэша доступных слотов
type CacheConfig struct {
	Backend    string `toml:"backend"` // memory | redis
	TTLMinutes int    `toml:"ttl_minutes"`
}

// Load загружает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in range [1, 65535]")
	}

	if c.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if c.Database.Port <= 0 {
		return fmt.Errorf("database.port must be positive")
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("database.dbname is required")
	}

	if c.CatalogService.URL == "" {
		return fmt.Errorf("catalog_service.url is required")
	}
	if c.CatalogService.Timeout <= 0 {
		return fmt.Errorf("catalog_service.timeout must be positive")
	}

	switch c.Cache.Backend {
	case "", "memory", "redis":
	default:
		return fmt.Errorf("cache.backend must be memory or redis, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == "redis" && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when cache.backend is redis")
	}

	if c.Metrics.Enabled {
		if c.Metrics.ServiceName == "" {
			return fmt.Errorf("metrics.service_name is required when metrics are enabled")
		}
		if c.Metrics.Path == "" {
			return fmt.Errorf("metrics.path is required when metrics are enabled")
		}
	}

	return nil
}
