package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// DefaultPath путь к файлу конфигурации, если не задан CONFIG_PATH
const DefaultPath = "config.toml"

// ErrInvalidConfig возвращается, когда конфигурация не проходит проверку
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Database       DatabaseConfig       `toml:"database"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	ListingService ListingServiceConfig `toml:"listing_service"`
	Booking        BookingConfig        `toml:"booking"`
	Email          EmailConfig          `toml:"email"`
	SMS            SMSConfig            `toml:"sms"`
	Kafka          KafkaConfig          `toml:"kafka"`
}

// ServerConfig параметры HTTP сервера, таймауты в секундах
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig параметры подключения к PostgreSQL
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
	LockTimeoutMS   int    `toml:"lock_timeout_ms"`   // ожидание блокировки строки слота
	MigrateOnStart  bool   `toml:"migrate_on_start"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LockTimeout ожидание блокировки как time.Duration
func (d DatabaseConfig) LockTimeout() time.Duration {
	return time.Duration(d.LockTimeoutMS) * time.Millisecond
}

// LogsConfig параметры логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig параметры prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ListingServiceConfig параметры клиента ListingService
type ListingServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// BookingConfig параметры рассылки уведомлений о бронированиях
type BookingConfig struct {
	NotificationWorkers   int  `toml:"notification_workers"` // 0 - уведомления выключены
	NotificationQueueSize int  `toml:"notification_queue_size"`
	NotificationTimeout   int  `toml:"notification_timeout"` // секунды
	RejectPast            bool `toml:"reject_past"`          // отказ для начавшихся слотов и ad-hoc времени в прошлом
}

// EmailConfig параметры email-провайдера. Пустой api_url выключает канал
type EmailConfig struct {
	APIURL  string `toml:"api_url"`
	APIKey  string `toml:"api_key"`
	From    string `toml:"from"`
	Timeout int    `toml:"timeout"`
}

// SMSConfig параметры SMS-шлюза. Пустой api_url выключает канал
type SMSConfig struct {
	APIURL     string `toml:"api_url"`
	AccountSID string `toml:"account_sid"`
	AuthToken  string `toml:"auth_token"`
	From       string `toml:"from"`
	Timeout    int    `toml:"timeout"`
}

// KafkaConfig параметры публикации событий
type KafkaConfig struct {
	Enabled        bool     `toml:"enabled"`
	Brokers        []string `toml:"brokers"`
	Topic          string   `toml:"topic"`
	BatchTimeoutMS int      `toml:"batch_timeout_ms"`
}

// Load читает .env (если есть), TOML файл и переменные окружения.
// Секреты из окружения имеют приоритет над файлом
func Load(path string) (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	if env := os.Getenv("CONFIG_PATH"); env != "" {
		path = env
	}
	if path == "" {
		path = DefaultPath
	}

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"DB_HOST":        &c.Database.Host,
		"DB_USER":        &c.Database.User,
		"DB_PASSWORD":    &c.Database.Password,
		"DB_NAME":        &c.Database.DBName,
		"LISTING_URL":    &c.ListingService.URL,
		"EMAIL_API_KEY":  &c.Email.APIKey,
		"SMS_AUTH_TOKEN": &c.SMS.AuthToken,
	}
	for key, dst := range overrides {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

func (c *Config) applyDefaults() {
	setDefault(&c.Server.HTTPPort, 8080)
	setDefault(&c.Server.ReadTimeout, 15)
	setDefault(&c.Server.WriteTimeout, 15)
	setDefault(&c.Server.IdleTimeout, 60)
	setDefault(&c.Server.ShutdownTimeout, 30)

	setDefault(&c.Database.Port, 5432)
	setDefault(&c.Database.MaxOpenConns, 25)
	setDefault(&c.Database.MaxIdleConns, 5)
	setDefault(&c.Database.ConnMaxLifetime, 300)
	setDefault(&c.Database.LockTimeoutMS, 3000)
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "inspections"
	}

	setDefault(&c.ListingService.Timeout, 5)

	setDefault(&c.Booking.NotificationQueueSize, 256)
	setDefault(&c.Booking.NotificationTimeout, 10)

	setDefault(&c.Email.Timeout, 10)
	setDefault(&c.SMS.Timeout, 10)

	if c.Kafka.Topic == "" {
		c.Kafka.Topic = "inspection-bookings"
	}
	setDefault(&c.Kafka.BatchTimeoutMS, 50)
}

// Validate отклоняет заведомо невозможные значения
func (c *Config) Validate() error {
	var problems []string

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		problems = append(problems, fmt.Sprintf("server.http_port %d out of range", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		problems = append(problems, "database.host is required")
	}
	if c.Database.DBName == "" {
		problems = append(problems, "database.dbname is required")
	}
	if c.Database.LockTimeoutMS <= 0 {
		problems = append(problems, "database.lock_timeout_ms must be positive")
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		problems = append(problems, "database.max_idle_conns exceeds max_open_conns")
	}
	if c.ListingService.URL == "" {
		problems = append(problems, "listing_service.url is required")
	}
	if c.Booking.NotificationWorkers < 0 {
		problems = append(problems, "booking.notification_workers must not be negative")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		problems = append(problems, "kafka.brokers is required when kafka is enabled")
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

func setDefault(v *int, def int) {
	if *v == 0 {
		*v = def
	}
}
