package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DatasetSourceFile     = "file"
	DatasetSourcePostgres = "postgres"
)

type RESTConfig struct {
	Port               string        `env:"PORT" envDefault:"8080"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DatasetConfig struct {
	Source string `env:"DATASET_SOURCE" envDefault:"file"`
	// Path - путь к JSON-файлу или http(s) URL
	Path string `env:"DATASET_PATH" envDefault:"data/properties.json"`
	// ReloadInterval: 0 - без перезагрузки
	ReloadInterval time.Duration `env:"DATASET_RELOAD_INTERVAL" envDefault:"0s"`
}

type PostgresConfig struct {
	URL      string `env:"DATABASE_URL"`
	MaxConns int32  `env:"DATABASE_MAX_CONNS" envDefault:"4"`
}

// RabbitMQConfig: пустой URL - заявки пересылаются синхронно, без очереди
type RabbitMQConfig struct {
	URL        string        `env:"RABBITMQ_URL"`
	MaxRetries int           `env:"INQUIRY_MAX_RETRIES" envDefault:"3"`
	RetryDelay time.Duration `env:"INQUIRY_RETRY_DELAY" envDefault:"30s"`
}

type FormRelayConfig struct {
	URL         string        `env:"FORM_RELAY_URL"`
	ContactNext string        `env:"FORM_RELAY_CONTACT_NEXT" envDefault:"https://adianantproperties.in"`
	InquiryNext string        `env:"FORM_RELAY_INQUIRY_NEXT" envDefault:"https://adianantproperties.in/thank-you"`
	Origin      string        `env:"FORM_RELAY_ORIGIN"`
	Timeout     time.Duration `env:"FORM_RELAY_TIMEOUT" envDefault:"10s"`
}

type StdoutLogConfig struct {
	Level string `env:"STDOUT_LOG_LEVEL" envDefault:"debug"`
	JSON  bool   `env:"STDOUT_LOG_JSON" envDefault:"false"`
}

type FluentBitConfig struct {
	Enabled bool   `env:"FLUENTBIT_ENABLED" envDefault:"false"`
	Host    string `env:"FLUENTBIT_HOST"`
	Port    int    `env:"FLUENTBIT_PORT" envDefault:"24224"`
	Level   string `env:"FLUENTBIT_LOG_LEVEL" envDefault:"info"`
}

// AppConfig хранит всю конфигурацию приложения
type AppConfig struct {
	AppName      string `env:"APP_NAME" envDefault:"listing-service"`
	Rest         RESTConfig
	Dataset      DatasetConfig
	Postgres     PostgresConfig
	RabbitMQ     RabbitMQConfig
	FormRelay    FormRelayConfig
	StdoutLogger StdoutLogConfig
	FluentBit    FluentBitConfig
}

// LoadConfig читает .env (если он есть) и переменные окружения.
// Уже заданные переменные окружения .env не перекрывает.
func LoadConfig(envPath ...string) (*AppConfig, error) {
	var err error
	if len(envPath) > 0 {
		err = godotenv.Load(envPath...)
	} else {
		err = godotenv.Load()
	}
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("could not load .env file (path: %v): %w", envPath, err)
		}
		log.Printf("Info: no .env file found (path: %v), using environment variables", envPath)
	}

	cfg := &AppConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет связи между переменными
func (c *AppConfig) Validate() error {
	var errs []error

	switch c.Dataset.Source {
	case DatasetSourceFile:
		if strings.TrimSpace(c.Dataset.Path) == "" {
			errs = append(errs, fmt.Errorf("DATASET_PATH is required when DATASET_SOURCE=file"))
		}
	case DatasetSourcePostgres:
		if c.Postgres.URL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required when DATASET_SOURCE=postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATASET_SOURCE must be %q or %q, got %q",
			DatasetSourceFile, DatasetSourcePostgres, c.Dataset.Source))
	}
	if c.Dataset.ReloadInterval < 0 {
		errs = append(errs, fmt.Errorf("DATASET_RELOAD_INTERVAL must not be negative"))
	}

	if c.FormRelay.URL == "" {
		errs = append(errs, fmt.Errorf("FORM_RELAY_URL is required"))
	} else if u, err := url.Parse(c.FormRelay.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("FORM_RELAY_URL must be an absolute URL, got %q", c.FormRelay.URL))
	}

	if c.RabbitMQ.URL != "" && c.RabbitMQ.RetryDelay <= 0 {
		errs = append(errs, fmt.Errorf("INQUIRY_RETRY_DELAY must be positive"))
	}
	if c.RabbitMQ.MaxRetries < 0 {
		errs = append(errs, fmt.Errorf("INQUIRY_MAX_RETRIES must not be negative"))
	}

	if c.FluentBit.Enabled && c.FluentBit.Host == "" {
		log.Println("WARNING: FLUENTBIT_ENABLED is true, but FLUENTBIT_HOST is not set. Disabling Fluent Bit.")
		c.FluentBit.Enabled = false
	}

	return errors.Join(errs...)
}

// ParseLogLevel переводит строку уровня в slog.Level, неизвестное значение дает info
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
