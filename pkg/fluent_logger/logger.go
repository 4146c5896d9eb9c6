package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config - параметры подключения к Fluent Bit.
type Config struct {
	Host string // "127.0.0.1" или "fluent-bit" в Docker
	Port int    // обычно 24224
	// TagPrefix - общий префикс тегов сервиса, итоговый тег "<prefix>.<level>"
	TagPrefix string
	// Async - отправка в фоне, запись лога не ждет сети
	Async   bool
	Timeout time.Duration
}

// NewClient создает клиента Fluent Bit.
// Соединение проверяется только при первой отправке записи.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluent tag prefix is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("fluent host is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	client, err := fluent.New(fluent.Config{
		FluentHost:   cfg.Host,
		FluentPort:   cfg.Port,
		TagPrefix:    cfg.TagPrefix,
		Async:        cfg.Async,
		Timeout:      timeout,
		WriteTimeout: timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluent client: %w", err)
	}
	return client, nil
}
