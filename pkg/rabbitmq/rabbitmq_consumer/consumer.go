package rabbitmq_consumer

import (
	"context"
	"fmt"
	"sync"
	"time"

	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_producer"

	amqp "github.com/rabbitmq/amqp091-go"
)

// MessageHandler обрабатывает одно сообщение. Ack/Nack решает потребитель:
// nil - подтверждение, ошибка - повтор через retry-очередь.
type MessageHandler func(ctx context.Context, delivery amqp.Delivery) error

type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
	Close() error
}

// ConsumerConfig описывает очередь, привязку и механизм повторов
type ConsumerConfig struct {
	QueueName string
	Durable   bool
	QueueArgs amqp.Table

	// Обменник, к которому привязывается очередь. Пусто - без привязки.
	ExchangeName string
	ExchangeType string
	RoutingKey   string

	PrefetchCount int
	ConsumerTag   string

	// Повторы: основная очередь отдает отвергнутые сообщения в RetryExchange,
	// RetryQueue держит их RetryTTL и возвращает в ExchangeName.
	// После MaxRetries повторов сообщение уходит в FinalDLXExchange.
	EnableRetry        bool
	RetryExchange      string
	RetryQueue         string
	RetryTTL           time.Duration
	FinalDLXExchange   string
	FinalDLQ           string
	FinalDLQRoutingKey string
	MaxRetries         int

	Logger rabbitmq_common.Logger
}

func (c ConsumerConfig) Validate() error {
	if c.QueueName == "" {
		return fmt.Errorf("consumer: queue name is required")
	}
	if c.ExchangeName != "" && c.ExchangeType == "" {
		return fmt.Errorf("consumer: exchange type is required to declare exchange '%s'", c.ExchangeName)
	}
	if c.EnableRetry {
		if c.ExchangeName == "" {
			return fmt.Errorf("consumer: retry requires a bound exchange")
		}
		if c.RetryExchange == "" || c.RetryQueue == "" || c.FinalDLXExchange == "" || c.FinalDLQ == "" {
			return fmt.Errorf("consumer: retry exchange, retry queue, final DLX and final DLQ are required")
		}
		if c.RetryTTL <= 0 {
			return fmt.Errorf("consumer: retry TTL must be positive")
		}
		if c.MaxRetries < 0 {
			return fmt.Errorf("consumer: max retries must not be negative")
		}
	}
	return nil
}

// Consumer читает очередь и обрабатывает каждое сообщение в отдельной горутине
type Consumer struct {
	config     ConsumerConfig
	connection *amqp.Connection
	channel    *amqp.Channel
	deadLetter publisher
	handler    MessageHandler
	wg         sync.WaitGroup

	Logger rabbitmq_common.Logger
}

func NewConsumer(cfg ConsumerConfig, handler MessageHandler, connManager *rabbitmq_common.ConnectionManager) (*Consumer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if handler == nil {
		return nil, fmt.Errorf("consumer: message handler is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	conn, ch, err := connManager.GetChannel()
	if err != nil {
		return nil, fmt.Errorf("consumer: failed to get channel: %w", err)
	}

	c := &Consumer{
		config:     cfg,
		connection: conn,
		channel:    ch,
		handler:    handler,
		Logger:     logger,
	}

	if err := c.setup(); err != nil {
		_ = ch.Close()
		return nil, fmt.Errorf("consumer: setup failed: %w", err)
	}

	if cfg.EnableRetry {
		dlx, err := rabbitmq_producer.NewPublisher(rabbitmq_producer.PublisherConfig{
			ExchangeName: cfg.FinalDLXExchange,
			Logger:       logger,
		}, connManager)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("consumer: failed to create final DLX publisher: %w", err)
		}
		c.deadLetter = dlx
	}

	return c, nil
}

// setup объявляет очереди, обменники и привязки
func (c *Consumer) setup() error {
	cfg := c.config

	if cfg.PrefetchCount > 0 {
		if err := c.channel.Qos(cfg.PrefetchCount, 0, false); err != nil {
			return fmt.Errorf("failed to set QoS: %w", err)
		}
	}

	if cfg.ExchangeName != "" {
		c.Logger.Debug("Declaring exchange", "name", cfg.ExchangeName, "type", cfg.ExchangeType)
		if err := c.channel.ExchangeDeclare(cfg.ExchangeName, cfg.ExchangeType, true, false, false, false, nil); err != nil {
			return fmt.Errorf("failed to declare exchange '%s': %w", cfg.ExchangeName, err)
		}
	}

	if cfg.EnableRetry {
		if err := c.setupRetry(); err != nil {
			return err
		}
	}

	args := amqp.Table{}
	for k, v := range cfg.QueueArgs {
		args[k] = v
	}
	if cfg.EnableRetry {
		args["x-dead-letter-exchange"] = cfg.RetryExchange
	}

	c.Logger.Debug("Declaring queue", "name", cfg.QueueName, "durable", cfg.Durable)
	if _, err := c.channel.QueueDeclare(cfg.QueueName, cfg.Durable, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare queue '%s': %w", cfg.QueueName, err)
	}

	if cfg.ExchangeName != "" {
		if err := c.channel.QueueBind(cfg.QueueName, cfg.RoutingKey, cfg.ExchangeName, false, nil); err != nil {
			return fmt.Errorf("failed to bind queue '%s' to exchange '%s': %w", cfg.QueueName, cfg.ExchangeName, err)
		}
	}
	return nil
}

func (c *Consumer) setupRetry() error {
	cfg := c.config

	c.Logger.Debug("Declaring final DLX and DLQ", "dlx", cfg.FinalDLXExchange, "dlq", cfg.FinalDLQ)
	if err := c.channel.ExchangeDeclare(cfg.FinalDLXExchange, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare final DLX: %w", err)
	}
	if _, err := c.channel.QueueDeclare(cfg.FinalDLQ, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare final DLQ: %w", err)
	}
	if err := c.channel.QueueBind(cfg.FinalDLQ, cfg.FinalDLQRoutingKey, cfg.FinalDLXExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind final DLQ: %w", err)
	}

	c.Logger.Debug("Declaring retry exchange and wait queue", "exchange", cfg.RetryExchange, "queue", cfg.RetryQueue)
	if err := c.channel.ExchangeDeclare(cfg.RetryExchange, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare retry exchange: %w", err)
	}
	_, err := c.channel.QueueDeclare(cfg.RetryQueue, true, false, false, false, amqp.Table{
		"x-message-ttl":          int32(cfg.RetryTTL.Milliseconds()),
		"x-dead-letter-exchange": cfg.ExchangeName,
	})
	if err != nil {
		return fmt.Errorf("failed to declare retry wait queue: %w", err)
	}
	if err := c.channel.QueueBind(cfg.RetryQueue, "", cfg.RetryExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind retry wait queue: %w", err)
	}
	return nil
}

// Start блокируется до отмены ctx или закрытия соединения брокером
func (c *Consumer) Start(ctx context.Context) error {
	msgs, err := c.channel.Consume(c.config.QueueName, c.config.ConsumerTag,
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("consumer: failed to consume queue '%s': %w", c.config.QueueName, err)
	}

	notifyClose := c.connection.NotifyClose(make(chan *amqp.Error, 1))
	c.Logger.Info("Waiting for messages", "queue", c.config.QueueName)

	for {
		select {
		case <-ctx.Done():
			c.Logger.Info("Context cancelled, consumer stopping", "queue", c.config.QueueName)
			return nil

		case amqpErr, ok := <-notifyClose:
			if !ok || amqpErr == nil {
				return nil
			}
			c.Logger.Error(amqpErr, "Connection closed by broker", "queue", c.config.QueueName)
			return amqpErr

		case d, ok := <-msgs:
			if !ok {
				c.Logger.Warn("Deliveries channel closed", "queue", c.config.QueueName)
				return nil
			}
			c.wg.Add(1)
			go func(delivery amqp.Delivery) {
				defer c.wg.Done()
				c.process(ctx, delivery)
			}(d)
		}
	}
}

// process подтверждает сообщение или отправляет его на повтор
func (c *Consumer) process(ctx context.Context, d amqp.Delivery) {
	err := c.handler(ctx, d)
	if err == nil {
		_ = d.Ack(false)
		c.Logger.Debug("Message acked", "delivery_tag", d.DeliveryTag)
		return
	}

	c.Logger.Error(err, "Handler failed", "queue", c.config.QueueName, "delivery_tag", d.DeliveryTag)

	if !c.config.EnableRetry {
		_ = d.Nack(false, false)
		return
	}

	deaths := DeathCount(d.Headers, c.config.QueueName)
	if deaths < int64(c.config.MaxRetries) {
		c.Logger.Info("Retrying message", "delivery_tag", d.DeliveryTag, "death_count", deaths)
		_ = d.Nack(false, false)
		return
	}

	c.Logger.Warn("Max retries reached, moving message to final DLQ",
		"delivery_tag", d.DeliveryTag, "death_count", deaths)

	// ctx приложения может быть уже отменен, сообщение все равно нужно переложить
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	err = c.deadLetter.Publish(pubCtx, c.config.FinalDLQRoutingKey, amqp.Publishing{
		ContentType:  d.ContentType,
		Body:         d.Body,
		Headers:      d.Headers,
		Timestamp:    time.Now(),
		DeliveryMode: amqp.Persistent,
	})
	if err != nil {
		c.Logger.Error(err, "Failed to publish to final DLX, message goes to retry again",
			"delivery_tag", d.DeliveryTag)
		_ = d.Nack(false, false)
		return
	}
	_ = d.Ack(false)
}

// DeathCount - сколько раз сообщение отвергалось в очереди queue (заголовок x-death)
func DeathCount(headers amqp.Table, queue string) int64 {
	deaths, ok := headers["x-death"].([]interface{})
	if !ok {
		return 0
	}
	for _, death := range deaths {
		tbl, ok := death.(amqp.Table)
		if !ok {
			continue
		}
		if q, _ := tbl["queue"].(string); q != queue {
			continue
		}
		if count, ok := tbl["count"].(int64); ok {
			return count
		}
	}
	return 0
}

// Close ждет обработчиков и закрывает канал
func (c *Consumer) Close() error {
	c.Logger.Debug("Waiting for message handlers to finish", "queue", c.config.QueueName)
	c.wg.Wait()

	var firstErr error
	if c.deadLetter != nil {
		if err := c.deadLetter.Close(); err != nil {
			firstErr = err
		}
	}
	if c.channel != nil {
		if err := c.channel.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		c.channel = nil
	}
	c.Logger.Info("Consumer closed", "queue", c.config.QueueName)
	return firstErr
}
