package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/port"
	"listing-service/internal/core/port/usecases_port"
	"listing-service/pkg/rabbitmq/rabbitmq_common"
	"listing-service/pkg/rabbitmq/rabbitmq_consumer"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// InquiryConsumerAdapter читает очередь заявок и пересылает каждую через RelayInquiryUseCase.
// Ошибка пересылки отправляет сообщение на повтор, битое сообщение подтверждается и теряется.
type InquiryConsumerAdapter struct {
	consumer *rabbitmq_consumer.Consumer
	useCase  usecases_port.RelayInquiryUseCase
	logger   port.LoggerPort
}

// InquiryConsumerConfig - конфигурация очереди заявок с повторами
func InquiryConsumerConfig(maxRetries int, retryTTL time.Duration) rabbitmq_consumer.ConsumerConfig {
	return rabbitmq_consumer.ConsumerConfig{
		QueueName:          constants.InquiriesQueue,
		Durable:            true,
		ExchangeName:       constants.InquiriesExchange,
		ExchangeType:       "direct",
		RoutingKey:         constants.RoutingKeyInquirySubmitted,
		PrefetchCount:      10,
		ConsumerTag:        "listing-service-inquiry-relay",
		EnableRetry:        true,
		RetryExchange:      constants.InquiriesRetryExchange,
		RetryQueue:         constants.InquiriesRetryQueue,
		RetryTTL:           retryTTL,
		FinalDLXExchange:   constants.InquiriesDLX,
		FinalDLQ:           constants.InquiriesDLQ,
		FinalDLQRoutingKey: constants.RoutingKeyInquiryFailed,
		MaxRetries:         maxRetries,
	}
}

func NewInquiryConsumerAdapter(
	consumerCfg rabbitmq_consumer.ConsumerConfig,
	useCase usecases_port.RelayInquiryUseCase,
	logger port.LoggerPort,
	connManager *rabbitmq_common.ConnectionManager,
) (*InquiryConsumerAdapter, error) {
	adapter := &InquiryConsumerAdapter{useCase: useCase, logger: logger}

	pkgLogger := logger.WithFields(port.Fields{"component": "rabbitmq_consumer", "queue": consumerCfg.QueueName})
	consumerCfg.Logger = NewPkgLoggerBridge(pkgLogger)

	consumer, err := rabbitmq_consumer.NewConsumer(consumerCfg, adapter.handleMessage, connManager)
	if err != nil {
		return nil, fmt.Errorf("failed to create inquiry consumer: %w", err)
	}
	adapter.consumer = consumer
	return adapter, nil
}

func (a *InquiryConsumerAdapter) Start(ctx context.Context) error {
	return a.consumer.Start(ctx)
}

func (a *InquiryConsumerAdapter) Close() error {
	return a.consumer.Close()
}

func (a *InquiryConsumerAdapter) handleMessage(ctx context.Context, d amqp.Delivery) error {
	traceID, _ := d.Headers[constants.HeaderTraceID].(string)
	if traceID == "" {
		traceID = uuid.New().String()
	}
	msgLogger := a.logger.WithFields(port.Fields{
		"trace_id":     traceID,
		"delivery_tag": d.DeliveryTag,
		"adapter_name": "InquiryConsumerAdapter",
	})

	eventType, _ := d.Headers[constants.HeaderEventType].(string)
	eventVersion, _ := d.Headers[constants.HeaderEventVersion].(string)
	if eventType == "" {
		eventType = contracts.InquirySubmittedEvent
	}
	if eventVersion == "" {
		eventVersion = contracts.Version1
	}

	if err := contracts.ValidateEvent(eventType, eventVersion, d.Body); err != nil {
		msgLogger.Error("Message failed contract validation, dropping", err, port.Fields{
			"event_type":    eventType,
			"event_version": eventVersion,
		})
		return nil
	}

	var dto InquirySubmittedEventDTO
	if err := json.Unmarshal(d.Body, &dto); err != nil {
		msgLogger.Error("Failed to unmarshal inquiry event, dropping", err, nil)
		return nil
	}

	ctx = contextkeys.ContextWithLogger(ctx, msgLogger.WithFields(port.Fields{"inquiry_id": dto.ID.String()}))
	ctx = contextkeys.ContextWithTraceID(ctx, traceID)

	if err := a.useCase.Execute(ctx, dto.toDomain()); err != nil {
		return fmt.Errorf("relay inquiry %s: %w", dto.ID, err)
	}
	return nil
}
