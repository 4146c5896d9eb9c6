package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"listing-service/internal/constants"
	"listing-service/internal/contextkeys"
	"listing-service/internal/contracts"
	"listing-service/internal/core/domain"
	"listing-service/internal/core/port"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type eventPublisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// InquiryQueueAdapter реализует InquiryQueuePort поверх RabbitMQ
type InquiryQueueAdapter struct {
	producer eventPublisher
	timeout  time.Duration
}

func NewInquiryQueueAdapter(producer eventPublisher) (*InquiryQueueAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &InquiryQueueAdapter{producer: producer, timeout: 10 * time.Second}, nil
}

func (a *InquiryQueueAdapter) Enqueue(ctx context.Context, inquiry domain.Inquiry) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "InquiryQueueAdapter",
		"inquiry_id":  inquiry.ID.String(),
		"routing_key": constants.RoutingKeyInquirySubmitted,
	})

	body, err := json.Marshal(toEventDTO(inquiry))
	if err != nil {
		logger.Error("Failed to marshal inquiry event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to marshal inquiry %s: %w", inquiry.ID, err)
	}

	// в очередь не должно попасть то, что консьюмер потом отбракует
	if err := contracts.ValidateEvent(contracts.InquirySubmittedEvent, contracts.Version1, body); err != nil {
		logger.Error("Inquiry event does not match its contract", err, nil)
		return fmt.Errorf("rabbitmq adapter: invalid inquiry event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    inquiry.ID.String(),
		Headers: amqp.Table{
			constants.HeaderEventType:    contracts.InquirySubmittedEvent,
			constants.HeaderEventVersion: contracts.Version1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers[constants.HeaderTraceID] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, constants.RoutingKeyInquirySubmitted, msg); err != nil {
		logger.Error("Failed to publish inquiry event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish inquiry %s: %w", inquiry.ID, err)
	}

	logger.Debug("Inquiry event published", nil)
	return nil
}
