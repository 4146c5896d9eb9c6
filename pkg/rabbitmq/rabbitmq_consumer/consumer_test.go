package rabbitmq_consumer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"listing-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAcknowledger struct {
	mu      sync.Mutex
	acked   []uint64
	nacked  []uint64
	requeue []bool
}

func (f *fakeAcknowledger) Ack(tag uint64, multiple bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.acked = append(f.acked, tag)
	return nil
}

func (f *fakeAcknowledger) Nack(tag uint64, multiple, requeue bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nacked = append(f.nacked, tag)
	f.requeue = append(f.requeue, requeue)
	return nil
}

func (f *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return f.Nack(tag, false, requeue)
}

type fakePublisher struct {
	keys []string
	msgs []amqp.Publishing
	err  error
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	if p.err != nil {
		return p.err
	}
	p.keys = append(p.keys, routingKey)
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

func retryConfig() ConsumerConfig {
	return ConsumerConfig{
		QueueName:          "inquiries.relay",
		ExchangeName:       "inquiries",
		ExchangeType:       "direct",
		EnableRetry:        true,
		RetryExchange:      "inquiries.retry",
		RetryQueue:         "inquiries.relay.wait",
		RetryTTL:           time.Second,
		FinalDLXExchange:   "inquiries.dlx",
		FinalDLQ:           "inquiries.relay.dlq",
		FinalDLQRoutingKey: "inquiry.failed",
		MaxRetries:         3,
	}
}

func newTestConsumer(cfg ConsumerConfig, handler MessageHandler, dlx publisher) *Consumer {
	return &Consumer{
		config:     cfg,
		handler:    handler,
		deadLetter: dlx,
		Logger:     rabbitmq_common.NewNoopLogger(),
	}
}

func deathHeaders(queue string, count int64) amqp.Table {
	return amqp.Table{"x-death": []interface{}{
		amqp.Table{"queue": "inquiries.relay.wait", "count": int64(7)},
		amqp.Table{"queue": queue, "count": count},
	}}
}

func TestDeathCount(t *testing.T) {
	assert.Equal(t, int64(0), DeathCount(nil, "q"))
	assert.Equal(t, int64(0), DeathCount(amqp.Table{"x-death": "garbage"}, "q"))
	assert.Equal(t, int64(2), DeathCount(deathHeaders("q", 2), "q"))
	assert.Equal(t, int64(0), DeathCount(deathHeaders("other", 2), "q"))
}

func TestConsumerConfig_Validate(t *testing.T) {
	require.NoError(t, retryConfig().Validate())

	cfg := retryConfig()
	cfg.QueueName = ""
	assert.Error(t, cfg.Validate())

	cfg = retryConfig()
	cfg.RetryTTL = 0
	assert.Error(t, cfg.Validate())

	cfg = retryConfig()
	cfg.FinalDLQ = ""
	assert.Error(t, cfg.Validate())

	assert.NoError(t, ConsumerConfig{QueueName: "plain"}.Validate())
}

func TestProcess(t *testing.T) {
	failing := func(ctx context.Context, d amqp.Delivery) error { return errors.New("relay down") }
	ok := func(ctx context.Context, d amqp.Delivery) error { return nil }

	tests := []struct {
		name        string
		handler     MessageHandler
		headers     amqp.Table
		retry       bool
		dlxErr      error
		wantAcked   int
		wantNacked  int
		wantDLQMsgs int
	}{
		{name: "success acks", handler: ok, retry: true, wantAcked: 1},
		{name: "failure without retry nacks", handler: failing, wantNacked: 1},
		{name: "failure below limit goes to retry", handler: failing, retry: true,
			headers: deathHeaders("inquiries.relay", 2), wantNacked: 1},
		{name: "failure at limit goes to final DLQ", handler: failing, retry: true,
			headers: deathHeaders("inquiries.relay", 3), wantAcked: 1, wantDLQMsgs: 1},
		{name: "DLQ publish failure retries again", handler: failing, retry: true, dlxErr: errors.New("closed"),
			headers: deathHeaders("inquiries.relay", 3), wantNacked: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := retryConfig()
			cfg.EnableRetry = tt.retry
			dlx := &fakePublisher{err: tt.dlxErr}
			c := newTestConsumer(cfg, tt.handler, dlx)

			ack := &fakeAcknowledger{}
			c.process(context.Background(), amqp.Delivery{
				Acknowledger: ack,
				DeliveryTag:  42,
				Headers:      tt.headers,
				Body:         []byte(`{}`),
			})

			assert.Len(t, ack.acked, tt.wantAcked)
			assert.Len(t, ack.nacked, tt.wantNacked)
			for _, requeue := range ack.requeue {
				assert.False(t, requeue)
			}
			require.Len(t, dlx.msgs, tt.wantDLQMsgs)
			if tt.wantDLQMsgs > 0 {
				assert.Equal(t, "inquiry.failed", dlx.keys[0])
				assert.Equal(t, amqp.Persistent, dlx.msgs[0].DeliveryMode)
			}
		})
	}
}
