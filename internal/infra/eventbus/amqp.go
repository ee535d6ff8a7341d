// Package eventbus publishes relayed outbox events to RabbitMQ.
package eventbus

import (
	"context"
	"log/slog"
	"sync"

	"facility-booking/internal/pkg/config"
	"facility-booking/internal/pkg/errs"
	"facility-booking/internal/usecase/shared"

	amqp "github.com/rabbitmq/amqp091-go"
)

type AMQPPublisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

func NewAMQPPublisher(cfg config.AMQPConfig) *AMQPPublisher {
	return &AMQPPublisher{url: cfg.URL, exchange: cfg.Exchange}
}

// Publish sends ev with routing key ev.Topic and waits for the broker
// confirm. The connection is (re)opened lazily.
func (p *AMQPPublisher) Publish(ctx context.Context, ev shared.OutboxEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	confirm, err := p.ch.PublishWithDeferredConfirmWithContext(ctx, p.exchange, ev.Topic, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID.String(),
		Timestamp:    ev.OccurredAt,
		Type:         ev.Topic,
		Body:         ev.Payload,
		Headers:      amqp.Table{"aggregate_id": ev.AggregateID.String()},
	})
	if err != nil {
		p.reset()
		return errs.Wrapf(err, "failed to publish event %s", ev.ID)
	}

	acked, err := confirm.WaitContext(ctx)
	if err != nil {
		return errs.Wrapf(err, "no confirm for event %s", ev.ID)
	}
	if !acked {
		return errs.Newf("broker nacked event %s", ev.ID)
	}
	return nil
}

func (p *AMQPPublisher) ensureChannel() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return errs.Wrap(err, "failed to connect to amqp broker")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "failed to open amqp channel")
	}
	if err := ch.ExchangeDeclare(p.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = conn.Close()
		return errs.Wrapf(err, "failed to declare exchange %s", p.exchange)
	}
	if err := ch.Confirm(false); err != nil {
		_ = conn.Close()
		return errs.Wrap(err, "failed to enable publisher confirms")
	}

	p.conn, p.ch = conn, ch
	slog.Info("connected to amqp broker", "exchange", p.exchange)
	return nil
}

func (p *AMQPPublisher) reset() {
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.conn, p.ch = nil, nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}

// LogPublisher stands in when no broker is configured. Rows are still
// marked published.
type LogPublisher struct{}

func (LogPublisher) Publish(ctx context.Context, ev shared.OutboxEvent) error {
	slog.DebugContext(ctx, "outbox event relayed without broker", "event_id", ev.ID, "topic", ev.Topic)
	return nil
}

var (
	_ shared.EventPublisher = (*AMQPPublisher)(nil)
	_ shared.EventPublisher = LogPublisher{}
)
