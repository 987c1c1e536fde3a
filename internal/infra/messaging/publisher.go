package messaging

import (
	"context"
	"sync"
	"time"

	"inspection-marketplace/internal/pkg/config"
	"inspection-marketplace/internal/pkg/errs"
	"inspection-marketplace/internal/pkg/tracing"
	"inspection-marketplace/internal/usecase/shared"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.opentelemetry.io/otel/attribute"
)

// Publisher sends notification jobs to a topic exchange. Consumers bind queues by routing
// key ("email.*", "admin.#", ...) and drop redeliveries by message id.
type Publisher struct {
	url      string
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

var _ shared.EventPublisher = (*Publisher)(nil)

func NewPublisher(cfg config.AMQPConfig) *Publisher {
	return &Publisher{url: cfg.URL, exchange: cfg.Exchange}
}

// Publish dials lazily and redials after the broker drops the channel, so a broker outage
// fails only the dispatch run it happens in.
func (p *Publisher) Publish(ctx context.Context, routingKey string, payload []byte) (err error) {
	ctx, span := tracing.Start(ctx, "amqp.publish", attribute.String("messaging.routing_key", routingKey))
	defer func() { tracing.End(span, err) }()

	p.mu.Lock()
	defer p.mu.Unlock()

	ch, err := p.channel()
	if err != nil {
		return err
	}
	err = ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Body:         payload,
	})
	if err != nil {
		p.reset()
		return errs.Wrapf(err, "publish %s", routingKey)
	}
	return nil
}

func (p *Publisher) channel() (*amqp.Channel, error) {
	if p.ch != nil && !p.ch.IsClosed() {
		return p.ch, nil
	}
	p.reset()

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return nil, errs.Wrap(err, "dial rabbitmq")
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, errs.Wrap(err, "open channel")
	}
	if err := ch.ExchangeDeclare(p.exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, errs.Wrap(err, "declare exchange")
	}
	p.conn, p.ch = conn, ch
	return ch, nil
}

func (p *Publisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
		p.ch = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
	return nil
}
