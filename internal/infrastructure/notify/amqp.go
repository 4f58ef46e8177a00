package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/zebrands/catalog-api/internal/core/ports"
)

// AMQP publishes notifications as JSON to a topic exchange, routed by the
// notification key.
type AMQP struct {
	conn     *amqp.Connection
	ch       *amqp.Channel
	exchange string
}

func NewAMQP(url, exchange string) (*AMQP, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQP{conn: conn, ch: ch, exchange: exchange}, nil
}

func (p *AMQP) Notify(ctx context.Context, n ports.Notification) ports.DeliveryResult {
	start := time.Now()
	return observe("amqp", start, p.publish(ctx, n))
}

func (p *AMQP) publish(ctx context.Context, n ports.Notification) ports.DeliveryResult {
	b, err := json.Marshal(n)
	if err != nil {
		return failed(fmt.Errorf("encode notification: %w", err))
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, n.Key, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         b,
	})
	if err != nil {
		return failed(fmt.Errorf("publish: %w", err))
	}
	return ports.DeliveryResult{Delivered: true, Detail: "published to " + p.exchange}
}

// Name and Ping back the readiness probe.
func (p *AMQP) Name() string { return "amqp" }

func (p *AMQP) Ping(context.Context) error {
	if p.conn.IsClosed() {
		return amqp.ErrClosed
	}
	return nil
}

func (p *AMQP) Close() error {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
