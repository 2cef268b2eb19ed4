package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends booking events to RabbitMQ. The connection is opened lazily
// and re-dialled after the broker drops it.
type Publisher struct {
	url   string
	queue string

	mu   sync.Mutex
	conn *amqp.Connection
}

func NewPublisher(url string) *Publisher {
	return &Publisher{url: url, queue: BookingCreatedQueue}
}

func (p *Publisher) PublishBookingCreated(ctx context.Context, b *domain.BookingDetail) error {
	body, err := json.Marshal(NewBookingCreatedEvent(b))
	if err != nil {
		return fmt.Errorf("marshal booking event: %w", err)
	}

	logger.ExternalServiceCall("rabbitmq", "publish", "queue", p.queue, "bookingID", b.ID)
	err = p.publish(ctx, body)
	logger.ExternalServiceResult("rabbitmq", "publish", err, "queue", p.queue, "bookingID", b.ID)
	return err
}

func (p *Publisher) publish(ctx context.Context, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.conn == nil || p.conn.IsClosed() {
		conn, err := amqp.Dial(p.url)
		if err != nil {
			return fmt.Errorf("dial broker: %w", err)
		}
		p.conn = conn
	}

	ch, err := p.conn.Channel()
	if err != nil {
		_ = p.conn.Close()
		p.conn = nil
		return fmt.Errorf("open channel: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	return ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil {
		return nil
	}
	err := p.conn.Close()
	p.conn = nil
	return err
}
