package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodie_express_backend/internal/models"
	"foodie_express_backend/pkg/utils"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// Order event types.
const (
	EventOrderCreated          = "order.created"
	EventOrderPaymentProcessed = "order.payment_processed"
	EventOrderStatusChanged    = "order.status_changed"
)

// OrderEvent is published after an order changes.
type OrderEvent struct {
	Type       string             `json:"type"`
	OrderID    int64              `json:"order_id"`
	CustomerID int64              `json:"customer_id,omitempty"`
	RiderID    *int64             `json:"rider_id,omitempty"`
	Status     models.OrderStatus `json:"status,omitempty"`
	Total      *decimal.Decimal   `json:"total,omitempty"`
	Items      []models.CartLine  `json:"items,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// EventPublisher delivers order events to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, event OrderEvent) error
	Close() error
}

// publishBestEffort logs publish failures instead of returning them; an
// event never fails the operation that produced it.
func publishBestEffort(ctx context.Context, publisher EventPublisher, event OrderEvent) {
	if publisher == nil {
		return
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}
	if err := publisher.Publish(ctx, event); err != nil {
		utils.LogWarn("Failed to publish order event", map[string]interface{}{
			"event": event.Type, "order_id": event.OrderID, "error": err.Error(),
		})
	}
}

// --- Kafka ---

type kafkaMessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer kafkaMessageWriter
}

// NewKafkaWriter builds a writer for topic on the given brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher publishes JSON events keyed by order.<event>.<id>.
func NewKafkaPublisher(writer kafkaMessageWriter) EventPublisher {
	return &kafkaPublisher{writer: writer}
}

func kafkaEventKey(event OrderEvent) string {
	return fmt.Sprintf("%s.%d", event.Type, event.OrderID)
}

func (p *kafkaPublisher) Publish(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event.Type, err)
	}
	msg := kafka.Message{
		Key:   []byte(kafkaEventKey(event)),
		Value: body,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing %s event to kafka: %w", event.Type, err)
	}
	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

// --- RabbitMQ ---

type amqpPublisherChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type rabbitMQPublisher struct {
	conn     *amqp.Connection
	ch       amqpPublisherChannel
	exchange string
}

// DialRabbitMQ connects to url, declares a durable topic exchange and
// returns a publisher that routes by event type.
func DialRabbitMQ(url, exchange string) (EventPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening rabbitmq channel: %w", err)
	}
	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}
	return &rabbitMQPublisher{conn: conn, ch: ch, exchange: exchange}, nil
}

// NewRabbitMQPublisher wraps an already prepared channel.
func NewRabbitMQPublisher(ch amqpPublisherChannel, exchange string) EventPublisher {
	return &rabbitMQPublisher{ch: ch, exchange: exchange}
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, event OrderEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event.Type, err)
	}
	err = p.ch.PublishWithContext(ctx, p.exchange, event.Type, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing %s event to rabbitmq: %w", event.Type, err)
	}
	return nil
}

func (p *rabbitMQPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		return fmt.Errorf("close rabbitmq channel: %w", err)
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil {
			return fmt.Errorf("close rabbitmq connection: %w", err)
		}
	}
	return nil
}

// --- Log only ---

type logPublisher struct{}

// NewLogPublisher is used when no broker is configured.
func NewLogPublisher() EventPublisher {
	return logPublisher{}
}

func (logPublisher) Publish(_ context.Context, event OrderEvent) error {
	utils.LogDebug("Order event", map[string]interface{}{
		"event": event.Type, "order_id": event.OrderID, "status": string(event.Status),
	})
	return nil
}

func (logPublisher) Close() error { return nil }
