package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/soleworks/soleworks-api/models"
)

// Order event types
const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventOrderDeleted       = "order.deleted"
)

// OrderEvent is the payload published for every order lifecycle change
type OrderEvent struct {
	Type        string    `json:"type"`
	OrderID     uint      `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	ModelType   string    `json:"modelType,omitempty"`
	Status      string    `json:"status,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

// EventPublisher publishes order lifecycle events to Kafka. When no brokers
// are configured the publisher is a no-op; publish failures are logged and
// never fail the request.
type EventPublisher struct {
	writer *kafka.Writer
}

// NewEventPublisher creates a publisher for the given brokers and topic.
// A nil-writer publisher is returned when brokers is empty.
func NewEventPublisher(brokers []string, topic string) *EventPublisher {
	if len(brokers) == 0 {
		return &EventPublisher{}
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	return &EventPublisher{writer: writer}
}

// PublishOrderCreated publishes an order.created event
func (p *EventPublisher) PublishOrderCreated(ctx context.Context, order *models.Order) {
	p.publish(ctx, &OrderEvent{
		Type:        EventOrderCreated,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		ModelType:   order.ModelType,
		Status:      order.Status,
		OccurredAt:  time.Now(),
	})
}

// PublishOrderStatusChanged publishes an order.status_changed event
func (p *EventPublisher) PublishOrderStatusChanged(ctx context.Context, order *models.Order) {
	p.publish(ctx, &OrderEvent{
		Type:        EventOrderStatusChanged,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		Status:      order.Status,
		OccurredAt:  time.Now(),
	})
}

// PublishOrderDeleted publishes an order.deleted event
func (p *EventPublisher) PublishOrderDeleted(ctx context.Context, order *models.Order) {
	p.publish(ctx, &OrderEvent{
		Type:        EventOrderDeleted,
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		OccurredAt:  time.Now(),
	})
}

func (p *EventPublisher) publish(ctx context.Context, event *OrderEvent) {
	if p.writer == nil {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		zap.L().Error("failed to marshal order event", zap.Error(err))
		return
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderNumber),
		Value: payload,
		Time:  event.OccurredAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		zap.L().Error("failed to publish order event",
			zap.String("type", event.Type),
			zap.String("orderNumber", event.OrderNumber),
			zap.Error(err))
		return
	}

	zap.L().Info("published order event",
		zap.String("type", event.Type),
		zap.String("orderNumber", event.OrderNumber))
}

// Close closes the underlying Kafka writer
func (p *EventPublisher) Close() error {
	if p.writer == nil {
		return nil
	}
	return p.writer.Close()
}
