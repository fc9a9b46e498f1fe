package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const (
	TypeOrderCreated       = "OrderCreated"
	TypeOrderStatusChanged = "OrderStatusChanged"
)

type OrderEvent struct {
	EventID    string       `json:"eventId"`
	EventType  string       `json:"eventType"`
	OccurredAt time.Time    `json:"occurredAt"`
	Payload    OrderPayload `json:"payload"`
}

type OrderPayload struct {
	OrderID        uint               `json:"orderId"`
	StoreID        uint               `json:"storeId"`
	UserID         string             `json:"userId"`
	Status         model.OrderStatus  `json:"status"`
	PreviousStatus model.OrderStatus  `json:"previousStatus,omitempty"`
	Total          int64              `json:"total"`
	Items          []OrderItemPayload `json:"items,omitempty"`
}

type OrderItemPayload struct {
	ProductID uint  `json:"productId"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"`
}

func NewOrderEvent(eventType string, order *model.Order, previous model.OrderStatus) OrderEvent {
	items := make([]OrderItemPayload, len(order.Items))
	for i, item := range order.Items {
		items[i] = OrderItemPayload{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return OrderEvent{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		OccurredAt: time.Now().UTC(),
		Payload: OrderPayload{
			OrderID:        order.ID,
			StoreID:        order.StoreID,
			UserID:         order.UserID,
			Status:         order.Status,
			PreviousStatus: previous,
			Total:          order.Total,
			Items:          items,
		},
	}
}

type Publisher interface {
	PublishOrderEvent(ctx context.Context, evt OrderEvent) error
	Close() error
}

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type kafkaPublisher struct {
	writer MessageWriter
}

func NewKafkaPublisher(writer MessageWriter) Publisher {
	return &kafkaPublisher{
		writer: writer,
	}
}

func (p *kafkaPublisher) PublishOrderEvent(ctx context.Context, evt OrderEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(strconv.FormatUint(uint64(evt.Payload.OrderID), 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("write order event: %w", err)
	}

	return nil
}

func (p *kafkaPublisher) Close() error {
	return p.writer.Close()
}

type nopPublisher struct{}

func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) PublishOrderEvent(context.Context, OrderEvent) error {
	return nil
}

func (nopPublisher) Close() error {
	return nil
}
