// Package events publishes created orders to Kafka for downstream
// bookkeeping. Nothing in the payment flow waits on a consumer.
package events

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/and161185/payform/internal/model"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

const OrderCreated = "order.created"

type Event struct {
	ID    string      `json:"id"`
	Type  string      `json:"type"`
	Order model.Order `json:"order"`
}

type Producer struct {
	w *kafka.Writer
}

func NewProducer(brokersStr, topic string) *Producer {
	brokers := strings.Split(brokersStr, ",")

	return &Producer{
		w: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireAll,
			Async:        false,
			WriteTimeout: 5 * time.Second,
		},
	}
}

func (p *Producer) Close() error {
	return p.w.Close()
}

func (p *Producer) PublishOrderCreated(ctx context.Context, order model.Order) error {
	msg, err := orderCreatedMessage(order)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, msg)
}

func orderCreatedMessage(order model.Order) (kafka.Message, error) {
	b, err := json.Marshal(Event{ID: uuid.NewString(), Type: OrderCreated, Order: order})
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(order.ID, 10)),
		Value: b,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
			{Key: "event-type", Value: []byte(OrderCreated)},
		},
	}, nil
}
