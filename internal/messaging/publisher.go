package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/FlavP/order-service/internal/domain/order"
)

// channel is the subset of *amqp.Channel the publisher uses, narrowed so
// tests can substitute a fake.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

var _ order.Publisher = (*OrderAcceptedPublisher)(nil)

// OrderAcceptedPublisher sends accepted-order notifications to a durable
// queue via the default exchange.
type OrderAcceptedPublisher struct {
	ch    channel
	queue string
}

// NewOrderAcceptedPublisher declares the durable queue and returns a
// publisher bound to it. Declaring up front means a lost notification can
// only come from the publish itself, never from a missing queue.
func NewOrderAcceptedPublisher(conn *Connection, queue string) (*OrderAcceptedPublisher, error) {
	return newPublisher(conn.channel, queue)
}

func newPublisher(ch channel, queue string) (*OrderAcceptedPublisher, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declaring queue %q: %w", queue, err)
	}
	return &OrderAcceptedPublisher{ch: ch, queue: queue}, nil
}

// Publish hands the message to the broker with persistent delivery so it
// survives a broker restart once accepted for send.
func (p *OrderAcceptedPublisher) Publish(ctx context.Context, msg order.AcceptedMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling message for order %d: %w", msg.OrderID, err)
	}

	err = p.ch.PublishWithContext(ctx, "", p.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing message for order %d: %w", msg.OrderID, err)
	}

	return nil
}
