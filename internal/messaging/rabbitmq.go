// Package messaging sends accepted-order notifications over RabbitMQ.
package messaging

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Connection wraps an AMQP connection and the channel used for publishing.
type Connection struct {
	conn    *amqp.Connection
	channel *amqp.Channel
}

// Dial connects to the broker at url and opens a publishing channel.
func Dial(url string) (*Connection, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	return &Connection{conn: conn, channel: ch}, nil
}

// IsClosed reports whether the underlying connection has been closed, either
// locally or by the broker.
func (c *Connection) IsClosed() bool {
	return c.conn.IsClosed()
}

// Close shuts down the channel and the connection.
func (c *Connection) Close() error {
	if err := c.channel.Close(); err != nil {
		_ = c.conn.Close()
		return fmt.Errorf("closing channel: %w", err)
	}
	if err := c.conn.Close(); err != nil {
		return fmt.Errorf("closing connection: %w", err)
	}
	return nil
}
