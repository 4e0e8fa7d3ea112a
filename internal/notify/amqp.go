package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

const notificationsExchange = "notifications_fanout"

// AMQPNotifier publishes notification payloads to a RabbitMQ fanout
// exchange; a separate worker (SMS gateway, WhatsApp bridge) consumes
// and delivers them.
type AMQPNotifier struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

type notificationPayload struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// NewAMQPNotifier dials the broker and declares the exchange.
func NewAMQPNotifier(url string) (*AMQPNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	err = ch.ExchangeDeclare(notificationsExchange, "fanout", true, false, false, false, nil)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &AMQPNotifier{conn: conn, ch: ch}, nil
}

// Send publishes one (phone, message) payload.
func (n *AMQPNotifier) Send(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(notificationPayload{Phone: phone, Message: message})
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	err = n.ch.PublishWithContext(ctx, notificationsExchange, "", false, false, amqp.Publishing{
		ContentType: "application/json",
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	return nil
}

// Close releases the channel and connection.
func (n *AMQPNotifier) Close() {
	n.ch.Close()
	n.conn.Close()
}

// LogNotifier writes messages to the process log instead of delivering
// them. Dev-mode stand-in for the broker.
type LogNotifier struct{}

func (LogNotifier) Send(_ context.Context, phone, message string) error {
	log.Printf("notify %s: %s", phone, message)
	return nil
}
