package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/jcmexdev/fitforge-orders/internal/order-api/core/ports"
)

// Exchange is the fanout exchange the out-of-band mailer consumes from.
const Exchange = "notifications_fanout"

// Publisher is satisfied by *rabbitmq.Client.
type Publisher interface {
	Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error
}

var _ ports.Sender = (*AMQPSender)(nil)

// AMQPSender hands messages to a mailer through RabbitMQ. Delivery counts as
// successful once the broker confirms the publish.
type AMQPSender struct {
	pub Publisher
	now func() time.Time
}

func NewAMQPSender(pub Publisher) *AMQPSender {
	return &AMQPSender{pub: pub, now: time.Now}
}

func (s *AMQPSender) Name() string { return "amqp" }

type emailEvent struct {
	ID      string   `json:"id"`
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

func (s *AMQPSender) Send(ctx context.Context, msg ports.Message) error {
	body, err := json.Marshal(emailEvent{ID: msg.ID, From: msg.From, To: msg.To, Subject: msg.Subject, HTML: msg.HTML})
	if err != nil {
		return fmt.Errorf("amqp: encode: %w", err)
	}

	err = s.pub.Publish(ctx, Exchange, "", amqp.Publishing{
		MessageId:    msg.ID,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    s.now(),
		Type:         "email",
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("amqp: %w", err)
	}
	return nil
}
