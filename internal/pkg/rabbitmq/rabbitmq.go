// Package rabbitmq wraps a single AMQP channel in confirm mode.
package rabbitmq

import (
	"context"
	"errors"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// confirmation is satisfied by *amqp.DeferredConfirmation.
type confirmation interface {
	WaitContext(ctx context.Context) (bool, error)
}

type publisher interface {
	publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error)
}

// confirmChannel publishes on a channel in confirm mode. Each publish gets
// its own confirmation keyed by delivery tag.
type confirmChannel struct {
	ch *amqp.Channel
}

func (c confirmChannel) publish(ctx context.Context, exchange, key string, msg amqp.Publishing) (confirmation, error) {
	dc, err := c.ch.PublishWithDeferredConfirmWithContext(ctx, exchange, key, false, false, msg)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("channel is not in confirm mode")
	}
	return dc, nil
}

type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	pub  publisher
}

// Dial connects to url, enables publisher confirms and declares exchange as
// a durable fanout.
func Dial(url, exchange string) (*Client, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, amqp.ExchangeFanout, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: declare exchange %q: %w", exchange, err)
	}

	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: enable confirms: %w", err)
	}

	return &Client{conn: conn, ch: ch, pub: confirmChannel{ch: ch}}, nil
}

func (c *Client) Ping() error {
	if c.conn == nil || c.conn.IsClosed() {
		return errors.New("rabbitmq: connection is closed")
	}
	return nil
}

// Publish sends msg and waits for the broker's ack or nack. A confirm that
// arrives after ctx is done is dropped with its publish; it never answers a
// later one.
func (c *Client) Publish(ctx context.Context, exchange, key string, msg amqp.Publishing) error {
	conf, err := c.pub.publish(ctx, exchange, key, msg)
	if err != nil {
		return fmt.Errorf("rabbitmq: publish: %w", err)
	}

	acked, err := conf.WaitContext(ctx)
	if err != nil {
		return fmt.Errorf("rabbitmq: wait for confirm: %w", err)
	}
	if !acked {
		return errors.New("rabbitmq: publish nacked by broker")
	}
	return nil
}

func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}
