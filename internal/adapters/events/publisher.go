// Package events publishes domain events to RabbitMQ.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/expense_tracker/internal/core/ports/clients"
	"github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher sends events to a durable topic exchange, routed by event type.
type AMQPPublisher struct {
	mu           sync.Mutex
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
}

var _ clients.EventPublisher = (*AMQPPublisher)(nil)

// NewAMQPPublisher dials the broker and declares the exchange.
func NewAMQPPublisher(url, exchangeName string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPublisher{conn: conn, channel: channel, exchangeName: exchangeName}, nil
}

// Publish sends one persistent JSON message. Channels are not safe for concurrent use.
func (p *AMQPPublisher) Publish(ctx context.Context, event clients.Event) error {
	msg, err := newPublishing(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	err = p.channel.PublishWithContext(ctx,
		p.exchangeName, // exchange
		event.Type,     // routing key
		false,          // mandatory
		false,          // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}

	slog.DebugContext(ctx, "Published event",
		slog.String("type", event.Type),
		slog.String("entity_id", event.EntityID),
		slog.String("exchange", p.exchangeName))
	return nil
}

func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

func newPublishing(event clients.Event) (amqp091.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.UnixMilli(event.OccurredAt),
		Type:         event.Type,
		MessageId:    event.Type + ":" + event.EntityID,
		Body:         body,
	}, nil
}

// Noop drops every event. It is used when no broker is configured.
type Noop struct{}

var _ clients.EventPublisher = Noop{}

func (Noop) Publish(ctx context.Context, event clients.Event) error { return nil }

func (Noop) Close() error { return nil }
