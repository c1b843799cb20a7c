package event

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/campusgigs/campusgigs-api/internal/domain"
)

const (
	QueueNotifications = "notifications"

	actionHeader = "x-action"

	ActionMessageCreated = "message.created"
	ActionOrderCreated   = "order.created"
)

// Publisher pushes notification events for an external worker (email, push)
// to consume. A nil *Publisher is valid and drops everything, so callers
// don't need to care whether AMQP is configured.
type Publisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewPublisher(url string) (*Publisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("amqp.Dial -> %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("conn.Channel -> %w", err)
	}

	queue, err := channel.QueueDeclare(QueueNotifications, true, false, false, false, nil)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("channel.QueueDeclare -> %w", err)
	}

	return &Publisher{
		conn:    conn,
		channel: channel,
		queue:   queue,
	}, nil
}

func (p *Publisher) publish(ctx context.Context, action string, payload interface{}) error {
	if p == nil {
		return nil
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	err = p.channel.PublishWithContext(ctx, "", p.queue.Name, false, false, amqp.Publishing{
		ContentType: "application/json",
		Headers:     amqp.Table{actionHeader: action},
		Body:        body,
	})
	if err != nil {
		return fmt.Errorf("p.channel.PublishWithContext -> %w", err)
	}

	return nil
}

func (p *Publisher) MessageCreated(ctx context.Context, message domain.Message) error {
	return p.publish(ctx, ActionMessageCreated, message)
}

func (p *Publisher) OrderCreated(ctx context.Context, order domain.Order) error {
	return p.publish(ctx, ActionOrderCreated, order)
}

func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}

	if err := p.channel.Close(); err != nil {
		return err
	}

	return p.conn.Close()
}
