package rabbitmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// RequestEventMessage is published whenever the request collection changes.
type RequestEventMessage struct {
	Event      string    `json:"event"`
	RequestID  string    `json:"request_id"`
	Title      string    `json:"title,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type Publisher struct {
	s *session
}

func NewPublisher(cfg Config) (*Publisher, error) {
	s, err := dial(cfg)
	if err != nil {
		return nil, err
	}
	return &Publisher{s: s}, nil
}

// PublishRequestEvent routes msg by its event name, e.g. request.created
func (p *Publisher) PublishRequestEvent(ctx context.Context, msg RequestEventMessage) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return p.s.channel.PublishWithContext(ctx, p.s.exchange, msg.Event, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    msg.OccurredAt,
		Body:         body,
	})
}

func (p *Publisher) Close() error {
	p.s.close()
	return nil
}
