package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/eduzap/eduzap/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const eventBinding = "request.#"

// Handler processes one request event.
type Handler func(msg RequestEventMessage)

// Consumer follows request events on a private queue that the broker drops
// when the consumer goes away.
type Consumer struct {
	s     *session
	queue string
}

func NewConsumer(cfg Config) (*Consumer, error) {
	s, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	// server-named, exclusive, auto-delete
	q, err := s.channel.QueueDeclare("", false, true, true, false, nil)
	if err != nil {
		s.close()
		return nil, err
	}
	if err := s.channel.QueueBind(q.Name, eventBinding, s.exchange, false, nil); err != nil {
		s.close()
		return nil, fmt.Errorf("rabbitmq: bind %s: %w", q.Name, err)
	}
	return &Consumer{s: s, queue: q.Name}, nil
}

// Start delivers events to handle on a background goroutine until ctx is
// done or the broker closes the channel. Undecodable deliveries are dropped.
func (c *Consumer) Start(ctx context.Context, handle Handler) error {
	if err := c.s.channel.Qos(16, 0, false); err != nil {
		return err
	}
	deliveries, err := c.s.channel.Consume(c.queue, "", false, true, false, false, nil)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					logger.Warn("[Consumer.Start] delivery channel closed")
					return
				}
				c.dispatch(d, handle)
			}
		}
	}()
	return nil
}

func (c *Consumer) dispatch(d amqp091.Delivery, handle Handler) {
	event, err := Decode(d.Body)
	if err != nil {
		logger.Error("[Consumer.dispatch] err Decode", zap.String("routing_key", d.RoutingKey), zap.String("error", err.Error()))
		_ = d.Nack(false, false)
		return
	}
	handle(event)
	if err := d.Ack(false); err != nil {
		logger.Warn("[Consumer.dispatch] err Ack", zap.String("error", err.Error()))
	}
}

// Decode parses a published event body. A body without an event name is
// rejected.
func Decode(body []byte) (RequestEventMessage, error) {
	var msg RequestEventMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return msg, err
	}
	if msg.Event == "" {
		return msg, fmt.Errorf("rabbitmq: event name missing")
	}
	return msg, nil
}

func (c *Consumer) Close() error {
	c.s.close()
	return nil
}
