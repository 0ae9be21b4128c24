package rabbitmq

import (
	"fmt"
	"net/url"

	"github.com/rabbitmq/amqp091-go"
)

// Config locates the broker and names the topic exchange request events flow
// through.
type Config struct {
	Host     string
	Port     int
	User     string
	Password string
	Exchange string
}

// URL is the AMQP connection string; credentials are escaped.
func (c Config) URL() string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(c.User, c.Password),
		Host:   fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:   "/",
	}
	return u.String()
}

// session is a connection plus one channel with the exchange declared.
type session struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

func dial(cfg Config) (*session, error) {
	if cfg.Exchange == "" {
		return nil, fmt.Errorf("rabbitmq: exchange name required")
	}
	conn, err := amqp091.Dial(cfg.URL())
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	s := &session{conn: conn, exchange: cfg.Exchange}

	if s.channel, err = conn.Channel(); err != nil {
		s.close()
		return nil, err
	}
	// durable topic exchange, routing key is the event name
	if err := s.channel.ExchangeDeclare(cfg.Exchange, "topic", true, false, false, false, nil); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *session) close() {
	if s.channel != nil {
		_ = s.channel.Close()
	}
	if s.conn != nil {
		_ = s.conn.Close()
	}
}
