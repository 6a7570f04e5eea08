package broker

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/xid"
	"paysaga/internal/app/logger"
)

const dialTimeout = 10 * time.Second

var ErrPublishNacked = errors.New("publish not confirmed by broker")

type RabbitMQConfig struct {
	URL            string
	ReconnectDelay time.Duration
	PublishTimeout time.Duration
}

func sanitizeURL(raw string) (string, error) {
	clean := strings.TrimSpace(raw)
	clean = strings.Trim(clean, "\"'")
	parsed, err := url.Parse(clean)
	if err != nil {
		return "", err
	}
	if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
		return "", fmt.Errorf("invalid AMQP scheme: %s", parsed.Scheme)
	}
	return clean, nil
}

func dial(rawURL string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.DialConfig(rawURL, amqp.Config{Dial: amqp.DefaultDial(dialTimeout)})
	if err != nil {
		return nil, nil, fmt.Errorf("dial: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("channel: %w", err)
	}
	return conn, ch, nil
}

// declareQueue declares a durable queue together with its dead-letter queue
func declareQueue(ch *amqp.Channel, queue string) error {
	dead := DeadLetterQueue(queue)
	if _, err := ch.QueueDeclare(dead, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare %s: %w", dead, err)
	}
	args := amqp.Table{
		"x-dead-letter-exchange":    "",
		"x-dead-letter-routing-key": dead,
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, args); err != nil {
		return fmt.Errorf("declare %s: %w", queue, err)
	}
	return nil
}

// broker.Publisher interface implementation
var _ Publisher = (*RabbitPublisher)(nil)

// RabbitPublisher owns a single connection, reopened lazily after a failure.
// It is meant to be used by one publisher loop.
type RabbitPublisher struct {
	cfg RabbitMQConfig
	log logger.Logger

	mu       sync.Mutex
	conn     *amqp.Connection
	ch       *amqp.Channel
	declared map[string]bool
}

func (p *RabbitPublisher) LoggerComponent() string {
	return "RabbitPublisher"
}

func NewRabbitPublisher(cfg RabbitMQConfig, log logger.Logger) (*RabbitPublisher, error) {
	clean, err := sanitizeURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	cfg.URL = clean
	p := &RabbitPublisher{cfg: cfg}
	p.log = log.Component(p)
	return p, nil
}

func (p *RabbitPublisher) open() error {
	if p.ch != nil && !p.ch.IsClosed() {
		return nil
	}
	p.reset()

	conn, ch, err := dial(p.cfg.URL)
	if err != nil {
		return err
	}
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("confirm mode: %w", err)
	}
	p.conn, p.ch = conn, ch
	p.declared = make(map[string]bool)
	p.log.Debug().Msg("Connected to broker")
	return nil
}

func (p *RabbitPublisher) reset() {
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
	p.ch, p.conn, p.declared = nil, nil, nil
}

// Publish implementation of interface broker.Publisher
func (p *RabbitPublisher) Publish(ctx context.Context, queue, messageID string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.open(); err != nil {
		return err
	}

	if !p.declared[queue] {
		if err := declareQueue(p.ch, queue); err != nil {
			p.reset()
			return err
		}
		p.declared[queue] = true
	}

	if p.cfg.PublishTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.cfg.PublishTimeout)
		defer cancel()
	}

	conf, err := p.ch.PublishWithDeferredConfirmWithContext(ctx,
		"",    // exchange
		queue, // routing key
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			MessageId:    messageID,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		p.reset()
		return fmt.Errorf("publish: %w", err)
	}

	ok, err := conf.WaitContext(ctx)
	if err != nil {
		p.reset()
		return fmt.Errorf("publish confirm: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: message %s", ErrPublishNacked, messageID)
	}

	return nil
}

func (p *RabbitPublisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reset()
}

// broker.Subscriber interface implementation
var _ Subscriber = (*RabbitSubscriber)(nil)

// RabbitSubscriber dials a fresh connection for every Subscribe call and
// redials after the connection drops.
type RabbitSubscriber struct {
	cfg RabbitMQConfig
	log logger.Logger
}

func (s *RabbitSubscriber) LoggerComponent() string {
	return "RabbitSubscriber"
}

func NewRabbitSubscriber(cfg RabbitMQConfig, log logger.Logger) (*RabbitSubscriber, error) {
	clean, err := sanitizeURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	cfg.URL = clean
	s := &RabbitSubscriber{cfg: cfg}
	s.log = log.Component(s)
	return s, nil
}

// Subscribe implementation of interface broker.Subscriber
func (s *RabbitSubscriber) Subscribe(ctx context.Context, queue string, h Handler) error {
	l := s.log.With().Str("queue", queue).Logger()

	for {
		err := s.consume(ctx, queue, h)
		if ctx.Err() != nil {
			l.Info().Msg("Subscriber stopped")
			return nil
		}
		l.Error().Err(err).Dur("retry_in", s.cfg.ReconnectDelay).Msg("Subscription lost")

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.cfg.ReconnectDelay):
		}
	}
}

func (s *RabbitSubscriber) consume(ctx context.Context, queue string, h Handler) error {
	conn, ch, err := dial(s.cfg.URL)
	if err != nil {
		return err
	}
	defer func() {
		_ = ch.Close()
		_ = conn.Close()
	}()

	if err := ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	if err := declareQueue(ch, queue); err != nil {
		return err
	}

	tag := "paysaga-" + xid.New().String()
	msgs, err := ch.Consume(queue, tag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}
	s.log.Info().Str("queue", queue).Str("consumer", tag).Msg("Consuming")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			res := h(ctx, Delivery{
				Queue:       queue,
				MessageID:   d.MessageId,
				Body:        d.Body,
				Redelivered: d.Redelivered,
			})
			if err := settle(d, res); err != nil {
				return err
			}
		}
	}
}

func settle(d amqp.Delivery, res Result) error {
	var err error
	switch res {
	case Ack:
		err = d.Ack(false)
	case NackDiscard:
		err = d.Nack(false, false)
	default:
		err = d.Nack(false, true)
	}
	if err != nil {
		return fmt.Errorf("settle %s: %w", res, err)
	}
	return nil
}
