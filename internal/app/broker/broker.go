// Package broker defines the at-least-once messaging capability used by the
// outbox publishers and the inbound consumers, with RabbitMQ and in-memory
// implementations.
package broker

import (
	"context"
)

// Result tells the broker what to do with a delivery once the handler returns
type Result int

const (
	// Ack removes the delivery from the queue
	Ack Result = iota
	// NackRequeue returns the delivery to the queue for another attempt
	NackRequeue
	// NackDiscard parks the delivery on the dead-letter queue
	NackDiscard
)

func (r Result) String() string {
	switch r {
	case Ack:
		return "ack"
	case NackRequeue:
		return "nack_requeue"
	case NackDiscard:
		return "nack_discard"
	}
	return "unknown"
}

type Delivery struct {
	Queue       string
	MessageID   string
	Body        []byte
	Redelivered bool
}

// Handler processes one delivery at a time
type Handler func(ctx context.Context, d Delivery) Result

type Publisher interface {
	// Publish durably enqueues body and returns once the broker has confirmed it
	Publish(ctx context.Context, queue, messageID string, body []byte) error
}

type Subscriber interface {
	// Subscribe feeds deliveries of queue to h until ctx is cancelled
	Subscribe(ctx context.Context, queue string, h Handler) error
}

// DeadLetterQueue returns the queue discarded deliveries of queue are routed to
func DeadLetterQueue(queue string) string {
	return queue + ".dead"
}
