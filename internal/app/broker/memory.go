package broker

import (
	"context"
	"sync"
)

var (
	_ Publisher  = (*Memory)(nil)
	_ Subscriber = (*Memory)(nil)
)

// Memory is an in-process broker with the same delivery semantics as RabbitMQ:
// requeued deliveries go to the tail flagged as redelivered and discarded ones
// are kept on a dead list per queue.
type Memory struct {
	mu         sync.Mutex
	queues     map[string][]Delivery
	dead       map[string][]Delivery
	wake       chan struct{}
	publishErr error
}

func NewMemory() *Memory {
	return &Memory{
		queues: make(map[string][]Delivery),
		dead:   make(map[string][]Delivery),
		wake:   make(chan struct{}),
	}
}

// FailPublish makes every following Publish return err until called with nil
func (m *Memory) FailPublish(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.publishErr = err
}

// Publish implementation of interface broker.Publisher
func (m *Memory) Publish(ctx context.Context, queue, messageID string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.publishErr != nil {
		return m.publishErr
	}

	b := make([]byte, len(body))
	copy(b, body)
	m.enqueue(Delivery{Queue: queue, MessageID: messageID, Body: b})
	return nil
}

// enqueue must be called with mu held
func (m *Memory) enqueue(d Delivery) {
	m.queues[d.Queue] = append(m.queues[d.Queue], d)
	close(m.wake)
	m.wake = make(chan struct{})
}

func (m *Memory) pop(queue string) (Delivery, bool, <-chan struct{}) {
	m.mu.Lock()
	defer m.mu.Unlock()

	q := m.queues[queue]
	if len(q) == 0 {
		return Delivery{}, false, m.wake
	}
	d := q[0]
	m.queues[queue] = q[1:]
	return d, true, nil
}

func (m *Memory) settle(d Delivery, res Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch res {
	case Ack:
	case NackDiscard:
		dq := DeadLetterQueue(d.Queue)
		m.dead[dq] = append(m.dead[dq], d)
	default:
		d.Redelivered = true
		m.enqueue(d)
	}
}

// Subscribe implementation of interface broker.Subscriber
func (m *Memory) Subscribe(ctx context.Context, queue string, h Handler) error {
	for {
		d, ok, wake := m.pop(queue)
		if !ok {
			select {
			case <-ctx.Done():
				return nil
			case <-wake:
			}
			continue
		}

		if ctx.Err() != nil {
			m.settle(d, NackRequeue)
			return nil
		}
		m.settle(d, h(ctx, d))
	}
}

// Drain hands every queued delivery to h until the queue is empty or limit
// deliveries were handled, and returns the number handled. limit <= 0 means no limit.
func (m *Memory) Drain(ctx context.Context, queue string, h Handler, limit int) int {
	n := 0
	for limit <= 0 || n < limit {
		if ctx.Err() != nil {
			return n
		}
		d, ok, _ := m.pop(queue)
		if !ok {
			return n
		}
		m.settle(d, h(ctx, d))
		n++
	}
	return n
}

// Len returns the number of deliveries waiting on queue
func (m *Memory) Len(queue string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.queues[queue])
}

// Peek returns a copy of the deliveries waiting on queue
func (m *Memory) Peek(queue string) []Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Delivery(nil), m.queues[queue]...)
}

// Dead returns the deliveries discarded from queue
func (m *Memory) Dead(queue string) []Delivery {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Delivery(nil), m.dead[DeadLetterQueue(queue)]...)
}
