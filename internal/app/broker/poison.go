package broker

import (
	"context"
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-redis/redis/v8"
	"paysaga/internal/app/logger"
)

// PoisonTracker counts how often an undecodable body has been seen
type PoisonTracker interface {
	Strike(ctx context.Context, queue string, body []byte) (int64, error)
}

var _ PoisonTracker = (*RedisPoisonTracker)(nil)

type RedisPoisonTracker struct {
	client redis.UniversalClient
	ttl    time.Duration
	prefix string
}

func NewRedisPoisonTracker(client redis.UniversalClient, ttl time.Duration) *RedisPoisonTracker {
	return &RedisPoisonTracker{
		client: client,
		ttl:    ttl,
		prefix: "paysaga:poison",
	}
}

func (t *RedisPoisonTracker) key(queue string, body []byte) string {
	return fmt.Sprintf("%s:%s:%016x", t.prefix, queue, xxhash.Sum64(body))
}

// Strike increments the counter of body and refreshes its expiry
func (t *RedisPoisonTracker) Strike(ctx context.Context, queue string, body []byte) (int64, error) {
	key := t.key(queue, body)

	pipe := t.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, t.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("poison strike: %w", err)
	}

	return incr.Val(), nil
}

// PoisonPolicy decides the fate of a delivery that could not be decoded.
// Without a tracker every such delivery is requeued.
type PoisonPolicy struct {
	Tracker   PoisonTracker
	Threshold int64
}

func (p PoisonPolicy) Decide(ctx context.Context, d Delivery, cause error) Result {
	l := logger.Ctx(ctx).With().
		Str("queue", d.Queue).
		Str("message_id", d.MessageID).
		Logger()

	if p.Tracker == nil || p.Threshold <= 0 {
		l.Warn().Err(cause).Msg("Undecodable message requeued")
		return NackRequeue
	}

	n, err := p.Tracker.Strike(ctx, d.Queue, d.Body)
	if err != nil {
		l.Error().Err(err).Msg("Poison tracker unavailable")
		return NackRequeue
	}
	if n >= p.Threshold {
		l.Error().Err(cause).Int64("strikes", n).Msg("Poison message dead-lettered")
		return NackDiscard
	}

	l.Warn().Err(cause).Int64("strikes", n).Msg("Undecodable message requeued")
	return NackRequeue
}
