package outbox

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/xid"
	"github.com/sony/gobreaker"
	"paysaga/internal/app/broker"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/metrics"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
	"paysaga/pkg/message"
)

type Config struct {
	Interval        time.Duration
	ErrorBackoff    time.Duration
	BatchSize       int
	Retention       time.Duration
	CleanupInterval time.Duration
}

// Publisher relays committed outbox rows to the broker. A row is flagged
// processed only after the broker confirmed it, so a crash in between leads
// to the same message being published again.
type Publisher struct {
	cfg    Config
	db     *sql.DB
	repo   storage.OutboxRepository
	broker broker.Publisher
	cb     *gobreaker.CircuitBreaker
	log    logger.Logger
	now    func() time.Time

	lastCleanup time.Time
}

func (p *Publisher) LoggerComponent() string {
	return "Outbox.Publisher"
}

func New(cfg Config, db *sql.DB, repo storage.OutboxRepository, pub broker.Publisher, log logger.Logger) *Publisher {
	p := &Publisher{
		cfg:    cfg,
		db:     db,
		repo:   repo,
		broker: pub,
		now:    time.Now,
	}
	p.log = log.Component(p)
	p.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "outbox-publish",
		Timeout: 2 * cfg.ErrorBackoff,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			p.log.Warn().Str("breaker", name).Stringer("from", from).Stringer("to", to).Msg("Circuit breaker state changed")
		},
	})
	return p
}

// RunOnce publishes at most one batch and returns how many rows were fetched.
// Rows published before a failure are still flagged processed.
func (p *Publisher) RunOnce(ctx context.Context) (int, error) {
	l := p.log.With().Str("cycle", xid.New().String()).Logger()
	ctx = l.WithContext(ctx)

	tx, err := p.db.BeginTx(ctx, &sql.TxOptions{
		Isolation: sql.LevelDefault,
	})
	if err != nil {
		metrics.IncOutboxError("begin")
		return 0, fmt.Errorf("tx begin: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	pending, err := p.repo.TxFetchPending(ctx, tx, p.cfg.BatchSize)
	if err != nil {
		metrics.IncOutboxError("fetch")
		return 0, fmt.Errorf("fetch pending: %w", err)
	}
	metrics.ObserveOutboxBatch(len(pending))
	if len(pending) == 0 {
		return 0, tx.Commit()
	}
	l.Debug().Int("batch", len(pending)).Msg("Publishing batch")

	published := make([]*model.OutboxMessage, 0, len(pending))
	var publishErr error
	for _, m := range pending {
		if err := p.publish(ctx, m); err != nil {
			publishErr = fmt.Errorf("publish %s: %w", m.ID, err)
			metrics.IncOutboxError("publish")
			break
		}
		published = append(published, m)
	}

	if len(published) > 0 {
		ids := make([]uuid.UUID, len(published))
		for i, m := range published {
			ids[i] = m.ID
		}
		if err := p.repo.TxMarkProcessed(ctx, tx, ids, p.now().UTC()); err != nil {
			metrics.IncOutboxError("mark")
			return len(pending), fmt.Errorf("mark processed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		metrics.IncOutboxError("commit")
		return len(pending), fmt.Errorf("tx commit: %w", err)
	}

	now := p.now()
	for _, m := range published {
		metrics.IncOutboxPublished(m.Type)
		metrics.ObserveOutboxLag(now.Sub(m.CreatedAt))
	}
	l.Debug().Int("published", len(published)).Msg("Batch committed")

	return len(pending), publishErr
}

func (p *Publisher) publish(ctx context.Context, m *model.OutboxMessage) error {
	queue, err := message.QueueFor(m.Type)
	if err != nil {
		return err
	}
	_, err = p.cb.Execute(func() (interface{}, error) {
		return nil, p.broker.Publish(ctx, queue, m.ID.String(), m.Payload)
	})
	return err
}

// Run polls the outbox until ctx is cancelled. A full batch is followed by
// another cycle right away.
func (p *Publisher) Run(ctx context.Context) error {
	p.log.Info().
		Dur("interval", p.cfg.Interval).
		Int("batch_size", p.cfg.BatchSize).
		Msg("Outbox publisher started")

	for {
		n, err := p.RunOnce(ctx)
		if ctx.Err() != nil {
			p.log.Info().Msg("Outbox publisher stopped")
			return nil
		}

		delay := p.cfg.Interval
		switch {
		case err != nil:
			p.log.Error().Err(err).Dur("retry_in", p.cfg.ErrorBackoff).Msg("Outbox cycle failed")
			delay = p.cfg.ErrorBackoff
		case n >= p.cfg.BatchSize:
			delay = 0
		}

		p.cleanup(ctx)

		if delay > 0 {
			select {
			case <-ctx.Done():
				p.log.Info().Msg("Outbox publisher stopped")
				return nil
			case <-time.After(delay):
			}
		}
	}
}

// cleanup removes processed rows older than the retention period, at most
// once per cleanup interval. Retention <= 0 keeps rows forever.
func (p *Publisher) cleanup(ctx context.Context) {
	if p.cfg.Retention <= 0 {
		return
	}
	now := p.now()
	if !p.lastCleanup.IsZero() && now.Sub(p.lastCleanup) < p.cfg.CleanupInterval {
		return
	}
	p.lastCleanup = now

	n, err := p.repo.DeleteProcessedBefore(ctx, now.Add(-p.cfg.Retention).UTC())
	if err != nil {
		metrics.IncOutboxError("cleanup")
		p.log.Error().Err(err).Msg("Outbox cleanup failed")
		return
	}
	metrics.AddOutboxCleaned(n)
	if n > 0 {
		p.log.Info().Int64("deleted", n).Msg("Outbox cleaned up")
	}
}
