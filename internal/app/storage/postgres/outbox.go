package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
)

// storage.OutboxRepository interface implementation
var _ storage.OutboxRepository = (*OutboxRepository)(nil)

type OutboxRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func (r *OutboxRepository) LoggerComponent() string {
	return "OutboxRepository"
}

func NewOutboxRepository(db *sql.DB) (*OutboxRepository, error) {
	return &OutboxRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

// TxCreate implementation of interface storage.OutboxRepository
func (r *OutboxRepository) TxCreate(ctx context.Context, tx *sql.Tx, m *model.OutboxMessage) error {
	if m == nil {
		return fmt.Errorf("outbox message is nil")
	}
	if m.Type == "" {
		return fmt.Errorf("outbox message type is empty")
	}
	if len(m.Payload) == 0 {
		return fmt.Errorf("outbox payload is empty")
	}

	q := r.sb.
		Insert("outbox_messages").
		Columns("id", "type", "payload", "processed", "created_at").
		Values(m.ID, m.Type, string(m.Payload), false, m.CreatedAt)

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build outbox insert: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("insert outbox message: %w", err)
	}

	m.Processed = false
	m.ProcessedAt = sql.NullTime{}
	return nil
}

// TxFetchPending implementation of interface storage.OutboxRepository.
// Locked rows are skipped so concurrent publishers never share a message.
func (r *OutboxRepository) TxFetchPending(ctx context.Context, tx *sql.Tx, limit int) ([]*model.OutboxMessage, error) {
	q := r.sb.
		Select("id", "type", "payload", "processed", "created_at", "processed_at").
		From("outbox_messages").
		Where(sq.Eq{"processed": false}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build outbox select pending: %w", err)
	}

	rows, err := tx.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query outbox pending: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.OutboxMessage, 0, limit)
	for rows.Next() {
		m := &model.OutboxMessage{}
		if err := rows.Scan(&m.ID, &m.Type, &m.Payload, &m.Processed, &m.CreatedAt, &m.ProcessedAt); err != nil {
			return nil, fmt.Errorf("scan outbox row: %w", err)
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outbox rows: %w", err)
	}

	return res, nil
}

// TxMarkProcessed implementation of interface storage.OutboxRepository
func (r *OutboxRepository) TxMarkProcessed(ctx context.Context, tx *sql.Tx, ids []uuid.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	q := r.sb.
		Update("outbox_messages").
		Set("processed", true).
		Set("processed_at", at).
		Where(sq.Eq{"id": ids})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build outbox mark processed: %w", err)
	}
	if _, err := tx.ExecContext(ctx, sqlStr, args...); err != nil {
		return fmt.Errorf("mark outbox processed: %w", err)
	}

	return nil
}

// DeleteProcessedBefore implementation of interface storage.OutboxRepository
func (r *OutboxRepository) DeleteProcessedBefore(ctx context.Context, t time.Time) (int64, error) {
	q := r.sb.
		Delete("outbox_messages").
		Where(sq.Eq{"processed": true}).
		Where(sq.Lt{"processed_at": t})

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build outbox cleanup: %w", err)
	}

	res, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, fmt.Errorf("cleanup outbox: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}

	return n, nil
}
