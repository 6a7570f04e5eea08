package postgres

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
)

// storage.InboxRepository interface implementation
var _ storage.InboxRepository = (*InboxRepository)(nil)

type InboxRepository struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

func (r *InboxRepository) LoggerComponent() string {
	return "InboxRepository"
}

func NewInboxRepository(db *sql.DB) (*InboxRepository, error) {
	return &InboxRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}, nil
}

// TxClaim implementation of interface storage.InboxRepository.
// The insert only touches a row that is absent or still unprocessed, so zero
// affected rows means the message was handled before.
func (r *InboxRepository) TxClaim(ctx context.Context, tx *sql.Tx, m *model.InboxMessage) (bool, error) {
	q := r.sb.
		Insert("inbox_messages").
		Columns("id", "type", "payload", "processed", "created_at", "processed_at").
		Values(m.ID, m.Type, string(m.Payload), true, m.CreatedAt, m.ProcessedAt).
		Suffix("ON CONFLICT (id) DO UPDATE SET processed = TRUE, processed_at = EXCLUDED.processed_at " +
			"WHERE inbox_messages.processed = FALSE")

	sqlStr, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build inbox claim: %w", err)
	}
	res, err := tx.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return false, fmt.Errorf("claim inbox message: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return false, nil
	}

	m.Processed = true
	return true, nil
}
