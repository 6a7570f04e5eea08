//go:generate mockgen -source=./interface.go -destination=./mock/storage.go -package=storagemock
package storage

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"paysaga/internal/app/model"
)

type OrderRepository interface {
	// TxCreate a new model.Order within the tx
	TxCreate(ctx context.Context, tx *sql.Tx, m *model.Order) (*model.Order, error)
	// ReadByUser instance of model.Order owned by the user
	ReadByUser(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error)
	// AllByUserID returns all orders of user, newest first
	AllByUserID(ctx context.Context, userID string) ([]*model.Order, error)
	// TxReadForUpdate locks the order row within the tx
	TxReadForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Order, error)
	// TxUpdateStatus persists status and updated_at
	TxUpdateStatus(ctx context.Context, tx *sql.Tx, m *model.Order) error
}

type AccountRepository interface {
	// Create a new model.Account
	Create(ctx context.Context, m *model.Account) (*model.Account, error)
	// ReadByUserID instance of model.Account
	ReadByUserID(ctx context.Context, userID string) (*model.Account, error)
	// TxReadByUserID instance of model.Account within the tx
	TxReadByUserID(ctx context.Context, tx *sql.Tx, userID string) (*model.Account, error)
	// TxUpdate persists balance if the stored version still equals m.Version
	TxUpdate(ctx context.Context, tx *sql.Tx, m *model.Account) error
}

type TransactionRepository interface {
	// TxCreate a new model.Transaction
	TxCreate(ctx context.Context, tx *sql.Tx, m *model.Transaction) (*model.Transaction, error)
	// TxReadByOrderID returns the withdrawal recorded for the order
	TxReadByOrderID(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) (*model.Transaction, error)
	// AllByUserID returns the ledger of user, newest first
	AllByUserID(ctx context.Context, userID string) ([]*model.Transaction, error)
}

type OutboxRepository interface {
	// TxCreate a new model.OutboxMessage
	TxCreate(ctx context.Context, tx *sql.Tx, m *model.OutboxMessage) error
	// TxFetchPending locks up to limit unprocessed messages, oldest first
	TxFetchPending(ctx context.Context, tx *sql.Tx, limit int) ([]*model.OutboxMessage, error)
	// TxMarkProcessed flags messages as published
	TxMarkProcessed(ctx context.Context, tx *sql.Tx, ids []uuid.UUID, at time.Time) error
	// DeleteProcessedBefore removes published messages older than t
	DeleteProcessedBefore(ctx context.Context, t time.Time) (int64, error)
}

type InboxRepository interface {
	// TxClaim records m as processed and returns false if it already was.
	// A concurrent claim of the same id waits for the first tx to finish.
	TxClaim(ctx context.Context, tx *sql.Tx, m *model.InboxMessage) (bool, error)
}
