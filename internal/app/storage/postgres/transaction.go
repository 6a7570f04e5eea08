package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"paysaga/internal/app/apperr"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
)

// storage.TransactionRepository interface implementation
var _ storage.TransactionRepository = (*TransactionRepository)(nil)

const transactionColumns = `id, created_at, type_id, order_id, user_id, amount`

type TransactionRepository struct {
	db *sql.DB
}

func (r *TransactionRepository) LoggerComponent() string {
	return "TransactionRepository"
}

func NewTransactionRepository(db *sql.DB) (*TransactionRepository, error) {
	s := &TransactionRepository{
		db: db,
	}
	return s, nil
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	m := &model.Transaction{}
	if err := row.Scan(&m.ID, &m.CreatedAt, &m.TypeID, &m.OrderID, &m.UserID, &m.Amount); err != nil {
		return nil, err
	}
	return m, nil
}

// TxCreate implementation of interface storage.TransactionRepository.
// A second withdrawal for the same order violates the partial unique index.
func (r *TransactionRepository) TxCreate(ctx context.Context, tx *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
	l := logger.Ctx(ctx).With().
		Str("method", "TxCreate").
		Stringer("type", m.TypeID).
		Logger()

	const SQL = `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
`
	_, err := tx.ExecContext(ctx, SQL, m.ID, m.CreatedAt, m.TypeID, m.OrderID, m.UserID, m.Amount)
	if err != nil {
		if isUniqueViolation(err) {
			l.Debug().Err(err).Msg("Duplicate transaction")
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("insert: %w", err)
	}

	return m, nil
}

// TxReadByOrderID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) TxReadByOrderID(ctx context.Context, tx *sql.Tx, orderID uuid.UUID) (*model.Transaction, error) {
	const SQL = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE order_id=$1 AND type_id=$2
`
	m, err := scanTransaction(tx.QueryRowContext(ctx, SQL, orderID, model.TransactionTypeWithdrawal))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// AllByUserID implementation of interface storage.TransactionRepository
func (r *TransactionRepository) AllByUserID(ctx context.Context, userID string) ([]*model.Transaction, error) {
	l := logger.Ctx(ctx).With().Str("method", "AllByUserID").Logger()

	const SQL = `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id=$1
		ORDER BY created_at DESC
`
	rows, err := r.db.QueryContext(ctx, SQL, userID)
	if err != nil {
		return nil, fmt.Errorf("select: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	res := make([]*model.Transaction, 0)
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			l.Debug().Err(err).Send()
			return nil, fmt.Errorf("scan: %w", err)
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}

	return res, nil
}
