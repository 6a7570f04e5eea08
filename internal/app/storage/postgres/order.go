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

// storage.OrderRepository interface implementation
var _ storage.OrderRepository = (*OrderRepository)(nil)

const orderColumns = `id, user_id, amount, description, status, created_at, updated_at`

type OrderRepository struct {
	db *sql.DB
}

func (r *OrderRepository) LoggerComponent() string {
	return "OrderRepository"
}

func NewOrderRepository(db *sql.DB) (*OrderRepository, error) {
	s := &OrderRepository{
		db: db,
	}
	return s, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	m := &model.Order{}
	var status string
	if err := row.Scan(&m.ID, &m.UserID, &m.Amount, &m.Description, &status, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	m.Status = model.OrderStatus(status)
	return m, nil
}

// TxCreate implementation of interface storage.OrderRepository
func (r *OrderRepository) TxCreate(ctx context.Context, tx *sql.Tx, m *model.Order) (*model.Order, error) {
	const SQL = `
		INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
`

	_, err := tx.ExecContext(ctx, SQL, m.ID, m.UserID, m.Amount, m.Description, string(m.Status), m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isIntegrityViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("insert: %w", err)
	}

	return m, nil
}

// ReadByUser implementation of interface storage.OrderRepository
func (r *OrderRepository) ReadByUser(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error) {
	const SQL = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id=$1 AND user_id=$2
`
	m, err := scanOrder(r.db.QueryRowContext(ctx, SQL, id, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// AllByUserID implementation of interface storage.OrderRepository
func (r *OrderRepository) AllByUserID(ctx context.Context, userID string) ([]*model.Order, error) {
	l := logger.Ctx(ctx).With().Str("method", "AllByUserID").Logger()

	const SQL = `
		SELECT ` + orderColumns + `
		FROM orders
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

	res := make([]*model.Order, 0)

	for rows.Next() {
		m, err := scanOrder(rows)
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

// TxReadForUpdate implementation of interface storage.OrderRepository
func (r *OrderRepository) TxReadForUpdate(ctx context.Context, tx *sql.Tx, id uuid.UUID) (*model.Order, error) {
	const SQL = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id=$1
		FOR UPDATE
`
	m, err := scanOrder(tx.QueryRowContext(ctx, SQL, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// TxUpdateStatus implementation of interface storage.OrderRepository
func (r *OrderRepository) TxUpdateStatus(ctx context.Context, tx *sql.Tx, m *model.Order) error {
	const SQL = `
		UPDATE orders
		SET status=$1, updated_at=$2
		WHERE id=$3
`
	res, err := tx.ExecContext(ctx, SQL, string(m.Status), m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrNotFound
	}

	return nil
}
