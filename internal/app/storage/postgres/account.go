package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"paysaga/internal/app/apperr"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
)

// storage.AccountRepository interface implementation
var _ storage.AccountRepository = (*AccountRepository)(nil)

const accountColumns = `id, user_id, balance, version, created_at, updated_at`

type AccountRepository struct {
	db *sql.DB
}

func (r *AccountRepository) LoggerComponent() string {
	return "AccountRepository"
}

func NewAccountRepository(db *sql.DB) (*AccountRepository, error) {
	return &AccountRepository{db: db}, nil
}

func scanAccount(row rowScanner) (*model.Account, error) {
	m := &model.Account{}
	if err := row.Scan(&m.ID, &m.UserID, &m.Balance, &m.Version, &m.CreatedAt, &m.UpdatedAt); err != nil {
		return nil, err
	}
	return m, nil
}

// Create implementation of interface storage.AccountRepository
func (r *AccountRepository) Create(ctx context.Context, m *model.Account) (*model.Account, error) {
	const SQL = `
		INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)
`

	_, err := r.db.ExecContext(ctx, SQL, m.ID, m.UserID, m.Balance, m.Version, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.ErrConflict
		}
		return nil, fmt.Errorf("insert: %w", err)
	}

	return m, nil
}

// ReadByUserID implementation of interface storage.AccountRepository
func (r *AccountRepository) ReadByUserID(ctx context.Context, userID string) (*model.Account, error) {
	const SQL = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id=$1
`
	m, err := scanAccount(r.db.QueryRowContext(ctx, SQL, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// TxReadByUserID implementation of interface storage.AccountRepository
func (r *AccountRepository) TxReadByUserID(ctx context.Context, tx *sql.Tx, userID string) (*model.Account, error) {
	const SQL = `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id=$1
`
	m, err := scanAccount(tx.QueryRowContext(ctx, SQL, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("select: %w", err)
	}

	return m, nil
}

// TxUpdate implementation of interface storage.AccountRepository.
// On success m.Version is advanced to the stored value.
func (r *AccountRepository) TxUpdate(ctx context.Context, tx *sql.Tx, m *model.Account) error {
	const SQL = `
		UPDATE accounts
		SET balance=$1, version=version+1, updated_at=$2
		WHERE id=$3 AND version=$4
`
	res, err := tx.ExecContext(ctx, SQL, m.Balance, m.UpdatedAt, m.ID, m.Version)
	if err != nil {
		return fmt.Errorf("update: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return apperr.ErrConcurrencyConflict
	}
	m.Version++

	return nil
}
