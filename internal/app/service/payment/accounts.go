package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"paysaga/internal/app/apperr"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/metrics"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
)

// DepositAttempts bounds the retries of a deposit that lost a version race
const DepositAttempts = 3

type Accounts struct {
	db           *sql.DB
	accounts     storage.AccountRepository
	transactions storage.TransactionRepository
	now          func() time.Time
}

func (s *Accounts) LoggerComponent() string {
	return "Payment.Accounts"
}

func NewAccounts(db *sql.DB, accounts storage.AccountRepository, transactions storage.TransactionRepository) *Accounts {
	return &Accounts{
		db:           db,
		accounts:     accounts,
		transactions: transactions,
		now:          time.Now,
	}
}

// Create opens a zero balance account, one per user
func (s *Accounts) Create(ctx context.Context, userID string) (*model.Account, error) {
	if userID == "" {
		return nil, apperr.ErrMissingUserID
	}

	now := s.now().UTC()
	acc, err := s.accounts.Create(ctx, &model.Account{
		ID:        uuid.New(),
		UserID:    userID,
		Balance:   decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if errors.Is(err, apperr.ErrConflict) {
			return nil, fmt.Errorf("%w: account already exists", apperr.ErrConflict)
		}
		return nil, err
	}

	l := logger.Get(ctx, s)
	l.Info().Str("user_id", userID).Str("account_id", acc.ID.String()).Msg("Account created")
	return acc, nil
}

// Deposit credits the account and records a DEPOSIT transaction
func (s *Accounts) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*model.Account, *model.Transaction, error) {
	l := logger.Get(ctx, s)

	if userID == "" {
		return nil, nil, apperr.ErrMissingUserID
	}
	if !model.ValidAmount(amount) {
		return nil, nil, fmt.Errorf("%w: amount must be positive with at most %d decimals", apperr.ErrInvalidInput, model.MoneyScale)
	}

	var err error
	for attempt := 1; attempt <= DepositAttempts; attempt++ {
		var (
			acc *model.Account
			t   *model.Transaction
		)
		acc, t, err = s.deposit(ctx, userID, amount)
		if err == nil {
			l.Info().
				Str("user_id", userID).
				Str("amount", amount.StringFixed(model.MoneyScale)).
				Str("balance", acc.Balance.StringFixed(model.MoneyScale)).
				Msg("Deposit applied")
			return acc, t, nil
		}
		if !errors.Is(err, apperr.ErrConcurrencyConflict) {
			return nil, nil, err
		}
		metrics.IncConcurrencyConflict("deposit")
		l.Debug().Int("attempt", attempt).Msg("Deposit lost version race")
	}

	return nil, nil, fmt.Errorf("%w: deposit retries exhausted", err)
}

func (s *Accounts) deposit(ctx context.Context, userID string, amount decimal.Decimal) (*model.Account, *model.Transaction, error) {
	var (
		acc *model.Account
		t   *model.Transaction
	)

	err := storage.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		var err error
		acc, err = s.accounts.TxReadByUserID(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := s.now().UTC()
		acc.Balance = acc.Balance.Add(amount)
		acc.UpdatedAt = now
		if err := s.accounts.TxUpdate(ctx, tx, acc); err != nil {
			return err
		}

		t, err = s.transactions.TxCreate(ctx, tx, &model.Transaction{
			ID:        uuid.New(),
			CreatedAt: now,
			TypeID:    model.TransactionTypeDeposit,
			UserID:    userID,
			Amount:    amount,
		})
		return err
	})
	if err != nil {
		return nil, nil, err
	}

	return acc, t, nil
}

// Balance returns the account of the user
func (s *Accounts) Balance(ctx context.Context, userID string) (*model.Account, error) {
	if userID == "" {
		return nil, apperr.ErrMissingUserID
	}
	return s.accounts.ReadByUserID(ctx, userID)
}

// Transactions returns the ledger of the user, newest first
func (s *Accounts) Transactions(ctx context.Context, userID string) ([]*model.Transaction, error) {
	if userID == "" {
		return nil, apperr.ErrMissingUserID
	}
	if _, err := s.accounts.ReadByUserID(ctx, userID); err != nil {
		return nil, err
	}
	return s.transactions.AllByUserID(ctx, userID)
}
