package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paysaga/internal/app/apperr"
	"paysaga/internal/app/broker"
	"paysaga/internal/app/model"
	storagemock "paysaga/internal/app/storage/mock"
	"paysaga/pkg/message"
)

type fixture struct {
	db           *sql.DB
	mock         sqlmock.Sqlmock
	accounts     *storagemock.MockAccountRepository
	transactions *storagemock.MockTransactionRepository
	outbox       *storagemock.MockOutboxRepository
	inbox        *storagemock.MockInboxRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return &fixture{
		db:           db,
		mock:         mock,
		accounts:     storagemock.NewMockAccountRepository(ctrl),
		transactions: storagemock.NewMockTransactionRepository(ctrl),
		outbox:       storagemock.NewMockOutboxRepository(ctrl),
		inbox:        storagemock.NewMockInboxRepository(ctrl),
	}
}

func (f *fixture) processor(policy broker.PoisonPolicy) *Processor {
	p := NewProcessor(f.db, f.accounts, f.transactions, f.outbox, f.inbox, policy)
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }
	return p
}

// expectResult captures the PaymentResult written to the outbox
func (f *fixture) expectResult(t *testing.T) *message.PaymentResult {
	res := &message.PaymentResult{}
	f.outbox.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.OutboxMessage) error {
			assert.Equal(t, message.TypePaymentResult, m.Type)
			require.NoError(t, json.Unmarshal(m.Payload, res))
			assert.Equal(t, m.ID, res.MessageID)
			return nil
		})
	return res
}

// expectClaim answers the inbox claim of id with claimed
func (f *fixture) expectClaim(id uuid.UUID, claimed bool) {
	f.inbox.EXPECT().TxClaim(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.InboxMessage) (bool, error) {
			if m.ID != id || !m.ProcessedAt.Valid {
				return false, errors.New("unexpected inbox record")
			}
			return claimed, nil
		})
}

func newRequest(amount string) (*message.PaymentRequest, broker.Delivery) {
	req := &message.PaymentRequest{
		MessageID: uuid.New(),
		OrderID:   uuid.New(),
		UserID:    "user-1",
		Amount:    decimal.RequireFromString(amount),
		CreatedAt: time.Now().UTC(),
	}
	b, _ := json.Marshal(req)
	return req, broker.Delivery{Queue: message.QueuePaymentRequests, MessageID: req.MessageID.String(), Body: b}
}

func account(balance string) *model.Account {
	return &model.Account{ID: uuid.New(), UserID: "user-1", Balance: decimal.RequireFromString(balance), Version: 4}
}

func TestProcessor_Success(t *testing.T) {
	f := newFixture(t)
	req, d := newRequest("40")

	f.mock.ExpectBegin()
	f.expectClaim(req.MessageID, true)
	f.transactions.EXPECT().TxReadByOrderID(gomock.Any(), gomock.Any(), req.OrderID).Return(nil, apperr.ErrNotFound)
	f.accounts.EXPECT().TxReadByUserID(gomock.Any(), gomock.Any(), "user-1").Return(account("100"), nil)
	f.accounts.EXPECT().TxUpdate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Account) error {
			assert.True(t, decimal.NewFromInt(60).Equal(m.Balance), m.Balance.String())
			assert.Equal(t, int64(4), m.Version)
			return nil
		})
	f.transactions.EXPECT().TxCreate(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Transaction) (*model.Transaction, error) {
			assert.Equal(t, model.TransactionTypeWithdrawal, m.TypeID)
			assert.Equal(t, uuid.NullUUID{UUID: req.OrderID, Valid: true}, m.OrderID)
			assert.True(t, decimal.NewFromInt(40).Equal(m.Amount))
			return m, nil
		})
	res := f.expectResult(t)
	f.mock.ExpectCommit()

	assert.Equal(t, broker.Ack, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
	assert.True(t, res.Success)
	assert.Equal(t, "Payment successful", res.Reason)
	assert.Equal(t, req.OrderID, res.OrderID)
}

func TestProcessor_InsufficientFunds(t *testing.T) {
	f := newFixture(t)
	req, d := newRequest("80")

	f.mock.ExpectBegin()
	f.expectClaim(req.MessageID, true)
	f.transactions.EXPECT().TxReadByOrderID(gomock.Any(), gomock.Any(), req.OrderID).Return(nil, apperr.ErrNotFound)
	f.accounts.EXPECT().TxReadByUserID(gomock.Any(), gomock.Any(), "user-1").Return(account("60"), nil)
	res := f.expectResult(t)
	f.mock.ExpectCommit()

	assert.Equal(t, broker.Ack, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
	assert.False(t, res.Success)
	assert.Equal(t, "Insufficient funds", res.Reason)
}

func TestProcessor_AccountNotFound(t *testing.T) {
	f := newFixture(t)
	req, d := newRequest("10")

	f.mock.ExpectBegin()
	f.expectClaim(req.MessageID, true)
	f.transactions.EXPECT().TxReadByOrderID(gomock.Any(), gomock.Any(), req.OrderID).Return(nil, apperr.ErrNotFound)
	f.accounts.EXPECT().TxReadByUserID(gomock.Any(), gomock.Any(), "user-1").Return(nil, apperr.ErrNotFound)
	res := f.expectResult(t)
	f.mock.ExpectCommit()

	assert.Equal(t, broker.Ack, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
	assert.False(t, res.Success)
	assert.Equal(t, "Account not found", res.Reason)
}

func TestProcessor_DuplicateMessageID(t *testing.T) {
	f := newFixture(t)
	req, d := newRequest("10")

	f.mock.ExpectBegin()
	f.expectClaim(req.MessageID, false)
	f.mock.ExpectCommit()

	assert.Equal(t, broker.Ack, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
}

func TestProcessor_SameOrderUnderNewMessageID(t *testing.T) {
	f := newFixture(t)
	req, d := newRequest("10")

	f.mock.ExpectBegin()
	f.expectClaim(req.MessageID, true)
	f.transactions.EXPECT().TxReadByOrderID(gomock.Any(), gomock.Any(), req.OrderID).
		Return(&model.Transaction{ID: uuid.New()}, nil)
	res := f.expectResult(t)
	f.mock.ExpectCommit()

	assert.Equal(t, broker.Ack, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
	assert.True(t, res.Success)
	assert.Equal(t, "already processed", res.Reason)
}

func TestProcessor_VersionConflictRequeues(t *testing.T) {
	f := newFixture(t)
	req, d := newRequest("10")

	f.mock.ExpectBegin()
	f.expectClaim(req.MessageID, true)
	f.transactions.EXPECT().TxReadByOrderID(gomock.Any(), gomock.Any(), req.OrderID).Return(nil, apperr.ErrNotFound)
	f.accounts.EXPECT().TxReadByUserID(gomock.Any(), gomock.Any(), "user-1").Return(account("100"), nil)
	f.accounts.EXPECT().TxUpdate(gomock.Any(), gomock.Any(), gomock.Any()).Return(apperr.ErrConcurrencyConflict)
	f.mock.ExpectRollback()

	assert.Equal(t, broker.NackRequeue, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
}

func TestProcessor_StorageFailureRequeues(t *testing.T) {
	f := newFixture(t)
	_, d := newRequest("10")

	f.mock.ExpectBegin()
	f.inbox.EXPECT().TxClaim(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, errors.New("connection refused"))
	f.mock.ExpectRollback()

	assert.Equal(t, broker.NackRequeue, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
}

type alwaysPoison struct{}

func (alwaysPoison) Strike(context.Context, string, []byte) (int64, error) { return 99, nil }

func TestProcessor_Undecodable(t *testing.T) {
	f := newFixture(t)
	d := broker.Delivery{Queue: message.QueuePaymentRequests, MessageID: "x", Body: []byte("{oops")}

	assert.Equal(t, broker.NackRequeue, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
	assert.Equal(t, broker.NackDiscard, f.processor(broker.PoisonPolicy{Tracker: alwaysPoison{}, Threshold: 5}).Handle(context.Background(), d))
}

func TestProcessor_SubCentAmountIsPoison(t *testing.T) {
	f := newFixture(t)
	_, d := newRequest("0.005")

	// rejected before any storage access
	assert.Equal(t, broker.NackRequeue, f.processor(broker.PoisonPolicy{}).Handle(context.Background(), d))
	assert.Equal(t, broker.NackDiscard, f.processor(broker.PoisonPolicy{Tracker: alwaysPoison{}, Threshold: 5}).Handle(context.Background(), d))
}
