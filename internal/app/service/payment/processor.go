package payment

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"paysaga/internal/app/apperr"
	"paysaga/internal/app/broker"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/metrics"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
	"paysaga/pkg/message"
)

// Outcome of processing one PaymentRequest.
// Result is nil when the request had already been handled.
type Outcome struct {
	Result *message.PaymentResult
}

// Duplicate reports whether the request was a redelivery of a handled message
func (o *Outcome) Duplicate() bool {
	return o.Result == nil
}

// Processor consumes payment requests. Every effect of a request is written
// in a single transaction together with the inbox record and the outbound
// PaymentResult, so a redelivered request can never debit twice.
type Processor struct {
	db           *sql.DB
	accounts     storage.AccountRepository
	transactions storage.TransactionRepository
	outbox       storage.OutboxRepository
	inbox        storage.InboxRepository
	poison       broker.PoisonPolicy
	now          func() time.Time
}

func (p *Processor) LoggerComponent() string {
	return "Payment.Processor"
}

func NewProcessor(
	db *sql.DB,
	accounts storage.AccountRepository,
	transactions storage.TransactionRepository,
	outbox storage.OutboxRepository,
	inbox storage.InboxRepository,
	poison broker.PoisonPolicy,
) *Processor {
	return &Processor{
		db:           db,
		accounts:     accounts,
		transactions: transactions,
		outbox:       outbox,
		inbox:        inbox,
		poison:       poison,
		now:          time.Now,
	}
}

// Handle is the broker.Handler of the payment requests queue
func (p *Processor) Handle(ctx context.Context, d broker.Delivery) broker.Result {
	l := logger.Get(ctx, p).With().
		Str("message_id", d.MessageID).
		Bool("redelivered", d.Redelivered).
		Logger()
	ctx = l.WithContext(ctx)

	res := p.handle(ctx, d)
	metrics.IncDelivery(d.Queue, res.String())
	return res
}

func (p *Processor) handle(ctx context.Context, d broker.Delivery) broker.Result {
	l := logger.Ctx(ctx)

	req, err := message.DecodePaymentRequest(d.Body)
	if err != nil {
		return p.poison.Decide(ctx, d, err)
	}

	out, err := p.Process(ctx, req, d.Body)
	if err != nil {
		if apperr.IsRetryable(err) {
			metrics.IncConcurrencyConflict("payment")
			l.Info().Err(err).Str("order_id", req.OrderID.String()).Msg("Lost race, requeueing")
			return broker.NackRequeue
		}
		l.Error().Err(err).Str("order_id", req.OrderID.String()).Msg("Payment processing failed")
		return broker.NackRequeue
	}

	if out.Duplicate() {
		l.Info().Str("order_id", req.OrderID.String()).Msg("Duplicate message skipped")
		return broker.Ack
	}

	metrics.IncPaymentResult(out.Result.Success, out.Result.Reason)
	l.Info().
		Str("order_id", req.OrderID.String()).
		Bool("success", out.Result.Success).
		Str("reason", out.Result.Reason).
		Msg("Payment processed")
	return broker.Ack
}

// Process applies req exactly once. raw is stored in the inbox as received.
func (p *Processor) Process(ctx context.Context, req *message.PaymentRequest, raw []byte) (*Outcome, error) {
	out := &Outcome{}

	err := storage.RunInTx(ctx, p.db, func(tx *sql.Tx) error {
		now := p.now().UTC()
		claimed, err := p.inbox.TxClaim(ctx, tx, &model.InboxMessage{
			ID:          req.MessageID,
			Type:        message.TypePaymentRequest,
			Payload:     raw,
			CreatedAt:   now,
			ProcessedAt: sql.NullTime{Time: now, Valid: true},
		})
		if err != nil {
			return fmt.Errorf("inbox claim: %w", err)
		}
		if !claimed {
			return nil
		}

		result, err := p.settle(ctx, tx, req)
		if err != nil {
			return err
		}

		if err := p.enqueueResult(ctx, tx, result); err != nil {
			return err
		}

		out.Result = result
		return nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

// settle decides the payment and applies the debit when there is one
func (p *Processor) settle(ctx context.Context, tx *sql.Tx, req *message.PaymentRequest) (*message.PaymentResult, error) {
	now := p.now().UTC()
	result := &message.PaymentResult{
		MessageID: uuid.New(),
		OrderID:   req.OrderID,
		CreatedAt: now,
	}

	// same order under a different message id
	_, err := p.transactions.TxReadByOrderID(ctx, tx, req.OrderID)
	if err == nil {
		result.Success = true
		result.Reason = message.ReasonAlreadyProcessed
		return result, nil
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return nil, fmt.Errorf("transaction read: %w", err)
	}

	acc, err := p.accounts.TxReadByUserID(ctx, tx, req.UserID)
	if errors.Is(err, apperr.ErrNotFound) {
		result.Reason = message.ReasonAccountNotFound
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("account read: %w", err)
	}

	if acc.Balance.LessThan(req.Amount) {
		result.Reason = message.ReasonInsufficientFunds
		return result, nil
	}

	acc.Balance = acc.Balance.Sub(req.Amount)
	acc.UpdatedAt = now
	if err := p.accounts.TxUpdate(ctx, tx, acc); err != nil {
		return nil, fmt.Errorf("account update: %w", err)
	}

	if _, err := p.transactions.TxCreate(ctx, tx, &model.Transaction{
		ID:        uuid.New(),
		CreatedAt: now,
		TypeID:    model.TransactionTypeWithdrawal,
		OrderID:   uuid.NullUUID{UUID: req.OrderID, Valid: true},
		UserID:    req.UserID,
		Amount:    req.Amount,
	}); err != nil {
		return nil, fmt.Errorf("transaction create: %w", err)
	}

	result.Success = true
	result.Reason = message.ReasonPaymentSuccessful
	return result, nil
}

func (p *Processor) enqueueResult(ctx context.Context, tx *sql.Tx, result *message.PaymentResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("payment result encode: %w", err)
	}
	if err := p.outbox.TxCreate(ctx, tx, &model.OutboxMessage{
		ID:        result.MessageID,
		Type:      message.TypePaymentResult,
		Payload:   payload,
		CreatedAt: result.CreatedAt,
	}); err != nil {
		return fmt.Errorf("outbox create: %w", err)
	}
	return nil
}
