package ordering

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"paysaga/internal/app/apperr"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
	"paysaga/pkg/message"
)

// Service accepts orders and records the payment request for them in the
// same transaction.
type Service struct {
	db     *sql.DB
	orders storage.OrderRepository
	outbox storage.OutboxRepository
	now    func() time.Time
}

func (s *Service) LoggerComponent() string {
	return "Ordering.Service"
}

func New(db *sql.DB, orders storage.OrderRepository, outbox storage.OutboxRepository) *Service {
	return &Service{
		db:     db,
		orders: orders,
		outbox: outbox,
		now:    time.Now,
	}
}

// Create persists a NEW order together with its PaymentRequest outbox message.
// Either both rows are committed or neither is.
func (s *Service) Create(ctx context.Context, userID string, amount decimal.Decimal, description string) (*model.Order, error) {
	l := logger.Get(ctx, s)

	if userID == "" {
		return nil, apperr.ErrMissingUserID
	}
	if !model.ValidAmount(amount) {
		return nil, fmt.Errorf("%w: amount must be positive with at most %d decimals", apperr.ErrInvalidInput, model.MoneyScale)
	}

	now := s.now().UTC()
	o := &model.Order{
		ID:          uuid.New(),
		UserID:      userID,
		Amount:      amount,
		Description: description,
		Status:      model.OrderStatusNew,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	req := message.PaymentRequest{
		MessageID: uuid.New(),
		OrderID:   o.ID,
		UserID:    userID,
		Amount:    amount,
		CreatedAt: now,
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("payment request encode: %w", err)
	}

	err = storage.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		if _, err := s.orders.TxCreate(ctx, tx, o); err != nil {
			return fmt.Errorf("order create: %w", err)
		}
		return s.outbox.TxCreate(ctx, tx, &model.OutboxMessage{
			ID:        req.MessageID,
			Type:      message.TypePaymentRequest,
			Payload:   payload,
			CreatedAt: now,
		})
	})
	if err != nil {
		l.Error().Err(err).Str("user_id", userID).Msg("Order create failed")
		return nil, err
	}

	l.Info().
		Str("order_id", o.ID.String()).
		Str("message_id", req.MessageID.String()).
		Str("amount", amount.StringFixed(model.MoneyScale)).
		Msg("Order created")

	return o, nil
}

// List returns orders of the user, newest first
func (s *Service) List(ctx context.Context, userID string) ([]*model.Order, error) {
	if userID == "" {
		return nil, apperr.ErrMissingUserID
	}
	return s.orders.AllByUserID(ctx, userID)
}

// Get returns the order if it belongs to the user
func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*model.Order, error) {
	if userID == "" {
		return nil, apperr.ErrMissingUserID
	}
	return s.orders.ReadByUser(ctx, userID, id)
}
