package orderstatus

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"paysaga/internal/app/apperr"
	"paysaga/internal/app/broker"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/metrics"
	"paysaga/internal/app/model"
	"paysaga/internal/app/storage"
	"paysaga/pkg/message"
)

// Updater applies payment results to orders. Orders already in a terminal
// status are left untouched.
type Updater struct {
	db     *sql.DB
	orders storage.OrderRepository
	poison broker.PoisonPolicy
	now    func() time.Time
}

func (u *Updater) LoggerComponent() string {
	return "OrderStatus.Updater"
}

func New(db *sql.DB, orders storage.OrderRepository, poison broker.PoisonPolicy) *Updater {
	return &Updater{
		db:     db,
		orders: orders,
		poison: poison,
		now:    time.Now,
	}
}

// Handle is the broker.Handler of the payment results queue
func (u *Updater) Handle(ctx context.Context, d broker.Delivery) broker.Result {
	l := logger.Get(ctx, u).With().Str("message_id", d.MessageID).Logger()
	ctx = l.WithContext(ctx)

	res := u.handle(ctx, d)
	metrics.IncDelivery(d.Queue, res.String())
	return res
}

func (u *Updater) handle(ctx context.Context, d broker.Delivery) broker.Result {
	l := logger.Ctx(ctx)

	result, err := message.DecodePaymentResult(d.Body)
	if err != nil {
		return u.poison.Decide(ctx, d, err)
	}

	o, changed, err := u.Apply(ctx, result)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		l.Warn().Str("order_id", result.OrderID.String()).Msg("Payment result for unknown order dropped")
		return broker.Ack
	case err != nil:
		l.Error().Err(err).Str("order_id", result.OrderID.String()).Msg("Order status update failed")
		return broker.NackRequeue
	}

	if !changed {
		l.Info().
			Str("order_id", o.ID.String()).
			Str("status", string(o.Status)).
			Msg("Order already settled, result ignored")
		return broker.Ack
	}

	metrics.IncOrderTransition(string(o.Status))
	l.Info().
		Str("order_id", o.ID.String()).
		Str("status", string(o.Status)).
		Str("reason", result.Reason).
		Msg("Order status updated")
	return broker.Ack
}

// Apply moves a NEW order to FINISHED or CANCELLED and reports whether it
// changed anything.
func (u *Updater) Apply(ctx context.Context, result *message.PaymentResult) (*model.Order, bool, error) {
	var (
		o       *model.Order
		changed bool
	)

	err := storage.RunInTx(ctx, u.db, func(tx *sql.Tx) error {
		var err error
		o, err = u.orders.TxReadForUpdate(ctx, tx, result.OrderID)
		if err != nil {
			return err
		}
		if o.Status.IsTerminal() {
			return nil
		}

		o.Status = model.OrderStatusCancelled
		if result.Success {
			o.Status = model.OrderStatusFinished
		}
		o.UpdatedAt = u.now().UTC()
		if err := u.orders.TxUpdateStatus(ctx, tx, o); err != nil {
			return fmt.Errorf("order update: %w", err)
		}
		changed = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}

	return o, changed, nil
}
