package orderstatus

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paysaga/internal/app/apperr"
	"paysaga/internal/app/broker"
	"paysaga/internal/app/model"
	storagemock "paysaga/internal/app/storage/mock"
	"paysaga/pkg/message"
)

func newUpdater(t *testing.T) (*Updater, sqlmock.Sqlmock, *storagemock.MockOrderRepository) {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	orders := storagemock.NewMockOrderRepository(ctrl)
	return New(db, orders, broker.PoisonPolicy{}), mock, orders
}

func delivery(t *testing.T, orderID uuid.UUID, success bool, reason string) broker.Delivery {
	b, err := json.Marshal(message.PaymentResult{MessageID: uuid.New(), OrderID: orderID, Success: success, Reason: reason})
	require.NoError(t, err)
	return broker.Delivery{Queue: message.QueuePaymentResults, Body: b}
}

func TestUpdater_Transitions(t *testing.T) {
	tests := []struct {
		name    string
		success bool
		want    model.OrderStatus
	}{
		{"success finishes", true, model.OrderStatusFinished},
		{"failure cancels", false, model.OrderStatusCancelled},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, mock, orders := newUpdater(t)
			id := uuid.New()

			mock.ExpectBegin()
			orders.EXPECT().TxReadForUpdate(gomock.Any(), gomock.Any(), id).
				Return(&model.Order{ID: id, Status: model.OrderStatusNew}, nil)
			orders.EXPECT().TxUpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sql.Tx, m *model.Order) error {
					assert.Equal(t, tt.want, m.Status)
					assert.False(t, m.UpdatedAt.IsZero())
					return nil
				})
			mock.ExpectCommit()

			assert.Equal(t, broker.Ack, u.Handle(context.Background(), delivery(t, id, tt.success, "")))
		})
	}
}

func TestUpdater_TerminalOrderUnchanged(t *testing.T) {
	u, mock, orders := newUpdater(t)
	id := uuid.New()

	mock.ExpectBegin()
	orders.EXPECT().TxReadForUpdate(gomock.Any(), gomock.Any(), id).
		Return(&model.Order{ID: id, Status: model.OrderStatusCancelled}, nil)
	mock.ExpectCommit()

	assert.Equal(t, broker.Ack, u.Handle(context.Background(), delivery(t, id, true, message.ReasonAlreadyProcessed)))
}

func TestUpdater_MissingOrderAcked(t *testing.T) {
	u, mock, orders := newUpdater(t)
	id := uuid.New()

	mock.ExpectBegin()
	orders.EXPECT().TxReadForUpdate(gomock.Any(), gomock.Any(), id).Return(nil, apperr.ErrNotFound)
	mock.ExpectRollback()

	assert.Equal(t, broker.Ack, u.Handle(context.Background(), delivery(t, id, true, "")))
}

func TestUpdater_FailureRequeues(t *testing.T) {
	u, mock, orders := newUpdater(t)
	id := uuid.New()

	mock.ExpectBegin()
	orders.EXPECT().TxReadForUpdate(gomock.Any(), gomock.Any(), id).
		Return(&model.Order{ID: id, Status: model.OrderStatusNew}, nil)
	orders.EXPECT().TxUpdateStatus(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("deadlock detected"))
	mock.ExpectRollback()

	assert.Equal(t, broker.NackRequeue, u.Handle(context.Background(), delivery(t, id, false, "")))
}

func TestUpdater_Undecodable(t *testing.T) {
	u, _, _ := newUpdater(t)
	d := broker.Delivery{Queue: message.QueuePaymentResults, Body: []byte(`{"success":true}`)}
	assert.Equal(t, broker.NackRequeue, u.Handle(context.Background(), d))
}
