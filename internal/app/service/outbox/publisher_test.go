package outbox

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"paysaga/internal/app/broker"
	"paysaga/internal/app/logger"
	"paysaga/internal/app/model"
	storagemock "paysaga/internal/app/storage/mock"
	"paysaga/pkg/message"
)

type fixture struct {
	pub    *Publisher
	mock   sqlmock.Sqlmock
	repo   *storagemock.MockOutboxRepository
	broker *broker.Memory
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	f := &fixture{
		mock:   mock,
		repo:   storagemock.NewMockOutboxRepository(ctrl),
		broker: broker.NewMemory(),
	}
	f.pub = New(cfg, db, f.repo, f.broker, logger.Nop())
	return f
}

func defaultConfig() Config {
	return Config{Interval: time.Hour, ErrorBackoff: time.Hour, BatchSize: 10}
}

func pendingRequests(n int) []*model.OutboxMessage {
	res := make([]*model.OutboxMessage, n)
	for i := range res {
		res[i] = &model.OutboxMessage{
			ID:        uuid.New(),
			Type:      message.TypePaymentRequest,
			Payload:   []byte(fmt.Sprintf(`{"n":%d}`, i)),
			CreatedAt: time.Now().Add(-time.Second),
		}
	}
	return res
}

func ids(mm []*model.OutboxMessage) []uuid.UUID {
	res := make([]uuid.UUID, len(mm))
	for i, m := range mm {
		res[i] = m.ID
	}
	return res
}

func TestPublisher_RunOnce_Empty(t *testing.T) {
	f := newFixture(t, defaultConfig())

	f.mock.ExpectBegin()
	f.repo.EXPECT().TxFetchPending(gomock.Any(), gomock.Any(), 10).Return(nil, nil)
	f.mock.ExpectCommit()

	n, err := f.pub.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestPublisher_RunOnce_PublishesAndMarks(t *testing.T) {
	f := newFixture(t, defaultConfig())
	pending := pendingRequests(3)

	f.mock.ExpectBegin()
	f.repo.EXPECT().TxFetchPending(gomock.Any(), gomock.Any(), 10).Return(pending, nil)
	f.repo.EXPECT().TxMarkProcessed(gomock.Any(), gomock.Any(), ids(pending), gomock.Any()).Return(nil)
	f.mock.ExpectCommit()

	n, err := f.pub.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	out := f.broker.Peek(message.QueuePaymentRequests)
	require.Len(t, out, 3)
	for i, d := range out {
		assert.Equal(t, pending[i].ID.String(), d.MessageID)
		assert.Equal(t, pending[i].Payload, d.Body)
	}
}

type flakyPublisher struct {
	next    broker.Publisher
	failOn  int
	calls   int
	failErr error
}

func (p *flakyPublisher) Publish(ctx context.Context, queue, messageID string, body []byte) error {
	p.calls++
	if p.calls == p.failOn {
		return p.failErr
	}
	return p.next.Publish(ctx, queue, messageID, body)
}

func TestPublisher_RunOnce_StopsAtFirstFailure(t *testing.T) {
	f := newFixture(t, defaultConfig())
	boom := errors.New("connection reset")
	f.pub.broker = &flakyPublisher{next: f.broker, failOn: 2, failErr: boom}
	pending := pendingRequests(3)

	f.mock.ExpectBegin()
	f.repo.EXPECT().TxFetchPending(gomock.Any(), gomock.Any(), 10).Return(pending, nil)
	f.repo.EXPECT().TxMarkProcessed(gomock.Any(), gomock.Any(), ids(pending[:1]), gomock.Any()).Return(nil)
	f.mock.ExpectCommit()

	n, err := f.pub.RunOnce(context.Background())
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, f.broker.Len(message.QueuePaymentRequests))
}

func TestPublisher_RunOnce_MarkFailureRollsBack(t *testing.T) {
	f := newFixture(t, defaultConfig())
	pending := pendingRequests(1)

	f.mock.ExpectBegin()
	f.repo.EXPECT().TxFetchPending(gomock.Any(), gomock.Any(), 10).Return(pending, nil)
	f.repo.EXPECT().TxMarkProcessed(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("lost connection"))
	f.mock.ExpectRollback()

	_, err := f.pub.RunOnce(context.Background())
	assert.Error(t, err)
	// already on the broker, will be published again by the next cycle
	assert.Equal(t, 1, f.broker.Len(message.QueuePaymentRequests))
}

func TestPublisher_RunOnce_UnknownTypeIsAnError(t *testing.T) {
	f := newFixture(t, defaultConfig())
	pending := []*model.OutboxMessage{{ID: uuid.New(), Type: "Refund", Payload: []byte(`{}`)}}

	f.mock.ExpectBegin()
	f.repo.EXPECT().TxFetchPending(gomock.Any(), gomock.Any(), 10).Return(pending, nil)
	f.mock.ExpectCommit()

	_, err := f.pub.RunOnce(context.Background())
	assert.ErrorIs(t, err, message.ErrUnknownType)
}

func TestPublisher_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.broker.FailPublish(errors.New("broker down"))

	for i := 0; i < 4; i++ {
		f.mock.ExpectBegin()
		f.repo.EXPECT().TxFetchPending(gomock.Any(), gomock.Any(), 10).Return(pendingRequests(1), nil)
		f.mock.ExpectCommit()
	}

	var err error
	for i := 0; i < 4; i++ {
		_, err = f.pub.RunOnce(context.Background())
		require.Error(t, err)
	}
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
}

func TestPublisher_Run_FullBatchDoesNotSleep(t *testing.T) {
	cfg := defaultConfig()
	cfg.BatchSize = 2
	f := newFixture(t, cfg)

	first, second := pendingRequests(2), pendingRequests(1)
	var fetches atomic.Int32

	f.mock.ExpectBegin()
	f.mock.ExpectCommit()
	f.mock.ExpectBegin()
	f.mock.ExpectCommit()

	gomock.InOrder(
		f.repo.EXPECT().TxFetchPending(gomock.Any(), gomock.Any(), 2).
			DoAndReturn(func(context.Context, *sql.Tx, int) ([]*model.OutboxMessage, error) {
				fetches.Add(1)
				return first, nil
			}),
		f.repo.EXPECT().TxMarkProcessed(gomock.Any(), gomock.Any(), ids(first), gomock.Any()).Return(nil),
		f.repo.EXPECT().TxFetchPending(gomock.Any(), gomock.Any(), 2).
			DoAndReturn(func(context.Context, *sql.Tx, int) ([]*model.OutboxMessage, error) {
				fetches.Add(1)
				return second, nil
			}),
		f.repo.EXPECT().TxMarkProcessed(gomock.Any(), gomock.Any(), ids(second), gomock.Any()).Return(nil),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- f.pub.Run(ctx) }()

	// the partial second batch sends the loop to sleep for an hour
	assert.Eventually(t, func() bool {
		return fetches.Load() == 2 && f.mock.ExpectationsWereMet() == nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, f.broker.Len(message.QueuePaymentRequests))

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("publisher did not stop")
	}
}

func TestPublisher_Cleanup(t *testing.T) {
	cfg := defaultConfig()
	cfg.Retention = 24 * time.Hour
	cfg.CleanupInterval = time.Hour
	f := newFixture(t, cfg)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.pub.now = func() time.Time { return now }

	f.repo.EXPECT().DeleteProcessedBefore(gomock.Any(), now.Add(-24*time.Hour)).Return(int64(7), nil)

	f.pub.cleanup(context.Background())
	// within the interval, no second delete
	f.pub.cleanup(context.Background())
}

func TestPublisher_CleanupDisabled(t *testing.T) {
	f := newFixture(t, defaultConfig())
	f.pub.cleanup(context.Background())
}
