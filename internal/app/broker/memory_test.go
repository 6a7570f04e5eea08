package broker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_Settle(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Publish(ctx, "q", "1", []byte("a")))
	require.NoError(t, m.Publish(ctx, "q", "2", []byte("b")))
	require.NoError(t, m.Publish(ctx, "q", "3", []byte("c")))

	results := map[string]Result{"1": NackRequeue, "2": NackDiscard, "3": Ack}
	var seen []string
	n := m.Drain(ctx, "q", func(_ context.Context, d Delivery) Result {
		seen = append(seen, d.MessageID)
		res := results[d.MessageID]
		results[d.MessageID] = Ack
		return res
	}, 0)

	assert.Equal(t, 4, n)
	assert.Equal(t, []string{"1", "2", "3", "1"}, seen)
	assert.Equal(t, 0, m.Len("q"))

	dead := m.Dead("q")
	require.Len(t, dead, 1)
	assert.Equal(t, "2", dead[0].MessageID)
}

func TestMemory_RequeueMarksRedelivered(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	require.NoError(t, m.Publish(ctx, "q", "1", []byte("a")))

	m.Drain(ctx, "q", func(context.Context, Delivery) Result { return NackRequeue }, 1)

	pending := m.Peek("q")
	require.Len(t, pending, 1)
	assert.True(t, pending[0].Redelivered)
}

func TestMemory_FailPublish(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	boom := errors.New("broker down")

	m.FailPublish(boom)
	assert.ErrorIs(t, m.Publish(ctx, "q", "1", nil), boom)
	assert.Equal(t, 0, m.Len("q"))

	m.FailPublish(nil)
	assert.NoError(t, m.Publish(ctx, "q", "1", nil))
	assert.Equal(t, 1, m.Len("q"))
}

func TestMemory_SubscribeWakesOnPublish(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	m := NewMemory()

	var handled atomic.Int32
	done := make(chan error, 1)
	go func() {
		done <- m.Subscribe(ctx, "q", func(context.Context, Delivery) Result {
			handled.Add(1)
			return Ack
		})
	}()

	require.NoError(t, m.Publish(ctx, "q", "1", []byte("x")))
	assert.Eventually(t, func() bool { return handled.Load() == 1 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("subscriber did not stop")
	}
}
