package broadcast_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/toastkit/pkg/broadcast"
)

func receive[T any](t *testing.T, ch <-chan broadcast.Message[T]) (broadcast.Message[T], bool) {
	t.Helper()
	select {
	case msg, ok := <-ch:
		return msg, ok
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
		return broadcast.Message[T]{}, false
	}
}

func TestMemoryBroadcaster(t *testing.T) {
	ctx := context.Background()

	t.Run("delivers to every subscriber in order", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[string](8)
		defer b.Close()

		s1 := b.Subscribe(ctx)
		s2 := b.Subscribe(ctx)
		assert.Equal(t, 2, b.Subscribers())

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "a"}))
		require.NoError(t, b.Broadcast(ctx, broadcast.Message[string]{Data: "b"}))

		for _, s := range []broadcast.Subscriber[string]{s1, s2} {
			ch := s.Receive(ctx)
			first, ok := receive(t, ch)
			require.True(t, ok)
			second, ok := receive(t, ch)
			require.True(t, ok)
			assert.Equal(t, []string{"a", "b"}, []string{first.Data, second.Data})
		}
	})

	t.Run("closing a subscriber removes it", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](1)
		s := b.Subscribe(ctx)

		require.NoError(t, s.Close())
		require.NoError(t, s.Close())
		assert.Equal(t, 0, b.Subscribers())

		_, ok := receive(t, s.Receive(ctx))
		assert.False(t, ok)
	})

	t.Run("context cancellation removes the subscriber", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](1)
		subCtx, cancel := context.WithCancel(ctx)
		s := b.Subscribe(subCtx)

		cancel()
		_, ok := receive(t, s.Receive(ctx))
		assert.False(t, ok)
		assert.Eventually(t, func() bool { return b.Subscribers() == 0 }, time.Second, 5*time.Millisecond)
	})

	t.Run("slow subscribers are dropped", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](1)
		slow := b.Subscribe(ctx)

		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
		require.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 2}))
		assert.Equal(t, 0, b.Subscribers())

		ch := slow.Receive(ctx)
		msg, ok := receive(t, ch)
		require.True(t, ok)
		assert.Equal(t, 1, msg.Data)
		_, ok = receive(t, ch)
		assert.False(t, ok)
	})

	t.Run("close", func(t *testing.T) {
		b := broadcast.NewMemoryBroadcaster[int](0)
		s := b.Subscribe(ctx)

		require.NoError(t, b.Close())
		require.NoError(t, b.Close())
		_, ok := receive(t, s.Receive(ctx))
		assert.False(t, ok)

		late := b.Subscribe(ctx)
		_, ok = receive(t, late.Receive(ctx))
		assert.False(t, ok)
		assert.NoError(t, b.Broadcast(ctx, broadcast.Message[int]{Data: 1}))
	})
}
