package broadcast

import (
	"context"
	"sync"
)

// Message wraps a broadcast payload.
type Message[T any] struct {
	Data T
}

// Subscriber receives messages from a Broadcaster.
type Subscriber[T any] interface {
	// Receive returns the channel messages arrive on. It is closed when the
	// subscriber is closed or dropped.
	Receive(ctx context.Context) <-chan Message[T]

	// Close releases the subscription. It is idempotent.
	Close() error
}

// Broadcaster fans messages out to every active subscriber.
// Slow subscribers are dropped instead of blocking the sender.
type Broadcaster[T any] interface {
	Subscribe(ctx context.Context) Subscriber[T]
	Broadcast(ctx context.Context, msg Message[T]) error
	Subscribers() int
	Close() error
}

type subscriber[T any] struct {
	mu       sync.RWMutex
	ch       chan Message[T]
	closed   bool
	onClose  func()
	closeOne sync.Once
}

func newSubscriber[T any](size int, onClose func()) *subscriber[T] {
	return &subscriber[T]{ch: make(chan Message[T], size), onClose: onClose}
}

func (s *subscriber[T]) Receive(context.Context) <-chan Message[T] {
	return s.ch
}

func (s *subscriber[T]) Close() error {
	s.closeOne.Do(func() {
		s.mu.Lock()
		s.closed = true
		close(s.ch)
		s.mu.Unlock()

		if s.onClose != nil {
			s.onClose()
		}
	})
	return nil
}

// send delivers msg without blocking; false means the subscriber is full or closed.
func (s *subscriber[T]) send(msg Message[T]) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return false
	}
	select {
	case s.ch <- msg:
		return true
	default:
		return false
	}
}
