package flash

import (
	"context"
	"time"

	"github.com/dmitrymomot/toastkit/pkg/toast"
)

// DefaultTTL bounds how long an unread flash waits for its page.
const DefaultTTL = 10 * time.Minute

// Message is a toast queued for a page that is not rendered yet.
type Message struct {
	Text     string         `json:"text"`
	Severity toast.Severity `json:"severity"`
}

// Store queues messages per key (usually a page or session id).
type Store interface {
	// Push appends msg to the queue of key.
	Push(ctx context.Context, key string, msg Message) error

	// Pop returns and clears the queue of key, oldest first.
	// An empty queue yields an empty slice and no error. When some queued
	// items cannot be decoded the readable ones are returned together with
	// an error wrapping ErrDecode.
	Pop(ctx context.Context, key string) ([]Message, error)
}

// Notifier is what Deliver raises popped messages on.
type Notifier interface {
	Notify(message string, sev toast.Severity) toast.Handle
}

// Deliver pops the queue of key and raises every message on n in order.
// It returns how many toasts were raised. Messages Pop returned alongside an
// error are still raised, since the queue is already cleared.
func Deliver(ctx context.Context, s Store, key string, n Notifier) (int, error) {
	msgs, err := s.Pop(ctx, key)
	for _, m := range msgs {
		n.Notify(m.Text, m.Severity)
	}
	return len(msgs), err
}
