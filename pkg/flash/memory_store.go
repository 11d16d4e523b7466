package flash

import (
	"context"
	"sync"
	"time"
)

type memoryItem struct {
	msg      Message
	expireAt time.Time
}

// MemoryStore keeps queues in process memory. Suitable for a single instance.
type MemoryStore struct {
	mu     sync.Mutex
	queues map[string][]memoryItem
	ttl    time.Duration
	now    func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryTTL sets how long a message is kept. Non-positive values are ignored.
func WithMemoryTTL(ttl time.Duration) MemoryOption {
	return func(s *MemoryStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithNow replaces time.Now, for tests.
func WithNow(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		queues: make(map[string][]memoryItem),
		ttl:    DefaultTTL,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *MemoryStore) Push(_ context.Context, key string, msg Message) error {
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.queues[key] = append(s.queues[key], memoryItem{msg: msg, expireAt: s.now().Add(s.ttl)})
	return nil
}

func (s *MemoryStore) Pop(_ context.Context, key string) ([]Message, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	s.mu.Lock()
	items := s.queues[key]
	delete(s.queues, key)
	s.mu.Unlock()

	now := s.now()
	out := make([]Message, 0, len(items))
	for _, it := range items {
		if now.Before(it.expireAt) {
			out = append(out, it.msg)
		}
	}
	return out, nil
}
