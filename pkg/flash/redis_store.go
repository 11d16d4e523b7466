package flash

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps each queue in a Redis list that expires after the TTL.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithRedisTTL sets the list expiry. Non-positive values are ignored.
func WithRedisTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the prefix of every list key. Default "flash:".
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) {
		s.prefix = prefix
	}
}

// NewRedisStore creates a store on client.
func NewRedisStore(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client: client,
		prefix: "flash:",
		ttl:    DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *RedisStore) Push(ctx context.Context, key string, msg Message) error {
	if key == "" {
		return ErrEmptyKey
	}

	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("flash: encode message: %w", err)
	}

	k := s.key(key)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, k, data)
		pipe.Expire(ctx, k, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("flash: push %s: %w", key, err)
	}
	return nil
}

// Pop reads and deletes the list in one transaction, so a message is
// delivered to at most one page.
func (s *RedisStore) Pop(ctx context.Context, key string) ([]Message, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	k := s.key(key)
	var rangeCmd *redis.StringSliceCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		rangeCmd = pipe.LRange(ctx, k, 0, -1)
		pipe.Del(ctx, k)
		return nil
	})
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("flash: pop %s: %w", key, err)
	}

	raw, err := rangeCmd.Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("flash: pop %s: %w", key, err)
	}

	return decodeMessages(raw)
}

// decodeMessages skips items that are not valid messages and reports them
// in one error next to the messages that did decode.
func decodeMessages(raw []string) ([]Message, error) {
	out := make([]Message, 0, len(raw))
	var errs []error
	for _, item := range raw {
		var m Message
		if err := json.Unmarshal([]byte(item), &m); err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, m)
	}
	if len(errs) > 0 {
		return out, fmt.Errorf("%w: %d of %d items: %w", ErrDecode, len(errs), len(raw), errors.Join(errs...))
	}
	return out, nil
}

func (s *RedisStore) key(key string) string {
	return s.prefix + key
}
