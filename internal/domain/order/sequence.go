// internal/domain/order/sequence.go
package order

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// NumberSequencer issues the next order sequence number for a year.
// Sequences restart at 1 each calendar year.
type NumberSequencer interface {
	Next(ctx context.Context, year int) (int64, error)
}

// RedisSequencer issues sequence numbers from a Redis counter, so
// concurrent checkouts never collide on an order number.
type RedisSequencer struct {
	client *redis.Client
}

// NewRedisSequencer creates a Redis-backed order number sequencer
func NewRedisSequencer(client *redis.Client) *RedisSequencer {
	return &RedisSequencer{client: client}
}

// Next atomically increments and returns the per-year counter
func (s *RedisSequencer) Next(ctx context.Context, year int) (int64, error) {
	seq, err := s.client.Incr(ctx, fmt.Sprintf("orders:seq:%d", year)).Result()
	if err != nil {
		return 0, fmt.Errorf("failed to allocate order sequence: %w", err)
	}
	return seq, nil
}

// FormatOrderNumber renders an order number, e.g. GS-2026-001. The
// sequence is zero-padded to three digits and grows past 999 naturally.
func FormatOrderNumber(year int, seq int64) string {
	return fmt.Sprintf("GS-%d-%03d", year, seq)
}
