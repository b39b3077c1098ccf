package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

var ErrCacheMiss = errors.New("cache: key not found")

// Store is a shared key-value store with per-entry TTL. Entries are
// replaced wholesale, never mutated in place.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Put marshals value and stores it under key with ttl, replacing any
// previous entry wholesale.
func Put[T any](ctx context.Context, store Store, key string, ttl time.Duration, value T) error {
	marshaled, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal %q: %w", key, err)
	}

	if err := store.Set(ctx, key, marshaled, ttl); err != nil {
		return fmt.Errorf("cache set %q: %w", key, err)
	}

	return nil
}

// GetOrCompute returns the cached value under key if present and
// unexpired, otherwise invokes compute, stores the result with ttl and
// returns it. Concurrent callers may race to compute the same key:
// last write wins, which is acceptable for idempotent upstream reads.
// A compute error is returned as-is and nothing is stored.
func GetOrCompute[T any](ctx context.Context, store Store, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	var value T

	cached, err := store.Get(ctx, key)
	if err == nil {
		if err := json.Unmarshal([]byte(cached), &value); err == nil {
			return value, nil
		}
		// Undecodable entries are treated as misses and overwritten.
	} else if !errors.Is(err, ErrCacheMiss) {
		return value, fmt.Errorf("cache get %q: %w", key, err)
	}

	value, err = compute(ctx)
	if err != nil {
		return value, err
	}

	marshaled, err := json.Marshal(value)
	if err != nil {
		return value, fmt.Errorf("cache marshal %q: %w", key, err)
	}

	if err := store.Set(ctx, key, marshaled, ttl); err != nil {
		return value, fmt.Errorf("cache set %q: %w", key, err)
	}

	return value, nil
}
