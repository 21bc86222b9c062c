package booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisStore keeps the ledger document under a single redis key, keeping
// the whole-document durability contract of the Store port.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore builds a store over the given client and key.
func NewRedisStore(client *redis.Client, key string) *RedisStore {
	return &RedisStore{client: client, key: key}
}

// Load reads and validates the persisted document.
func (s *RedisStore) Load(ctx context.Context) ([]BookingRequest, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrStoreMissing
		}
		return nil, fmt.Errorf("booking: read redis store: %w", err)
	}
	return DecodeDocument(data)
}

// Save replaces the persisted document. A SET of the full document is
// atomic on the redis side.
func (s *RedisStore) Save(ctx context.Context, records []BookingRequest) error {
	data, err := EncodeDocument(records)
	if err != nil {
		return fmt.Errorf("booking: encode store: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("booking: write redis store: %w", err)
	}
	return nil
}
