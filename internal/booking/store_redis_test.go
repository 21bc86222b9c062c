package booking

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, "test:booking_requests"), mr
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, _ := newRedisStore(t)

	records := []BookingRequest{validRequest("BR-1", 11), validRequest("BR-2", 12)}
	require.NoError(t, store.Save(context.Background(), records))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, records, loaded)
}

func TestRedisStoreMissing(t *testing.T) {
	store, _ := newRedisStore(t)
	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrStoreMissing)
}

func TestRedisStoreCorrupt(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Set("test:booking_requests", `[{"id":""}]`)

	_, err := store.Load(context.Background())
	assert.ErrorIs(t, err, ErrCorruptStore)
}

func TestRedisBackedLedgerSeedsOnCorruptContent(t *testing.T) {
	store, mr := newRedisStore(t)
	mr.Set("test:booking_requests", `not json at all`)

	seed := []BookingRequest{validRequest("BR-seed", 1)}
	ledger := Open(context.Background(), store, seed, nil)
	defer ledger.Close()

	assert.Equal(t, 1, ledger.CountPending(1))
}
