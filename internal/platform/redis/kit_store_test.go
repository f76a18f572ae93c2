package redis_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/platform/redis"
	"github.com/phrazzld/brandkit-api/internal/store"
	"github.com/phrazzld/brandkit-api/internal/store/storetest"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRedis is an in-memory Commander recording SET expirations.
type fakeRedis struct {
	mu      sync.Mutex
	values  map[string]string
	ttls    map[string]time.Duration
	failErr error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return goredis.NewStringResult("", f.failErr)
	}
	v, ok := f.values[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Set(
	_ context.Context,
	key string,
	value interface{},
	expiration time.Duration,
) *goredis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failErr != nil {
		return goredis.NewStatusResult("", f.failErr)
	}
	switch v := value.(type) {
	case []byte:
		f.values[key] = string(v)
	case string:
		f.values[key] = v
	}
	f.ttls[key] = expiration
	return goredis.NewStatusResult("OK", nil)
}

func TestKitStore_Conformance(t *testing.T) {
	fake := newFakeRedis()
	storetest.Run(t, func(t *testing.T) store.KitStore {
		return redis.NewKitStore(fake, "", 0, nil)
	})
}

func TestKitStore_KeyAndTTL(t *testing.T) {
	fake := newFakeRedis()
	s := redis.NewKitStore(fake, "test:", time.Hour, nil)
	kit := storetest.NewKit()

	require.NoError(t, s.Put(context.Background(), kit))

	key := "test:" + kit.ID.String()
	assert.Equal(t, key, s.Key(kit.ID))
	assert.Contains(t, fake.values, key)
	assert.Equal(t, time.Hour, fake.ttls[key])
}

func TestKitStore_DefaultPrefix(t *testing.T) {
	s := redis.NewKitStore(newFakeRedis(), "", 0, nil)
	id := uuid.New()

	assert.Equal(t, redis.DefaultKeyPrefix+id.String(), s.Key(id))
}

func TestKitStore_BackendErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.failErr = errors.New("connection refused")
	s := redis.NewKitStore(fake, "", 0, nil)

	err := s.Put(context.Background(), storetest.NewKit())
	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "put", storeErr.Operation)

	_, err = s.Get(context.Background(), uuid.New())
	require.Error(t, err)
	assert.False(t, store.IsNotFoundError(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestKitStore_CorruptValue(t *testing.T) {
	fake := newFakeRedis()
	s := redis.NewKitStore(fake, "", 0, nil)
	id := uuid.New()
	fake.values[s.Key(id)] = "{not json"

	_, err := s.Get(context.Background(), id)

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "get", storeErr.Operation)
}
