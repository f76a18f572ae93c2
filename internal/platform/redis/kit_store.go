package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/store"
	goredis "github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces kit keys when no prefix is configured.
const DefaultKeyPrefix = "brandkit:kit:"

// Commander is the subset of the go-redis client the store uses.
// *goredis.Client and *goredis.ClusterClient both satisfy it.
type Commander interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *goredis.StatusCmd
}

// KitStore implements store.KitStore on top of Redis string keys.
type KitStore struct {
	rdb    Commander
	prefix string
	ttl    time.Duration
	logger *slog.Logger
}

var _ store.KitStore = (*KitStore)(nil)

// NewKitStore creates a store writing keys as prefix+id. A zero ttl keeps
// kits until they are evicted or overwritten.
func NewKitStore(rdb Commander, prefix string, ttl time.Duration, log *slog.Logger) *KitStore {
	if log == nil {
		log = slog.Default()
	}
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &KitStore{
		rdb:    rdb,
		prefix: prefix,
		ttl:    ttl,
		logger: log.With(slog.String("component", "redis_kit_store")),
	}
}

// Key returns the Redis key a kit id is stored under.
func (s *KitStore) Key(id uuid.UUID) string {
	return s.prefix + id.String()
}

// Put implements store.KitStore.
func (s *KitStore) Put(ctx context.Context, kit *domain.BrandKitFull) error {
	if err := store.ValidateKit(kit); err != nil {
		return err
	}

	data, err := json.Marshal(kit)
	if err != nil {
		return store.NewStoreError(store.KitEntity, "put", "failed to encode kit", err)
	}

	if err := s.rdb.Set(ctx, s.Key(kit.ID), data, s.ttl).Err(); err != nil {
		return store.NewStoreError(store.KitEntity, "put", "redis SET failed", err)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("brand kit stored",
		slog.String("kit_id", kit.ID.String()),
		slog.Duration("ttl", s.ttl))
	return nil
}

// Get implements store.KitStore.
func (s *KitStore) Get(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error) {
	data, err := s.rdb.Get(ctx, s.Key(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, store.ErrKitNotFound
		}
		return nil, store.NewStoreError(store.KitEntity, "get", "redis GET failed", err)
	}

	var kit domain.BrandKitFull
	if err := json.Unmarshal(data, &kit); err != nil {
		return nil, store.NewStoreError(store.KitEntity, "get", "failed to decode kit", err)
	}
	if kit.ID != id {
		return nil, store.NewStoreError(store.KitEntity, "get",
			fmt.Sprintf("stored kit id %s does not match key", kit.ID), nil)
	}
	return &kit, nil
}

// Open parses a redis:// URL, connects and verifies the connection.
func Open(ctx context.Context, redisURL string, log *slog.Logger) (*goredis.Client, error) {
	if log == nil {
		log = slog.Default()
	}

	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redis url: %w", err)
	}

	rdb := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	log.Info("Redis connection established", "addr", opts.Addr, "db", opts.DB)
	return rdb, nil
}
