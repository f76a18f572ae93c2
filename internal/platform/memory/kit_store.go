// Package memory provides an in-process store.KitStore. Kits live only as
// long as the process; it is the default backend for development.
package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/store"
)

// KitStore is a thread-safe map of encoded kits. Kits are stored as JSON so
// callers can never mutate a stored kit through a shared pointer.
type KitStore struct {
	mu     sync.RWMutex
	kits   map[uuid.UUID][]byte
	logger *slog.Logger
}

var _ store.KitStore = (*KitStore)(nil)

// NewKitStore creates an empty store.
func NewKitStore(log *slog.Logger) *KitStore {
	if log == nil {
		log = slog.Default()
	}
	return &KitStore{
		kits:   make(map[uuid.UUID][]byte),
		logger: log.With(slog.String("component", "memory_kit_store")),
	}
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

	s.mu.Lock()
	s.kits[kit.ID] = data
	s.mu.Unlock()

	logger.FromContextOrDefault(ctx, s.logger).Debug("brand kit stored",
		slog.String("kit_id", kit.ID.String()))
	return nil
}

// Get implements store.KitStore.
func (s *KitStore) Get(_ context.Context, id uuid.UUID) (*domain.BrandKitFull, error) {
	s.mu.RLock()
	data, ok := s.kits[id]
	s.mu.RUnlock()

	if !ok {
		return nil, store.ErrKitNotFound
	}

	var kit domain.BrandKitFull
	if err := json.Unmarshal(data, &kit); err != nil {
		return nil, store.NewStoreError(store.KitEntity, "get", "failed to decode kit", err)
	}
	return &kit, nil
}

// Len returns the number of stored kits.
func (s *KitStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.kits)
}
