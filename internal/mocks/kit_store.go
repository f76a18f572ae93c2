package mocks

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/store"
)

// MockKitStore implements store.KitStore for testing. Without function
// fields it behaves like a simple map; Put and Get errors can be forced.
type MockKitStore struct {
	PutFn func(ctx context.Context, kit *domain.BrandKitFull) error
	GetFn func(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error)

	PutErr error
	GetErr error

	mu   sync.Mutex
	kits map[uuid.UUID]*domain.BrandKitFull
	puts int
}

var _ store.KitStore = (*MockKitStore)(nil)

// Put implements the store.KitStore interface
func (m *MockKitStore) Put(ctx context.Context, kit *domain.BrandKitFull) error {
	m.mu.Lock()
	m.puts++
	m.mu.Unlock()

	if m.PutFn != nil {
		return m.PutFn(ctx, kit)
	}
	if m.PutErr != nil {
		return m.PutErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.kits == nil {
		m.kits = make(map[uuid.UUID]*domain.BrandKitFull)
	}
	m.kits[kit.ID] = kit
	return nil
}

// Get implements the store.KitStore interface
func (m *MockKitStore) Get(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, id)
	}
	if m.GetErr != nil {
		return nil, m.GetErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	kit, ok := m.kits[id]
	if !ok {
		return nil, store.ErrKitNotFound
	}
	return kit, nil
}

// PutCount returns how many times Put was called.
func (m *MockKitStore) PutCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.puts
}
