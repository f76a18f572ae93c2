package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/brandkit-api/internal/generation"
)

// MockProvider implements generation.Provider for testing
type MockProvider struct {
	// CompleteFn allows test cases to mock the Complete behavior
	CompleteFn func(ctx context.Context, req generation.CompletionRequest) (string, error)

	// ProviderName is returned by Name; defaults to "mock".
	ProviderName string
	// NoCredential makes HasCredential report false.
	NoCredential bool

	// Default response values
	Reply string
	Err   error

	mu       sync.Mutex
	requests []generation.CompletionRequest
}

var _ generation.Provider = (*MockProvider)(nil)

// Name implements the generation.Provider interface
func (m *MockProvider) Name() string {
	if m.ProviderName == "" {
		return "mock"
	}
	return m.ProviderName
}

// HasCredential implements the generation.Provider interface
func (m *MockProvider) HasCredential() bool {
	return !m.NoCredential
}

// Complete implements the generation.Provider interface
func (m *MockProvider) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, req)
	m.mu.Unlock()

	if m.CompleteFn != nil {
		return m.CompleteFn(ctx, req)
	}
	return m.Reply, m.Err
}

// Requests returns every request passed to Complete so far.
func (m *MockProvider) Requests() []generation.CompletionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]generation.CompletionRequest(nil), m.requests...)
}
