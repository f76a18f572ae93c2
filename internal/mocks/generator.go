package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GeneratePreviewFn allows test cases to mock the GeneratePreview behavior
	GeneratePreviewFn func(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitPreview, error)

	// GenerateFullFn allows test cases to mock the GenerateFull behavior
	GenerateFullFn func(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitFull, error)

	// Default response values
	Preview *domain.BrandKitPreview
	Kit     *domain.BrandKitFull
	Err     error

	mu           sync.Mutex
	previewCalls []domain.BrandInputs
	fullCalls    []domain.BrandInputs
}

var _ generation.Generator = (*MockGenerator)(nil)

// GeneratePreview implements the generation.Generator interface
func (m *MockGenerator) GeneratePreview(
	ctx context.Context,
	input domain.BrandInputs,
) (*domain.BrandKitPreview, error) {
	m.mu.Lock()
	m.previewCalls = append(m.previewCalls, input)
	m.mu.Unlock()

	if m.GeneratePreviewFn != nil {
		return m.GeneratePreviewFn(ctx, input)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Preview, nil
}

// GenerateFull implements the generation.Generator interface
func (m *MockGenerator) GenerateFull(
	ctx context.Context,
	input domain.BrandInputs,
) (*domain.BrandKitFull, error) {
	m.mu.Lock()
	m.fullCalls = append(m.fullCalls, input)
	m.mu.Unlock()

	if m.GenerateFullFn != nil {
		return m.GenerateFullFn(ctx, input)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Kit, nil
}

// PreviewCalls returns the inputs passed to GeneratePreview so far.
func (m *MockGenerator) PreviewCalls() []domain.BrandInputs {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.BrandInputs(nil), m.previewCalls...)
}

// FullCalls returns the inputs passed to GenerateFull so far.
func (m *MockGenerator) FullCalls() []domain.BrandInputs {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.BrandInputs(nil), m.fullCalls...)
}

// NewMockGeneratorWithError creates a MockGenerator that fails every call with err
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{Err: err}
}

// NewGenerationError builds a classified generation error for tests.
func NewGenerationError(kind generation.Kind, mode generation.Mode) *generation.Error {
	return &generation.Error{Kind: kind, Mode: mode}
}
