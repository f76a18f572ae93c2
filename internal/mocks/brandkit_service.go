package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/service"
)

// MockBrandKitService implements service.BrandKitService for testing
type MockBrandKitService struct {
	PreviewFn   func(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitPreview, error)
	CreateKitFn func(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitFull, error)
	GetKitFn    func(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error)
}

var _ service.BrandKitService = (*MockBrandKitService)(nil)

// Preview implements the service.BrandKitService interface
func (m *MockBrandKitService) Preview(
	ctx context.Context,
	input domain.BrandInputs,
) (*domain.BrandKitPreview, error) {
	if m.PreviewFn != nil {
		return m.PreviewFn(ctx, input)
	}
	return nil, nil
}

// CreateKit implements the service.BrandKitService interface
func (m *MockBrandKitService) CreateKit(
	ctx context.Context,
	input domain.BrandInputs,
) (*domain.BrandKitFull, error) {
	if m.CreateKitFn != nil {
		return m.CreateKitFn(ctx, input)
	}
	return nil, nil
}

// GetKit implements the service.BrandKitService interface
func (m *MockBrandKitService) GetKit(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error) {
	if m.GetKitFn != nil {
		return m.GetKitFn(ctx, id)
	}
	return nil, nil
}
