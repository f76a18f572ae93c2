package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
)

// KitEntity names brand kits in StoreError values.
const KitEntity = "brand_kit"

// KitStore defines the interface for brand kit persistence.
// It is a plain key-value collaborator keyed by the kit's assembled id.
type KitStore interface {
	// Put saves kit under kit.ID, replacing any kit already stored there.
	// Returns an error wrapping ErrInvalidEntity if the kit has no id or
	// creation time.
	Put(ctx context.Context, kit *domain.BrandKitFull) error

	// Get retrieves a kit by id.
	// Returns ErrKitNotFound if no kit is stored under id.
	Get(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error)
}

// ValidateKit is the guard every KitStore.Put runs before writing.
func ValidateKit(kit *domain.BrandKitFull) error {
	if kit == nil {
		return fmt.Errorf("%w: brand kit is nil", ErrInvalidEntity)
	}
	if err := kit.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
	}
	return nil
}
