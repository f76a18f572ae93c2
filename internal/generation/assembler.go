package generation

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
)

// Assembler attaches identity and provenance to validated full-mode content.
// The model is never trusted to supply either.
type Assembler struct {
	now   func() time.Time
	newID func() uuid.UUID
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithClock replaces time.Now as the source of creation timestamps.
func WithClock(now func() time.Time) AssemblerOption {
	return func(a *Assembler) {
		if now != nil {
			a.now = now
		}
	}
}

// WithIDSource replaces uuid.New as the source of kit identifiers.
func WithIDSource(newID func() uuid.UUID) AssemblerOption {
	return func(a *Assembler) {
		if newID != nil {
			a.newID = newID
		}
	}
}

// NewAssembler creates an Assembler using random v4 UUIDs and the wall clock.
func NewAssembler(opts ...AssemblerOption) *Assembler {
	a := &Assembler{
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Assemble returns a complete kit for content. It cannot fail: content has
// already passed schema validation.
func (a *Assembler) Assemble(content domain.BrandKitContent) *domain.BrandKitFull {
	return &domain.BrandKitFull{
		ID:              a.newID(),
		CreatedAt:       a.now().UTC(),
		BrandKitContent: content,
	}
}
