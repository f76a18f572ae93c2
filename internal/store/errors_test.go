package store

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{name: "nil error", err: nil, expected: false},
		{name: "generic error", err: errors.New("some error"), expected: false},
		{name: "ErrNotFound", err: ErrNotFound, expected: true},
		{name: "ErrKitNotFound", err: ErrKitNotFound, expected: true},
		{
			name:     "wrapped ErrKitNotFound",
			err:      fmt.Errorf("failed to load kit: %w", ErrKitNotFound),
			expected: true,
		},
		{
			name:     "store error wrapping not found",
			err:      NewStoreError(KitEntity, "get", "lookup failed", ErrKitNotFound),
			expected: true,
		},
		{name: "ErrInvalidEntity", err: ErrInvalidEntity, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsNotFoundError(tt.err))
		})
	}
}

func TestStoreError(t *testing.T) {
	cause := errors.New("connection refused")

	err := NewStoreError(KitEntity, "put", "failed to write kit", cause)

	assert.Equal(t, "put operation on brand_kit failed: failed to write kit: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)

	bare := NewStoreError(KitEntity, "get", "decode failed", nil)
	assert.Equal(t, "get operation on brand_kit failed: decode failed", bare.Error())
	assert.Nil(t, bare.Unwrap())
}

func TestValidateKit(t *testing.T) {
	valid := &domain.BrandKitFull{ID: uuid.New(), CreatedAt: time.Now().UTC()}

	tests := []struct {
		name    string
		kit     *domain.BrandKitFull
		wantErr bool
	}{
		{name: "nil kit", kit: nil, wantErr: true},
		{name: "missing id", kit: &domain.BrandKitFull{}, wantErr: true},
		{name: "missing createdAt", kit: &domain.BrandKitFull{ID: uuid.New()}, wantErr: true},
		{name: "valid", kit: valid, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKit(tt.kit)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEntity)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
