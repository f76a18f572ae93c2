package mocks_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/generation"
	"github.com/phrazzld/brandkit-api/internal/mocks"
	"github.com/phrazzld/brandkit-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGenerator(t *testing.T) {
	t.Parallel()
	input := domain.BrandInputs{BusinessName: "Canteen on Campus", Offering: "lunches"}

	t.Run("Default values", func(t *testing.T) {
		t.Parallel()
		kit := &domain.BrandKitFull{ID: uuid.New()}
		gen := &mocks.MockGenerator{Kit: kit}

		got, err := gen.GenerateFull(context.Background(), input)
		require.NoError(t, err)
		assert.Same(t, kit, got)
		assert.Equal(t, []domain.BrandInputs{input}, gen.FullCalls())
		assert.Empty(t, gen.PreviewCalls())
	})

	t.Run("Function override wins", func(t *testing.T) {
		t.Parallel()
		gen := &mocks.MockGenerator{
			Err: errors.New("ignored"),
			GeneratePreviewFn: func(context.Context, domain.BrandInputs) (*domain.BrandKitPreview, error) {
				return &domain.BrandKitPreview{TaglineSuggestions: []string{"hi"}}, nil
			},
		}

		got, err := gen.GeneratePreview(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, []string{"hi"}, got.TaglineSuggestions)
	})

	t.Run("Classified error", func(t *testing.T) {
		t.Parallel()
		gen := mocks.NewMockGeneratorWithError(
			mocks.NewGenerationError(generation.KindTimeout, generation.ModeFull))

		_, err := gen.GenerateFull(context.Background(), input)
		assert.ErrorIs(t, err, generation.ErrTimeout)
	})
}

func TestMockKitStore(t *testing.T) {
	t.Parallel()
	s := &mocks.MockKitStore{}
	kit := &domain.BrandKitFull{ID: uuid.New()}

	_, err := s.Get(context.Background(), kit.ID)
	assert.ErrorIs(t, err, store.ErrKitNotFound)

	require.NoError(t, s.Put(context.Background(), kit))
	got, err := s.Get(context.Background(), kit.ID)
	require.NoError(t, err)
	assert.Same(t, kit, got)
	assert.Equal(t, 1, s.PutCount())
}

func TestMockProvider(t *testing.T) {
	t.Parallel()
	p := &mocks.MockProvider{Reply: "{}", NoCredential: true}

	assert.Equal(t, "mock", p.Name())
	assert.False(t, p.HasCredential())

	reply, err := p.Complete(context.Background(), generation.CompletionRequest{Payload: "x"})
	require.NoError(t, err)
	assert.Equal(t, "{}", reply)
	require.Len(t, p.Requests(), 1)
	assert.Equal(t, "x", p.Requests()[0].Payload)
}
