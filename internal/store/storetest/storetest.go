// Package storetest provides a conformance suite that every store.KitStore
// implementation runs from its own tests.
package storetest

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// NewKit returns a complete, valid kit with a fresh id. CreatedAt is
// truncated to microseconds so it survives round trips through backends
// with coarser timestamp precision.
func NewKit() *domain.BrandKitFull {
	return &domain.BrandKitFull{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		BrandKitContent: domain.BrandKitContent{
			BrandKitPreview: domain.BrandKitPreview{
				Colors: []domain.ColorToken{
					{Name: "Tomato", Hex: "#E4572E", Usage: "Primary"},
					{Name: "Charcoal", Hex: "#2B2B2B", Usage: "Text"},
				},
				Fonts: []domain.FontToken{
					{Role: domain.FontRoleHeading, Name: "Fraunces", Fallback: "serif", Sample: "Lunch, like home"},
					{Role: domain.FontRoleBody, Name: "Inter", Fallback: "sans-serif", Sample: "Fresh every weekday"},
				},
				LogoPlaceholder: domain.LogoConcept{
					ID:          "logo-1",
					Title:       "Steaming Tiffin",
					Description: "A stacked tiffin box",
					Rationale:   "Home-packed lunches",
				},
				TaglineSuggestions: []string{"Lunch, like home."},
			},
			BrandVoiceDescription:    "Warm and reassuring",
			SocialMockups:            []domain.Mockup{{Type: "instagram_post", Description: "Menu flat lay"}},
			CollateralMockups:        []domain.Mockup{{Type: "flyer", Description: "Tear-off codes"}},
			WebsiteHeaderDescription: "Shared lunch table",
			RecommendedChannels:      []domain.ChannelRecommendation{{Channel: "Instagram", Reason: "Visual"}},
			CampaignDirections: []domain.CampaignDirection{
				{Title: "Mum's Menu Monday", Concept: "Family recipes", SuggestedVisuals: "Recipe cards"},
			},
			NextSteps: []string{"Register the domain"},
		},
	}
}

// Run exercises the KitStore contract against the store returned by
// newStore. newStore is called once per subtest and may return a shared
// backend: every subtest uses fresh ids.
func Run(t *testing.T, newStore func(t *testing.T) store.KitStore) {
	t.Helper()

	t.Run("PutThenGet", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		kit := NewKit()

		require.NoError(t, s.Put(ctx, kit))

		got, err := s.Get(ctx, kit.ID)
		require.NoError(t, err)
		AssertSameKit(t, kit, got)
	})

	t.Run("GetMissing", func(t *testing.T) {
		s := newStore(t)

		got, err := s.Get(context.Background(), uuid.New())

		assert.Nil(t, got)
		assert.ErrorIs(t, err, store.ErrKitNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("PutReplaces", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		kit := NewKit()
		require.NoError(t, s.Put(ctx, kit))

		updated := *kit
		updated.BrandVoiceDescription = "Bold and cheeky"
		require.NoError(t, s.Put(ctx, &updated))

		got, err := s.Get(ctx, kit.ID)
		require.NoError(t, err)
		assert.Equal(t, "Bold and cheeky", got.BrandVoiceDescription)
	})

	t.Run("PutRejectsInvalidKits", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		assert.ErrorIs(t, s.Put(ctx, nil), store.ErrInvalidEntity)

		noID := NewKit()
		noID.ID = uuid.Nil
		assert.ErrorIs(t, s.Put(ctx, noID), store.ErrInvalidEntity)

		noTime := NewKit()
		noTime.CreatedAt = time.Time{}
		assert.ErrorIs(t, s.Put(ctx, noTime), store.ErrInvalidEntity)

		_, err := s.Get(ctx, noTime.ID)
		assert.ErrorIs(t, err, store.ErrKitNotFound, "rejected kits are not stored")
	})

	t.Run("KitsAreIndependent", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()
		first, second := NewKit(), NewKit()
		second.TaglineSuggestions = []string{"Your campus kitchen."}

		require.NoError(t, s.Put(ctx, first))
		require.NoError(t, s.Put(ctx, second))

		got, err := s.Get(ctx, first.ID)
		require.NoError(t, err)
		AssertSameKit(t, first, got)

		got, err = s.Get(ctx, second.ID)
		require.NoError(t, err)
		AssertSameKit(t, second, got)
	})

	t.Run("ConcurrentAccess", func(t *testing.T) {
		s := newStore(t)
		ctx := context.Background()

		const n = 8
		kits := make([]*domain.BrandKitFull, n)
		for i := range kits {
			kits[i] = NewKit()
		}

		var wg sync.WaitGroup
		errs := make(chan error, 2*n)
		for _, kit := range kits {
			wg.Add(1)
			go func(kit *domain.BrandKitFull) {
				defer wg.Done()
				if err := s.Put(ctx, kit); err != nil {
					errs <- err
					return
				}
				if _, err := s.Get(ctx, kit.ID); err != nil {
					errs <- err
				}
			}(kit)
		}
		wg.Wait()
		close(errs)

		for err := range errs {
			t.Errorf("concurrent access failed: %v", err)
		}
	})
}

// AssertSameKit compares kits by their JSON form, which is what every
// backend persists, and their timestamps by instant.
func AssertSameKit(t *testing.T, want, got *domain.BrandKitFull) {
	t.Helper()
	require.NotNil(t, got)

	assert.Equal(t, want.ID, got.ID)
	assert.True(t, want.CreatedAt.Equal(got.CreatedAt), "createdAt: want %v, got %v", want.CreatedAt, got.CreatedAt)

	wantJSON, err := json.Marshal(want.BrandKitContent)
	require.NoError(t, err)
	gotJSON, err := json.Marshal(got.BrandKitContent)
	require.NoError(t, err)
	assert.JSONEq(t, string(wantJSON), string(gotJSON))
}
