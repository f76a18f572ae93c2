package domain

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validInputs() BrandInputs {
	return BrandInputs{
		BusinessName:           "Canteen on Campus",
		Offering:               "Home-style lunch subscription",
		Industry:               "Food & Beverage",
		Scope:                  ScopeLocal,
		AudienceDemographics:   "University students, 18-25",
		AudiencePsychographics: "Budget-conscious, homesick",
		AudienceNeeds:          "Affordable, nourishing lunches",
		BrandValues:            "Warmth, reliability",
		BrandTones:             "Friendly, cozy",
		Differentiation:        "Recipes from real home cooks",
	}
}

func TestBrandInputsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		mutate    func(*BrandInputs)
		wantErr   error
		wantField string
	}{
		{
			name:   "complete inputs",
			mutate: func(in *BrandInputs) {},
		},
		{
			name: "only required fields",
			mutate: func(in *BrandInputs) {
				*in = BrandInputs{BusinessName: "Acme", Offering: "Anvils"}
			},
		},
		{
			name:      "missing business name",
			mutate:    func(in *BrandInputs) { in.BusinessName = "" },
			wantErr:   ErrEmptyBusinessName,
			wantField: "businessName",
		},
		{
			name:      "whitespace business name",
			mutate:    func(in *BrandInputs) { in.BusinessName = "   " },
			wantErr:   ErrEmptyBusinessName,
			wantField: "businessName",
		},
		{
			name:      "missing offering",
			mutate:    func(in *BrandInputs) { in.Offering = "" },
			wantErr:   ErrEmptyOffering,
			wantField: "offering",
		},
		{
			name:      "scope outside enum",
			mutate:    func(in *BrandInputs) { in.Scope = "Galactic" },
			wantErr:   ErrValidation,
			wantField: "scope",
		},
		{
			name:      "visual style outside enum",
			mutate:    func(in *BrandInputs) { in.VisualStyle = "Grunge" },
			wantErr:   ErrValidation,
			wantField: "visualStyle",
		},
		{
			name:      "color intensity outside enum",
			mutate:    func(in *BrandInputs) { in.ColorIntensity = "Neon" },
			wantErr:   ErrValidation,
			wantField: "colorIntensity",
		},
		{
			name: "valid optional refinements",
			mutate: func(in *BrandInputs) {
				in.VisualStyle = VisualStylePlayful
				in.ColorIntensity = ColorIntensityVibrant
			},
		},
		{
			name:      "business name too long",
			mutate:    func(in *BrandInputs) { in.BusinessName = strings.Repeat("a", 201) },
			wantErr:   ErrValidation,
			wantField: "businessName",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in := validInputs()
			tc.mutate(&in)

			err := in.Validate()
			if tc.wantErr == nil {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.wantErr), "expected %v, got %v", tc.wantErr, err)
			assert.True(t, errors.Is(err, ErrValidation), "all input errors wrap ErrValidation")
			assert.Contains(t, err.Error(), tc.wantField)
		})
	}
}

func TestBrandInputsJSONKeysAlwaysPresent(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(BrandInputs{BusinessName: "Acme", Offering: "Anvils"})
	require.NoError(t, err)

	var keys map[string]any
	require.NoError(t, json.Unmarshal(data, &keys))

	for _, key := range []string{
		"businessName", "offering", "industry", "scope", "audienceDemographics",
		"audiencePsychographics", "audienceNeeds", "brandValues", "brandTones",
		"differentiation",
	} {
		assert.Contains(t, keys, key)
	}
	assert.NotContains(t, keys, "visualStyle", "optional refinements are omitted when empty")
	assert.NotContains(t, keys, "colorIntensity", "optional refinements are omitted when empty")
}
