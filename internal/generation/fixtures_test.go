package generation_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/generation"
	"github.com/stretchr/testify/require"
)

// canteenInputs is the reference business used throughout these tests.
func canteenInputs() domain.BrandInputs {
	return domain.BrandInputs{
		BusinessName:           "Canteen on Campus",
		Offering:               "Home-style lunch subscription",
		Industry:               "Food service",
		Scope:                  domain.ScopeLocal,
		AudienceDemographics:   "University students aged 18-25",
		AudiencePsychographics: "Busy, budget-conscious, miss home cooking",
		AudienceNeeds:          "Affordable, healthy, reliable lunches",
		BrandValues:            "Warmth, honesty, community",
		BrandTones:             "Friendly, homely",
		Differentiation:        "Cooked daily by local home chefs",
		VisualStyle:            domain.VisualStylePlayful,
		ColorIntensity:         domain.ColorIntensityBalanced,
	}
}

const previewReply = `{
  "colors": [
    {"name": "Tomato", "hex": "#E4572E", "usage": "Primary accents and calls to action"},
    {"name": "Butter", "hex": "#F3C969", "usage": "Highlights"},
    {"name": "Basil", "hex": "#4C8C4A", "usage": "Secondary elements"},
    {"name": "Charcoal", "hex": "#2B2B2B", "usage": "Body text"}
  ],
  "fonts": [
    {"role": "heading", "name": "Fraunces", "fallback": "serif", "sample": "Lunch, like home"},
    {"role": "body", "name": "Inter", "fallback": "sans-serif", "sample": "Fresh meals every weekday."}
  ],
  "logoPlaceholder": {
    "id": "logo-1",
    "title": "Steaming Tiffin",
    "description": "A stacked tiffin box with a curl of steam forming a C",
    "rationale": "Evokes home-packed lunches and the brand initial"
  },
  "taglineSuggestions": [
    "Lunch, like home.",
    "Your campus kitchen.",
    "Home-cooked, on schedule."
  ]
}`

// reservedKitID is a literal id sent by the model; it must never be used.
const reservedKitID = "11111111-1111-4111-8111-111111111111"

const fullOnlyReply = `
  "brandVoiceDescription": "Warm and reassuring, like a note in a packed lunch.",
  "socialMockups": [
    {"type": "instagram_post", "description": "Overhead shot of the week's menu in tiffins"}
  ],
  "collateralMockups": [
    {"type": "flyer", "description": "A4 flyer with tear-off subscription codes"}
  ],
  "websiteHeaderDescription": "Hero photo of a shared lunch table with the tagline overlay",
  "recommendedChannels": [
    {"channel": "Instagram", "reason": "Students discover food visually"},
    {"channel": "Campus noticeboards", "reason": "High local foot traffic"}
  ],
  "campaignDirections": [
    {"title": "Mum's Menu Monday", "concept": "Weekly family recipes", "suggestedVisuals": "Handwritten recipe cards"}
  ],
  "nextSteps": ["Register the domain", "Photograph the first menu"]`

const extendedOnlyReply = `
  "sampleLogos": [{"title": "Tiffin mark", "description": "Stacked tins", "style": "flat"}],
  "sampleTypography": [{"name": "Homely", "headingFont": "Fraunces", "bodyFont": "Inter", "accentFont": "Caveat", "usage": "Menus"}],
  "samplePosters": [{"title": "Launch", "headline": "Lunch is served", "description": "Bold tomato background"}],
  "sampleSocialPosts": [{"platform": "Instagram", "caption": "This week's menu", "visualDescription": "Flat lay"}]`

// fullReply is a schema-valid full-kit body that also carries model-supplied
// id and createdAt values, which assembly must override.
func fullReply() string {
	head := previewReply[:len(previewReply)-2]
	return head + `,
  "id": "` + reservedKitID + `",
  "createdAt": "1999-01-01T00:00:00Z",` + fullOnlyReply + "\n}"
}

func extendedReply() string {
	head := previewReply[:len(previewReply)-2]
	return head + "," + fullOnlyReply + "," + extendedOnlyReply + "\n}"
}

// mutateReply decodes reply, applies fn and re-encodes it.
func mutateReply(t *testing.T, reply string, fn func(m map[string]any)) string {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(reply), &m))
	fn(m)
	out, err := json.Marshal(m)
	require.NoError(t, err)
	return string(out)
}

// fakeProvider is a scripted Provider that records every call.
type fakeProvider struct {
	mu         sync.Mutex
	credential bool
	reply      string
	err        error
	completeFn func(ctx context.Context, req generation.CompletionRequest) (string, error)
	calls      []generation.CompletionRequest
}

func newFakeProvider(reply string) *fakeProvider {
	return &fakeProvider{credential: true, reply: reply}
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) HasCredential() bool { return f.credential }

func (f *fakeProvider) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()

	if f.completeFn != nil {
		return f.completeFn(ctx, req)
	}
	return f.reply, f.err
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeProvider) lastCall() generation.CompletionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[len(f.calls)-1]
}

// neverCalledProvider fails the test if Complete is invoked.
type neverCalledProvider struct {
	t          *testing.T
	credential bool
}

func (p neverCalledProvider) Name() string { return "never" }

func (p neverCalledProvider) HasCredential() bool { return p.credential }

func (p neverCalledProvider) Complete(context.Context, generation.CompletionRequest) (string, error) {
	p.t.Errorf("provider must not be called")
	return "", nil
}
