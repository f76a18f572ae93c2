package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/api"
	"github.com/phrazzld/brandkit-api/internal/api/shared"
	"github.com/phrazzld/brandkit-api/internal/config"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/generation"
	"github.com/phrazzld/brandkit-api/internal/mocks"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/platform/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const previewReply = `{
  "colors": [
    {"name": "Tomato", "hex": "#E4572E", "usage": "Calls to action"},
    {"name": "Charcoal", "hex": "#2B2B2B", "usage": "Body text"}
  ],
  "fonts": [
    {"role": "heading", "name": "Fraunces", "fallback": "serif", "sample": "Lunch, like home"},
    {"role": "body", "name": "Inter", "fallback": "sans-serif", "sample": "Fresh meals every weekday."}
  ],
  "logoPlaceholder": {
    "id": "logo-1",
    "title": "Steaming Tiffin",
    "description": "A stacked tiffin box with a curl of steam",
    "rationale": "Evokes home-packed lunches"
  },
  "taglineSuggestions": ["Lunch, like home."]
}`

const fullReply = `{
  "colors": [{"name": "Tomato", "hex": "#E4572E", "usage": "Calls to action"}],
  "fonts": [{"role": "heading", "name": "Fraunces", "fallback": "serif", "sample": "Lunch, like home"}],
  "logoPlaceholder": {"id": "logo-1", "title": "Tiffin", "description": "Stacked tins", "rationale": "Home"},
  "taglineSuggestions": ["Lunch, like home."],
  "brandVoiceDescription": "Warm and reassuring.",
  "socialMockups": [{"type": "instagram_post", "description": "Overhead menu shot"}],
  "collateralMockups": [{"type": "flyer", "description": "A4 flyer"}],
  "websiteHeaderDescription": "Shared lunch table hero",
  "recommendedChannels": [{"channel": "Instagram", "reason": "Visual discovery"}],
  "campaignDirections": [{"title": "Mum's Menu Monday", "concept": "Family recipes", "suggestedVisuals": "Recipe cards"}],
  "nextSteps": ["Register the domain"]
}`

// replyByTask answers preview and full requests with valid bodies.
func replyByTask(_ context.Context, req generation.CompletionRequest) (string, error) {
	if strings.Contains(req.Payload, "full_brand_kit") {
		return fullReply, nil
	}
	return previewReply, nil
}

func canteenBody(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(api.GenerateRequest{Input: domain.BrandInputs{
		BusinessName: "Canteen on Campus",
		Offering:     "Home-style lunch subscription",
		Scope:        domain.ScopeLocal,
		VisualStyle:  domain.VisualStylePlayful,
	}})
	require.NoError(t, err)
	return body
}

// newTestRouter wires the real generation client, service and handlers around
// provider and an in-memory store.
func newTestRouter(t *testing.T, cfg *config.Config, provider generation.Provider) (*application, http.Handler) {
	t.Helper()
	log, _ := logger.NewTestLogger()
	app, err := assemble(cfg, log, provider, memory.NewKitStore(log))
	require.NoError(t, err)
	return app, app.setupRouter()
}

func doRequest(h http.Handler, method, target string, body []byte, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

func TestRouter_PreviewEndToEnd(t *testing.T) {
	provider := &mocks.MockProvider{CompleteFn: replyByTask}
	_, router := newTestRouter(t, testConfig(), provider)

	rec := doRequest(router, http.MethodPost, "/api/brandkits/preview", canteenBody(t), nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var preview domain.BrandKitPreview
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&preview))
	assert.Len(t, preview.Colors, 2)
	assert.Equal(t, []string{"Lunch, like home."}, preview.TaglineSuggestions)
	assert.NotEmpty(t, rec.Header().Get(shared.TraceIDHeader))
	require.Len(t, provider.Requests(), 1)
}

func TestRouter_FullKitIsPersistedAndRetrievable(t *testing.T) {
	provider := &mocks.MockProvider{CompleteFn: replyByTask}
	_, router := newTestRouter(t, testConfig(), provider)

	rec := doRequest(router, http.MethodPost, "/api/brandkits/full", canteenBody(t), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var created domain.BrandKitFull
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, "/api/brandkits/"+created.ID.String(), rec.Header().Get("Location"))

	rec = doRequest(router, http.MethodGet, "/api/brandkits/"+created.ID.String(), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var loaded domain.BrandKitFull
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&loaded))
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, created.BrandVoiceDescription, loaded.BrandVoiceDescription)
	assert.True(t, created.CreatedAt.Equal(loaded.CreatedAt))
}

func TestRouter_ErrorMapping(t *testing.T) {
	testCases := []struct {
		name          string
		provider      *mocks.MockProvider
		body          []byte
		wantStatus    int
		wantKind      string
		wantRetryable bool
		wantCalls     int
	}{
		{
			name:       "missing credential",
			provider:   &mocks.MockProvider{NoCredential: true},
			wantStatus: http.StatusInternalServerError,
			wantKind:   string(generation.KindConfiguration),
			wantCalls:  0,
		},
		{
			name:          "malformed reply",
			provider:      &mocks.MockProvider{Reply: "Sure! Here is your brand kit."},
			wantStatus:    http.StatusBadGateway,
			wantKind:      string(generation.KindMalformedResponse),
			wantRetryable: true,
			wantCalls:     1,
		},
		{
			name:          "schema violation",
			provider:      &mocks.MockProvider{Reply: `{"fonts": [], "logoPlaceholder": {}, "taglineSuggestions": []}`},
			wantStatus:    http.StatusBadGateway,
			wantKind:      string(generation.KindSchemaViolation),
			wantRetryable: true,
			wantCalls:     1,
		},
		{
			name:          "provider transport",
			provider:      &mocks.MockProvider{Err: errors.New("connection reset by peer")},
			wantStatus:    http.StatusBadGateway,
			wantKind:      string(generation.KindProviderTransport),
			wantRetryable: true,
			wantCalls:     1,
		},
		{
			name:       "empty business name",
			provider:   &mocks.MockProvider{Reply: previewReply},
			body:       []byte(`{"input": {"businessName": "", "offering": "Lunch"}}`),
			wantStatus: http.StatusBadRequest,
			wantKind:   string(generation.KindInvalidInput),
			wantCalls:  0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, router := newTestRouter(t, testConfig(), tc.provider)
			body := tc.body
			if body == nil {
				body = canteenBody(t)
			}

			rec := doRequest(router, http.MethodPost, "/api/brandkits/preview", body, nil)

			assert.Equal(t, tc.wantStatus, rec.Code, rec.Body.String())
			resp := decodeError(t, rec)
			assert.Equal(t, tc.wantKind, resp.Kind)
			assert.Equal(t, tc.wantRetryable, resp.Retryable)
			assert.NotEmpty(t, resp.Error)
			assert.NotEmpty(t, resp.TraceID)
			assert.Len(t, tc.provider.Requests(), tc.wantCalls)
		})
	}
}

func TestRouter_RetryPolicyRecoversFromTransientFailure(t *testing.T) {
	cfg := testConfig()
	cfg.Generation.MaxAttempts = 2
	cfg.Generation.RetryDelaySeconds = 0

	calls := 0
	provider := &mocks.MockProvider{
		CompleteFn: func(ctx context.Context, req generation.CompletionRequest) (string, error) {
			calls++
			if calls == 1 {
				return "not json", nil
			}
			return replyByTask(ctx, req)
		},
	}
	_, router := newTestRouter(t, cfg, provider)

	rec := doRequest(router, http.MethodPost, "/api/brandkits/preview", canteenBody(t), nil)

	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, 2, calls)
}

func TestRouter_GetBrandKit(t *testing.T) {
	_, router := newTestRouter(t, testConfig(), &mocks.MockProvider{})

	t.Run("malformed id", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/brandkits/not-a-uuid", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown id", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/api/brandkits/"+uuid.NewString(), nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Brand kit not found", decodeError(t, rec).Error)
	})
}

func TestRouter_Health(t *testing.T) {
	_, router := newTestRouter(t, testConfig(), &mocks.MockProvider{NoCredential: true, ProviderName: "groq"})

	rec := doRequest(router, http.MethodGet, "/health", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp api.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "groq", resp.Provider)
	assert.False(t, resp.Configured)
	assert.Equal(t, "memory", resp.Store)
	assert.Equal(t, "standard", resp.Profile)
}

func TestRouter_Metrics(t *testing.T) {
	_, router := newTestRouter(t, testConfig(), &mocks.MockProvider{CompleteFn: replyByTask})

	rec := doRequest(router, http.MethodPost, "/api/brandkits/preview", canteenBody(t), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(router, http.MethodGet, "/metrics", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `brandkit_http_requests_total{method="POST",route="/api/brandkits/preview",status="200"} 1`)
	assert.Contains(t, body, "brandkit_generation_total")
}

func TestRouter_Authentication(t *testing.T) {
	cfg := testConfig()
	cfg.Auth.JWTSecret = testJWTSecret
	app, router := newTestRouter(t, cfg, &mocks.MockProvider{CompleteFn: replyByTask})

	t.Run("missing token", func(t *testing.T) {
		rec := doRequest(router, http.MethodPost, "/api/brandkits/preview", canteenBody(t), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := app.jwtService.GenerateToken(context.Background(), "studio-frontend")
		require.NoError(t, err)

		header := http.Header{"Authorization": []string{"Bearer " + token}}
		rec := doRequest(router, http.MethodPost, "/api/brandkits/preview", canteenBody(t), header)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("health stays public", func(t *testing.T) {
		rec := doRequest(router, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
