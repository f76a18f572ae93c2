package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/brandkit-api/internal/api/shared"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/generation"
	"github.com/phrazzld/brandkit-api/internal/service"
	"github.com/phrazzld/brandkit-api/internal/service/auth"
	"github.com/phrazzld/brandkit-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func genErr(kind generation.Kind, cause error) error {
	return &generation.Error{Kind: kind, Mode: generation.ModeFull, Err: cause}
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", genErr(generation.KindInvalidInput, nil), http.StatusBadRequest},
		{"configuration", genErr(generation.KindConfiguration, nil), http.StatusInternalServerError},
		{"malformed", genErr(generation.KindMalformedResponse, nil), http.StatusBadGateway},
		{"schema", genErr(generation.KindSchemaViolation, nil), http.StatusBadGateway},
		{"transport", genErr(generation.KindProviderTransport, nil), http.StatusBadGateway},
		{"timeout", genErr(generation.KindTimeout, nil), http.StatusGatewayTimeout},
		{"cancelled", genErr(generation.KindCancelled, nil), http.StatusServiceUnavailable},
		{"wrapped generation error", fmt.Errorf("handler: %w", genErr(generation.KindTimeout, nil)), http.StatusGatewayTimeout},
		{"kit not found", store.ErrKitNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", store.ErrKitNotFound), http.StatusNotFound},
		{"bad body", fmt.Errorf("%w: EOF", shared.ErrInvalidRequestBody), http.StatusBadRequest},
		{"bad path id", fmt.Errorf("%w: id: has invalid format", domain.ErrValidation), http.StatusBadRequest},
		{"expired token", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"persistence", service.NewBrandKitServiceError("create_kit", "failed", service.ErrPersistence), http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestErrorKind(t *testing.T) {
	kind, retry := ErrorKind(genErr(generation.KindSchemaViolation, nil))
	assert.Equal(t, "schema_violation", kind)
	assert.True(t, retry)

	kind, retry = ErrorKind(genErr(generation.KindConfiguration, nil))
	assert.Equal(t, "configuration", kind)
	assert.False(t, retry)

	kind, retry = ErrorKind(store.ErrKitNotFound)
	assert.Equal(t, shared.KindNotFound, kind)
	assert.False(t, retry)

	kind, _ = ErrorKind(errors.New("boom"))
	assert.Equal(t, shared.KindInternal, kind)
}

func TestGetSafeErrorMessage(t *testing.T) {
	emptyName := domain.BrandInputs{Offering: "lunches"}.Validate()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "An unexpected error occurred"},
		{
			"invalid inputs name the field",
			genErr(generation.KindInvalidInput, emptyName),
			"Invalid brand inputs: businessName: business name cannot be empty",
		},
		{"unknown mode", genErr(generation.KindInvalidInput, errors.New(`unknown generation mode "x"`)), "Invalid brand inputs"},
		{"configuration", genErr(generation.KindConfiguration, nil), "Brand kit generation is not configured on this server"},
		{"timeout", genErr(generation.KindTimeout, nil), "Brand kit generation timed out, please try again"},
		{"not found", store.ErrKitNotFound, "Brand kit not found"},
		{"bad body", fmt.Errorf("%w: EOF", shared.ErrInvalidRequestBody), "Invalid request format"},
		{"bad path", fmt.Errorf("%w: id: has invalid format", domain.ErrValidation), "Validation error: id: has invalid format"},
		{"wrong token type", auth.ErrWrongTokenType, "Invalid token"},
		{"internal detail hidden", errors.New("pq: password authentication failed for user brandkit"), "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetSafeErrorMessage(tt.err))
		})
	}
}

func TestGetSafeErrorMessage_NeverLeaksRawReply(t *testing.T) {
	err := &generation.Error{
		Kind: generation.KindMalformedResponse,
		Mode: generation.ModePreview,
		Raw:  "Sure! Here is your brand kit for Canteen on Campus: ```json",
		Err:  errors.New("invalid character 'S' looking for beginning of value"),
	}

	msg := GetSafeErrorMessage(err)

	assert.NotContains(t, msg, "Canteen")
	assert.NotContains(t, msg, "invalid character")
}
