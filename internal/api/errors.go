package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/phrazzld/brandkit-api/internal/api/shared"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/generation"
	"github.com/phrazzld/brandkit-api/internal/service/auth"
	"github.com/phrazzld/brandkit-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to appropriate HTTP status codes
// based on the error type. This prevents leaking internal error types or
// messages to clients.
func MapErrorToStatusCode(err error) int {
	if kind, ok := generation.KindOf(err); ok {
		switch kind {
		case generation.KindInvalidInput:
			return http.StatusBadRequest
		case generation.KindConfiguration:
			return http.StatusInternalServerError
		case generation.KindMalformedResponse,
			generation.KindSchemaViolation,
			generation.KindProviderTransport:
			return http.StatusBadGateway
		case generation.KindTimeout:
			return http.StatusGatewayTimeout
		case generation.KindCancelled:
			return http.StatusServiceUnavailable
		}
	}

	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrWrongTokenType),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Not found errors
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// Bad request errors
	case errors.Is(err, shared.ErrInvalidRequestBody),
		errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// ErrorKind returns the machine-readable kind reported in error bodies and
// whether the client may retry the same request.
func ErrorKind(err error) (string, bool) {
	if kind, ok := generation.KindOf(err); ok {
		return string(kind), kind.Retryable()
	}
	return shared.KindForStatus(MapErrorToStatusCode(err)), false
}

// GetSafeErrorMessage returns a sanitized, user-friendly error message
// based on the error type. This prevents leaking sensitive internal details.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	if kind, ok := generation.KindOf(err); ok {
		switch kind {
		case generation.KindInvalidInput:
			if detail := validationDetail(err); detail != "" {
				return "Invalid brand inputs: " + detail
			}
			return "Invalid brand inputs"
		case generation.KindConfiguration:
			return "Brand kit generation is not configured on this server"
		case generation.KindMalformedResponse, generation.KindSchemaViolation:
			return "The model returned an unusable brand kit, please try again"
		case generation.KindProviderTransport:
			return "The generation service is unavailable, please try again"
		case generation.KindTimeout:
			return "Brand kit generation timed out, please try again"
		case generation.KindCancelled:
			return "The request was cancelled"
		}
	}

	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrMissingToken):
		return "Authorization header required"
	case MapErrorToStatusCode(err) == http.StatusUnauthorized:
		return "Invalid token"

	case store.IsNotFoundError(err):
		return "Brand kit not found"

	case errors.Is(err, shared.ErrInvalidRequestBody):
		return "Invalid request format"

	case errors.Is(err, domain.ErrValidation):
		if detail := validationDetail(err); detail != "" {
			return "Validation error: " + detail
		}
		return "Validation error"

	default:
		return "An unexpected error occurred"
	}
}

// validationDetail extracts the field-level part of a domain validation
// error, e.g. "businessName: business name cannot be empty". It returns ""
// for anything that is not a domain validation error.
func validationDetail(err error) string {
	if !errors.Is(err, domain.ErrValidation) {
		return ""
	}

	msg := err.Error()
	marker := domain.ErrValidation.Error() + ": "
	if i := strings.Index(msg, marker); i >= 0 {
		return msg[i+len(marker):]
	}
	return ""
}

// HandleAPIError writes the error response for err. fallbackMessage, when
// non-empty, replaces the generic 500 message.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, fallbackMessage string) {
	status := MapErrorToStatusCode(err)
	message := GetSafeErrorMessage(err)
	if status == http.StatusInternalServerError && fallbackMessage != "" {
		if _, isGen := generation.KindOf(err); !isGen {
			message = fallbackMessage
		}
	}

	kind, retryable := ErrorKind(err)
	shared.RespondWithErrorAndLog(w, r, status, message, err,
		shared.WithErrorKind(kind, retryable))
}
