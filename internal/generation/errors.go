package generation

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a generation failure so callers can branch on the category
// without inspecting messages.
type Kind string

// Failure kinds.
const (
	KindInvalidInput      Kind = "invalid_input"
	KindConfiguration     Kind = "configuration"
	KindMalformedResponse Kind = "malformed_response"
	KindSchemaViolation   Kind = "schema_violation"
	KindProviderTransport Kind = "provider_transport"
	KindCancelled         Kind = "cancelled"
	KindTimeout           Kind = "timeout"
)

// Common errors returned by the generation package. Every *Error unwraps to
// the sentinel matching its Kind.
var (
	// ErrInvalidInput is returned when the brand inputs or the mode are unusable.
	ErrInvalidInput = errors.New("invalid generation input")

	// ErrConfiguration is returned when the provider credential is absent.
	// Providers may also wrap it to report configuration problems they detect.
	ErrConfiguration = errors.New("generation provider is not configured")

	// ErrMalformedResponse is returned when the reply is not exactly one JSON object.
	ErrMalformedResponse = errors.New("provider reply is not a single JSON object")

	// ErrSchemaViolation is returned when the reply parses but has the wrong shape.
	ErrSchemaViolation = errors.New("provider reply violates the brand kit schema")

	// ErrProviderTransport is returned when the provider call produced no reply.
	ErrProviderTransport = errors.New("provider call failed")

	// ErrCancelled is returned when the caller cancelled the request.
	ErrCancelled = errors.New("generation cancelled")

	// ErrTimeout is returned when the caller's deadline expired.
	ErrTimeout = errors.New("generation timed out")

	// ErrContentBlocked is returned by providers when safety filters suppress
	// the reply. It is classified as a transport failure.
	ErrContentBlocked = errors.New("content blocked by language model safety filters")
)

// Retryable reports whether a fresh, independent call could plausibly succeed.
func (k Kind) Retryable() bool {
	switch k {
	case KindMalformedResponse, KindSchemaViolation, KindProviderTransport:
		return true
	default:
		return false
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindInvalidInput:
		return ErrInvalidInput
	case KindConfiguration:
		return ErrConfiguration
	case KindMalformedResponse:
		return ErrMalformedResponse
	case KindSchemaViolation:
		return ErrSchemaViolation
	case KindProviderTransport:
		return ErrProviderTransport
	case KindCancelled:
		return ErrCancelled
	case KindTimeout:
		return ErrTimeout
	default:
		return nil
	}
}

// Violation is one structural difference between a reply and its schema.
type Violation struct {
	// Path locates the field, e.g. "fonts[1].role".
	Path     string `json:"path"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: expected %s, got %s", v.Path, v.Expected, v.Actual)
}

// Error is the single error type returned by Client.Generate.
type Error struct {
	Kind Kind
	Mode Mode

	// Violations is set for KindSchemaViolation.
	Violations []Violation

	// Raw holds the provider's reply for KindMalformedResponse and
	// KindSchemaViolation. It is for diagnostics only and must not be shown
	// to end users.
	Raw string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface. Raw is never included.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("generate ")
	b.WriteString(string(e.Mode))
	b.WriteString(": ")
	if s := e.Kind.sentinel(); s != nil {
		b.WriteString(s.Error())
	} else {
		b.WriteString(string(e.Kind))
	}

	if len(e.Violations) > 0 {
		b.WriteString(": ")
		b.WriteString(e.Violations[0].String())
		if n := len(e.Violations) - 1; n > 0 {
			fmt.Fprintf(&b, " (and %d more)", n)
		}
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is / errors.As.
func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// KindOf returns the Kind of a generation error anywhere in err's chain.
func KindOf(err error) (Kind, bool) {
	var genErr *Error
	if errors.As(err, &genErr) {
		return genErr.Kind, true
	}
	return "", false
}
