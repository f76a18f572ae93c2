package generation

import (
	"context"
	"fmt"

	"github.com/phrazzld/brandkit-api/internal/domain"
)

// Mode selects what the model is asked to produce.
type Mode string

// Generation modes.
const (
	// ModePreview produces a BrandKitPreview. Previews skip assembly.
	ModePreview Mode = "preview"
	// ModeFull produces an assembled BrandKitFull.
	ModeFull Mode = "full"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == ModePreview || m == ModeFull
}

// task is the value sent in the payload's "task" field.
func (m Mode) task() string {
	if m == ModeFull {
		return "full_brand_kit"
	}
	return string(m)
}

// Profile selects how rich the full-mode schema is.
type Profile string

// Full-kit profiles.
const (
	ProfileStandard Profile = "standard"
	// ProfileExtended adds sample logos, typography systems, posters and
	// social posts to the full kit.
	ProfileExtended Profile = "extended"
)

// ParseProfile converts a configuration value into a Profile.
func ParseProfile(s string) (Profile, error) {
	switch Profile(s) {
	case ProfileStandard, ProfileExtended:
		return Profile(s), nil
	case "":
		return ProfileStandard, nil
	default:
		return "", fmt.Errorf("%w: unknown profile %q", ErrConfiguration, s)
	}
}

// CompletionRequest is everything a provider needs for one completion.
type CompletionRequest struct {
	// SystemInstruction fixes the responder's role and output rules.
	SystemInstruction string
	// SchemaDescription lists every required top-level field for the mode.
	SchemaDescription string
	// Payload is the user content: the task and the caller's inputs as JSON.
	Payload string
}

// SystemPrompt joins the instruction and schema description for providers
// that accept a single system message.
func (r CompletionRequest) SystemPrompt() string {
	return r.SystemInstruction + "\n\n" + r.SchemaDescription
}

// Provider is an external text-completion service.
type Provider interface {
	// Name identifies the provider in logs and metrics.
	Name() string

	// HasCredential reports whether the provider was configured with a
	// credential. It must not perform any I/O.
	HasCredential() bool

	// Complete performs exactly one completion call and returns the reply
	// text verbatim.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Result is the outcome of a successful Generate call. Exactly one of
// Preview and Full is set, matching Mode.
type Result struct {
	Mode    Mode
	Preview *domain.BrandKitPreview
	Full    *domain.BrandKitFull
}

// Generator defines the interface for generating brand kits from inputs.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// GeneratePreview produces the lightweight preview artifact.
	GeneratePreview(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitPreview, error)

	// GenerateFull produces a complete kit carrying a fresh id and creation
	// time. Failures are *Error values (see errors.go for the kinds).
	GenerateFull(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitFull, error)
}
