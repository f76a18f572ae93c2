package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/redact"
)

// maxLoggedReply bounds how much of a bad reply is written to logs.
const maxLoggedReply = 2048

// Request states, logged with the "state" attribute.
const (
	stateRequestBuilt     = "request_built"
	stateAwaitingProvider = "awaiting_provider"
	stateParsed           = "parsed"
	stateValidated        = "validated"
	stateAssembled        = "assembled"
	stateDone             = "done"
	stateFailed           = "failed"
)

// errMissingCredential is the cause attached to configuration failures
// detected before any provider call.
var errMissingCredential = errors.New("provider credential is not set")

// Client is the structured generation client. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	provider  Provider
	logger    *slog.Logger
	profile   Profile
	assembler *Assembler
}

// Option configures a Client.
type Option func(*Client)

// WithProfile selects the full-mode schema profile.
func WithProfile(p Profile) Option {
	return func(c *Client) {
		c.profile = p
	}
}

// WithAssembler replaces the default Assembler.
func WithAssembler(a *Assembler) Option {
	return func(c *Client) {
		if a != nil {
			c.assembler = a
		}
	}
}

// NewClient creates a Client for provider. A nil provider is accepted: every
// call then fails with KindConfiguration, so a server can start without a
// credential and report the problem per request.
func NewClient(log *slog.Logger, provider Provider, opts ...Option) *Client {
	if log == nil {
		log = slog.Default()
	}
	c := &Client{
		provider:  provider,
		logger:    log.With("component", "generation_client"),
		profile:   ProfileStandard,
		assembler: NewAssembler(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ Generator = (*Client)(nil)

// Profile returns the full-mode profile the client was built with.
func (c *Client) Profile() Profile {
	return c.profile
}

// Schema returns the reply schema for mode, and false for unknown modes.
func (c *Client) Schema(mode Mode) (Schema, bool) {
	switch mode {
	case ModePreview:
		return PreviewSchema(), true
	case ModeFull:
		return FullSchema(c.profile), true
	default:
		return Schema{}, false
	}
}

// Generate performs one generation: at most one provider call, then parse,
// validate and (for full mode) assemble. It never returns a partially
// populated result; every failure is an *Error.
func (c *Client) Generate(ctx context.Context, mode Mode, input domain.BrandInputs) (*Result, error) {
	log := logger.FromContextOrDefault(ctx, c.logger).With("mode", string(mode))

	schema, ok := c.Schema(mode)
	if !ok {
		return nil, c.fail(log, &Error{
			Kind: KindInvalidInput,
			Mode: mode,
			Err:  fmt.Errorf("unknown generation mode %q", mode),
		})
	}

	if err := input.Validate(); err != nil {
		return nil, c.fail(log, &Error{Kind: KindInvalidInput, Mode: mode, Err: err})
	}

	if c.provider == nil || !c.provider.HasCredential() {
		return nil, c.fail(log, &Error{Kind: KindConfiguration, Mode: mode, Err: errMissingCredential})
	}

	req, err := buildRequest(mode, schema, input)
	if err != nil {
		return nil, c.fail(log, &Error{Kind: KindInvalidInput, Mode: mode, Err: err})
	}
	log.Debug("generation state", "state", stateRequestBuilt, "schema", schema.Name)

	log.Debug("generation state", "state", stateAwaitingProvider, "provider", c.provider.Name())
	raw, err := c.provider.Complete(ctx, req)

	// A finished context wins over whatever the provider returned.
	if ctxErr := ctx.Err(); ctxErr != nil {
		kind := KindCancelled
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			kind = KindTimeout
		}
		return nil, c.fail(log, &Error{Kind: kind, Mode: mode, Err: ctxErr})
	}
	if err != nil {
		kind := KindProviderTransport
		if errors.Is(err, ErrConfiguration) {
			kind = KindConfiguration
		}
		return nil, c.fail(log, &Error{Kind: kind, Mode: mode, Err: err})
	}

	obj, err := parseObject(raw)
	if err != nil {
		return nil, c.fail(log, &Error{Kind: KindMalformedResponse, Mode: mode, Raw: raw, Err: err})
	}
	log.Debug("generation state", "state", stateParsed)

	if violations := schema.Validate(obj); len(violations) > 0 {
		return nil, c.fail(log, &Error{
			Kind:       KindSchemaViolation,
			Mode:       mode,
			Violations: violations,
			Raw:        raw,
		})
	}
	log.Debug("generation state", "state", stateValidated)

	result := &Result{Mode: mode}
	switch mode {
	case ModePreview:
		var preview domain.BrandKitPreview
		if err := json.Unmarshal([]byte(raw), &preview); err != nil {
			return nil, c.fail(log, &Error{Kind: KindMalformedResponse, Mode: mode, Raw: raw, Err: err})
		}
		result.Preview = &preview

	case ModeFull:
		var content domain.BrandKitContent
		if err := json.Unmarshal([]byte(raw), &content); err != nil {
			return nil, c.fail(log, &Error{Kind: KindMalformedResponse, Mode: mode, Raw: raw, Err: err})
		}
		result.Full = c.assembler.Assemble(content)
		log.Debug("generation state", "state", stateAssembled, "kit_id", result.Full.ID.String())
	}

	log.Debug("generation state", "state", stateDone)
	return result, nil
}

// GeneratePreview implements Generator.
func (c *Client) GeneratePreview(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitPreview, error) {
	result, err := c.Generate(ctx, ModePreview, input)
	if err != nil {
		return nil, err
	}
	return result.Preview, nil
}

// GenerateFull implements Generator.
func (c *Client) GenerateFull(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitFull, error) {
	result, err := c.Generate(ctx, ModeFull, input)
	if err != nil {
		return nil, err
	}
	return result.Full, nil
}

// fail logs the terminal Failed state and returns genErr.
func (c *Client) fail(log *slog.Logger, genErr *Error) error {
	attrs := []any{
		"state", stateFailed,
		"kind", string(genErr.Kind),
		"error", redact.Error(genErr),
	}
	if genErr.Raw != "" {
		attrs = append(attrs, "raw_reply", redact.Truncate(redact.String(genErr.Raw), maxLoggedReply))
	}

	switch genErr.Kind {
	case KindConfiguration:
		log.Error("generation failed", attrs...)
	case KindInvalidInput, KindCancelled:
		log.Debug("generation failed", attrs...)
	default:
		log.Warn("generation failed", attrs...)
	}
	return genErr
}

// parseObject decodes raw as exactly one JSON object. Nothing is stripped:
// code fences, prose or trailing data all make the reply malformed.
func parseObject(raw string) (map[string]any, error) {
	dec := json.NewDecoder(strings.NewReader(raw))

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("failed to decode reply: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("reply has trailing data after the JSON value")
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("reply is a JSON %s, not an object", jsonType(v))
	}
	return obj, nil
}
