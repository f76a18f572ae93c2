package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/brandkit-api/internal/config"
	"github.com/phrazzld/brandkit-api/internal/generation"
	"google.golang.org/genai"
)

// DefaultModel is used when llm.model_name is empty.
const DefaultModel = "gemini-2.0-flash"

const providerName = "gemini"

// ContentGenerator is the subset of the genai client used by Provider.
// *genai.Models satisfies it.
type ContentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Provider implements generation.Provider using the Gemini API.
type Provider struct {
	// logger is used for structured logging
	logger *slog.Logger

	// client is nil when no API key was configured
	client ContentGenerator

	model       string
	temperature float32
	jsonMode    bool
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a Gemini provider from configuration. An empty API key
// is not an error: the provider is returned without a client and every
// generation request fails fast with a configuration error.
func NewProvider(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Provider, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.APIKey == "" {
		logger.Warn("gemini API key is not set, generation requests will fail",
			"component", "gemini_provider")
		return NewProviderWithClient(logger, cfg, nil), nil
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrConfiguration, err)
	}

	return NewProviderWithClient(logger, cfg, client.Models), nil
}

// NewProviderWithClient creates a provider around an existing client. A nil
// client yields a provider without a credential.
func NewProviderWithClient(logger *slog.Logger, cfg config.LLMConfig, client ContentGenerator) *Provider {
	if logger == nil {
		logger = slog.Default()
	}

	model := cfg.ModelName
	if model == "" {
		model = DefaultModel
	}

	return &Provider{
		logger:      logger.With("component", "gemini_provider"),
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
		jsonMode:    cfg.JSONMode,
	}
}

// Name implements generation.Provider.
func (p *Provider) Name() string {
	return providerName
}

// HasCredential implements generation.Provider.
func (p *Provider) HasCredential() bool {
	return p.client != nil
}

// Model returns the Gemini model name requests are sent to.
func (p *Provider) Model() string {
	return p.model
}

// Complete implements generation.Provider with a single GenerateContent call.
func (p *Provider) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("%w: gemini API key is not set", generation.ErrConfiguration)
	}

	temperature := p.temperature
	genConfig := &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemPrompt()}},
		},
		Temperature: &temperature,
	}
	if p.jsonMode {
		genConfig.ResponseMIMEType = "application/json"
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: req.Payload}},
		},
	}

	p.logger.DebugContext(ctx, "Making Gemini API call",
		"model", p.model,
		"payload_length", len(req.Payload))

	resp, err := p.client.GenerateContent(ctx, p.model, contents, genConfig)
	if err != nil {
		return "", classifyError(err)
	}

	return extractText(resp)
}

// classifyError marks rejected credentials as configuration failures. Every
// other error is left for the client to treat as a transport failure.
func classifyError(err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) &&
		(apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden) {
		return fmt.Errorf("%w: gemini rejected the credential: %w", generation.ErrConfiguration, err)
	}
	return fmt.Errorf("gemini API call failed: %w", err)
}

// extractText concatenates the text parts of the first candidate.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("gemini returned a nil response")
	}
	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini returned no candidates")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return "", fmt.Errorf("%w: candidate finished with reason %s", generation.ErrContentBlocked, candidate.FinishReason)
	}
	if candidate.Content == nil {
		return "", errors.New("gemini candidate has no content")
	}

	var b strings.Builder
	for _, part := range candidate.Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String(), nil
}
