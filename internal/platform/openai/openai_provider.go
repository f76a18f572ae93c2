package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/brandkit-api/internal/config"
	"github.com/phrazzld/brandkit-api/internal/generation"
	gopenai "github.com/sashabaranov/go-openai"
)

// Defaults applied when the corresponding llm settings are empty.
const (
	DefaultBaseURL   = "https://api.groq.com/openai/v1"
	DefaultModel     = "llama-3.1-8b-instant"
	DefaultMaxTokens = 2048
)

const providerName = "openai"

// ChatCompleter is the subset of *gopenai.Client used by Provider.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req gopenai.ChatCompletionRequest) (gopenai.ChatCompletionResponse, error)
}

// Provider implements generation.Provider over chat completions.
type Provider struct {
	logger *slog.Logger

	// client is nil when no API key was configured
	client ChatCompleter

	model       string
	temperature float32
	maxTokens   int
	jsonMode    bool
}

var _ generation.Provider = (*Provider)(nil)

// NewProvider creates a provider from configuration. An empty API key yields
// a provider without a credential rather than an error.
func NewProvider(logger *slog.Logger, cfg config.LLMConfig) *Provider {
	if logger == nil {
		logger = slog.Default()
	}

	if cfg.APIKey == "" {
		logger.Warn("LLM API key is not set, generation requests will fail",
			"component", "openai_provider")
		return NewProviderWithClient(logger, cfg, nil)
	}

	clientConfig := gopenai.DefaultConfig(cfg.APIKey)
	clientConfig.BaseURL = DefaultBaseURL
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return NewProviderWithClient(logger, cfg, gopenai.NewClientWithConfig(clientConfig))
}

// NewProviderWithClient creates a provider around an existing client. A nil
// client yields a provider without a credential.
func NewProviderWithClient(logger *slog.Logger, cfg config.LLMConfig, client ChatCompleter) *Provider {
	if logger == nil {
		logger = slog.Default()
	}

	model := cfg.ModelName
	if model == "" {
		model = DefaultModel
	}
	maxTokens := cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = DefaultMaxTokens
	}

	return &Provider{
		logger:      logger.With("component", "openai_provider"),
		client:      client,
		model:       model,
		temperature: float32(cfg.Temperature),
		maxTokens:   maxTokens,
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

// Model returns the model name requests are sent to.
func (p *Provider) Model() string {
	return p.model
}

// Complete implements generation.Provider with a single chat completion.
func (p *Provider) Complete(ctx context.Context, req generation.CompletionRequest) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("%w: LLM API key is not set", generation.ErrConfiguration)
	}

	chatReq := gopenai.ChatCompletionRequest{
		Model: p.model,
		Messages: []gopenai.ChatCompletionMessage{
			{
				Role:    gopenai.ChatMessageRoleSystem,
				Content: req.SystemPrompt(),
			},
			{
				Role:    gopenai.ChatMessageRoleUser,
				Content: req.Payload,
			},
		},
		Temperature: p.temperature,
		MaxTokens:   p.maxTokens,
	}
	if p.jsonMode {
		chatReq.ResponseFormat = &gopenai.ChatCompletionResponseFormat{
			Type: gopenai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	p.logger.DebugContext(ctx, "Making chat completion call",
		"model", p.model,
		"payload_length", len(req.Payload))

	resp, err := p.client.CreateChatCompletion(ctx, chatReq)
	if err != nil {
		return "", classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}

	choice := resp.Choices[0]
	if choice.FinishReason == gopenai.FinishReasonContentFilter {
		return "", fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, choice.FinishReason)
	}

	return choice.Message.Content, nil
}

// classifyError marks rejected credentials as configuration problems; every
// other failure is left for the client to treat as transport.
func classifyError(err error) error {
	var apiErr *gopenai.APIError
	if errors.As(err, &apiErr) {
		if apiErr.HTTPStatusCode == http.StatusUnauthorized || apiErr.HTTPStatusCode == http.StatusForbidden {
			return fmt.Errorf("%w: provider rejected the credential: %w", generation.ErrConfiguration, err)
		}
	}
	return fmt.Errorf("chat completion failed: %w", err)
}
