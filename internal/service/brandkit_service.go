package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/generation"
	"github.com/phrazzld/brandkit-api/internal/metrics"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/store"
)

// BrandKitService provides the brand kit use cases exposed over HTTP.
type BrandKitService interface {
	// Preview generates a preview. Nothing is persisted.
	Preview(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitPreview, error)

	// CreateKit generates a full kit and persists it before returning it.
	CreateKit(ctx context.Context, input domain.BrandInputs) (*domain.BrandKitFull, error)

	// GetKit loads a previously created kit.
	// Returns an error wrapping store.ErrKitNotFound if it does not exist.
	GetKit(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error)
}

// BrandKitOption configures optional service behaviour.
type BrandKitOption func(*brandKitServiceImpl)

// WithRetryPolicy enables caller-side retries of retryable generation failures.
func WithRetryPolicy(p RetryPolicy) BrandKitOption {
	return func(s *brandKitServiceImpl) {
		s.retry = p
	}
}

// WithMetrics records generation and store metrics. provider and backend
// become label values.
func WithMetrics(m *metrics.Metrics, provider, backend string) BrandKitOption {
	return func(s *brandKitServiceImpl) {
		s.metrics = m
		s.provider = provider
		s.backend = backend
	}
}

// withSleep replaces the retry wait; used by tests.
func withSleep(fn sleepFunc) BrandKitOption {
	return func(s *brandKitServiceImpl) {
		s.sleep = fn
	}
}

// brandKitServiceImpl implements the BrandKitService interface
type brandKitServiceImpl struct {
	generator generation.Generator
	kits      store.KitStore
	logger    *slog.Logger

	retry   RetryPolicy
	sleep   sleepFunc
	metrics *metrics.Metrics

	provider string
	backend  string
}

// NewBrandKitService creates a new BrandKitService.
// It returns an error if any of the required dependencies are nil.
func NewBrandKitService(
	generator generation.Generator,
	kits store.KitStore,
	logger *slog.Logger,
	opts ...BrandKitOption,
) (BrandKitService, error) {
	if generator == nil {
		return nil, fmt.Errorf("%w: generator", ErrNilDependency)
	}
	if kits == nil {
		return nil, fmt.Errorf("%w: kit store", ErrNilDependency)
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &brandKitServiceImpl{
		generator: generator,
		kits:      kits,
		logger:    logger.With(slog.String("component", "brand_kit_service")),
		sleep:     sleepContext,
		provider:  "unknown",
		backend:   "unknown",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Preview implements BrandKitService.Preview
func (s *brandKitServiceImpl) Preview(
	ctx context.Context,
	input domain.BrandInputs,
) (*domain.BrandKitPreview, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	start := time.Now()

	preview, attempts, err := withRetry(ctx, log, s.retry, s.sleep, generation.ModePreview,
		func(ctx context.Context) (*domain.BrandKitPreview, error) {
			return s.generator.GeneratePreview(ctx, input)
		})
	s.observeGeneration(generation.ModePreview, start, attempts, err)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "Brand kit preview generated",
		slog.Int("attempts", attempts),
		slog.Int("colors", len(preview.Colors)),
		slog.Int("fonts", len(preview.Fonts)))
	return preview, nil
}

// CreateKit implements BrandKitService.CreateKit
func (s *brandKitServiceImpl) CreateKit(
	ctx context.Context,
	input domain.BrandInputs,
) (*domain.BrandKitFull, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	start := time.Now()

	kit, attempts, err := withRetry(ctx, log, s.retry, s.sleep, generation.ModeFull,
		func(ctx context.Context) (*domain.BrandKitFull, error) {
			return s.generator.GenerateFull(ctx, input)
		})
	s.observeGeneration(generation.ModeFull, start, attempts, err)
	if err != nil {
		return nil, err
	}

	if err := s.kits.Put(ctx, kit); err != nil {
		s.observeStore("put", err)
		log.ErrorContext(ctx, "Failed to persist brand kit",
			slog.String("kit_id", kit.ID.String()),
			slog.String("error", err.Error()))
		return nil, NewBrandKitServiceError("create_kit", "failed to save kit",
			fmt.Errorf("%w: %w", ErrPersistence, err))
	}
	s.observeStore("put", nil)

	log.InfoContext(ctx, "Brand kit created",
		slog.String("kit_id", kit.ID.String()),
		slog.Int("attempts", attempts))
	return kit, nil
}

// GetKit implements BrandKitService.GetKit
func (s *brandKitServiceImpl) GetKit(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	kit, err := s.kits.Get(ctx, id)
	s.observeStore("get", err)
	if err != nil {
		if store.IsNotFoundError(err) {
			log.DebugContext(ctx, "Brand kit not found", slog.String("kit_id", id.String()))
			return nil, err
		}
		log.ErrorContext(ctx, "Failed to load brand kit",
			slog.String("kit_id", id.String()),
			slog.String("error", err.Error()))
		return nil, NewBrandKitServiceError("get_kit", "failed to load kit", err)
	}
	return kit, nil
}

func (s *brandKitServiceImpl) observeGeneration(
	mode generation.Mode,
	start time.Time,
	attempts int,
	err error,
) {
	if s.metrics == nil {
		return
	}

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = "internal"
		var genErr *generation.Error
		if errors.As(err, &genErr) {
			outcome = string(genErr.Kind)
			if genErr.Kind == generation.KindSchemaViolation {
				s.metrics.SchemaViolations.WithLabelValues(string(mode)).
					Add(float64(len(genErr.Violations)))
			}
		}
	}

	s.metrics.GenerationTotal.WithLabelValues(string(mode), s.provider, outcome).Inc()
	s.metrics.GenerationDuration.WithLabelValues(string(mode), s.provider).
		Observe(time.Since(start).Seconds())
	s.metrics.GenerationAttempts.WithLabelValues(string(mode)).Observe(float64(attempts))
}

func (s *brandKitServiceImpl) observeStore(operation string, err error) {
	if s.metrics == nil {
		return
	}

	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case store.IsNotFoundError(err):
		outcome = "not_found"
	default:
		outcome = "error"
	}
	s.metrics.StoreOperations.WithLabelValues(s.backend, operation, outcome).Inc()
}
