package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/brandkit-api/internal/api"
	"github.com/phrazzld/brandkit-api/internal/config"
	"github.com/phrazzld/brandkit-api/internal/generation"
	"github.com/phrazzld/brandkit-api/internal/metrics"
	"github.com/phrazzld/brandkit-api/internal/platform/filestore"
	"github.com/phrazzld/brandkit-api/internal/platform/gemini"
	"github.com/phrazzld/brandkit-api/internal/platform/memory"
	kitmongo "github.com/phrazzld/brandkit-api/internal/platform/mongo"
	"github.com/phrazzld/brandkit-api/internal/platform/openai"
	"github.com/phrazzld/brandkit-api/internal/platform/postgres"
	kitredis "github.com/phrazzld/brandkit-api/internal/platform/redis"
	"github.com/phrazzld/brandkit-api/internal/service"
	"github.com/phrazzld/brandkit-api/internal/service/auth"
	"github.com/phrazzld/brandkit-api/internal/store"
)

// application holds all the dependencies for the server.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	provider  generation.Provider
	generator *generation.Client
	kits      store.KitStore
	service   service.BrandKitService
	metrics   *metrics.Metrics

	// jwtService is nil when authentication is disabled.
	jwtService auth.JWTService

	closers []func() error
}

// newApplication builds the provider and kit store named by cfg and wires
// them into an application.
func newApplication(ctx context.Context, cfg *config.Config, log *slog.Logger) (*application, error) {
	provider, err := newProvider(ctx, cfg.LLM, log)
	if err != nil {
		return nil, err
	}

	kits, closers, err := openKitStore(ctx, cfg.Store, log)
	if err != nil {
		return nil, err
	}

	app, err := assemble(cfg, log, provider, kits)
	if err != nil {
		closeAll(log, closers)
		return nil, err
	}
	app.closers = closers
	return app, nil
}

// assemble wires the generation client, service, metrics and optional auth
// around an already constructed provider and store.
func assemble(
	cfg *config.Config,
	log *slog.Logger,
	provider generation.Provider,
	kits store.KitStore,
) (*application, error) {
	profile, err := generation.ParseProfile(cfg.LLM.Profile)
	if err != nil {
		return nil, err
	}

	if !provider.HasCredential() {
		log.Error("LLM API key is not set; generation requests will fail until it is configured",
			slog.String("provider", provider.Name()),
			slog.String("env", config.EnvPrefix+"_LLM_API_KEY"))
	}

	m := metrics.New()
	generator := generation.NewClient(log, provider, generation.WithProfile(profile))

	svc, err := service.NewBrandKitService(generator, kits, log,
		service.WithRetryPolicy(service.RetryPolicy{
			MaxAttempts: cfg.Generation.MaxAttempts,
			BaseDelay:   time.Duration(cfg.Generation.RetryDelaySeconds) * time.Second,
		}),
		service.WithMetrics(m, provider.Name(), cfg.Store.Backend),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create brand kit service: %w", err)
	}

	app := &application{
		config:    cfg,
		logger:    log,
		provider:  provider,
		generator: generator,
		kits:      kits,
		service:   svc,
		metrics:   m,
	}

	if cfg.Auth.Enabled() {
		jwtService, err := auth.NewJWTService(cfg.Auth)
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT service: %w", err)
		}
		app.jwtService = jwtService
	} else {
		log.Warn("authentication is disabled; set auth.jwt_secret to require bearer tokens")
	}

	return app, nil
}

// healthInfo reports the live provider and store state for GET /health.
func (app *application) healthInfo() api.HealthResponse {
	return api.HealthResponse{
		Provider:   app.provider.Name(),
		Configured: app.provider.HasCredential(),
		Store:      app.config.Store.Backend,
		Profile:    string(app.generator.Profile()),
	}
}

// cleanup releases store connections. It is safe to call more than once.
func (app *application) cleanup() {
	closeAll(app.logger, app.closers)
	app.closers = nil
}

func closeAll(log *slog.Logger, closers []func() error) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i](); err != nil {
			log.Error("failed to close resource", slog.String("error", err.Error()))
		}
	}
}

// newProvider constructs the generation provider named by cfg.Provider.
func newProvider(ctx context.Context, cfg config.LLMConfig, log *slog.Logger) (generation.Provider, error) {
	switch cfg.Provider {
	case "openai":
		return openai.NewProvider(log, cfg), nil
	case "gemini":
		p, err := gemini.NewProvider(ctx, log, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini provider: %w", err)
		}
		return p, nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", generation.ErrConfiguration, cfg.Provider)
	}
}

// openKitStore opens the backend named by cfg.Backend. The returned closers
// release any connections the backend holds.
func openKitStore(
	ctx context.Context,
	cfg config.StoreConfig,
	log *slog.Logger,
) (store.KitStore, []func() error, error) {
	switch cfg.Backend {
	case "memory":
		return memory.NewKitStore(log), nil, nil

	case "file":
		kits, err := filestore.NewKitStore(cfg.FileDir, log)
		if err != nil {
			return nil, nil, err
		}
		return kits, nil, nil

	case "postgres":
		db, err := postgres.Open(ctx, cfg.DatabaseURL, log)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, db, log); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewPostgresKitStore(db, log), []func() error{db.Close}, nil

	case "redis":
		rdb, err := kitredis.Open(ctx, cfg.RedisURL, log)
		if err != nil {
			return nil, nil, err
		}
		ttl := time.Duration(cfg.RedisTTLHours) * time.Hour
		return kitredis.NewKitStore(rdb, cfg.RedisKeyPrefix, ttl, log), []func() error{rdb.Close}, nil

	case "mongo":
		client, err := kitmongo.Open(ctx, cfg.MongoURI, log)
		if err != nil {
			return nil, nil, err
		}
		disconnect := func() error {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return client.Disconnect(disconnectCtx)
		}
		coll := client.Database(cfg.MongoDatabase).Collection(cfg.MongoCollection)
		if err := kitmongo.EnsureIndexes(ctx, coll); err != nil {
			_ = disconnect()
			return nil, nil, err
		}
		return kitmongo.NewKitStore(coll, log), []func() error{disconnect}, nil

	default:
		return nil, nil, errors.New("unknown store backend: " + cfg.Backend)
	}
}
