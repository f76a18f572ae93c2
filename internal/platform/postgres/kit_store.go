package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/store"
)

// PostgresKitStore implements the store.KitStore interface
// using a PostgreSQL database as the storage backend.
type PostgresKitStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresKitStore creates a new PostgreSQL implementation of the KitStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresKitStore(db store.DBTX, logger *slog.Logger) *PostgresKitStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresKitStore{
		db:     db,
		logger: logger.With(slog.String("component", "kit_store")),
	}
}

// Ensure PostgresKitStore implements store.KitStore interface
var _ store.KitStore = (*PostgresKitStore)(nil)

// Put implements store.KitStore.Put as an upsert keyed by kit id.
func (s *PostgresKitStore) Put(ctx context.Context, kit *domain.BrandKitFull) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := store.ValidateKit(kit); err != nil {
		log.Warn("brand kit validation failed during put",
			slog.String("error", err.Error()))
		return err
	}

	payload, err := json.Marshal(kit)
	if err != nil {
		return store.NewStoreError(store.KitEntity, "put", "failed to encode kit", err)
	}

	query := `
		INSERT INTO brand_kits (id, created_at, kit)
		VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE
		SET created_at = EXCLUDED.created_at,
		    kit = EXCLUDED.kit,
		    updated_at = NOW()
	`
	if _, err := s.db.ExecContext(ctx, query, kit.ID, kit.CreatedAt, payload); err != nil {
		mapped := MapError(err)
		log.Error("failed to store brand kit",
			slog.String("error", err.Error()),
			slog.String("kit_id", kit.ID.String()))
		if errors.Is(mapped, store.ErrInvalidEntity) {
			return mapped
		}
		return store.NewStoreError(store.KitEntity, "put", "failed to store kit", mapped)
	}

	log.Info("brand kit stored successfully",
		slog.String("kit_id", kit.ID.String()))
	return nil
}

// Get implements store.KitStore.Get.
// Returns store.ErrKitNotFound if the kit does not exist.
func (s *PostgresKitStore) Get(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving brand kit by ID", slog.String("kit_id", id.String()))

	query := `
		SELECT kit
		FROM brand_kits
		WHERE id = $1
	`

	var payload []byte
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&payload); err != nil {
		mapped := MapError(err)
		if errors.Is(mapped, store.ErrKitNotFound) {
			log.Debug("brand kit not found", slog.String("kit_id", id.String()))
			return nil, mapped
		}
		log.Error("failed to get brand kit",
			slog.String("error", err.Error()),
			slog.String("kit_id", id.String()))
		return nil, store.NewStoreError(store.KitEntity, "get", "failed to query kit", mapped)
	}

	var kit domain.BrandKitFull
	if err := json.Unmarshal(payload, &kit); err != nil {
		return nil, store.NewStoreError(store.KitEntity, "get", "failed to decode kit", err)
	}
	if kit.ID != id {
		return nil, store.NewStoreError(store.KitEntity, "get",
			fmt.Sprintf("stored kit id %s does not match row id %s", kit.ID, id), nil)
	}

	return &kit, nil
}
