// Package filestore provides a store.KitStore that keeps one JSON file per
// kit in a directory, named <id>.json.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/phrazzld/brandkit-api/internal/domain"
	"github.com/phrazzld/brandkit-api/internal/platform/logger"
	"github.com/phrazzld/brandkit-api/internal/store"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// KitStore persists kits as files under dir.
type KitStore struct {
	dir    string
	logger *slog.Logger
}

var _ store.KitStore = (*KitStore)(nil)

// NewKitStore creates the directory if needed and returns a store over it.
func NewKitStore(dir string, log *slog.Logger) (*KitStore, error) {
	if dir == "" {
		return nil, errors.New("file store directory cannot be empty")
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, fmt.Errorf("failed to create file store directory: %w", err)
	}
	if log == nil {
		log = slog.Default()
	}
	return &KitStore{
		dir:    dir,
		logger: log.With(slog.String("component", "file_kit_store")),
	}, nil
}

func (s *KitStore) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

// Put implements store.KitStore. The kit is written to a temporary file in
// the same directory and renamed into place, so readers see either the old
// file or the new one, never a partial write.
func (s *KitStore) Put(ctx context.Context, kit *domain.BrandKitFull) error {
	if err := store.ValidateKit(kit); err != nil {
		return err
	}
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := json.MarshalIndent(kit, "", "  ")
	if err != nil {
		return store.NewStoreError(store.KitEntity, "put", "failed to encode kit", err)
	}

	tmp, err := os.CreateTemp(s.dir, kit.ID.String()+".*.tmp")
	if err != nil {
		return store.NewStoreError(store.KitEntity, "put", "failed to create temp file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return store.NewStoreError(store.KitEntity, "put", "failed to write temp file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return store.NewStoreError(store.KitEntity, "put", "failed to close temp file", err)
	}
	if err := os.Chmod(tmpPath, filePerm); err != nil {
		_ = os.Remove(tmpPath)
		return store.NewStoreError(store.KitEntity, "put", "failed to set file mode", err)
	}
	if err := os.Rename(tmpPath, s.path(kit.ID)); err != nil {
		_ = os.Remove(tmpPath)
		return store.NewStoreError(store.KitEntity, "put", "failed to move kit file into place", err)
	}

	log.Debug("brand kit written", slog.String("kit_id", kit.ID.String()))
	return nil
}

// Get implements store.KitStore.
func (s *KitStore) Get(ctx context.Context, id uuid.UUID) (*domain.BrandKitFull, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrKitNotFound
		}
		return nil, store.NewStoreError(store.KitEntity, "get", "failed to read kit file", err)
	}

	var kit domain.BrandKitFull
	if err := json.Unmarshal(data, &kit); err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Warn("corrupt brand kit file",
			slog.String("kit_id", id.String()),
			slog.String("error", err.Error()))
		return nil, store.NewStoreError(store.KitEntity, "get", "failed to decode kit file", err)
	}
	return &kit, nil
}
