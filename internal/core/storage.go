package core

import (
	"context"
	"errors"
	"fmt"

	"studyspace/internal/blob"
	"studyspace/internal/catalog"
	"studyspace/internal/config"
	"studyspace/internal/feedback"
	"studyspace/internal/infra/persistence/blobkv"
	"studyspace/internal/infra/persistence/memory"
	"studyspace/internal/infra/persistence/postgres"
	"studyspace/internal/infra/persistence/sqlite"
	"studyspace/pkg/domain"
)

// OpenKeyValueStore selects the feedback backend named by cfg.StorageDriver.
// The blob driver reuses blobs when non-nil, otherwise it opens cfg.Blob.
func OpenKeyValueStore(ctx context.Context, cfg *config.Config, blobs blob.Store) (domain.KeyValueStore, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		return memory.NewStore(), nil
	case config.StorageSQLite, "":
		return sqlite.NewStore(cfg.SQLitePath)
	case config.StoragePostgres:
		return postgres.NewStore(ctx, cfg.PostgresDSN)
	case config.StorageBlob:
		if blobs == nil {
			var err error
			if blobs, err = blob.Open(ctx, cfg.Blob); err != nil {
				return nil, err
			}
		}
		return blobkv.New(blobs, blobkv.DefaultPrefix), nil
	default:
		return nil, fmt.Errorf("unknown storage driver %s", cfg.StorageDriver)
	}
}

// Runtime bundles a configured Service with the resources it owns.
type Runtime struct {
	Service *Service
	Store   domain.KeyValueStore
	Blobs   blob.Store
}

// Close releases the key/value backend.
func (r *Runtime) Close() error {
	if r == nil || r.Store == nil {
		return nil
	}
	return r.Store.Close()
}

// OpenRuntime builds the catalog, blob store, feedback store and Service
// described by cfg.
func OpenRuntime(ctx context.Context, cfg *config.Config, opts ...ServiceOption) (*Runtime, error) {
	if cfg == nil {
		return nil, errors.New("nil config")
	}
	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	blobs, err := blob.Open(ctx, cfg.Blob)
	if err != nil {
		return nil, fmt.Errorf("open blob store: %w", err)
	}
	store, err := OpenKeyValueStore(ctx, cfg, blobs)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageDriver, err)
	}
	opts = append([]ServiceOption{WithBlobStore(blobs)}, opts...)
	svc := NewService(cat, feedback.NewRepository(store), opts...)
	svc.logger.Info("storage ready", "storage_driver", cfg.StorageDriver, "blob_driver", blobs.Driver(), "locations", cat.Len())
	return &Runtime{Service: svc, Store: store, Blobs: blobs}, nil
}
