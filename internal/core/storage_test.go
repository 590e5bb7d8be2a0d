package core

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"studyspace/internal/blob"
	"studyspace/internal/config"
	"studyspace/internal/infra/persistence/postgres"
	"studyspace/internal/infra/persistence/postgres/testutil"
)

func roundTrip(t *testing.T, cfg *config.Config, blobs blob.Store) {
	t.Helper()
	ctx := context.Background()
	store, err := OpenKeyValueStore(ctx, cfg, blobs)
	if err != nil {
		t.Fatalf("open %s: %v", cfg.StorageDriver, err)
	}
	defer func() { _ = store.Close() }()
	if err := store.Set(ctx, "k", []byte(`[]`)); err != nil {
		t.Fatalf("%s set: %v", cfg.StorageDriver, err)
	}
	if got, ok, err := store.Get(ctx, "k"); err != nil || !ok || string(got) != "[]" {
		t.Fatalf("%s get: %s %v %v", cfg.StorageDriver, got, ok, err)
	}
}

func TestOpenKeyValueStoreDrivers(t *testing.T) {
	dir := t.TempDir()
	roundTrip(t, &config.Config{StorageDriver: config.StorageMemory}, nil)
	roundTrip(t, &config.Config{StorageDriver: config.StorageSQLite, SQLitePath: filepath.Join(dir, "kv.db")}, nil)
	roundTrip(t, &config.Config{StorageDriver: config.StorageBlob}, blob.NewMemory())
	roundTrip(t, &config.Config{StorageDriver: config.StorageBlob, Blob: blob.Config{Driver: "fs", FSRoot: filepath.Join(dir, "blobs")}}, nil)

	db, _ := testutil.NewStubDB()
	restore := postgres.OverrideSQLOpen(func(string, string) (*sql.DB, error) { return db, nil })
	defer restore()
	roundTrip(t, &config.Config{StorageDriver: config.StoragePostgres, PostgresDSN: "postgres://stub"}, nil)
}

func TestOpenKeyValueStoreUnknownDriver(t *testing.T) {
	if _, err := OpenKeyValueStore(context.Background(), &config.Config{StorageDriver: "etcd"}, nil); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}

func TestOpenRuntime(t *testing.T) {
	dir := t.TempDir()
	cfg := &config.Config{
		StorageDriver: config.StorageSQLite,
		SQLitePath:    filepath.Join(dir, "studyspace.db"),
		Blob:          blob.Config{Driver: "fs", FSRoot: filepath.Join(dir, "blobdata")},
	}
	rt, err := OpenRuntime(context.Background(), cfg)
	if err != nil {
		t.Fatalf("open runtime: %v", err)
	}
	defer func() { _ = rt.Close() }()
	if rt.Blobs.Driver() != blob.DriverFilesystem {
		t.Fatalf("unexpected blob driver %s", rt.Blobs.Driver())
	}
	if _, err := rt.Service.SubmitFeedback(context.Background(), submission("2", "s9", 5)); err != nil {
		t.Fatalf("submit: %v", err)
	}
	rep, err := rt.Service.ExportReport(context.Background())
	if err != nil || rep.URL == "" {
		t.Fatalf("export via runtime: %+v %v", rep, err)
	}

	if _, err := OpenRuntime(context.Background(), nil); err == nil {
		t.Fatalf("expected nil config error")
	}
	bad := *cfg
	bad.CatalogPath = filepath.Join(dir, "missing.yaml")
	if _, err := OpenRuntime(context.Background(), &bad); err == nil {
		t.Fatalf("expected catalog load error")
	}
	var nilRuntime *Runtime
	if err := nilRuntime.Close(); err != nil {
		t.Fatalf("nil runtime close: %v", err)
	}
}
