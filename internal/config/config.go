// Package config loads process settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"studyspace/internal/blob"
)

// Storage drivers accepted by STUDYSPACE_STORAGE_DRIVER.
const (
	StorageMemory   = "memory"
	StorageSQLite   = "sqlite"
	StoragePostgres = "postgres"
	StorageBlob     = "blob"
)

// Config holds every setting the server and CLI read at start-up.
type Config struct {
	HTTPAddr    string
	LogLevel    string
	LogFormat   string
	CatalogPath string

	StorageDriver string // memory, sqlite, postgres, blob
	SQLitePath    string
	PostgresDSN   string

	Blob blob.Config
}

// Load reads the environment. Files named in envFiles are loaded first with
// godotenv; variables already set in the process win. Missing files are
// ignored so a bare checkout runs with defaults.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{
		HTTPAddr:    getEnv("STUDYSPACE_HTTP_ADDR", ":8080"),
		LogLevel:    getEnv("STUDYSPACE_LOG_LEVEL", "info"),
		LogFormat:   getEnv("STUDYSPACE_LOG_FORMAT", "text"),
		CatalogPath: os.Getenv("STUDYSPACE_CATALOG_PATH"),

		StorageDriver: strings.ToLower(getEnv("STUDYSPACE_STORAGE_DRIVER", StorageSQLite)),
		SQLitePath:    getEnv("STUDYSPACE_SQLITE_PATH", "studyspace.db"),
		PostgresDSN:   getEnv("STUDYSPACE_POSTGRES_DSN", "postgres://localhost/studyspace?sslmode=disable"),

		Blob: blob.Config{
			Driver: strings.ToLower(getEnv("STUDYSPACE_BLOB_DRIVER", string(blob.DriverFilesystem))),
			FSRoot: getEnv("STUDYSPACE_BLOB_FS_ROOT", "./blobdata"),
			S3: blob.S3Config{
				Bucket:          os.Getenv("STUDYSPACE_BLOB_S3_BUCKET"),
				Region:          getEnv("STUDYSPACE_BLOB_S3_REGION", "us-east-1"),
				Endpoint:        os.Getenv("STUDYSPACE_BLOB_S3_ENDPOINT"),
				AccessKeyID:     os.Getenv("STUDYSPACE_BLOB_S3_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("STUDYSPACE_BLOB_S3_SECRET_ACCESS_KEY"),
				PathStyle:       getEnvBool("STUDYSPACE_BLOB_S3_PATH_STYLE", false),
			},
		},
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageSQLite, StoragePostgres, StorageBlob:
	default:
		return nil, fmt.Errorf("STUDYSPACE_STORAGE_DRIVER must be one of memory, sqlite, postgres, blob; got %q", cfg.StorageDriver)
	}
	switch blob.Driver(cfg.Blob.Driver) {
	case blob.DriverFilesystem, blob.DriverMemory:
	case blob.DriverS3:
		if cfg.Blob.S3.Bucket == "" {
			return nil, fmt.Errorf("STUDYSPACE_BLOB_S3_BUCKET is required for the s3 blob driver")
		}
	default:
		return nil, fmt.Errorf("STUDYSPACE_BLOB_DRIVER must be one of fs, s3, memory; got %q", cfg.Blob.Driver)
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return b
}
