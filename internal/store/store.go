// Package store provides durable key-value backends for the saved form snapshot.
package store

import (
	"context"
	"fmt"
)

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendS3       = "s3"
)

// Store is a string key-value store. Get reports found=false for an absent key
// without returning an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// StoreError wraps a backend failure with the backend name and operation.
type StoreError struct {
	Backend string
	Op      string
	Cause   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s store: %s failed: %v", e.Backend, e.Op, e.Cause)
}

func (e *StoreError) Unwrap() error {
	return e.Cause
}

func wrap(backend, op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Backend: backend, Op: op, Cause: err}
}

// Config selects and configures a backend.
type Config struct {
	Backend string

	Dir        string
	SQLitePath string

	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	S3Bucket   string
	S3Region   string
	S3Endpoint string
	S3Prefix   string
}

// Open connects to the backend named by cfg.Backend.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", BackendFile:
		return NewFileStore(cfg.Dir)
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		return NewSQLiteStore(ctx, cfg.SQLitePath)
	case BackendPostgres:
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	case BackendRedis:
		return NewRedisStore(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case BackendS3:
		return NewS3Store(ctx, S3Options{
			Bucket:   cfg.S3Bucket,
			Region:   cfg.S3Region,
			Endpoint: cfg.S3Endpoint,
			Prefix:   cfg.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
