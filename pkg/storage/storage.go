// Package storage provides blob storage for uploaded media with local
// filesystem and Azure Blob Storage backends.
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"veritas/pkg/lifecycle"
)

// System manages blob storage operations and lifecycle coordination.
type System interface {
	// Start registers a startup hook that initializes the backing store.
	Start(lc *lifecycle.Coordinator) error
	// Store streams data to a blob at the given key with the specified content type.
	Store(ctx context.Context, key string, reader io.Reader, contentType string) error
	// Delete removes the blob at the given key. Returns ErrNotFound if the blob does not exist.
	Delete(ctx context.Context, key string) error
	// Exists reports whether a blob exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// New creates a storage system for the configured backend.
// Backends are initialized lazily; no connection is established until Start.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Backend {
	case BackendLocal:
		return newLocal(cfg, logger), nil
	case BackendAzure:
		return newAzure(cfg, logger)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Backend)
	}
}

func validateKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	if strings.Contains(key, "..") || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}
