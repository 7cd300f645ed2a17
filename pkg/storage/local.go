package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"veritas/pkg/lifecycle"
)

type local struct {
	dir    string
	logger *slog.Logger
}

func newLocal(cfg *Config, logger *slog.Logger) System {
	return &local{
		dir:    cfg.Directory,
		logger: logger.With("system", "storage"),
	}
}

func (l *local) Start(lc *lifecycle.Coordinator) error {
	l.logger.Info("starting storage system", "backend", BackendLocal)

	lc.OnStartup(func() {
		if err := os.MkdirAll(l.dir, 0o755); err != nil {
			l.logger.Error("storage directory initialization failed", "error", err)
			return
		}

		l.logger.Info("storage directory ready", "dir", l.dir)
	})

	return nil
}

func (l *local) Store(ctx context.Context, key string, reader io.Reader, contentType string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("ensure storage directory: %w", err)
	}

	f, err := os.Create(filepath.Join(l.dir, key))
	if err != nil {
		return fmt.Errorf("store blob %s: %w", key, err)
	}

	if _, err := io.Copy(f, reader); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("store blob %s: %w", key, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("store blob %s: %w", key, err)
	}

	return nil
}

func (l *local) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	if err := os.Remove(filepath.Join(l.dir, key)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("delete blob %s: %w", key, err)
	}

	return nil
}

func (l *local) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, err
	}

	_, err := os.Stat(filepath.Join(l.dir, key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("check blob existence %s: %w", key, err)
	}

	return true, nil
}
