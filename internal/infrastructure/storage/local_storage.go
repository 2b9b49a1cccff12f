package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	documentapp "github.com/opsdesk/backend/internal/application/document"
	partnerapp "github.com/opsdesk/backend/internal/application/partner"
	procurementapp "github.com/opsdesk/backend/internal/application/procurement"
	ticketapp "github.com/opsdesk/backend/internal/application/ticket"
	"go.uber.org/zap"
)

// Ensure LocalObjectStorage satisfies every storage port in the application layer
var (
	_ documentapp.ObjectStorage    = (*LocalObjectStorage)(nil)
	_ ticketapp.ObjectStorage      = (*LocalObjectStorage)(nil)
	_ procurementapp.ObjectStorage = (*LocalObjectStorage)(nil)
	_ partnerapp.LogoStorage       = (*LocalObjectStorage)(nil)
)

// LocalObjectStorage stores objects as files under a root directory,
// mapping object keys to relative paths. It backs development and
// single-host installs that run without an S3 endpoint.
type LocalObjectStorage struct {
	root   string
	logger *zap.Logger
}

// NewLocalObjectStorage creates a filesystem-backed object storage
// rooted at the given directory, creating it if needed
func NewLocalObjectStorage(root string, logger *zap.Logger) (*LocalObjectStorage, error) {
	if root == "" {
		return nil, errors.New("storage path is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &LocalObjectStorage{root: root, logger: logger}, nil
}

// Put writes an object under the given key, replacing any existing file
func (l *LocalObjectStorage) Put(ctx context.Context, key, contentType string, body io.Reader, size int64) error {
	path, err := l.objectPath(key)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create object file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("failed to store object: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to store object: %w", err)
	}

	return nil
}

// Get opens an object for reading. The caller must close the stream.
func (l *LocalObjectStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := l.objectPath(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open object: %w", err)
	}

	return f, nil
}

// Delete removes an object. Deleting a missing object is not an error.
func (l *LocalObjectStorage) Delete(ctx context.Context, key string) error {
	path, err := l.objectPath(key)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// objectPath maps a key to a path under the root, rejecting keys that
// would escape it
func (l *LocalObjectStorage) objectPath(key string) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}

	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid storage key: %s", key)
	}

	return filepath.Join(l.root, clean), nil
}
