package db

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FileStore keeps the snapshot as one JSON document on disk.
type FileStore struct {
	path   string
	logger *zap.Logger
}

func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("NewFileStore: cannot create dir %s: %w", dir, err)
	}

	return &FileStore{
		path:   path,
		logger: logger,
	}, nil
}

func (s *FileStore) Path() string {
	return s.path
}

// Load reads the document. A missing file is created with an empty snapshot;
// an unreadable one is moved aside and replaced. Neither case is an error.
func (s *FileStore) Load(ctx context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		snap := NewSnapshot()
		s.saveDefault(ctx, snap)
		s.logger.Info("database file created", zap.String("path", s.path))
		return snap, nil
	}

	if err != nil {
		s.logger.Error("cannot read database file, using empty snapshot",
			zap.String("path", s.path), zap.Error(err))
		return NewSnapshot(), nil
	}

	snap, repaired, err := decodeSnapshot(data)
	if err != nil {
		s.logger.Error("database file is corrupt, starting from empty snapshot",
			zap.String("path", s.path), zap.Error(err))
		s.quarantine()

		snap = NewSnapshot()
		s.saveDefault(ctx, snap)
		return snap, nil
	}

	if repaired {
		s.logger.Warn("database file was missing sections, repaired", zap.String("path", s.path))
	}

	return snap, nil
}

// Save writes to a temp file in the same directory and renames it over the
// document, so readers see either the old or the new content.
func (s *FileStore) Save(_ context.Context, snap *Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("FileStore.Save: %w", err)
	}

	tmpPath := filepath.Join(filepath.Dir(s.path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(s.path), uuid.New().String()))

	out, err := os.OpenFile(tmpPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("FileStore.Save: cannot create temp file: %w", err)
	}

	if _, err := out.Write(data); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("FileStore.Save: cannot write temp file: %w", err)
	}

	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("FileStore.Save: cannot sync temp file: %w", err)
	}

	if err := out.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("FileStore.Save: cannot close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("FileStore.Save: cannot replace %s: %w", s.path, err)
	}

	return nil
}

func (s *FileStore) saveDefault(ctx context.Context, snap *Snapshot) {
	if err := s.Save(ctx, snap); err != nil {
		s.logger.Error("cannot persist empty snapshot", zap.Error(err))
	}
}

func (s *FileStore) quarantine() {
	aside := fmt.Sprintf("%s.corrupt-%s", s.path, uuid.New().String())
	if err := os.Rename(s.path, aside); err != nil {
		s.logger.Error("cannot move corrupt database file aside", zap.Error(err))
		return
	}

	s.logger.Warn("corrupt database file kept for inspection", zap.String("path", aside))
}
