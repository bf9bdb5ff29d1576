package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	selectSnapshotQuery = `SELECT document FROM bot_snapshot WHERE id = 1`

	upsertSnapshotQuery = `
	    INSERT INTO bot_snapshot (id, document, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET document = EXCLUDED.document, updated_at = NOW()
	`
)

// PostgresStore keeps the same snapshot document as FileStore in a single
// JSONB row.
type PostgresStore struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewPostgresStore(db *sqlx.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{
		db:     db,
		logger: logger,
	}
}

// Load falls back to an empty snapshot when the row is missing or holds an
// undecodable document. Query failures are returned: substituting an empty
// snapshot there would wipe the stored one on the next Save.
func (s *PostgresStore) Load(ctx context.Context) (*Snapshot, error) {
	var document []byte

	err := s.db.GetContext(ctx, &document, selectSnapshotQuery)
	if errors.Is(err, sql.ErrNoRows) {
		snap := NewSnapshot()
		if err := s.Save(ctx, snap); err != nil {
			s.logger.Error("cannot persist empty snapshot", zap.Error(err))
		} else {
			s.logger.Info("snapshot row created")
		}
		return snap, nil
	}

	if err != nil {
		return nil, fmt.Errorf("PostgresStore.Load: %w", err)
	}

	snap, repaired, err := decodeSnapshot(document)
	if err != nil {
		s.logger.Error("stored snapshot is corrupt, starting from empty snapshot",
			zap.Int("bytes", len(document)), zap.Error(err))
		return NewSnapshot(), nil
	}

	if repaired {
		s.logger.Warn("stored snapshot was missing sections, repaired")
	}

	return snap, nil
}

func (s *PostgresStore) Save(ctx context.Context, snap *Snapshot) error {
	document, err := encodeSnapshot(snap)
	if err != nil {
		return fmt.Errorf("PostgresStore.Save: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, upsertSnapshotQuery, string(document)); err != nil {
		return fmt.Errorf("PostgresStore.Save: %w", err)
	}

	return nil
}
