// backend/src/services/snapshot_store.go
package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/username/feecompare/backend/src/models"
)

type sqliteSnapshotStore struct {
	db *sql.DB
}

// NewSQLiteSnapshotStore returns a SnapshotStore backed by the sqlite
// database initialized in src/database.
func NewSQLiteSnapshotStore(db *sql.DB) SnapshotStore {
	return &sqliteSnapshotStore{db: db}
}

func (s *sqliteSnapshotStore) SaveSnapshot(snap models.Snapshot) error {
	query := `
		INSERT INTO broker_snapshots (id, received_at, format, payload, row_count)
		VALUES (?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query, snap.ID, snap.ReceivedAt.UTC().Format(time.RFC3339), snap.Format, string(snap.Payload), snap.RowCount)
	if err != nil {
		return fmt.Errorf("saving broker snapshot %s: %w", snap.ID, err)
	}
	return nil
}

func (s *sqliteSnapshotStore) LatestSnapshot() (*models.Snapshot, error) {
	query := `SELECT id, received_at, format, payload, row_count FROM broker_snapshots ORDER BY received_at DESC, id DESC LIMIT 1`
	return s.scanOne(s.db.QueryRow(query))
}

func (s *sqliteSnapshotStore) GetSnapshot(id string) (*models.Snapshot, error) {
	query := `SELECT id, received_at, format, payload, row_count FROM broker_snapshots WHERE id = ?`
	return s.scanOne(s.db.QueryRow(query, id))
}

func (s *sqliteSnapshotStore) scanOne(row *sql.Row) (*models.Snapshot, error) {
	var snap models.Snapshot
	var receivedAt, payload string
	err := row.Scan(&snap.ID, &receivedAt, &snap.Format, &payload, &snap.RowCount)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSnapshotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning broker snapshot: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, receivedAt); err == nil {
		snap.ReceivedAt = t
	}
	snap.Payload = []byte(payload)
	return &snap, nil
}

// ListSnapshots returns snapshot metadata, newest first. Payloads are left
// out; listing exists for operators checking what the scraper delivered.
func (s *sqliteSnapshotStore) ListSnapshots(limit int) ([]models.Snapshot, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `SELECT id, received_at, format, row_count FROM broker_snapshots ORDER BY received_at DESC, id DESC LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("listing broker snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []models.Snapshot
	for rows.Next() {
		var snap models.Snapshot
		var receivedAt string
		if err := rows.Scan(&snap.ID, &receivedAt, &snap.Format, &snap.RowCount); err != nil {
			return nil, fmt.Errorf("scanning broker snapshot row: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, receivedAt); err == nil {
			snap.ReceivedAt = t
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}
