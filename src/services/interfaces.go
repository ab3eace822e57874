// backend/src/services/interfaces.go
package services

import (
	"encoding/json"
	"errors"

	"github.com/username/feecompare/backend/src/models"
)

// Define common service errors
var (
	ErrInvalidPayload   = errors.New("broker payload must be a JSON array")
	ErrSnapshotNotFound = errors.New("no broker snapshot available")
)

// PricingService is the facade the HTTP layer talks to: it ingests raw
// broker payloads, persists them as snapshots and serves flattened pricing
// rows derived from the latest snapshot.
type PricingService interface {
	// IngestPayload sanitizes, classifies and stores a raw broker payload,
	// returning the stored snapshot metadata (payload omitted).
	IngestPayload(raw json.RawMessage) (*models.Snapshot, error)

	// LatestRows returns the flattened pricing rows for the most recent
	// snapshot, cached between ingests.
	LatestRows() ([]models.PricingRow, error)

	// CompareAt evaluates every fee line of the latest snapshot at a
	// caller-supplied trade amount.
	CompareAt(amount float64) ([]models.RowComparison, error)

	// ListSnapshots returns metadata for the most recent snapshots.
	ListSnapshots(limit int) ([]models.Snapshot, error)

	// InvalidateCache drops any cached derivation of the latest snapshot.
	InvalidateCache()
}

// SnapshotStore persists ingested broker payloads.
type SnapshotStore interface {
	SaveSnapshot(snap models.Snapshot) error
	LatestSnapshot() (*models.Snapshot, error)
	GetSnapshot(id string) (*models.Snapshot, error)
	ListSnapshots(limit int) ([]models.Snapshot, error)
}
