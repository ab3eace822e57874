// backend/src/services/pricing_service.go
package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/username/feecompare/backend/src/logger"
	"github.com/username/feecompare/backend/src/models"
	"github.com/username/feecompare/backend/src/processors"
	"github.com/username/feecompare/backend/src/security/validation"
)

const (
	ckLatestRows           = "res_latest_pricing_rows"
	DefaultCacheExpiration = 15 * time.Minute
	CacheCleanupInterval   = 30 * time.Minute
)

type pricingServiceImpl struct {
	flattener *processors.RowFlattener
	evaluator *processors.FeeEvaluator
	store     SnapshotStore
	rowCache  *cache.Cache
}

func NewPricingService(store SnapshotStore, rowCache *cache.Cache) PricingService {
	return &pricingServiceImpl{
		flattener: processors.NewRowFlattener(),
		evaluator: processors.NewFeeEvaluator(),
		store:     store,
		rowCache:  rowCache,
	}
}

// IngestPayload sanitizes every free-text field of the payload (scraped
// broker pages are untrusted input), classifies its format, stores it as a
// new snapshot and invalidates the row cache. The stored snapshot is also
// flattened once so its row count is recorded alongside.
func (s *pricingServiceImpl) IngestPayload(raw json.RawMessage) (*models.Snapshot, error) {
	sanitized, err := validation.SanitizeJSONStrings(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var elements []json.RawMessage
	if err := json.Unmarshal(sanitized, &elements); err != nil {
		return nil, ErrInvalidPayload
	}

	format := "structured"
	for _, element := range elements {
		if processors.IsReadableMessage(element) {
			format = "readable"
			break
		}
	}

	rows := s.flattener.Flatten(sanitized)

	snap := models.Snapshot{
		ID:         uuid.New().String(),
		ReceivedAt: time.Now().UTC(),
		Format:     format,
		Payload:    sanitized,
		RowCount:   len(rows),
	}
	if err := s.store.SaveSnapshot(snap); err != nil {
		return nil, err
	}

	s.InvalidateCache()
	s.rowCache.Set(ckLatestRows, rows, DefaultCacheExpiration)

	logger.L.Info("Broker payload ingested",
		"snapshotID", snap.ID, "format", format, "brokers", len(elements), "rows", len(rows))

	snap.Payload = nil // metadata only for the caller
	return &snap, nil
}

func (s *pricingServiceImpl) LatestRows() ([]models.PricingRow, error) {
	if cached, found := s.rowCache.Get(ckLatestRows); found {
		return cached.([]models.PricingRow), nil
	}

	snap, err := s.store.LatestSnapshot()
	if err != nil {
		return nil, err
	}

	rows := s.flattener.Flatten(snap.Payload)
	s.rowCache.Set(ckLatestRows, rows, DefaultCacheExpiration)
	return rows, nil
}

// CompareAt re-evaluates every fee line of the latest snapshot at the given
// trade amount. Rows without a computable rule carry a nil fee.
func (s *pricingServiceImpl) CompareAt(amount float64) ([]models.RowComparison, error) {
	snap, err := s.store.LatestSnapshot()
	if err != nil {
		return nil, err
	}

	brokers := s.flattener.DecodeBrokers(snap.Payload)
	comparisons := make([]models.RowComparison, 0, len(brokers))
	for _, broker := range brokers {
		for i, fee := range broker.PricingModel.TransactionFees {
			comparisons = append(comparisons, models.RowComparison{
				ID: fmt.Sprintf("%s-%s-%s-%d",
					broker.BrokerName, fee.InstrumentType, fee.Market, i),
				BrokerName:     broker.BrokerName,
				InstrumentType: fee.InstrumentType,
				Market:         fee.Market,
				Amount:         amount,
				Fee:            s.evaluator.Evaluate(fee, amount),
			})
		}
	}
	return comparisons, nil
}

func (s *pricingServiceImpl) ListSnapshots(limit int) ([]models.Snapshot, error) {
	return s.store.ListSnapshots(limit)
}

func (s *pricingServiceImpl) InvalidateCache() {
	s.rowCache.Delete(ckLatestRows)
}
