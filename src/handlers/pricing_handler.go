// backend/src/handlers/pricing_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/username/feecompare/backend/src/config"
	"github.com/username/feecompare/backend/src/logger"
	"github.com/username/feecompare/backend/src/models"
	"github.com/username/feecompare/backend/src/services"
	"github.com/username/feecompare/backend/src/utils"
)

type PricingHandler struct {
	pricingService services.PricingService
}

func NewPricingHandler(service services.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: service}
}

// HandleGetRows serves the flattened pricing rows for the latest snapshot.
func (h *PricingHandler) HandleGetRows(w http.ResponseWriter, r *http.Request) {
	rows, err := h.pricingService.LatestRows()
	if err != nil {
		if errors.Is(err, services.ErrSnapshotNotFound) {
			writeJSON(w, []models.PricingRow{})
			return
		}
		logger.FromContext(r.Context()).Error("Error retrieving pricing rows", "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error retrieving pricing rows: %v", err), http.StatusInternalServerError)
		return
	}

	if rows == nil {
		rows = []models.PricingRow{}
	}
	writeJSON(w, rows)
}

// HandleCompare evaluates every fee line of the latest snapshot at the
// trade amount given in the query string.
func (h *PricingHandler) HandleCompare(w http.ResponseWriter, r *http.Request) {
	amountStr := r.URL.Query().Get("amount")
	if amountStr == "" {
		utils.SendJSONError(w, "amount required", http.StatusBadRequest)
		return
	}
	amount, err := strconv.ParseFloat(amountStr, 64)
	if err != nil || amount < 0 {
		utils.SendJSONError(w, "Invalid amount", http.StatusBadRequest)
		return
	}

	comparisons, err := h.pricingService.CompareAt(amount)
	if err != nil {
		if errors.Is(err, services.ErrSnapshotNotFound) {
			writeJSON(w, []models.RowComparison{})
			return
		}
		logger.FromContext(r.Context()).Error("Error comparing fees", "amount", amount, "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error comparing fees: %v", err), http.StatusInternalServerError)
		return
	}
	writeJSON(w, comparisons)
}

// HandleIngestSnapshot accepts a raw broker payload from the scraper and
// stores it as the new latest snapshot.
func (h *PricingHandler) HandleIngestSnapshot(w http.ResponseWriter, r *http.Request) {
	ctxLogger := logger.FromContext(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, config.Cfg.MaxPayloadBytes))
	if err != nil {
		utils.SendJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	snap, err := h.pricingService.IngestPayload(json.RawMessage(body))
	if err != nil {
		if errors.Is(err, services.ErrInvalidPayload) {
			ctxLogger.Warn("Rejected broker payload", "error", err)
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
			return
		}
		ctxLogger.Error("Error ingesting broker payload", "error", err)
		utils.SendJSONError(w, "Error ingesting broker payload", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(snap)
}

// HandleListSnapshots returns metadata for recent snapshots.
func (h *PricingHandler) HandleListSnapshots(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 {
			utils.SendJSONError(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	snaps, err := h.pricingService.ListSnapshots(limit)
	if err != nil {
		logger.FromContext(r.Context()).Error("Error listing snapshots", "error", err)
		utils.SendJSONError(w, fmt.Sprintf("Error listing snapshots: %v", err), http.StatusInternalServerError)
		return
	}
	if snaps == nil {
		snaps = []models.Snapshot{}
	}
	writeJSON(w, snaps)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
