package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/models"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/observability"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/query"
	"github.com/murtaza0641/truck-dispatch-load-dashboard/internal/settlement"
)

// settlementRequest selects the driver, optionally overrides the commission
// percentage (decoupled from the stored value) and optionally restricts the
// working set to specific loads. Percent is raw JSON so that a string, a
// number, or garbage are all accepted; garbage coerces to 0 by contract.
type settlementRequest struct {
	DriverID int64           `json:"driver_id"`
	Percent  json.RawMessage `json:"percent,omitempty"`
	LoadIDs  []int64         `json:"load_ids,omitempty"`
}

func (s *Server) handleSettlementPreview(w http.ResponseWriter, r *http.Request) {
	doc, ok := s.buildSettlement(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleSettlementCharge(w http.ResponseWriter, r *http.Request) {
	if s.Stripe == nil {
		http.Error(w, "stripe is not configured", http.StatusServiceUnavailable)
		return
	}
	doc, ok := s.buildSettlement(w, r)
	if !ok {
		return
	}
	cents := doc.CommissionAmount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if cents <= 0 {
		http.Error(w, "nothing to charge", http.StatusBadRequest)
		return
	}
	desc := fmt.Sprintf("Dispatch fee %s for %s", doc.SettlementID, doc.Driver.Name)
	piID, err := s.Stripe.CollectFee(r.Context(), cents, "usd", "", desc)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"payment_intent_id":  piID,
		"amount_cents":       cents,
		"commission_display": doc.CommissionDisplay,
		"settlement_id":      doc.SettlementID,
	})
}

// buildSettlement runs the full pipeline: fetch driver and loads, restrict
// to this driver's delivered-and-unpaid loads through the query engine,
// apply the caller's selection, then hand the final set to the calculator.
// On failure it writes the error response and returns ok=false.
func (s *Server) buildSettlement(w http.ResponseWriter, r *http.Request) (settlement.Document, bool) {
	var req settlementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return settlement.Document{}, false
	}
	if req.DriverID == 0 {
		http.Error(w, "driver_id is required", http.StatusBadRequest)
		return settlement.Document{}, false
	}

	driver, err := s.Store.GetDriver(req.DriverID)
	if err != nil {
		storeError(w, err)
		return settlement.Document{}, false
	}
	loads, err := s.Store.ListLoads()
	if err != nil {
		storeError(w, err)
		return settlement.Document{}, false
	}

	working := query.Select(loads, query.Criteria{
		DriverID:      req.DriverID,
		Status:        models.StatusDelivered,
		PaymentStatus: models.PaymentUnpaid,
		SortBy:        query.SortByPickup,
		SortOrder:     query.OrderAsc,
	})
	if req.LoadIDs != nil {
		working = selectByID(working, req.LoadIDs)
	}

	percent := coercePercent(req.Percent, driver.Percentage)
	result := settlement.Compute(working, percent)
	observability.SettlementsComputed.Inc()
	return settlement.BuildDocument(driver, s.Company, result), true
}

// selectByID keeps only the loads the caller left selected, preserving
// order.
func selectByID(loads []models.Load, ids []int64) []models.Load {
	keep := make(map[int64]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	out := make([]models.Load, 0, len(loads))
	for _, l := range loads {
		if keep[l.ID] {
			out = append(out, l)
		}
	}
	return out
}

// coercePercent turns whatever the client sent for percent into a number.
// Absent or null falls back to the driver's stored percentage; a JSON number
// or numeric string is used as-is; anything else is 0. Range is not checked.
func coercePercent(raw json.RawMessage, fallback string) float64 {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return settlement.ParsePercent(fallback)
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err == nil {
		return f
	}
	var str string
	if err := json.Unmarshal(trimmed, &str); err == nil {
		return settlement.ParsePercent(str)
	}
	return 0
}
