package httpserver

import (
	"net/http"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/currency"
)

// RateSource supplies the current exchange-rate table. Satisfied by
// *currency.Refresher.
type RateSource interface {
	Table() currency.RateTable
}

// RatesHandler serves the current exchange-rate table for diagnostics.
type RatesHandler struct {
	source RateSource
	logger *zap.Logger
}

// NewRatesHandler creates a rates handler.
func NewRatesHandler(source RateSource, logger *zap.Logger) *RatesHandler {
	return &RatesHandler{source: source, logger: logger}
}

// HandleRates writes the rate table as JSON.
func (h *RatesHandler) HandleRates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	err := json.NewEncoder(w).Encode(h.source.Table())
	if err != nil {
		h.logger.Error("rates-handler-encode-failed", zap.Error(err))
	}
}
