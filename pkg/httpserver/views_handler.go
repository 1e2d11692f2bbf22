package httpserver

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ViewRecorder records listing views. Satisfied by tracking.Tracker.
type ViewRecorder interface {
	RecordView(ctx context.Context, listingID string) error
}

// ViewsHandler accepts view recordings over HTTP so that view tracking
// works in daemon mode too, not only from the CLI.
type ViewsHandler struct {
	views  ViewRecorder
	logger *zap.Logger
}

// NewViewsHandler creates a views handler.
func NewViewsHandler(views ViewRecorder, logger *zap.Logger) *ViewsHandler {
	return &ViewsHandler{views: views, logger: logger}
}

// HandleRecordView records a single listing view. Tracking is
// best-effort: a sink failure is logged and reported, never retried.
func (h *ViewsHandler) HandleRecordView(w http.ResponseWriter, r *http.Request) {
	listingID := chi.URLParam(r, "listingID")
	if listingID == "" {
		http.Error(w, "missing listing id", http.StatusBadRequest)
		return
	}

	err := h.views.RecordView(r.Context(), listingID)
	if err != nil {
		h.logger.Warn("view-recording-failed",
			zap.String("listing-id", listingID),
			zap.Error(err))
		http.Error(w, "view not recorded", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusAccepted)
}
