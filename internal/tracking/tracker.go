// Package tracking records listing views. Tracking is best-effort by
// contract: sinks report errors, but callers log and move on rather
// than propagating them into the read path.
package tracking

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Tracker is the interface for recording listing views.
type Tracker interface {
	// RecordView records that the current user viewed a listing.
	RecordView(ctx context.Context, listingID string) error

	// Close closes the tracker and releases resources.
	Close() error
}

// ConsoleTracker logs views instead of persisting them. Used when no
// database is configured.
type ConsoleTracker struct {
	logger *zap.Logger
}

// NewConsoleTracker creates a console tracker.
func NewConsoleTracker(logger *zap.Logger) *ConsoleTracker {
	logger.Info("console-tracker-initialized")
	return &ConsoleTracker{logger: logger}
}

// RecordView logs the view.
func (c *ConsoleTracker) RecordView(_ context.Context, listingID string) error {
	c.logger.Info("listing-viewed",
		zap.String("listing-id", listingID),
		zap.Time("viewed-at", time.Now()))
	return nil
}

// Close is a no-op for console tracking.
func (c *ConsoleTracker) Close() error {
	return nil
}
