package app

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Shutdown stops components in reverse dependency order.
func (a *App) Shutdown() error {
	a.logger.Info("souq-client-stopping")
	a.cancel()

	if a.feed != nil {
		err := a.feed.Close()
		if err != nil {
			a.logger.Warn("feed-close-failed", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.httpServer.Shutdown(ctx)
	if err != nil {
		a.logger.Warn("http-shutdown-failed", zap.Error(err))
	}

	err = a.tracker.Close()
	if err != nil {
		a.logger.Warn("tracker-close-failed", zap.Error(err))
	}

	a.wg.Wait()
	a.logger.Info("souq-client-stopped")
	return nil
}
