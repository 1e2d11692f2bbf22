package app

import (
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
)

// Run starts all components and blocks until a shutdown signal.
func (a *App) Run() error {
	a.logger.Info("souq-client-starting",
		zap.String("graphql-endpoint", a.cfg.GraphQLEndpoint),
		zap.String("tracking-mode", a.cfg.TrackingMode),
		zap.String("feed-category", a.cfg.FeedCategory))

	a.startComponents()
	a.waitForShutdown()

	return a.Shutdown()
}

func (a *App) startComponents() {
	a.healthChecker.Register("http")
	a.healthChecker.Register("rates")

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		err := a.httpServer.Start()
		if err != nil {
			a.logger.Error("http-server-failed", zap.Error(err))
		}
	}()
	a.healthChecker.SetReady("http", true)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		// Run performs one refresh up front; the table is usable from
		// its fallback seed even before that completes.
		a.healthChecker.SetReady("rates", true)
		_ = a.refresher.Run(a.ctx)
	}()

	if a.feed != nil {
		a.healthChecker.Register("feed")
		err := a.feed.Start()
		if err != nil {
			a.logger.Error("feed-start-failed", zap.Error(err))
		} else {
			a.healthChecker.SetReady("feed", true)
			a.wg.Add(1)
			go a.consumeFeed()
		}
	}
}

// consumeFeed drains the live listing feed. A new listing may change
// what a cached search would return, so cached query results are
// dropped wholesale; they refill on the next fetch.
func (a *App) consumeFeed() {
	defer a.wg.Done()

	for event := range a.feed.Events() {
		if event.Err != nil {
			a.logger.Warn("feed-event-error", zap.Error(event.Err))
			continue
		}

		a.logger.Info("new-listing", zap.ByteString("payload", event.Data))
		a.queries.ClearAll()
	}
}

func (a *App) waitForShutdown() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		a.logger.Info("shutdown-signal-received", zap.String("signal", sig.String()))
	case <-a.ctx.Done():
	}
}
