// Package app wires the daemon mode of the client: the rate refresher,
// the live listing feed, view tracking, and the operational HTTP server.
package app

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/internal/currency"
	"github.com/RakanDouli/souq-client/internal/query"
	"github.com/RakanDouli/souq-client/internal/tracking"
	"github.com/RakanDouli/souq-client/pkg/config"
	"github.com/RakanDouli/souq-client/pkg/healthprobe"
	"github.com/RakanDouli/souq-client/pkg/httpserver"
	"github.com/RakanDouli/souq-client/pkg/subscription"
)

// App is the daemon orchestrator.
type App struct {
	cfg           *config.Config
	logger        *zap.Logger
	healthChecker *healthprobe.HealthChecker
	httpServer    *httpserver.Server
	queries       *query.CachedClient
	refresher     *currency.Refresher
	feed          *subscription.Client
	tracker       tracking.Tracker
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}
