package tracking

import (
	"go.uber.org/zap"

	"github.com/RakanDouli/souq-client/pkg/config"
)

// FromConfig builds the tracker selected by TRACKING_MODE.
func FromConfig(cfg *config.Config, logger *zap.Logger) (Tracker, error) {
	if cfg.TrackingMode == "postgres" {
		return NewPostgresTracker(&PostgresConfig{
			Host:     cfg.PostgresHost,
			Port:     cfg.PostgresPort,
			User:     cfg.PostgresUser,
			Password: cfg.PostgresPass,
			Database: cfg.PostgresDB,
			SSLMode:  cfg.PostgresSSL,
			Logger:   logger,
		})
	}
	return NewConsoleTracker(logger), nil
}
