package tracking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresTracker persists listing views in PostgreSQL.
type PostgresTracker struct {
	db     *sql.DB
	logger *zap.Logger
}

// PostgresConfig holds PostgreSQL configuration.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	SSLMode  string
	Logger   *zap.Logger
}

// NewPostgresTracker creates a PostgreSQL-backed tracker.
func NewPostgresTracker(cfg *PostgresConfig) (*PostgresTracker, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Database, cfg.SSLMode,
	)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	err = db.Ping()
	if err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	cfg.Logger.Info("postgres-tracker-connected",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Database))

	return &PostgresTracker{
		db:     db,
		logger: cfg.Logger,
	}, nil
}

// newPostgresTrackerWithDB is used by tests to inject a mock database.
func newPostgresTrackerWithDB(db *sql.DB, logger *zap.Logger) *PostgresTracker {
	return &PostgresTracker{db: db, logger: logger}
}

// RecordView inserts a view row.
func (p *PostgresTracker) RecordView(ctx context.Context, listingID string) error {
	query := `
		INSERT INTO listing_views (id, listing_id, viewed_at)
		VALUES ($1, $2, $3)`

	_, err := p.db.ExecContext(ctx, query, uuid.New().String(), listingID, time.Now())
	if err != nil {
		ViewWriteErrorsTotal.Inc()
		return fmt.Errorf("insert listing view: %w", err)
	}

	ViewsRecordedTotal.Inc()
	return nil
}

// Close closes the database connection.
func (p *PostgresTracker) Close() error {
	p.logger.Info("closing-postgres-tracker")
	return p.db.Close()
}
