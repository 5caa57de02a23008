package analytics

import (
	"context"
	"fmt"

	"github.com/chainpulse/chainpulse/pkg/db"
	"github.com/chainpulse/chainpulse/pkg/db/postgres"
	"go.uber.org/zap"
)

var _ db.AnalyticsStore = (*DB)(nil)

// DB runs the dashboard's read queries against the analytics schema.
// It holds no state besides the executor.
type DB struct {
	Executor postgres.Executor
	Logger   *zap.Logger

	client *postgres.Client
}

// New wraps an open client.
func New(client *postgres.Client, logger *zap.Logger) *DB {
	db := NewWithExecutor(client.Pool, logger)
	db.client = client
	return db
}

// NewWithExecutor builds a DB over any Executor, e.g. a pgx.Tx.
func NewWithExecutor(exec postgres.Executor, logger *zap.Logger) *DB {
	return &DB{
		Executor: exec,
		Logger:   logger,
	}
}

// Ping issues the trivial connectivity probe used by the health check.
func (db *DB) Ping(ctx context.Context) error {
	var one int
	if err := db.Executor.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("health probe: %w", err)
	}
	return nil
}

// Close closes the underlying pool, if owned.
func (db *DB) Close() error {
	if db.client != nil {
		db.client.Close()
	}
	return nil
}
