package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chainpulse/chainpulse/pkg/retry"
	"github.com/chainpulse/chainpulse/pkg/utils"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrMissingDSN is returned when no connection string is configured.
var ErrMissingDSN = errors.New("DATABASE_URL or POSTGRES_URL is required")

// Executor is the read surface shared by *pgxpool.Pool and pgx.Tx.
type Executor interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Client wraps a PostgreSQL connection pool
type Client struct {
	Logger *zap.Logger
	Pool   *pgxpool.Pool
}

// PoolConfig defines connection pool settings for a specific component
type PoolConfig struct {
	MinConns        int32
	MaxConns        int32
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	Component       string // For logging/debugging
}

// DSNFromEnv resolves the connection string from DATABASE_URL, then POSTGRES_URL.
func DSNFromEnv() (string, error) {
	dsn := utils.FirstEnv("DATABASE_URL", "POSTGRES_URL")
	if dsn == "" {
		return "", ErrMissingDSN
	}
	return dsn, nil
}

// New builds a pool for dsn. The pool connects lazily, so an unreachable
// server is not an error here; numeric columns decode to decimal.Decimal.
func New(ctx context.Context, logger *zap.Logger, dsn string, poolConf *PoolConfig) (*Client, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %w", err)
	}

	if poolConf == nil {
		poolConf = GetPoolConfigForComponent("")
	}
	config.MinConns = poolConf.MinConns
	config.MaxConns = poolConf.MaxConns
	config.MaxConnLifetime = poolConf.ConnMaxLifetime
	config.MaxConnIdleTime = poolConf.ConnMaxIdleTime
	config.AfterConnect = func(_ context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres connection pool: %w", err)
	}

	logger.Info("PostgreSQL connection pool configured",
		zap.String("host", config.ConnConfig.Host),
		zap.String("database", config.ConnConfig.Database),
		zap.String("component", poolConf.Component),
		zap.Int32("min_conns", poolConf.MinConns),
		zap.Int32("max_conns", poolConf.MaxConns),
		zap.Duration("conn_max_lifetime", poolConf.ConnMaxLifetime),
		zap.Duration("conn_max_idle_time", poolConf.ConnMaxIdleTime),
	)

	return &Client{Logger: logger, Pool: pool}, nil
}

// Probe pings the server with a short backoff. Callers treat failure as a
// warning: requests degrade on their own until the database comes back.
func (c *Client) Probe(ctx context.Context, attempts int) error {
	return retry.WithBackoff(ctx, retry.ProbeConfig(attempts), c.Logger, "postgres_probe", func() error {
		return c.Pool.Ping(ctx)
	})
}

// Close closes the connection pool
func (c *Client) Close() {
	c.Pool.Close()
}

// IsNoRows checks if the error is a "no rows" error
func IsNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// GetPoolConfigForComponent returns pool settings for a component, with
// POSTGRES_MIN_CONNS / POSTGRES_MAX_CONNS overriding the defaults.
func GetPoolConfigForComponent(component string) *PoolConfig {
	var minConns, maxConns int

	switch component {
	case "query":
		minConns = 1
		maxConns = 10
	default:
		minConns = 1
		maxConns = 5
	}

	maxConns = utils.EnvInt("POSTGRES_MAX_CONNS", maxConns)
	minConns = utils.EnvInt("POSTGRES_MIN_CONNS", minConns)
	if minConns > maxConns {
		minConns = maxConns
	}

	return &PoolConfig{
		MinConns:        int32(minConns),
		MaxConns:        int32(maxConns),
		ConnMaxLifetime: utils.EnvDuration("POSTGRES_CONN_MAX_LIFETIME", time.Hour),
		ConnMaxIdleTime: utils.EnvDuration("POSTGRES_CONN_MAX_IDLE_TIME", 30*time.Minute),
		Component:       component,
	}
}
