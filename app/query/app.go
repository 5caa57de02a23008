package query

import (
	"context"
	"time"

	"github.com/chainpulse/chainpulse/app/query/types"
	"github.com/chainpulse/chainpulse/pkg/db/postgres"
	"github.com/chainpulse/chainpulse/pkg/db/postgres/analytics"
	"github.com/chainpulse/chainpulse/pkg/logging"
	"github.com/chainpulse/chainpulse/pkg/metrics"
	"github.com/chainpulse/chainpulse/pkg/redis"
	"github.com/chainpulse/chainpulse/pkg/utils"
	"go.uber.org/zap"
)

const defaultCacheTTL = 5 * time.Second

// Initialize initializes the application.
func Initialize(ctx context.Context) *types.App {
	logger, err := logging.New()
	if err != nil {
		// nothing else to do here, we'll just log to stderr'
		panic(err)
	}

	dsn, err := postgres.DSNFromEnv()
	if err != nil {
		logger.Fatal("Unable to configure database", zap.Error(err))
	}

	client, err := postgres.New(ctx, logger, dsn, postgres.GetPoolConfigForComponent("query"))
	if err != nil {
		logger.Fatal("Unable to initialize database pool", zap.Error(err))
	}

	// The pool is lazy; requests degrade to empty payloads until the database is reachable.
	if err := client.Probe(ctx, utils.EnvInt("POSTGRES_STARTUP_PROBE_ATTEMPTS", 3)); err != nil {
		logger.Warn("Database not reachable at startup, continuing", zap.Error(err))
	}

	m := metrics.New()
	m.Registry.MustRegister(metrics.NewPoolCollector(client.Pool.Stat))

	app := &types.App{
		Store:          analytics.New(client, logger),
		CacheTTL:       utils.EnvDuration("CACHE_TTL", defaultCacheTTL),
		Metrics:        m,
		AllowedOrigins: utils.EnvList("FRONTEND_ORIGIN", "http://localhost:3000"),
		Logger:         logger,
	}

	// Response cache (optional)
	if utils.EnvBool("REDIS_ENABLED", false) {
		redisClient, err := redis.NewClient(ctx, logger)
		if err != nil {
			logger.Warn("Failed to initialize Redis client - response cache will be disabled",
				zap.Error(err))
		} else {
			app.Cache = redisClient
			logger.Info("Redis response cache enabled", zap.Duration("ttl", app.CacheTTL))
		}
	} else {
		logger.Info("Redis disabled - responses will not be cached")
	}

	return app
}
