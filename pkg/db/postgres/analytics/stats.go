package analytics

import (
	"context"
	"errors"
	"math"
	"sync"

	"github.com/alitto/pond/v2"
	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
	"github.com/chainpulse/chainpulse/pkg/db/postgres"
	"github.com/chainpulse/chainpulse/pkg/db/transform"
	"go.uber.org/zap"
)

// statField is one dashboard number: the aggregate table first, raw swaps when
// that fails, zero when both fail.
type statField struct {
	name     string
	primary  string
	fallback string
}

var statFields = []statField{
	{
		name:     analyticsmodels.FieldTotalVolumeUSD,
		primary:  "SELECT coalesce(sum(total_volume_usd), 0) AS v FROM analytics_protocol_health",
		fallback: "SELECT coalesce(sum(usd_value), 0) AS v FROM raw_swaps",
	},
	{
		name:     analyticsmodels.FieldActiveWallets,
		primary:  "SELECT unique_active_wallets AS v FROM analytics_protocol_health ORDER BY date_bucket DESC LIMIT 1",
		fallback: "SELECT count(DISTINCT sender_address) AS v FROM raw_swaps",
	},
	{
		name:     analyticsmodels.FieldTotalSwaps,
		primary:  "SELECT coalesce(sum(total_swaps), 0) AS v FROM analytics_protocol_health",
		fallback: "SELECT count(*) AS v FROM raw_swaps",
	},
	{
		name:    analyticsmodels.FieldAnomaliesCount,
		primary: "SELECT count(*) AS v FROM analytics_anomalies",
	},
}

type statResult struct {
	value float64
	tier  analyticsmodels.Tier
}

// Stats computes the four headline numbers. Each field is resolved on its own;
// a failing lookup only zeroes that field, and Stats itself never fails.
func (db *DB) Stats(ctx context.Context) analyticsmodels.Stats {
	var mu sync.Mutex
	results := make([]statResult, len(statFields))
	for i := range results {
		results[i] = statResult{tier: analyticsmodels.TierDefault}
	}

	// A pool per call with one worker per field; concurrent calls share no workers.
	pool := pond.NewPool(len(statFields))
	defer pool.Stop()

	group := pool.NewGroupContext(ctx)
	groupCtx := group.Context()
	for i, field := range statFields {
		group.Submit(func() {
			if groupCtx.Err() != nil {
				return
			}
			v, tier := db.resolveStat(groupCtx, field)
			mu.Lock()
			results[i] = statResult{value: v, tier: tier}
			mu.Unlock()
		})
	}
	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, pond.ErrGroupStopped) {
		db.Logger.Warn("stats lookups did not complete", zap.Error(err))
	}

	// A cancelled group can return before every task has finished.
	mu.Lock()
	defer mu.Unlock()

	stats := analyticsmodels.Stats{Tiers: make(map[string]analyticsmodels.Tier, len(statFields))}
	for i, field := range statFields {
		r := results[i]
		stats.Tiers[field.name] = r.tier
		switch field.name {
		case analyticsmodels.FieldTotalVolumeUSD:
			stats.TotalVolumeUSD = r.value
		case analyticsmodels.FieldActiveWallets:
			stats.ActiveWallets = toCount(r.value)
		case analyticsmodels.FieldTotalSwaps:
			stats.TotalSwaps = toCount(r.value)
		case analyticsmodels.FieldAnomaliesCount:
			stats.AnomaliesCount = toCount(r.value)
		}
	}
	return stats
}

func (db *DB) resolveStat(ctx context.Context, field statField) (float64, analyticsmodels.Tier) {
	v, err := db.scalar(ctx, field.primary)
	if err == nil {
		return v, analyticsmodels.TierPrimary
	}
	db.Logger.Warn("stats primary lookup failed", zap.String("field", field.name), zap.Error(err))

	if field.fallback == "" {
		return 0, analyticsmodels.TierDefault
	}
	v, err = db.scalar(ctx, field.fallback)
	if err == nil {
		return v, analyticsmodels.TierFallback
	}
	db.Logger.Warn("stats fallback lookup failed", zap.String("field", field.name), zap.Error(err))
	return 0, analyticsmodels.TierDefault
}

// scalar reads the single value of sql. An empty result is 0, not an error.
func (db *DB) scalar(ctx context.Context, sql string) (float64, error) {
	var v any
	if err := db.Executor.QueryRow(ctx, sql).Scan(&v); err != nil {
		if postgres.IsNoRows(err) {
			return 0, nil
		}
		return 0, err
	}
	return transform.Float(v), nil
}

func toCount(v float64) int64 {
	return int64(math.Round(v))
}
