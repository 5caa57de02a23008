package analytics

import (
	"context"
	"fmt"

	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
	"github.com/chainpulse/chainpulse/pkg/db/transform"
	"github.com/jackc/pgx/v5"
)

const (
	swapColumns = `block_number, tx_hash, sender_address AS wallet_address, token0_address AS token_in_address,
		token1_address AS token_out_address, amount0 AS amount_in, amount1 AS amount_out, usd_value AS amount_usd,
		pool_address, event_timestamp, size_bucket`

	volumeColumns = `date_trunc('hour', event_timestamp) AS hour_bucket, token0_address AS token_address,
		count(*)::int AS swap_count, coalesce(sum(usd_value), 0) AS volume_usd,
		count(DISTINCT sender_address)::int AS unique_wallets`

	whaleColumns = `wallet_address, segment, cluster_id, rfm_recency, rfm_frequency, rfm_volume, computed_at`

	anomalyColumns = `anomaly_id, hour_bucket, token_address, actual_volume, expected_volume, z_score, severity, detected_at`

	tokenFlowColumns = `hour_bucket, token_address, inflow_usd, outflow_usd, net_flow_usd, unique_senders,
		unique_receivers, flow_direction`

	protocolHealthColumns = `date_bucket, unique_active_wallets, total_swaps, total_volume_usd, median_swap_size,
		gini_coefficient, whale_share_pct, health_score`
)

var swapTokenColumns = []string{"token0_address", "token1_address"}

// QuerySwaps returns raw swaps newest first. The token filter matches either leg.
func (db *DB) QuerySwaps(ctx context.Context, q analyticsmodels.SwapQuery) ([]analyticsmodels.Row, error) {
	sql, args := newSelect(swapColumns, "raw_swaps").
		whereAnyEq(swapTokenColumns, q.TokenAddress).
		whereEq("sender_address", q.WalletAddress).
		order("event_timestamp DESC, tx_hash DESC, log_index DESC").
		page(q.Limit, q.Offset)
	return db.selectRows(ctx, "swaps", sql, args...)
}

// QueryVolume returns hourly swap volume per token, newest bucket first.
func (db *DB) QueryVolume(ctx context.Context, q analyticsmodels.VolumeQuery) ([]analyticsmodels.Row, error) {
	sql, args := newSelect(volumeColumns, "raw_swaps").
		whereAnyEq(swapTokenColumns, q.TokenAddress).
		group("1, 2").
		order("1 DESC, 2").
		limit(q.Limit)
	return db.selectRows(ctx, "volume", sql, args...)
}

// QueryWhales returns wallet segments ranked by RFM volume.
func (db *DB) QueryWhales(ctx context.Context, q analyticsmodels.WhaleQuery) ([]analyticsmodels.Row, error) {
	sql, args := newSelect(whaleColumns, "analytics_wallet_segments").
		whereEq("segment", q.Segment).
		order("rfm_volume DESC NULLS LAST, wallet_address").
		page(q.Limit, q.Offset)
	return db.selectRows(ctx, "whales", sql, args...)
}

// QueryAnomalies returns detected anomalies, most recently detected first.
func (db *DB) QueryAnomalies(ctx context.Context, q analyticsmodels.AnomalyQuery) ([]analyticsmodels.Row, error) {
	sql, args := newSelect(anomalyColumns, "analytics_anomalies").
		whereEq("severity", q.Severity).
		whereEq("token_address", q.TokenAddress).
		order("detected_at DESC, anomaly_id DESC").
		page(q.Limit, q.Offset)
	return db.selectRows(ctx, "anomalies", sql, args...)
}

// QueryTokenFlows returns hourly token flow snapshots, newest first.
func (db *DB) QueryTokenFlows(ctx context.Context, q analyticsmodels.TokenFlowQuery) ([]analyticsmodels.Row, error) {
	sql, args := newSelect(tokenFlowColumns, "analytics_token_flows").
		whereEq("token_address", q.TokenAddress).
		order("hour_bucket DESC, token_address").
		limit(q.Limit)
	return db.selectRows(ctx, "token flows", sql, args...)
}

// QueryProtocolHealth returns daily protocol health snapshots, newest first.
func (db *DB) QueryProtocolHealth(ctx context.Context, q analyticsmodels.ProtocolHealthQuery) ([]analyticsmodels.Row, error) {
	sql, args := newSelect(protocolHealthColumns, "analytics_protocol_health").
		order("date_bucket DESC").
		limit(q.Limit)
	return db.selectRows(ctx, "protocol health", sql, args...)
}

func (db *DB) selectRows(ctx context.Context, resource, sql string, args ...any) ([]analyticsmodels.Row, error) {
	rows, err := db.Executor.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", resource, err)
	}
	out, err := collectRows(rows)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", resource, err)
	}
	return out, nil
}

// collectRows drains rows into serialized maps and closes them.
func collectRows(rows pgx.Rows) ([]analyticsmodels.Row, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = f.Name
	}

	out := make([]analyticsmodels.Row, 0)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		out = append(out, transform.Row(columns, values))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}
