package db

import (
	"context"
	"time"

	"github.com/chainpulse/chainpulse/pkg/db/models/analytics"
)

// AnalyticsStore is the read-only surface the query gateway needs from storage.
// List methods return serialized rows; Stats never fails and reports zeros instead.
type AnalyticsStore interface {
	QuerySwaps(ctx context.Context, q analytics.SwapQuery) ([]analytics.Row, error)
	QueryVolume(ctx context.Context, q analytics.VolumeQuery) ([]analytics.Row, error)
	QueryWhales(ctx context.Context, q analytics.WhaleQuery) ([]analytics.Row, error)
	QueryAnomalies(ctx context.Context, q analytics.AnomalyQuery) ([]analytics.Row, error)
	QueryTokenFlows(ctx context.Context, q analytics.TokenFlowQuery) ([]analytics.Row, error)
	QueryProtocolHealth(ctx context.Context, q analytics.ProtocolHealthQuery) ([]analytics.Row, error)
	Stats(ctx context.Context) analytics.Stats
	LatestEventTime(ctx context.Context) (*time.Time, error)
	Ping(ctx context.Context) error
	Close() error
}
