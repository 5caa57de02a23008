package controller

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
	"github.com/chainpulse/chainpulse/pkg/redis"
	"github.com/prometheus/client_golang/prometheus/testutil"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newTestCache(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	c := redis.NewWithRedis(rdb, zaptest.NewLogger(t), "test:")
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestCacheServesRepeatedRequests(t *testing.T) {
	_, cache := newTestCache(t)
	store := &fakeStore{rows: []analyticsmodels.Row{{"wallet_address": "0xw", "segment": "whale"}}}
	srv := newTestServer(t, store, cache)

	first := srv.get("/api/whales?segment=whale")
	second := srv.get("/api/whales?segment=whale")

	require.Equal(t, http.StatusOK, second.Code)
	require.Equal(t, first.Body.String(), second.Body.String())
	require.Equal(t, "HIT", second.Header().Get("X-Cache"))
	require.Equal(t, 1, store.callCount())

	lookups := srv.app.Metrics.CacheLookups
	require.Equal(t, 1.0, testutil.ToFloat64(lookups.WithLabelValues("miss")))
	require.Equal(t, 1.0, testutil.ToFloat64(lookups.WithLabelValues("hit")))
}

func TestCacheKeyIncludesQuery(t *testing.T) {
	_, cache := newTestCache(t)
	store := &fakeStore{}
	srv := newTestServer(t, store, cache)

	srv.get("/api/swaps?limit=10")
	srv.get("/api/swaps?limit=20")

	require.Equal(t, 2, store.callCount())
}

func TestCacheSkipsDegradedResponses(t *testing.T) {
	mr, cache := newTestCache(t)
	store := &fakeStore{err: errors.New("connection refused")}
	srv := newTestServer(t, store, cache)

	srv.get("/api/swaps")
	srv.get("/api/swaps")

	require.Equal(t, 2, store.callCount())
	require.Empty(t, mr.Keys())
}

func TestCacheSkipsDefaultedStats(t *testing.T) {
	mr, cache := newTestCache(t)
	store := &fakeStore{stats: analyticsmodels.Stats{
		Tiers: map[string]analyticsmodels.Tier{analyticsmodels.FieldTotalSwaps: analyticsmodels.TierDefault},
	}}
	srv := newTestServer(t, store, cache)

	srv.get("/api/stats")

	require.Empty(t, mr.Keys())
}

func TestHealthIsNeverCached(t *testing.T) {
	mr, cache := newTestCache(t)
	srv := newTestServer(t, &fakeStore{}, cache)

	srv.get("/api/health")

	require.Empty(t, mr.Keys())
}

func TestDataFreshnessIsNeverCached(t *testing.T) {
	mr, cache := newTestCache(t)
	last := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{latest: &last}
	srv := newTestServer(t, store, cache)

	srv.ctl.now = func() time.Time { return last.Add(10 * time.Second) }
	first := srv.get("/api/data-freshness")
	srv.ctl.now = func() time.Time { return last.Add(70 * time.Second) }
	second := srv.get("/api/data-freshness")

	require.JSONEq(t, `{"seconds_since_last_event":10,"last_event_at":"2024-05-01T12:00:00.000Z"}`, first.Body.String())
	require.JSONEq(t, `{"seconds_since_last_event":70,"last_event_at":"2024-05-01T12:00:00.000Z"}`, second.Body.String())
	require.Empty(t, second.Header().Get("X-Cache"))
	require.Equal(t, 2, store.callCount())
	require.Empty(t, mr.Keys())
}

func TestBrokenCacheDoesNotFailRequests(t *testing.T) {
	mr, cache := newTestCache(t)
	store := &fakeStore{rows: []analyticsmodels.Row{{"tx_hash": "0x01"}}}
	srv := newTestServer(t, store, cache)
	mr.Close()

	rec := srv.get("/api/swaps")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"data":[{"tx_hash":"0x01"}],"limit":100,"offset":0}`, rec.Body.String())
	require.Equal(t, 1.0, testutil.ToFloat64(srv.app.Metrics.CacheLookups.WithLabelValues("error")))
}
