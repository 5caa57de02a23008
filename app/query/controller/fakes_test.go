package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/chainpulse/chainpulse/app/query/types"
	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
	"github.com/chainpulse/chainpulse/pkg/metrics"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// fakeStore answers every list method with the same rows or error and
// remembers the last query it saw.
type fakeStore struct {
	mu    sync.Mutex
	calls int
	last  any

	rows []analyticsmodels.Row
	err  error

	stats     analyticsmodels.Stats
	latest    *time.Time
	latestErr error
	pingErr   error
}

func (s *fakeStore) list(q any) ([]analyticsmodels.Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.last = q
	return s.rows, s.err
}

func (s *fakeStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *fakeStore) lastQuery() any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *fakeStore) QuerySwaps(_ context.Context, q analyticsmodels.SwapQuery) ([]analyticsmodels.Row, error) {
	return s.list(q)
}

func (s *fakeStore) QueryVolume(_ context.Context, q analyticsmodels.VolumeQuery) ([]analyticsmodels.Row, error) {
	return s.list(q)
}

func (s *fakeStore) QueryWhales(_ context.Context, q analyticsmodels.WhaleQuery) ([]analyticsmodels.Row, error) {
	return s.list(q)
}

func (s *fakeStore) QueryAnomalies(_ context.Context, q analyticsmodels.AnomalyQuery) ([]analyticsmodels.Row, error) {
	return s.list(q)
}

func (s *fakeStore) QueryTokenFlows(_ context.Context, q analyticsmodels.TokenFlowQuery) ([]analyticsmodels.Row, error) {
	return s.list(q)
}

func (s *fakeStore) QueryProtocolHealth(_ context.Context, q analyticsmodels.ProtocolHealthQuery) ([]analyticsmodels.Row, error) {
	return s.list(q)
}

func (s *fakeStore) Stats(context.Context) analyticsmodels.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.stats
}

func (s *fakeStore) LatestEventTime(context.Context) (*time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.latest, s.latestErr
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }
func (s *fakeStore) Close() error               { return nil }

type testServer struct {
	app     *types.App
	ctl     *Controller
	handler http.Handler
}

func newTestServer(t *testing.T, store *fakeStore, cache types.ResponseCache) *testServer {
	t.Helper()

	app := &types.App{
		Store:          store,
		Cache:          cache,
		CacheTTL:       time.Minute,
		Metrics:        metrics.New(),
		AllowedOrigins: []string{"http://localhost:3000"},
		Logger:         zaptest.NewLogger(t),
	}
	ctl := NewController(app)
	router, err := ctl.NewRouter()
	require.NoError(t, err)

	return &testServer{app: app, ctl: ctl, handler: WithCORS(app.AllowedOrigins, router)}
}

func (s *testServer) get(target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}
