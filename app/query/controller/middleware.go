package controller

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// responseRecorder passes writes through while keeping the status and,
// when body is set, a copy of the payload.
type responseRecorder struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (rr *responseRecorder) WriteHeader(status int) {
	rr.status = status
	rr.ResponseWriter.WriteHeader(status)
}

func (rr *responseRecorder) Write(p []byte) (int, error) {
	if rr.status == 0 {
		rr.status = http.StatusOK
	}
	if rr.body != nil {
		rr.body.Write(p)
	}
	return rr.ResponseWriter.Write(p)
}

// instrument records request counts and latency by route template.
func (c *Controller) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		if rec.status == 0 {
			rec.status = http.StatusOK
		}

		c.App.Metrics.Requests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
		c.App.Metrics.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

type cacheStateKey struct{}

type cacheState struct {
	skip bool
}

// markUncacheable keeps a degraded response out of the cache.
func markUncacheable(r *http.Request) {
	if st, ok := r.Context().Value(cacheStateKey{}).(*cacheState); ok {
		st.skip = true
	}
}

// cache serves and stores successful GET responses when a cache is configured.
// Cache failures are logged and otherwise ignored.
func (c *Controller) cache(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c.App.Cache == nil || c.App.CacheTTL <= 0 || r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		key := cacheKey(r)

		body, ok, err := c.App.Cache.Get(ctx, key)
		switch {
		case err != nil:
			c.App.Metrics.CacheLookups.WithLabelValues("error").Inc()
			c.App.Logger.Debug("Cache lookup failed", zap.String("key", key), zap.Error(err))
		case ok:
			c.App.Metrics.CacheLookups.WithLabelValues("hit").Inc()
			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-Cache", "HIT")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(body)
			return
		default:
			c.App.Metrics.CacheLookups.WithLabelValues("miss").Inc()
		}

		st := &cacheState{}
		rec := &responseRecorder{ResponseWriter: w, body: &bytes.Buffer{}}
		next.ServeHTTP(rec, r.WithContext(context.WithValue(ctx, cacheStateKey{}, st)))

		if st.skip || rec.status != http.StatusOK || rec.body.Len() == 0 {
			return
		}
		if err := c.App.Cache.Set(ctx, key, rec.body.Bytes(), c.App.CacheTTL); err != nil {
			c.App.Logger.Debug("Cache store failed", zap.String("key", key), zap.Error(err))
		}
	})
}

// cacheKey is the path plus the query string with keys sorted.
func cacheKey(r *http.Request) string {
	q := r.URL.Query().Encode()
	if q == "" {
		return r.URL.Path
	}
	return r.URL.Path + "?" + q
}
