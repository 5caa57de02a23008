package controller

import (
	"net/http"
	"time"

	"github.com/chainpulse/chainpulse/app/query/types"
	"github.com/gorilla/mux"
)

type Controller struct {
	App *types.App

	now func() time.Time
}

// NewController returns a new controller.
func NewController(app *types.App) *Controller {
	return &Controller{
		App: app,
		now: time.Now,
	}
}

// endpoints is served by the index route.
var endpoints = []string{
	"/api/swaps",
	"/api/volume",
	"/api/whales",
	"/api/anomalies",
	"/api/token-flows",
	"/api/protocol-health",
	"/api/stats",
	"/api/data-freshness",
	"/api/health",
	"/metrics",
}

// NewRouter returns a new router with all the routes defined in this file.
func (c *Controller) NewRouter() (*mux.Router, error) {
	r := mux.NewRouter()
	r.Use(c.instrument)

	r.HandleFunc("/", c.HandleIndex).Methods(http.MethodGet)
	r.Handle("/metrics", c.App.Metrics.Handler()).Methods(http.MethodGet)

	// registered before the /api subrouter so they are never cached
	r.HandleFunc("/api/health", c.HandleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/data-freshness", c.HandleDataFreshness).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(c.cache)

	api.HandleFunc("/swaps", c.HandleSwaps).Methods(http.MethodGet)
	api.HandleFunc("/volume", c.HandleVolume).Methods(http.MethodGet)
	api.HandleFunc("/whales", c.HandleWhales).Methods(http.MethodGet)
	api.HandleFunc("/anomalies", c.HandleAnomalies).Methods(http.MethodGet)
	api.HandleFunc("/token-flows", c.HandleTokenFlows).Methods(http.MethodGet)
	api.HandleFunc("/protocol-health", c.HandleProtocolHealth).Methods(http.MethodGet)
	api.HandleFunc("/stats", c.HandleStats).Methods(http.MethodGet)

	return r, nil
}

// HandleIndex describes the service.
func (c *Controller) HandleIndex(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, types.IndexResponse{
		Service:   "chainpulse",
		Endpoints: endpoints,
	})
}

// WithCORS answers preflights and echoes allowed origins back.
// An allow-list containing "*" accepts any origin.
func WithCORS(allowed []string, next http.Handler) http.Handler {
	allowAll := false
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			allowAll = true
		}
		set[o] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")

		if origin != "" {
			if _, ok := set[origin]; ok || allowAll {
				w.Header().Set("Access-Control-Allow-Origin", origin)
			}
		}
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", http.MethodGet+", "+http.MethodOptions)

		// Fast-path the preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
