package controller

import (
	"net/http"

	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
)

// HandleStats returns the dashboard headline numbers. Fields that could not
// be read from either source are 0 and the response is not cached.
func (c *Controller) HandleStats(w http.ResponseWriter, r *http.Request) {
	stats := c.App.Store.Stats(r.Context())

	for field, tier := range stats.Tiers {
		c.App.Metrics.StatsFieldTiers.WithLabelValues(field, string(tier)).Inc()
		if tier == analyticsmodels.TierDefault {
			markUncacheable(r)
		}
	}

	writeJSON(w, http.StatusOK, stats)
}
