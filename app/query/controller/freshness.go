package controller

import (
	"math"
	"net/http"

	"github.com/chainpulse/chainpulse/app/query/types"
	"github.com/chainpulse/chainpulse/pkg/db/transform"
	"go.uber.org/zap"
)

// HandleDataFreshness reports the whole seconds elapsed since the newest raw event.
func (c *Controller) HandleDataFreshness(w http.ResponseWriter, r *http.Request) {
	last, err := c.App.Store.LatestEventTime(r.Context())
	if err != nil {
		c.App.Logger.Warn("Freshness lookup failed", zap.Error(err))
		c.App.Metrics.DegradedResponses.WithLabelValues("data_freshness").Inc()
		writeJSON(w, http.StatusOK, types.FreshnessResponse{Message: types.FreshnessError})
		return
	}
	if last == nil {
		writeJSON(w, http.StatusOK, types.FreshnessResponse{Message: types.FreshnessNoEvents})
		return
	}

	seconds := int64(math.Floor(c.now().Sub(*last).Seconds()))
	at := transform.FormatTime(*last)
	writeJSON(w, http.StatusOK, types.FreshnessResponse{
		SecondsSinceLastEvent: &seconds,
		LastEventAt:           &at,
	})
}
