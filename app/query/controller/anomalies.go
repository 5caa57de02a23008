package controller

import (
	"context"
	"net/http"

	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
)

func (c *Controller) HandleAnomalies(w http.ResponseWriter, r *http.Request) {
	q := analyticsmodels.AnomalyQuery{
		Page: analyticsmodels.Page{
			Limit:  parseLimit(r, anomaliesLimits),
			Offset: parseOffset(r),
		},
		Severity:     parseFilter(r, "severity"),
		TokenAddress: parseFilter(r, "token_address"),
	}

	c.serveList(w, r, "anomalies", q.Limit, &q.Offset, func(ctx context.Context) ([]analyticsmodels.Row, error) {
		return c.App.Store.QueryAnomalies(ctx, q)
	})
}
