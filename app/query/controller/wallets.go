package controller

import (
	"context"
	"net/http"

	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
)

// HandleWhales returns wallet segments ranked by RFM volume.
// segment filters on whale, bot, active, casual or dormant.
func (c *Controller) HandleWhales(w http.ResponseWriter, r *http.Request) {
	q := analyticsmodels.WhaleQuery{
		Page: analyticsmodels.Page{
			Limit:  parseLimit(r, whalesLimits),
			Offset: parseOffset(r),
		},
		Segment: parseFilter(r, "segment"),
	}

	c.serveList(w, r, "whales", q.Limit, &q.Offset, func(ctx context.Context) ([]analyticsmodels.Row, error) {
		return c.App.Store.QueryWhales(ctx, q)
	})
}
