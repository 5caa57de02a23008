package controller

import (
	"context"
	"net/http"

	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
)

// HandleTokenFlows returns hourly token flow snapshots, newest bucket first.
func (c *Controller) HandleTokenFlows(w http.ResponseWriter, r *http.Request) {
	q := analyticsmodels.TokenFlowQuery{
		Limit:        parseLimit(r, tokenFlowsLimits),
		TokenAddress: parseFilter(r, "token_address"),
	}

	c.serveList(w, r, "token_flows", q.Limit, nil, func(ctx context.Context) ([]analyticsmodels.Row, error) {
		return c.App.Store.QueryTokenFlows(ctx, q)
	})
}

// HandleProtocolHealth returns daily protocol health snapshots, newest day first.
func (c *Controller) HandleProtocolHealth(w http.ResponseWriter, r *http.Request) {
	q := analyticsmodels.ProtocolHealthQuery{
		Limit: parseLimit(r, protocolHealthLimits),
	}

	c.serveList(w, r, "protocol_health", q.Limit, nil, func(ctx context.Context) ([]analyticsmodels.Row, error) {
		return c.App.Store.QueryProtocolHealth(ctx, q)
	})
}
