package controller

import (
	"context"
	"net/http"

	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
)

// HandleSwaps returns raw swaps, newest first.
// Query params:
//   - limit: 1..1000, default 100
//   - offset: >= 0
//   - token_address: matches either side of the swap
//   - wallet_address: matches the sender
func (c *Controller) HandleSwaps(w http.ResponseWriter, r *http.Request) {
	q := analyticsmodels.SwapQuery{
		Page: analyticsmodels.Page{
			Limit:  parseLimit(r, swapsLimits),
			Offset: parseOffset(r),
		},
		TokenAddress:  parseFilter(r, "token_address"),
		WalletAddress: parseFilter(r, "wallet_address"),
	}

	c.serveList(w, r, "swaps", q.Limit, &q.Offset, func(ctx context.Context) ([]analyticsmodels.Row, error) {
		return c.App.Store.QuerySwaps(ctx, q)
	})
}

// HandleVolume returns hourly USD swap volume per token. There is no offset.
func (c *Controller) HandleVolume(w http.ResponseWriter, r *http.Request) {
	q := analyticsmodels.VolumeQuery{
		Limit:        parseLimit(r, volumeLimits),
		TokenAddress: parseFilter(r, "token_address"),
	}

	c.serveList(w, r, "volume", q.Limit, nil, func(ctx context.Context) ([]analyticsmodels.Row, error) {
		return c.App.Store.QueryVolume(ctx, q)
	})
}
