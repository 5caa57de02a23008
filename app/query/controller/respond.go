package controller

import (
	"context"
	"net/http"

	analyticsmodels "github.com/chainpulse/chainpulse/pkg/db/models/analytics"
	"github.com/go-jose/go-jose/v4/json"
	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type listQuery func(ctx context.Context) ([]analyticsmodels.Row, error)

// serveList runs query and writes the list envelope. Storage errors are
// logged and answered with an empty page, still HTTP 200.
func (c *Controller) serveList(w http.ResponseWriter, r *http.Request, resource string, limit int, offset *int, query listQuery) {
	rows, err := query(r.Context())
	if err != nil {
		fields := []zap.Field{
			zap.String("resource", resource),
			zap.Int("limit", limit),
			zap.Error(err),
		}
		if offset != nil {
			fields = append(fields, zap.Int("offset", *offset))
		}
		c.App.Logger.Warn("Query failed, serving empty page", fields...)
		c.App.Metrics.DegradedResponses.WithLabelValues(resource).Inc()
		markUncacheable(r)
		rows = nil
	}
	if rows == nil {
		rows = []analyticsmodels.Row{}
	}

	writeJSON(w, http.StatusOK, pagedResponse[analyticsmodels.Row]{
		Data:   rows,
		Limit:  limit,
		Offset: offset,
	})
}
