package controller

import (
	"net/http"

	"github.com/chainpulse/chainpulse/app/query/types"
)

func (c *Controller) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if err := c.App.Store.Ping(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, types.HealthResponse{Status: "error", DB: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, types.HealthResponse{Status: "ok", DB: "connected"})
}
