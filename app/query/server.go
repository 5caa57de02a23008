package query

import (
	"net/http"
	"time"

	"github.com/chainpulse/chainpulse/app/query/controller"
	"github.com/chainpulse/chainpulse/app/query/types"
	"github.com/chainpulse/chainpulse/pkg/utils"
	"go.uber.org/zap"
)

// NewServer builds the router and attaches an http.Server to app.
func NewServer(app *types.App) error {
	ctler := controller.NewController(app)
	router, err := ctler.NewRouter()
	if err != nil {
		return err
	}

	// use <ip>:<port> to bind to a specific interface or :<port> to bind to all interfaces
	addr := utils.Env("ADDR", ":3001")

	app.Server = &http.Server{
		Addr:              addr,
		Handler:           controller.WithCORS(app.AllowedOrigins, router),
		ReadHeaderTimeout: 10 * time.Second,
	}
	app.Logger.Info("Starting server", zap.String("addr", addr), zap.Strings("allowed_origins", app.AllowedOrigins))

	return nil
}
