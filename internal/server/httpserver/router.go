// Package httpserver provides the admin HTTP server for respkv.
package httpserver

import (
	"net/http"

	"github.com/yndnr/respkv/internal/server/httpserver/handler"
	"github.com/yndnr/respkv/internal/telemetry/logger"
	"github.com/yndnr/respkv/internal/telemetry/metric"
)

// RouterConfig holds configuration for the HTTP router.
type RouterConfig struct {
	// Metrics serves /metrics. Nil disables the endpoint.
	Metrics *metric.Registry

	// Keys and Conns feed /status.
	Keys  handler.KeyCounter
	Conns handler.ConnCounter

	// Ready backs /ready.
	Ready func() error

	// Logger for request logging.
	Logger logger.Logger
}

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(cfg *RouterConfig) http.Handler {
	log := cfg.Logger
	if log == nil {
		log = logger.Default()
	}

	h := handler.New(handler.Config{
		Keys:   cfg.Keys,
		Conns:  cfg.Conns,
		Ready:  cfg.Ready,
		Logger: log,
	})

	// Order: Recover -> RequestID -> AccessLog -> Handler
	middlewares := []Middleware{
		Recover(log),
		RequestID(),
		AccessLog(log),
	}

	mux := http.NewServeMux()
	mux.Handle("GET /health", Chain(h, middlewares...))
	mux.Handle("GET /ready", Chain(h, middlewares...))
	mux.Handle("GET /status", Chain(h, middlewares...))

	if cfg.Metrics != nil {
		mux.Handle("GET /metrics", Chain(cfg.Metrics.Handler(log), middlewares...))
	}

	return mux
}
