// Package metricsserver runs the Prometheus scrape endpoint on its own listener.
package metricsserver

import (
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// Handler is satisfied by metrics collectors that can serve a scrape request.
type Handler interface {
	ServeHTTP(ctx *fasthttp.RequestCtx)
}

// Start creates and starts a separate metrics HTTP server.
// Returns nil if metrics are disabled. Metrics always run on a separate
// port (the config loader rejects a collision with the main listener).
func Start(enabled bool, listen, path string, handler Handler, logger *zap.Logger) (*fasthttp.Server, error) {
	if !enabled {
		logger.Info("Metrics collection disabled")
		return nil, nil
	}

	server := &fasthttp.Server{
		Handler:            routeScrapes(path, handler),
		Name:               "SiteGauge-Metrics",
		ReadTimeout:        10 * time.Second,
		WriteTimeout:       10 * time.Second,
		MaxRequestBodySize: 1 * 1024,
		TCPKeepalive:       true,
		TCPKeepalivePeriod: 30 * time.Second,
		MaxConnsPerIP:      100,
		MaxRequestsPerConn: 1000,
		Concurrency:        100,
	}

	go func() {
		logger.Info("Metrics server listening",
			zap.String("listen", listen),
			zap.String("path", path))

		if err := server.ListenAndServe(listen); err != nil {
			logger.Error("Metrics server stopped",
				zap.String("listen", listen),
				zap.Error(err))
		}
	}()

	time.Sleep(100 * time.Millisecond)

	return server, nil
}

func routeScrapes(path string, handler Handler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		if string(ctx.Path()) == path {
			handler.ServeHTTP(ctx)
			return
		}
		ctx.SetStatusCode(fasthttp.StatusNotFound)
		ctx.SetBodyString("Not Found")
	}
}
