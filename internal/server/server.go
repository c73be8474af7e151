// Package server exposes the analysis batteries and the tone rewriter
// over HTTP.
package server

import (
	"time"

	"github.com/valyala/fasthttp"

	"github.com/sitegauge/engine/internal/common/configtypes"
	"github.com/sitegauge/engine/internal/common/requestid"
)

// NewServer builds the public API fasthttp server around the handlers.
func NewServer(cfg configtypes.ServerConfig, h *Handlers) *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            CreateHTTPHandler(h),
		Name:               "SiteGauge-Analyzer",
		ReadTimeout:        time.Duration(cfg.ReadTimeoutSec) * time.Second,
		WriteTimeout:       time.Duration(cfg.WriteTimeoutSec) * time.Second,
		MaxRequestBodySize: cfg.MaxBodyBytes,
		TCPKeepalive:       true,
		TCPKeepalivePeriod: 30 * time.Second,
	}
}

// CreateHTTPHandler creates the main HTTP request handler with routing
func CreateHTTPHandler(h *Handlers) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		method := string(ctx.Method())

		reqID := requestid.Generate(string(ctx.Request.Header.Peek("X-Request-ID")))
		ctx.Response.Header.Set("X-Request-ID", reqID)
		ctx.SetUserValue(requestIDKey, reqID)

		h.metrics.IncActiveRequests()
		defer h.metrics.DecActiveRequests()

		switch {
		case method == "POST" && path == "/api/v1/analyze/seo":
			h.HandleAnalyzeSEO(ctx)
		case method == "POST" && path == "/api/v1/analyze/ads":
			h.HandleAnalyzeAdReadiness(ctx)
		case method == "POST" && path == "/api/v1/analyze/static-site":
			h.HandleAnalyzeStaticSite(ctx)
		case method == "POST" && path == "/api/v1/analyze/low-value":
			h.HandleAnalyzeTextQuality(ctx)
		case method == "POST" && path == "/api/v1/humanize":
			h.HandleHumanize(ctx)
		case method == "GET" && path == "/health":
			h.HandleHealth(ctx)
		default:
			ctx.SetStatusCode(fasthttp.StatusNotFound)
			ctx.SetBodyString("Not Found")
			h.metrics.RecordHTTPRequest(path, "404")
		}
	}
}

const requestIDKey = "request_id"
