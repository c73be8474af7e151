package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/sitegauge/engine/internal/analyzer"
	"github.com/sitegauge/engine/internal/common/htmlprocessor"
	"github.com/sitegauge/engine/internal/common/httputil"
	"github.com/sitegauge/engine/internal/fetch"
	"github.com/sitegauge/engine/internal/metrics"
	"github.com/sitegauge/engine/internal/rewriter"
	"github.com/sitegauge/engine/pkg/types"
)

// PageFetcher retrieves page HTML for analysis. Satisfied by *fetch.Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, error)
}

// Handlers holds the dependencies shared by all endpoint handlers.
type Handlers struct {
	fetcher  PageFetcher
	rewriter *rewriter.Rewriter
	metrics  *metrics.PrometheusMetrics
	logger   *zap.Logger
}

// NewHandlers wires the endpoint handlers to their dependencies.
func NewHandlers(fetcher PageFetcher, rw *rewriter.Rewriter, pm *metrics.PrometheusMetrics, logger *zap.Logger) *Handlers {
	return &Handlers{
		fetcher:  fetcher,
		rewriter: rw,
		metrics:  pm,
		logger:   logger,
	}
}

// AnalyzeRequest is the body for the page analysis endpoints. Either URL
// or HTML must be set; when both are present HTML is analyzed as the
// content of URL without fetching.
type AnalyzeRequest struct {
	URL  string `json:"url"`
	HTML string `json:"html,omitempty"`
}

// TextRequest is the body for the low-value content endpoint. Plain text
// is analyzed as-is; HTML (inline or fetched from URL) is reduced to its
// visible text first.
type TextRequest struct {
	Text string `json:"text,omitempty"`
	URL  string `json:"url,omitempty"`
	HTML string `json:"html,omitempty"`
}

// HumanizeRequest is the body for the tone rewrite endpoint.
type HumanizeRequest struct {
	Text string `json:"text"`
	Tone string `json:"tone"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// HandleAnalyzeSEO processes POST /api/v1/analyze/seo
func (h *Handlers) HandleAnalyzeSEO(ctx *fasthttp.RequestCtx) {
	h.handlePageAnalysis(ctx, "seo", analyzer.AnalyzeSEO)
}

// HandleAnalyzeAdReadiness processes POST /api/v1/analyze/ads
func (h *Handlers) HandleAnalyzeAdReadiness(ctx *fasthttp.RequestCtx) {
	h.handlePageAnalysis(ctx, "ads", analyzer.AnalyzeAdReadiness)
}

// HandleAnalyzeStaticSite processes POST /api/v1/analyze/static-site
func (h *Handlers) HandleAnalyzeStaticSite(ctx *fasthttp.RequestCtx) {
	h.handlePageAnalysis(ctx, "static-site", analyzer.AnalyzeStaticSite)
}

func (h *Handlers) handlePageAnalysis(ctx *fasthttp.RequestCtx, battery string, analyze func(htmlprocessor.Document, string) types.AnalysisOutcome) {
	path := string(ctx.Path())
	reqID, _ := ctx.UserValue(requestIDKey).(string)

	var req AnalyzeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, "Invalid JSON body", "validation")
		return
	}
	if req.URL == "" && req.HTML == "" {
		h.writeError(ctx, fasthttp.StatusBadRequest, "Either url or html is required", "validation")
		return
	}

	htmlBytes := []byte(req.HTML)
	if len(htmlBytes) == 0 {
		fetched, err := h.fetcher.Fetch(ctx, req.URL)
		if err != nil {
			h.writeFetchError(ctx, req.URL, reqID, err)
			return
		}
		htmlBytes = fetched
	}

	doc, err := htmlprocessor.Parse(htmlBytes)
	if err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, "Failed to parse HTML", "parse")
		return
	}

	startTime := time.Now()
	outcome := analyze(doc, req.URL)
	h.metrics.RecordAnalysisDuration(battery, time.Since(startTime).Seconds())
	h.metrics.RecordAnalysis(battery, outcome.Tier, outcome.Score)
	h.metrics.RecordHTTPRequest(path, "200")

	h.logger.Info("Analysis complete",
		zap.String("request_id", reqID),
		zap.String("battery", battery),
		zap.String("url", req.URL),
		zap.Int("score", outcome.Score),
		zap.String("tier", outcome.Tier))

	httputil.JSONData(ctx, outcome, fasthttp.StatusOK)
}

// HandleAnalyzeTextQuality processes POST /api/v1/analyze/low-value
func (h *Handlers) HandleAnalyzeTextQuality(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	reqID, _ := ctx.UserValue(requestIDKey).(string)

	var req TextRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, "Invalid JSON body", "validation")
		return
	}

	text := req.Text
	if text == "" {
		htmlBytes := []byte(req.HTML)
		if len(htmlBytes) == 0 {
			if req.URL == "" {
				h.writeError(ctx, fasthttp.StatusBadRequest, "One of text, html or url is required", "validation")
				return
			}
			fetched, err := h.fetcher.Fetch(ctx, req.URL)
			if err != nil {
				h.writeFetchError(ctx, req.URL, reqID, err)
				return
			}
			htmlBytes = fetched
		}

		doc, err := htmlprocessor.Parse(htmlBytes)
		if err != nil {
			h.writeError(ctx, fasthttp.StatusBadRequest, "Failed to parse HTML", "parse")
			return
		}
		text = doc.VisibleText(true)
	}

	if err := analyzer.ValidateTextLength(text); err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, err.Error(), "validation")
		return
	}

	startTime := time.Now()
	outcome := analyzer.AnalyzeTextQuality(text)
	h.metrics.RecordAnalysisDuration("low-value", time.Since(startTime).Seconds())
	h.metrics.RecordAnalysis("low-value", outcome.Tier, outcome.Score)
	h.metrics.RecordHTTPRequest(path, "200")

	h.logger.Info("Text quality analysis complete",
		zap.String("request_id", reqID),
		zap.Int("score", outcome.Score),
		zap.String("tier", outcome.Tier))

	httputil.JSONData(ctx, outcome, fasthttp.StatusOK)
}

// HandleHumanize processes POST /api/v1/humanize
func (h *Handlers) HandleHumanize(ctx *fasthttp.RequestCtx) {
	path := string(ctx.Path())
	reqID, _ := ctx.UserValue(requestIDKey).(string)

	var req HumanizeRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, "Invalid JSON body", "validation")
		return
	}
	if req.Text == "" {
		h.writeError(ctx, fasthttp.StatusBadRequest, "text is required", "validation")
		return
	}

	tone, err := rewriter.ParseTone(req.Tone)
	if err != nil {
		h.writeError(ctx, fasthttp.StatusBadRequest, err.Error(), "validation")
		return
	}

	result := h.rewriter.Rewrite(req.Text, tone)
	h.metrics.RecordRewrite(string(tone))
	h.metrics.RecordHTTPRequest(path, "200")

	h.logger.Info("Rewrite complete",
		zap.String("request_id", reqID),
		zap.String("tone", string(tone)),
		zap.Int("words_before", result.WordsBefore),
		zap.Int("words_after", result.WordsAfter),
		zap.Int("change_percent", result.ChangePercent))

	httputil.JSONData(ctx, result, fasthttp.StatusOK)
}

// HandleHealth processes GET /health
func (h *Handlers) HandleHealth(ctx *fasthttp.RequestCtx) {
	h.metrics.RecordHTTPRequest("/health", "200")
	httputil.JSONData(ctx, HealthResponse{Status: "ok"}, fasthttp.StatusOK)
}

func (h *Handlers) writeError(ctx *fasthttp.RequestCtx, statusCode int, message, errorType string) {
	h.metrics.RecordError(errorType)
	h.metrics.RecordHTTPRequest(string(ctx.Path()), fmt.Sprintf("%d", statusCode))
	httputil.JSONError(ctx, message, statusCode)
}

func (h *Handlers) writeFetchError(ctx *fasthttp.RequestCtx, url, reqID string, err error) {
	var vErr *types.ValidationError
	if errors.As(err, &vErr) {
		h.writeError(ctx, fasthttp.StatusBadRequest, vErr.Msg, "validation")
		return
	}

	h.logger.Warn("Page fetch failed",
		zap.String("request_id", reqID),
		zap.String("url", url),
		zap.Error(err))

	status := fasthttp.StatusBadGateway
	if !errors.Is(err, fetch.ErrAllSourcesFailed) && !errors.Is(err, context.DeadlineExceeded) {
		// Malformed URLs and blocked hosts are caller mistakes.
		status = fasthttp.StatusBadRequest
	}
	h.writeError(ctx, status, fmt.Sprintf("Failed to retrieve %s: %v", url, err), "fetch")
}
