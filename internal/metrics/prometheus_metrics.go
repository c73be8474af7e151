package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	dto "github.com/prometheus/client_model/go"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"
)

// PrometheusMetrics provides metrics collection for the analyzer service
type PrometheusMetrics struct {
	// Analysis metrics
	analysesTotal    *prometheus.CounterVec
	analysisDuration *prometheus.HistogramVec
	analysisScores   *prometheus.HistogramVec

	// Rewrite metrics
	rewritesTotal *prometheus.CounterVec

	// Fetch metrics
	fetchesTotal      *prometheus.CounterVec
	fetchDuration     prometheus.Histogram
	fetchSuccessRatio *prometheus.GaugeVec

	// HTTP metrics
	httpRequests   *prometheus.CounterVec
	activeRequests prometheus.Gauge

	// Error metrics
	errorsTotal *prometheus.CounterVec

	// Runtime metrics
	systemMemoryUsed prometheus.Gauge

	logger      *zap.Logger
	httpHandler func(*fasthttp.RequestCtx)
}

// NewPrometheusMetrics creates a new Prometheus-based metrics collector
func NewPrometheusMetrics(namespace string, logger *zap.Logger) *PrometheusMetrics {
	return NewPrometheusMetricsWithRegistry(namespace, prometheus.DefaultRegisterer, logger)
}

// NewPrometheusMetricsWithRegistry creates a new Prometheus-based metrics collector with custom registry
func NewPrometheusMetricsWithRegistry(namespace string, registerer prometheus.Registerer, logger *zap.Logger) *PrometheusMetrics {
	pm := &PrometheusMetrics{
		logger: logger,
	}

	pm.analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "analyses_total",
		Help:      "Total number of analyses by battery and tier",
	}, []string{"battery", "tier"})

	pm.analysisDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "analysis_duration_seconds",
		Help:      "Time spent running an analysis battery",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	}, []string{"battery"})

	pm.analysisScores = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "analysis_scores",
		Help:      "Distribution of normalized analysis scores",
		Buckets:   prometheus.LinearBuckets(0, 10, 11), // 0 to 100
	}, []string{"battery"})

	pm.rewritesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "rewrites_total",
		Help:      "Total number of tone rewrites by tone",
	}, []string{"tone"})

	pm.fetchesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "fetches_total",
		Help:      "Total page fetch attempts by source and status",
	}, []string{"source", "status"}) // status: success, error, too_small

	pm.fetchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "fetch_duration_seconds",
		Help:      "Time spent fetching a page including relay fallbacks",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
	})

	pm.fetchSuccessRatio = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "fetch_success_ratio",
		Help:      "Fraction of fetch attempts per source that succeeded",
	}, []string{"source"})

	pm.httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests by endpoint and status",
	}, []string{"endpoint", "status"})

	pm.activeRequests = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "active_requests",
		Help:      "Number of requests currently being processed",
	})

	pm.errorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "errors_total",
		Help:      "Total errors by type",
	}, []string{"type"}) // type: validation, fetch, parse, internal

	pm.systemMemoryUsed = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "analyzer",
		Name:      "system_memory_used_bytes",
		Help:      "System memory in use as reported by the OS",
	})

	registerer.MustRegister(
		pm.analysesTotal,
		pm.analysisDuration,
		pm.analysisScores,
		pm.rewritesTotal,
		pm.fetchesTotal,
		pm.fetchDuration,
		pm.fetchSuccessRatio,
		pm.httpRequests,
		pm.activeRequests,
		pm.errorsTotal,
		pm.systemMemoryUsed,
	)

	gatherer, ok := registerer.(prometheus.Gatherer)
	if !ok {
		gatherer = prometheus.DefaultGatherer
	}
	pm.httpHandler = fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	logger.Info("Analyzer Prometheus metrics initialized")
	return pm
}

// RecordAnalysis records a completed analysis with its tier and score
func (pm *PrometheusMetrics) RecordAnalysis(battery, tier string, score int) {
	pm.analysesTotal.WithLabelValues(battery, tier).Inc()
	pm.analysisScores.WithLabelValues(battery).Observe(float64(score))
}

// RecordAnalysisDuration records how long a battery took
func (pm *PrometheusMetrics) RecordAnalysisDuration(battery string, seconds float64) {
	pm.analysisDuration.WithLabelValues(battery).Observe(seconds)
}

// RecordRewrite records a tone rewrite
func (pm *PrometheusMetrics) RecordRewrite(tone string) {
	pm.rewritesTotal.WithLabelValues(tone).Inc()
}

// RecordFetch records a single fetch attempt outcome
func (pm *PrometheusMetrics) RecordFetch(source, status string) {
	pm.fetchesTotal.WithLabelValues(source, status).Inc()
	pm.updateFetchSuccessRatio(source)
}

// updateFetchSuccessRatio recomputes the derived success gauge for a source
func (pm *PrometheusMetrics) updateFetchSuccessRatio(source string) {
	success := pm.getCounterValue(pm.fetchesTotal.WithLabelValues(source, "success"))
	errors := pm.getCounterValue(pm.fetchesTotal.WithLabelValues(source, "error"))
	tooSmall := pm.getCounterValue(pm.fetchesTotal.WithLabelValues(source, "too_small"))

	total := success + errors + tooSmall
	if total > 0 {
		pm.fetchSuccessRatio.WithLabelValues(source).Set(success / total)
	}
}

// getCounterValue extracts the current value from a counter
func (pm *PrometheusMetrics) getCounterValue(counter prometheus.Counter) float64 {
	metric := &dto.Metric{}
	if err := counter.Write(metric); err != nil {
		pm.logger.Warn("Failed to read counter value", zap.Error(err))
		return 0
	}
	return metric.GetCounter().GetValue()
}

// RecordFetchDuration records total fetch time across all sources
func (pm *PrometheusMetrics) RecordFetchDuration(seconds float64) {
	pm.fetchDuration.Observe(seconds)
}

// RecordHTTPRequest records an HTTP request
func (pm *PrometheusMetrics) RecordHTTPRequest(endpoint, status string) {
	pm.httpRequests.WithLabelValues(endpoint, status).Inc()
}

// IncActiveRequests increments the in-flight request gauge
func (pm *PrometheusMetrics) IncActiveRequests() {
	pm.activeRequests.Inc()
}

// DecActiveRequests decrements the in-flight request gauge
func (pm *PrometheusMetrics) DecActiveRequests() {
	pm.activeRequests.Dec()
}

// RecordError records an error by type
func (pm *PrometheusMetrics) RecordError(errorType string) {
	pm.errorsTotal.WithLabelValues(errorType).Inc()
}

// UpdateSystemStats refreshes OS-level gauges. Safe to call periodically.
func (pm *PrometheusMetrics) UpdateSystemStats() {
	v, err := mem.VirtualMemory()
	if err != nil {
		pm.logger.Debug("Failed to read system memory", zap.Error(err))
		return
	}
	pm.systemMemoryUsed.Set(float64(v.Used))
}

// ServeHTTP serves Prometheus metrics via HTTP
func (pm *PrometheusMetrics) ServeHTTP(ctx *fasthttp.RequestCtx) {
	pm.httpHandler(ctx)
}
