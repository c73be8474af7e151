// Package fetch retrieves page HTML for analysis, falling back through
// configured relay sources when the direct request fails.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/sitegauge/engine/internal/common/configtypes"
	"github.com/sitegauge/engine/internal/common/urlutil"
)

// ErrAllSourcesFailed is returned when the direct request and every relay
// source failed to produce a usable page body.
var ErrAllSourcesFailed = errors.New("all fetch sources failed")

// minUsefulBodyBytes is the smallest body treated as real page content.
// Relay services answer interstitial or error pages well under this size.
const minUsefulBodyBytes = 100

// Recorder receives fetch outcome metrics. Satisfied by *metrics.PrometheusMetrics.
type Recorder interface {
	RecordFetch(source, status string)
	RecordFetchDuration(seconds float64)
}

// nopRecorder is used when no metrics collector is wired in.
type nopRecorder struct{}

func (nopRecorder) RecordFetch(string, string)  {}
func (nopRecorder) RecordFetchDuration(float64) {}

// Fetcher retrieves page HTML over HTTP with relay fallback.
type Fetcher struct {
	httpClient *http.Client
	cfg        configtypes.FetchConfig
	recorder   Recorder
	logger     *zap.Logger
}

// New creates a Fetcher. A nil recorder disables metrics.
func New(cfg configtypes.FetchConfig, recorder Recorder, logger *zap.Logger) *Fetcher {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &Fetcher{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.PerSourceTimeoutSec) * time.Second,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		cfg:      cfg,
		recorder: recorder,
		logger:   logger,
	}
}

// Fetch retrieves the page at rawURL, trying a direct request first and
// then each configured relay source in order. The first source answering
// 200 with a body longer than 100 bytes wins.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %q", parsed.Scheme)
	}

	if !f.cfg.AllowPrivateHosts {
		if err := urlutil.ValidateHostNotPrivateIP(parsed.Hostname()); err != nil {
			return nil, err
		}
	}

	startTime := time.Now()
	defer func() {
		f.recorder.RecordFetchDuration(time.Since(startTime).Seconds())
	}()

	sources := make([]fetchSource, 0, 1+len(f.cfg.RelaySources))
	sources = append(sources, fetchSource{name: "direct", target: rawURL})
	for _, relay := range f.cfg.RelaySources {
		sources = append(sources, fetchSource{
			name:   urlutil.ExtractHost(relay),
			target: relay + url.QueryEscape(rawURL),
		})
	}

	var lastErr error
	for _, src := range sources {
		body, err := f.fetchOne(ctx, src)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}

		f.logger.Debug("Page fetched",
			zap.String("url", rawURL),
			zap.String("source", src.name),
			zap.Int("body_bytes", len(body)),
			zap.Uint64("content_hash", xxhash.Sum64(body)))

		return body, nil
	}

	f.logger.Warn("All fetch sources failed",
		zap.String("url", rawURL),
		zap.Int("sources_tried", len(sources)),
		zap.Error(lastErr))

	return nil, fmt.Errorf("%w: %v", ErrAllSourcesFailed, lastErr)
}

type fetchSource struct {
	name   string
	target string
}

func (f *Fetcher) fetchOne(ctx context.Context, src fetchSource) ([]byte, error) {
	perSource, cancel := context.WithTimeout(ctx, time.Duration(f.cfg.PerSourceTimeoutSec)*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(perSource, http.MethodGet, src.target, nil)
	if err != nil {
		f.recorder.RecordFetch(src.name, "error")
		return nil, fmt.Errorf("failed to create request for %s: %w", src.name, err)
	}
	req.Header.Set("User-Agent", "SiteGauge/1.0 (+https://sitegauge.io/bot)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.recorder.RecordFetch(src.name, "error")
		return nil, fmt.Errorf("%s request failed: %w", src.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		f.recorder.RecordFetch(src.name, "error")
		return nil, fmt.Errorf("%s returned status %d", src.name, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.cfg.MaxBodyBytes)))
	if err != nil {
		f.recorder.RecordFetch(src.name, "error")
		return nil, fmt.Errorf("failed to read %s response body: %w", src.name, err)
	}

	if len(body) <= minUsefulBodyBytes {
		f.recorder.RecordFetch(src.name, "too_small")
		return nil, fmt.Errorf("%s returned a body of %d bytes, too small to be a page", src.name, len(body))
	}

	f.recorder.RecordFetch(src.name, "success")
	return body, nil
}
