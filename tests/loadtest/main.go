// Load test tool for the analyzer service API. Fires concurrent analysis
// requests with inline HTML bodies and reports latency percentiles.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/google/uuid"
)

type Config struct {
	Target      string
	Endpoint    string
	PageFile    string
	Concurrency int
	Duration    time.Duration
	Timeout     time.Duration
}

var validEndpoints = map[string]bool{
	"seo":         true,
	"ads":         true,
	"static-site": true,
	"low-value":   true,
}

func main() {
	target := flag.String("target", "", "Analyzer service base URL, e.g. http://localhost:8080 (required)")
	endpoint := flag.String("endpoint", "seo", "Battery to exercise: seo, ads, static-site or low-value")
	pageFile := flag.String("page", "", "Path to an HTML file sent inline with each request (required)")
	concurrency := flag.Int("concurrency", 8, "Number of simultaneous requests")
	duration := flag.Duration("duration", time.Minute, "Test duration")
	timeout := flag.Duration("timeout", 30*time.Second, "HTTP request timeout")

	flag.Parse()

	config, err := validateParameters(*target, *endpoint, *pageFile, *concurrency, *duration, *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(1)
	}

	page, err := os.ReadFile(config.PageFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading page file: %v\n", err)
		os.Exit(1)
	}

	payload, err := json.Marshal(map[string]string{
		"url":  "https://loadtest.example.com/",
		"html": string(page),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error building payload: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Load Test Tool - Configuration\n")
	fmt.Printf("Target: %s\n", config.Target)
	fmt.Printf("Endpoint: /api/v1/analyze/%s\n", config.Endpoint)
	fmt.Printf("Concurrency: %d\n", config.Concurrency)
	fmt.Printf("Duration: %s\n\n", config.Duration)

	ctx, cancel := context.WithTimeout(context.Background(), config.Duration)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted, finishing in-flight requests...")
		cancel()
	}()

	client := &http.Client{Timeout: config.Timeout}
	requestURL := strings.TrimSuffix(config.Target, "/") + "/api/v1/analyze/" + config.Endpoint

	stats := NewStats()
	start := time.Now()

	var wg sync.WaitGroup
	for i := 0; i < config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			runWorker(ctx, client, requestURL, payload, stats)
		}()
	}
	wg.Wait()

	stats.Report(time.Since(start))
}

func validateParameters(target, endpoint, pageFile string, concurrency int, duration, timeout time.Duration) (*Config, error) {
	if target == "" {
		return nil, fmt.Errorf("-target is required")
	}
	if !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		return nil, fmt.Errorf("-target must be an http(s) URL")
	}
	if !validEndpoints[endpoint] {
		return nil, fmt.Errorf("unknown endpoint %q", endpoint)
	}
	if pageFile == "" {
		return nil, fmt.Errorf("-page is required")
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("-concurrency must be at least 1")
	}
	if duration < time.Second {
		return nil, fmt.Errorf("-duration must be at least 1s")
	}
	return &Config{
		Target:      target,
		Endpoint:    endpoint,
		PageFile:    pageFile,
		Concurrency: concurrency,
		Duration:    duration,
		Timeout:     timeout,
	}, nil
}

func runWorker(ctx context.Context, client *http.Client, requestURL string, payload []byte, stats *Stats) {
	for ctx.Err() == nil {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(payload))
		if err != nil {
			stats.RecordError()
			continue
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Request-ID", "loadtest-"+uuid.New().String())

		start := time.Now()
		resp, err := client.Do(req)
		elapsed := time.Since(start)

		if err != nil {
			if ctx.Err() != nil {
				return
			}
			stats.RecordError()
			continue
		}
		_ = resp.Body.Close()

		if resp.StatusCode == http.StatusOK {
			stats.RecordSuccess(elapsed)
		} else {
			stats.RecordStatus(resp.StatusCode)
		}
	}
}
