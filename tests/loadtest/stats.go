package main

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/HdrHistogram/hdrhistogram-go"
)

// Stats aggregates request outcomes across workers.
type Stats struct {
	mu        sync.Mutex
	latencies *hdrhistogram.Histogram
	successes int64
	errors    int64
	statuses  map[int]int64
}

// NewStats creates a Stats tracking latencies from 1ms to 2 minutes.
func NewStats() *Stats {
	return &Stats{
		latencies: hdrhistogram.New(1, 120_000, 3),
		statuses:  make(map[int]int64),
	}
}

// RecordSuccess records a 200 response and its latency.
func (s *Stats) RecordSuccess(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.successes++
	_ = s.latencies.RecordValue(elapsed.Milliseconds())
}

// RecordStatus records a non-200 response.
func (s *Stats) RecordStatus(code int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statuses[code]++
}

// RecordError records a transport-level failure.
func (s *Stats) RecordError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors++
}

// Report prints a summary to stdout.
func (s *Stats) Report(elapsed time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := s.successes + s.errors
	for _, n := range s.statuses {
		total += n
	}

	fmt.Printf("\n=== Load Test Results ===\n")
	fmt.Printf("Elapsed:     %s\n", elapsed.Round(time.Millisecond))
	fmt.Printf("Requests:    %d (%.1f/s)\n", total, float64(total)/elapsed.Seconds())
	fmt.Printf("Successes:   %d\n", s.successes)
	fmt.Printf("Errors:      %d\n", s.errors)

	if len(s.statuses) > 0 {
		codes := make([]int, 0, len(s.statuses))
		for code := range s.statuses {
			codes = append(codes, code)
		}
		sort.Ints(codes)
		for _, code := range codes {
			fmt.Printf("HTTP %d:    %d\n", code, s.statuses[code])
		}
	}

	if s.successes > 0 {
		fmt.Printf("\nLatency (ms):\n")
		fmt.Printf("  min:  %d\n", s.latencies.Min())
		fmt.Printf("  p50:  %d\n", s.latencies.ValueAtQuantile(50))
		fmt.Printf("  p90:  %d\n", s.latencies.ValueAtQuantile(90))
		fmt.Printf("  p99:  %d\n", s.latencies.ValueAtQuantile(99))
		fmt.Printf("  max:  %d\n", s.latencies.Max())
	}
}
