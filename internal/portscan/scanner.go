package portscan

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/ambicuity/nettools/internal/errors"
)

// ─── scanner ──────────────────────────────────────────────────────────────────

// Scanner probes batches of TCP ports with bounded concurrency. Each Scan
// call is self-contained; a single Scanner is safe to use from multiple
// goroutines.
type Scanner struct {
	cfg    Config
	prober Prober
}

func New(cfg Config) *Scanner {
	return &Scanner{cfg: cfg, prober: DialProber{}}
}

// ─── scan ─────────────────────────────────────────────────────────────────────

// Scan probes every port in ports against host and returns a sorted,
// summarized report. At most cfg.Concurrency probes are in flight at any
// instant; without the cap a full sweep would attempt thousands of
// simultaneous connections and exhaust file descriptors.
//
// Probe failures are data, never errors. Scan itself fails only on a bad
// request: empty port list, out-of-range port, or non-positive
// timeout/concurrency.
func (s *Scanner) Scan(ctx context.Context, host string, ports []int) (*Report, error) {
	if err := s.validate(host, ports); err != nil {
		return nil, err
	}

	start := time.Now()

	sem := semaphore.NewWeighted(int64(s.cfg.Concurrency))
	var (
		mu      sync.Mutex
		results = make([]Result, 0, len(ports))
		wg      sync.WaitGroup
	)

	collect := func(r Result) {
		mu.Lock()
		results = append(results, r)
		mu.Unlock()
	}

	for _, port := range ports {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			// admission gate: blocks until a slot frees, or the
			// context is cancelled before the probe ever started
			if err := sem.Acquire(ctx, 1); err != nil {
				collect(Result{Port: p, Err: &ProbeError{Kind: KindCancelled, Detail: err.Error()}})
				return
			}
			defer sem.Release(1)
			collect(s.prober.Probe(ctx, host, p, s.cfg.Timeout))
		}(port)
	}
	wg.Wait()

	scanTime := time.Since(start).Seconds()

	// completion order is nondeterministic; restore determinism here
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Port < results[j].Port
	})

	return buildReport(host, results, scanTime), nil
}

// ScanWellKnown probes the curated list of well-known service ports.
func (s *Scanner) ScanWellKnown(ctx context.Context, host string) (*Report, error) {
	return s.Scan(ctx, host, WellKnownPorts())
}

// ─── report assembly ──────────────────────────────────────────────────────────

func buildReport(host string, results []Result, scanTime float64) *Report {
	summary := Summary{
		Open:   []int{},
		Closed: []int{},
		Errors: []Result{},
	}

	openCount := 0
	for _, r := range results {
		if r.Open {
			openCount++
			summary.Open = append(summary.Open, r.Port)
			continue
		}
		summary.Closed = append(summary.Closed, r.Port)
		if r.Err != nil && r.Err.Kind != KindTimeout {
			summary.Errors = append(summary.Errors, r)
		}
	}

	return &Report{
		Host:        host,
		TotalPorts:  len(results),
		OpenPorts:   openCount,
		ClosedPorts: len(results) - openCount,
		ScanTime:    scanTime,
		Ports:       results,
		Summary:     summary,
	}
}

// ─── validation ───────────────────────────────────────────────────────────────

func (s *Scanner) validate(host string, ports []int) error {
	if host == "" {
		return errors.Input("host", "must not be empty")
	}
	if len(ports) == 0 {
		return errors.Input("ports", "must not be empty")
	}
	for _, p := range ports {
		if p < 1 || p > 65535 {
			return errors.Input("ports", fmt.Sprintf("port %d out of range 1-65535", p))
		}
	}
	if s.cfg.Timeout <= 0 {
		return errors.Input("timeout", "must be positive")
	}
	if s.cfg.Concurrency <= 0 {
		return errors.Input("concurrency", "must be positive")
	}
	return nil
}
