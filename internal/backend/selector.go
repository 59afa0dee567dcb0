// Package backend picks the API host the storefront talks to.
//
// The primary (local) host is probed once; the outcome is pinned for the
// life of the process. A failed probe, for whatever reason, pins the
// fallback (hosted) API until restart.
package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// DefaultProbeTimeout bounds the one-off health check of the primary host.
const DefaultProbeTimeout = 3 * time.Second

// Choice is the pinned outcome of the primary probe.
type Choice int

const (
	Unresolved Choice = iota
	Primary
	Fallback
)

func (c Choice) String() string {
	switch c {
	case Primary:
		return "primary"
	case Fallback:
		return "fallback"
	default:
		return "unresolved"
	}
}

// Endpoint is an API base URL together with the URL used to probe it.
type Endpoint struct {
	BaseURL   string
	HealthURL string
}

// Locator finds the primary endpoint. StaticLocator covers the fixed
// URL case; the consul package provides a discovery-backed one.
type Locator interface {
	Locate(ctx context.Context) (Endpoint, error)
}

// StaticLocator always returns the same endpoint.
type StaticLocator Endpoint

// Locate implements Locator.
func (s StaticLocator) Locate(context.Context) (Endpoint, error) {
	return Endpoint(s), nil
}

// Config holds selector settings.
type Config struct {
	Primary      Locator
	FallbackURL  string
	ProbeTimeout time.Duration
	HTTPClient   *http.Client
}

// Selector memoizes the primary/fallback decision.
type Selector struct {
	primary  Locator
	fallback string
	timeout  time.Duration
	client   *http.Client
	logger   *slog.Logger

	// mu serializes the first Resolve; choice is published after baseURL
	// so readers never wait on an in-flight health check.
	mu      sync.Mutex
	choice  atomic.Int32
	baseURL string
}

// NewSelector creates a selector. Nothing is probed until the first Resolve.
func NewSelector(cfg Config, logger *slog.Logger) *Selector {
	timeout := cfg.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	client := cfg.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Selector{
		primary:  cfg.Primary,
		fallback: cfg.FallbackURL,
		timeout:  timeout,
		client:   client,
		logger:   logger,
	}
}

// Resolve returns the API base URL for this process. The first call
// probes the primary; every later call returns the pinned choice without
// touching the network. Concurrent first callers share a single probe.
func (s *Selector) Resolve(ctx context.Context) (string, error) {
	if s.Choice() != Unresolved {
		return s.baseURL, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Choice() != Unresolved {
		return s.baseURL, nil
	}

	endpoint, err := s.probe(ctx)
	if err != nil {
		s.pin(Fallback, s.fallback)
		s.logger.Warn("Primary API unavailable, pinning fallback",
			"fallback", s.fallback,
			"error", err.Error(),
		)
		return s.baseURL, nil
	}

	s.pin(Primary, endpoint.BaseURL)
	s.logger.Info("Primary API healthy, pinning primary", "primary", endpoint.BaseURL)
	return s.baseURL, nil
}

func (s *Selector) pin(c Choice, baseURL string) {
	s.baseURL = baseURL
	s.choice.Store(int32(c))
}

// Choice reports the pinned decision, or Unresolved before the first
// Resolve completes. It never blocks.
func (s *Selector) Choice() Choice {
	return Choice(s.choice.Load())
}

// probe locates and health-checks the primary. Locator failures, transport
// errors, timeouts and non-2xx answers are all the same failure.
func (s *Selector) probe(ctx context.Context) (Endpoint, error) {
	if s.primary == nil {
		return Endpoint{}, fmt.Errorf("no primary configured")
	}

	// The pinned outcome outlives the request that triggered the probe, so
	// a caller hanging up must not pin the fallback.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.timeout)
	defer cancel()

	endpoint, err := s.primary.Locate(ctx)
	if err != nil {
		return Endpoint{}, fmt.Errorf("locate primary: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.HealthURL, nil)
	if err != nil {
		return Endpoint{}, fmt.Errorf("build health request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return Endpoint{}, fmt.Errorf("health check: %w", err)
	}
	resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Endpoint{}, fmt.Errorf("health check returned %d", resp.StatusCode)
	}
	return endpoint, nil
}
