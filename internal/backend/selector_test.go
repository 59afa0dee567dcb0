package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"storefront/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fallbackURL = "https://fallback.example/api"

func healthServer(t *testing.T, status int, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newSelector(primary Locator, timeout time.Duration) *Selector {
	return NewSelector(Config{
		Primary:      primary,
		FallbackURL:  fallbackURL,
		ProbeTimeout: timeout,
	}, logger.Discard())
}

func TestResolve_HealthyPrimaryIsPinned(t *testing.T) {
	var hits atomic.Int32
	srv := healthServer(t, http.StatusOK, &hits)
	s := newSelector(StaticLocator{BaseURL: srv.URL + "/api", HealthURL: srv.URL + "/health"}, time.Second)

	assert.Equal(t, Unresolved, s.Choice())

	for i := 0; i < 3; i++ {
		got, err := s.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, srv.URL+"/api", got)
	}
	assert.Equal(t, Primary, s.Choice())
	assert.EqualValues(t, 1, hits.Load())
}

func TestResolve_FailedProbePinsFallbackWithoutReprobe(t *testing.T) {
	var hits atomic.Int32
	srv := healthServer(t, http.StatusServiceUnavailable, &hits)
	s := newSelector(StaticLocator{BaseURL: srv.URL + "/api", HealthURL: srv.URL + "/health"}, time.Second)

	for i := 0; i < 5; i++ {
		got, err := s.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fallbackURL, got)
	}
	assert.Equal(t, Fallback, s.Choice())
	assert.EqualValues(t, 1, hits.Load())
}

func TestResolve_CancelledCallerDoesNotPinFallback(t *testing.T) {
	var hits atomic.Int32
	srv := healthServer(t, http.StatusOK, &hits)
	s := newSelector(StaticLocator{BaseURL: srv.URL + "/api", HealthURL: srv.URL + "/health"}, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := s.Resolve(ctx)
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/api", got)
	assert.Equal(t, Primary, s.Choice())
}

func TestResolve_UnreachablePrimaryPinsFallback(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := newSelector(StaticLocator{BaseURL: url + "/api", HealthURL: url + "/health"}, time.Second)

	got, err := s.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fallbackURL, got)
	assert.Equal(t, Fallback, s.Choice())
}

func TestResolve_SlowPrimaryTimesOut(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	s := newSelector(StaticLocator{BaseURL: srv.URL + "/api", HealthURL: srv.URL + "/health"}, 50*time.Millisecond)

	start := time.Now()
	got, err := s.Resolve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, fallbackURL, got)
	assert.Less(t, time.Since(start), 2*time.Second)
}

type failingLocator struct{ calls atomic.Int32 }

func (f *failingLocator) Locate(context.Context) (Endpoint, error) {
	f.calls.Add(1)
	return Endpoint{}, errors.New("no healthy instances")
}

func TestResolve_LocatorFailureCountsAsFailedProbe(t *testing.T) {
	loc := &failingLocator{}
	s := newSelector(loc, time.Second)

	for i := 0; i < 3; i++ {
		got, err := s.Resolve(context.Background())
		require.NoError(t, err)
		assert.Equal(t, fallbackURL, got)
	}
	assert.EqualValues(t, 1, loc.calls.Load())
}

func TestResolve_ConcurrentCallersShareOneProbe(t *testing.T) {
	var hits atomic.Int32
	srv := healthServer(t, http.StatusOK, &hits)
	s := newSelector(StaticLocator{BaseURL: srv.URL + "/api", HealthURL: srv.URL + "/health"}, time.Second)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Resolve(context.Background())
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, hits.Load())
}

func TestChoice_DoesNotWaitForHealthCheck(t *testing.T) {
	arrived := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(arrived)
		<-release
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	s := newSelector(StaticLocator{BaseURL: srv.URL + "/api", HealthURL: srv.URL + "/health"}, 5*time.Second)

	done := make(chan string, 1)
	go func() {
		got, _ := s.Resolve(context.Background())
		done <- got
	}()
	<-arrived

	choice := make(chan Choice, 1)
	go func() { choice <- s.Choice() }()
	select {
	case c := <-choice:
		assert.Equal(t, Unresolved, c)
	case <-time.After(time.Second):
		t.Fatal("Choice blocked behind the health check")
	}

	close(release)
	assert.Equal(t, srv.URL+"/api", <-done)
	assert.Equal(t, Primary, s.Choice())
}

func TestChoiceString(t *testing.T) {
	assert.Equal(t, "primary", Primary.String())
	assert.Equal(t, "fallback", Fallback.String())
	assert.Equal(t, "unresolved", Unresolved.String())
}
