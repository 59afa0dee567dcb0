package apitest

import (
	"time"

	"storefront/internal/apiclient"
	"storefront/internal/backend"
	"storefront/internal/logger"
)

// Selector returns a backend selector whose primary is this shop and
// whose fallback is fallbackURL.
func (s *Shop) Selector(fallbackURL string) *backend.Selector {
	return backend.NewSelector(backend.Config{
		Primary:      backend.StaticLocator{BaseURL: s.BaseURL(), HealthURL: s.HealthURL()},
		FallbackURL:  fallbackURL,
		ProbeTimeout: time.Second,
	}, logger.Discard())
}

// Client returns an API client pinned to this shop.
func (s *Shop) Client() *apiclient.Client {
	return apiclient.New(s.Selector("http://127.0.0.1:1/api"), nil, logger.Discard())
}
