package search

import (
	"context"
	"fmt"
	"strings"

	"skycast/internal/forecast"

	"golang.org/x/time/rate"
)

// Geocoder resolves a city name to candidate locations.
type Geocoder interface {
	Geocode(ctx context.Context, name string, count int) ([]forecast.LocationSelection, error)
}

// Searcher wraps a geocoder with rate limiting so search-as-you-type input
// cannot flood the upstream API.
type Searcher struct {
	geocoder   Geocoder
	limiter    *rate.Limiter
	maxResults int
}

// NewSearcher builds a rate-limited searcher. rps may be fractional for
// less than one request per second.
func NewSearcher(geocoder Geocoder, rps float64, burst, maxResults int) *Searcher {
	if burst <= 0 {
		burst = 1
	}
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Searcher{
		geocoder:   geocoder,
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		maxResults: maxResults,
	}
}

// Search waits for rate-limiter permission, then looks the query up. An
// empty query yields no candidates without touching the upstream.
func (s *Searcher) Search(ctx context.Context, query string) ([]forecast.LocationSelection, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait canceled: %w", err)
	}
	return s.geocoder.Geocode(ctx, query, s.maxResults)
}
