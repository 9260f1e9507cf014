package search

import (
	"context"
	"testing"
	"time"

	"skycast/internal/forecast"
)

type fakeGeocoder struct {
	calls   int
	results []forecast.LocationSelection
	err     error
}

func (f *fakeGeocoder) Geocode(ctx context.Context, name string, count int) ([]forecast.LocationSelection, error) {
	f.calls++
	return f.results, f.err
}

func TestSearcher_EmptyQuerySkipsUpstream(t *testing.T) {
	g := &fakeGeocoder{}
	s := NewSearcher(g, 10, 1, 10)

	for _, query := range []string{"", "   ", "\t"} {
		got, err := s.Search(context.Background(), query)
		if err != nil {
			t.Errorf("Search(%q) error: %v", query, err)
		}
		if got != nil {
			t.Errorf("Search(%q) = %v, want nil", query, got)
		}
	}
	if g.calls != 0 {
		t.Errorf("geocoder called %d times for empty queries, want 0", g.calls)
	}
}

func TestSearcher_PassesThrough(t *testing.T) {
	g := &fakeGeocoder{results: []forecast.LocationSelection{{Name: "Montreal", Country: "Canada"}}}
	s := NewSearcher(g, 10, 1, 10)

	got, err := s.Search(context.Background(), "Montreal")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Montreal" {
		t.Errorf("Search = %v", got)
	}
}

// TestSearcher_RateLimited: with no burst budget left, Search blocks until
// the limiter releases or the context expires.
func TestSearcher_RateLimited(t *testing.T) {
	g := &fakeGeocoder{}
	s := NewSearcher(g, 0.1, 1, 10) // one token, then one per 10s

	if _, err := s.Search(context.Background(), "first"); err != nil {
		t.Fatalf("first search: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := s.Search(ctx, "second"); err == nil {
		t.Fatal("expected rate-limit wait cancellation")
	}
	if g.calls != 1 {
		t.Errorf("geocoder called %d times, want 1", g.calls)
	}
}
