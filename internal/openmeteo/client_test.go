package openmeteo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const forecastBody = `{
	"timezone": "America/Montreal",
	"current": {
		"time": "2024-03-15T10:00",
		"temperature_2m": 25.4,
		"relativehumidity_2m": 23,
		"weathercode": 2,
		"windspeed_10m": 10.3
	},
	"hourly": {
		"time": ["2024-03-15T09:00", "2024-03-15T10:00", "2024-03-15T11:00"],
		"temperature_2m": [24.0, 25.4, 26.1],
		"weathercode": [1, 2, 3]
	},
	"daily": {
		"time": ["2024-03-15", "2024-03-16"],
		"weathercode": [2, 61],
		"sunrise": ["2024-03-15T08:52", "2024-03-16T08:50"],
		"sunset": ["2024-03-15T18:12", "2024-03-16T18:14"]
	}
}`

const airQualityBody = `{"current": {"pm2_5": 8.2, "dust": 0}}`

const geocodingBody = `{
	"results": [
		{"name": "Montreal", "country": "Canada", "latitude": 45.50884, "longitude": -73.58781},
		{"name": "Montreal", "country": "France", "latitude": 43.2, "longitude": 2.1}
	]
}`

func testClient(forecastURL, airURL, geoURL string) *Client {
	return NewClient(Config{
		ForecastURL:   forecastURL,
		AirQualityURL: airURL,
		GeocodingURL:  geoURL,
		Timeout:       2 * time.Second,
	})
}

func jsonServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func failingServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream exploded", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchForecast(t *testing.T) {
	srv := jsonServer(t, forecastBody)
	c := testClient(srv.URL, srv.URL, srv.URL)

	bundle, err := c.FetchForecast(context.Background(), 45.5, -73.6)
	if err != nil {
		t.Fatalf("FetchForecast: %v", err)
	}

	if bundle.Timezone != "America/Montreal" {
		t.Errorf("timezone = %q", bundle.Timezone)
	}
	if bundle.Current.Time != "2024-03-15T10:00" {
		t.Errorf("current time = %q", bundle.Current.Time)
	}
	if bundle.Current.Temperature2m == nil || *bundle.Current.Temperature2m != 25.4 {
		t.Errorf("current temperature = %v", bundle.Current.Temperature2m)
	}
	if got := bundle.Hourly.Len(); got != 3 {
		t.Errorf("hourly samples = %d, want 3", got)
	}
	if len(bundle.Daily.Sunrise) != 2 {
		t.Errorf("daily sunrise entries = %d, want 2", len(bundle.Daily.Sunrise))
	}
}

func TestFetchForecast_MissingCurrent(t *testing.T) {
	srv := jsonServer(t, `{"timezone": "UTC"}`)
	c := testClient(srv.URL, srv.URL, srv.URL)

	if _, err := c.FetchForecast(context.Background(), 0, 0); err == nil {
		t.Fatal("expected error for missing current block")
	}
}

func TestFetchAirQuality_ZeroIsData(t *testing.T) {
	srv := jsonServer(t, airQualityBody)
	c := testClient(srv.URL, srv.URL, srv.URL)

	aq, err := c.FetchAirQuality(context.Background(), 45.5, -73.6)
	if err != nil {
		t.Fatalf("FetchAirQuality: %v", err)
	}
	if aq.PM25 == nil || *aq.PM25 != 8.2 {
		t.Errorf("pm2_5 = %v, want 8.2", aq.PM25)
	}
	// dust of zero must decode as a present value, not a missing one
	if aq.Dust == nil || *aq.Dust != 0 {
		t.Errorf("dust = %v, want present zero", aq.Dust)
	}
}

func TestGeocode(t *testing.T) {
	srv := jsonServer(t, geocodingBody)
	c := testClient(srv.URL, srv.URL, srv.URL)

	locations, err := c.Geocode(context.Background(), "Montreal", 10)
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if len(locations) != 2 {
		t.Fatalf("candidates = %d, want 2", len(locations))
	}
	if locations[0].Name != "Montreal" || locations[0].Country != "Canada" {
		t.Errorf("first candidate = %+v", locations[0])
	}
}

func TestGeocode_NoResults(t *testing.T) {
	srv := jsonServer(t, `{"results": []}`)
	c := testClient(srv.URL, srv.URL, srv.URL)

	locations, err := c.Geocode(context.Background(), "Xyzzy", 10)
	if err != nil {
		t.Fatalf("Geocode: %v", err)
	}
	if len(locations) != 0 {
		t.Errorf("candidates = %d, want 0", len(locations))
	}
}

// TestFetchBundle_PartialSuccess: a failed air-quality fetch degrades to a
// bundle without the sample; it is not an error.
func TestFetchBundle_PartialSuccess(t *testing.T) {
	forecastSrv := jsonServer(t, forecastBody)
	airSrv := failingServer(t)
	c := testClient(forecastSrv.URL, airSrv.URL, forecastSrv.URL)

	bundle, err := c.FetchBundle(context.Background(), 45.5, -73.6)
	if err != nil {
		t.Fatalf("FetchBundle: %v", err)
	}
	if bundle.AirQuality != nil {
		t.Errorf("air quality should be absent after failed fetch, got %+v", bundle.AirQuality)
	}
	if bundle.Current.Time == "" {
		t.Error("forecast part should be intact")
	}
}

func TestFetchBundle_FullSuccess(t *testing.T) {
	forecastSrv := jsonServer(t, forecastBody)
	airSrv := jsonServer(t, airQualityBody)
	c := testClient(forecastSrv.URL, airSrv.URL, forecastSrv.URL)

	bundle, err := c.FetchBundle(context.Background(), 45.5, -73.6)
	if err != nil {
		t.Fatalf("FetchBundle: %v", err)
	}
	if bundle.AirQuality == nil || bundle.AirQuality.PM25 == nil {
		t.Fatal("air quality should be joined into the bundle")
	}
}

// TestFetchBundle_ForecastFailure: the forecast is the required half; its
// failure fails the whole fetch even when air quality succeeds.
func TestFetchBundle_ForecastFailure(t *testing.T) {
	forecastSrv := failingServer(t)
	airSrv := jsonServer(t, airQualityBody)
	c := testClient(forecastSrv.URL, airSrv.URL, forecastSrv.URL)

	if _, err := c.FetchBundle(context.Background(), 45.5, -73.6); err == nil {
		t.Fatal("expected error when forecast fetch fails")
	}
}
