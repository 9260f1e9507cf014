package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"skycast/internal/forecast"

	"github.com/sony/gobreaker"
)

// Client talks to the Open-Meteo forecast, air-quality and geocoding APIs.
// Each upstream sits behind its own circuit breaker so a flapping endpoint
// stops being hammered without affecting the others.
type Client struct {
	forecastURL   string
	airQualityURL string
	geocodingURL  string
	forecastDays  int
	httpClient    *http.Client

	forecastCB *gobreaker.CircuitBreaker
	airCB      *gobreaker.CircuitBreaker
	geoCB      *gobreaker.CircuitBreaker
}

type Config struct {
	ForecastURL   string
	AirQualityURL string
	GeocodingURL  string
	Timeout       time.Duration
	ForecastDays  int
}

func NewClient(cfg Config) *Client {
	if cfg.ForecastURL == "" {
		cfg.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	if cfg.AirQualityURL == "" {
		cfg.AirQualityURL = "https://air-quality-api.open-meteo.com/v1/air-quality"
	}
	if cfg.GeocodingURL == "" {
		cfg.GeocodingURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.ForecastDays <= 0 {
		cfg.ForecastDays = 7
	}

	breaker := func(name string) *gobreaker.CircuitBreaker {
		return gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        name,
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		})
	}

	return &Client{
		forecastURL:   cfg.ForecastURL,
		airQualityURL: cfg.AirQualityURL,
		geocodingURL:  cfg.GeocodingURL,
		forecastDays:  cfg.ForecastDays,
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		forecastCB:    breaker("openmeteo-forecast"),
		airCB:         breaker("openmeteo-air-quality"),
		geoCB:         breaker("openmeteo-geocoding"),
	}
}

// forecastResponse mirrors the upstream payload; the block types are shared
// with the forecast package so no re-mapping is needed.
type forecastResponse struct {
	Timezone string                 `json:"timezone"`
	Current  forecast.CurrentSample `json:"current"`
	Hourly   forecast.SeriesBlock   `json:"hourly"`
	Daily    forecast.SeriesBlock   `json:"daily"`
}

type airQualityResponse struct {
	Current forecast.AirQualitySample `json:"current"`
}

type geocodingResponse struct {
	Results []struct {
		Name      string  `json:"name"`
		Country   string  `json:"country"`
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"results"`
}

// FetchForecast retrieves the current/hourly/daily blocks for a location.
// All timestamps in the result are wall-clock times in the location's own
// timezone (timezone=auto).
func (c *Client) FetchForecast(ctx context.Context, lat, lon float64) (*forecast.Bundle, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.6f", lat))
	query.Set("longitude", fmt.Sprintf("%.6f", lon))
	query.Set("current", "temperature_2m,apparent_temperature,relativehumidity_2m,weathercode,windspeed_10m,precipitation_probability,uv_index,visibility,pressure_msl")
	query.Set("hourly", "temperature_2m,apparent_temperature,relativehumidity_2m,weathercode,windspeed_10m,precipitation_probability")
	query.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,sunrise,sunset")
	query.Set("timezone", "auto")
	query.Set("forecast_days", fmt.Sprintf("%d", c.forecastDays))

	var payload forecastResponse
	if err := c.get(ctx, c.forecastCB, c.forecastURL, query, &payload); err != nil {
		return nil, fmt.Errorf("forecast fetch: %w", err)
	}
	if payload.Current.Time == "" {
		return nil, fmt.Errorf("forecast fetch: current block missing")
	}

	return &forecast.Bundle{
		Timezone: payload.Timezone,
		Current:  payload.Current,
		Hourly:   payload.Hourly,
		Daily:    payload.Daily,
	}, nil
}

// FetchAirQuality retrieves the current pm2_5 and dust concentrations.
func (c *Client) FetchAirQuality(ctx context.Context, lat, lon float64) (*forecast.AirQualitySample, error) {
	query := url.Values{}
	query.Set("latitude", fmt.Sprintf("%.6f", lat))
	query.Set("longitude", fmt.Sprintf("%.6f", lon))
	query.Set("current", "pm2_5,dust")

	var payload airQualityResponse
	if err := c.get(ctx, c.airCB, c.airQualityURL, query, &payload); err != nil {
		return nil, fmt.Errorf("air quality fetch: %w", err)
	}
	return &payload.Current, nil
}

// Geocode resolves a city name to candidate locations.
func (c *Client) Geocode(ctx context.Context, name string, count int) ([]forecast.LocationSelection, error) {
	if count <= 0 {
		count = 10
	}

	query := url.Values{}
	query.Set("name", name)
	query.Set("count", fmt.Sprintf("%d", count))
	query.Set("language", "en")
	query.Set("format", "json")

	var payload geocodingResponse
	if err := c.get(ctx, c.geoCB, c.geocodingURL, query, &payload); err != nil {
		return nil, fmt.Errorf("geocoding fetch: %w", err)
	}

	locations := make([]forecast.LocationSelection, 0, len(payload.Results))
	for _, r := range payload.Results {
		locations = append(locations, forecast.LocationSelection{
			Name:      r.Name,
			Country:   r.Country,
			Latitude:  r.Latitude,
			Longitude: r.Longitude,
		})
	}
	return locations, nil
}

// FetchBundle issues the forecast and air-quality requests concurrently and
// joins them. The forecast is required; a failed air-quality fetch degrades
// to a bundle without the sample, which is a defined non-error outcome.
func (c *Client) FetchBundle(ctx context.Context, lat, lon float64) (*forecast.Bundle, error) {
	var (
		wg     sync.WaitGroup
		bundle *forecast.Bundle
		fErr   error
		air    *forecast.AirQualitySample
		airErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		bundle, fErr = c.FetchForecast(ctx, lat, lon)
	}()
	go func() {
		defer wg.Done()
		air, airErr = c.FetchAirQuality(ctx, lat, lon)
	}()
	wg.Wait()

	if fErr != nil {
		return nil, fErr
	}
	if airErr != nil {
		log.Printf("Air quality unavailable, continuing without it: %v", airErr)
	} else {
		bundle.AirQuality = air
	}
	return bundle, nil
}

func (c *Client) get(ctx context.Context, cb *gobreaker.CircuitBreaker, base string, query url.Values, out interface{}) error {
	_, err := cb.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+query.Encode(), nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, fmt.Errorf("bad status: %s", resp.Status)
		}

		return nil, json.NewDecoder(resp.Body).Decode(out)
	})
	return err
}
