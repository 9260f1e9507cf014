package collector

import (
	"context"
	"log"
	"sync"
	"time"

	"skycast/internal/forecast"
	"skycast/internal/mqtt"
	"skycast/internal/search"
)

// Fetcher retrieves a joined forecast/air-quality bundle for coordinates.
type Fetcher interface {
	FetchBundle(ctx context.Context, lat, lon float64) (*forecast.Bundle, error)
}

// Archive persists refreshed reports and prunes expired ones.
type Archive interface {
	SaveReport(r *forecast.Report) error
	CleanOldSnapshots(olderThan time.Duration) error
	Close() error
}

// Collector periodically refreshes the forecast for the selected location,
// keeps the latest report in memory, archives it, and publishes it.
//
// A new refresh is not ordered with respect to a previous in-flight one; a
// slow stale response can overwrite a newer report. Refreshes are serialized
// through refreshMu to close that gap for the common case.
type Collector struct {
	fetcher   Fetcher
	db        Archive
	publisher *mqtt.Publisher
	interval  time.Duration
	retention time.Duration
	enabled   bool
	debounce  *search.Debouncer

	mu           sync.RWMutex
	location     forecast.LocationSelection
	latestReport *forecast.Report
	latestBundle *forecast.Bundle
	isCollecting bool

	refreshMu sync.Mutex
}

type Config struct {
	Fetcher   Fetcher
	Database  Archive
	Publisher *mqtt.Publisher
	Location  forecast.LocationSelection
	Interval  time.Duration
	Retention time.Duration
	Debounce  time.Duration
	Enabled   bool
}

func NewCollector(cfg Config) *Collector {
	return &Collector{
		fetcher:   cfg.Fetcher,
		db:        cfg.Database,
		publisher: cfg.Publisher,
		interval:  cfg.Interval,
		retention: cfg.Retention,
		enabled:   cfg.Enabled,
		debounce:  search.NewDebouncer(cfg.Debounce),
		location:  cfg.Location,
	}
}

func (c *Collector) Start(ctx context.Context) error {
	if !c.enabled {
		log.Println("Collector is disabled")
		return nil
	}

	c.mu.Lock()
	c.isCollecting = true
	c.mu.Unlock()

	log.Printf("Starting collector with interval %s", c.interval)

	// Initial refresh
	c.Refresh(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Collector stopped")
			c.mu.Lock()
			c.isCollecting = false
			c.mu.Unlock()
			return nil
		case <-ticker.C:
			c.Refresh(ctx)
		}
	}
}

// Refresh fetches a fresh bundle for the current location and derives a new
// report. A failed fetch leaves the previous report in place; the API keeps
// serving stale data rather than erroring out.
func (c *Collector) Refresh(ctx context.Context) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	loc := c.Location()

	fetchCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	bundle, err := c.fetcher.FetchBundle(fetchCtx, loc.Latitude, loc.Longitude)
	if err != nil {
		log.Printf("Forecast refresh failed for %s: %v", loc.Name, err)
		return
	}

	report := forecast.BuildReport(loc, bundle, time.Now())

	c.mu.Lock()
	c.latestBundle = bundle
	c.latestReport = report
	c.mu.Unlock()

	if c.db != nil {
		if err := c.db.SaveReport(report); err != nil {
			log.Printf("Error archiving report: %v", err)
		}
		if c.retention > 0 {
			if err := c.db.CleanOldSnapshots(c.retention); err != nil {
				log.Printf("Error cleaning old snapshots: %v", err)
			}
		}
	}

	if c.publisher != nil {
		if err := c.publisher.Publish(report); err != nil {
			log.Printf("Error publishing to MQTT: %v", err)
		}
	}

	log.Printf("Refreshed %s, %s: %s %s", loc.Name, loc.Country,
		report.Current.Temperature, report.Current.Condition)
}

// SetLocation switches the selected location and schedules a debounced
// refresh, so rapid repeated selections collapse into one fetch.
func (c *Collector) SetLocation(loc forecast.LocationSelection) {
	c.mu.Lock()
	c.location = loc
	c.mu.Unlock()

	c.debounce.Trigger(func() {
		c.Refresh(context.Background())
	})
}

func (c *Collector) Location() forecast.LocationSelection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.location
}

// LatestReport returns the most recent report, or nil before the first
// successful refresh.
func (c *Collector) LatestReport() *forecast.Report {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latestReport
}

// LatestBundle returns the raw bundle behind the latest report.
func (c *Collector) LatestBundle() *forecast.Bundle {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latestBundle
}

// PublisherConnected reports whether the MQTT publisher holds a live broker
// connection. False when publishing is disabled.
func (c *Collector) PublisherConnected() bool {
	if c.publisher == nil {
		return false
	}
	return c.publisher.IsConnected()
}

func (c *Collector) IsCollecting() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.isCollecting
}

func (c *Collector) Stop() {
	c.debounce.Stop()

	if c.publisher != nil {
		c.publisher.Close()
	}
	if c.db != nil {
		c.db.Close()
	}
}
