package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"skycast/internal/collector"
	"skycast/internal/forecast"
	"skycast/internal/search"
	"skycast/internal/storage"

	"github.com/gin-gonic/gin"
)

type Server struct {
	router    *gin.Engine
	server    *http.Server
	collector *collector.Collector
	db        *storage.Database
	searcher  *search.Searcher
	port      int
}

type ServerConfig struct {
	Port      int
	Collector *collector.Collector
	Database  *storage.Database
	Searcher  *search.Searcher
}

func NewServer(cfg ServerConfig) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	s := &Server{
		router:    router,
		collector: cfg.Collector,
		db:        cfg.Database,
		searcher:  cfg.Searcher,
		port:      cfg.Port,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.GET("/health", s.healthHandler)

	api := s.router.Group("/api/v1")
	{
		api.GET("/forecast", s.forecastHandler)
		api.GET("/forecast/raw", s.rawForecastHandler)
		api.GET("/forecast/hourly", s.hourlyHandler)
		api.GET("/locations/search", s.searchHandler)
		api.GET("/location", s.getLocationHandler)
		api.PUT("/location", s.updateLocationHandler)
		api.GET("/wallpaper", s.wallpaperHandler)
	}
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.router,
	}

	log.Printf("API server starting on port %d", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}

func (s *Server) healthHandler(c *gin.Context) {
	hasReport := s.collector.LatestReport() != nil

	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"has_report":     hasReport,
		"collecting":     s.collector.IsCollecting(),
		"mqtt_connected": s.collector.PublisherConnected(),
		"timestamp":      time.Now(),
	})
}

// forecastHandler serves the latest report, falling back to the archived
// snapshot when no fetch has succeeded yet. Only when neither exists does
// it answer 503; a failed upstream never turns into a crash or a 500.
func (s *Server) forecastHandler(c *gin.Context) {
	report := s.collector.LatestReport()
	if report == nil && s.db != nil {
		stale, err := s.db.LatestReport()
		if err != nil {
			log.Printf("Snapshot lookup failed: %v", err)
		} else if stale != nil {
			c.Header("X-Skycast-Stale", "true")
			c.JSON(http.StatusOK, stale)
			return
		}
	}
	if report == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "No forecast available yet",
		})
		return
	}
	c.JSON(http.StatusOK, report)
}

// rawForecastHandler serves the unnormalized upstream bundle behind the
// latest report, for clients that derive their own views.
func (s *Server) rawForecastHandler(c *gin.Context) {
	bundle := s.collector.LatestBundle()
	if bundle == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "No forecast available yet",
		})
		return
	}
	c.JSON(http.StatusOK, bundle)
}

func (s *Server) hourlyHandler(c *gin.Context) {
	report := s.collector.LatestReport()
	if report == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error": "No forecast available yet",
		})
		return
	}

	window := c.DefaultQuery("window", "13")
	switch window {
	case "13":
		c.JSON(http.StatusOK, gin.H{"window": forecast.WindowInline, "hours": report.HourlyInline})
	case "24":
		c.JSON(http.StatusOK, gin.H{"window": forecast.WindowFullDay, "hours": report.HourlyFullDay})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "window must be 13 or 24"})
	}
}

func (s *Server) searchHandler(c *gin.Context) {
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name query parameter is required"})
		return
	}

	locations, err := s.searcher.Search(c.Request.Context(), name)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": locations})
}

func (s *Server) getLocationHandler(c *gin.Context) {
	if s.db != nil {
		loc, err := s.db.LoadLastLocation()
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if loc != nil {
			c.JSON(http.StatusOK, loc)
			return
		}
	}
	// No selection yet; the collector is on the configured default.
	c.JSON(http.StatusOK, s.collector.Location())
}

// LocationRequest is a location selection update.
type LocationRequest struct {
	Name      string  `json:"name" binding:"required"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude float64 `json:"longitude" binding:"min=-180,max=180"`
}

func (s *Server) updateLocationHandler(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	loc := forecast.LocationSelection{
		Name:      req.Name,
		Country:   req.Country,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	if s.db != nil {
		if err := s.db.SaveLastLocation(loc); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
	}

	s.collector.SetLocation(loc)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Location updated",
		"location": loc,
	})
}
