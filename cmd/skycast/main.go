package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"skycast/config"
	"skycast/internal/api"
	"skycast/internal/collector"
	"skycast/internal/forecast"
	"skycast/internal/mqtt"
	"skycast/internal/openmeteo"
	"skycast/internal/search"
	"skycast/internal/storage"

	"github.com/spf13/cobra"
)

var (
	configFile string
	verbose    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "skycast",
		Short: "Weather forecast service",
		Long:  "A service that fetches, normalizes and serves Open-Meteo forecasts",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(fetchCmd())
	rootCmd.AddCommand(searchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the forecast service",
		Long:  "Start the refresh collector, API server, and MQTT publisher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			client := openmeteo.NewClient(openmeteo.Config{
				ForecastURL:   cfg.Upstream.ForecastURL,
				AirQualityURL: cfg.Upstream.AirQualityURL,
				GeocodingURL:  cfg.Upstream.GeocodingURL,
				Timeout:       cfg.Upstream.Timeout,
				ForecastDays:  cfg.Upstream.ForecastDays,
			})

			db, err := storage.NewDatabase(cfg.Database.Path)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			log.Printf("Database opened at %s", cfg.Database.Path)

			publisher, err := mqtt.NewPublisher(mqtt.PublisherConfig{
				Broker:      cfg.MQTT.Broker,
				ClientID:    cfg.MQTT.ClientID,
				Username:    cfg.MQTT.Username,
				Password:    cfg.MQTT.Password,
				TopicPrefix: cfg.MQTT.TopicPrefix,
				Enabled:     cfg.MQTT.Enabled,
			})
			if err != nil {
				log.Printf("Warning: MQTT connection failed: %v", err)
			} else if cfg.MQTT.Enabled {
				log.Printf("MQTT connected to %s", cfg.MQTT.Broker)
			}

			location := startupLocation(cfg, db)
			if publisher != nil && cfg.MQTT.Enabled {
				publisher.PublishHomeAssistantDiscovery(location.Name)
			}

			coll := collector.NewCollector(collector.Config{
				Fetcher:   client,
				Database:  db,
				Publisher: publisher,
				Location:  location,
				Interval:  cfg.Refresh.Interval,
				Retention: cfg.Database.Retention,
				Debounce:  cfg.Refresh.Debounce,
				Enabled:   cfg.Refresh.Enabled,
			})

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

			go func() {
				if err := coll.Start(ctx); err != nil {
					log.Printf("Collector error: %v", err)
				}
			}()

			if cfg.API.Enabled {
				server := api.NewServer(api.ServerConfig{
					Port:      cfg.API.Port,
					Collector: coll,
					Database:  db,
					Searcher:  search.NewSearcher(client, cfg.Search.RatePerSecond, cfg.Search.Burst, cfg.Search.MaxResults),
				})

				go func() {
					if err := server.Start(); err != nil {
						log.Printf("API server error: %v", err)
					}
				}()
			}

			log.Println("Skycast started. Press Ctrl+C to stop.")

			<-sigChan
			log.Println("Shutting down...")
			cancel()
			coll.Stop()

			return nil
		},
	}
}

func fetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch",
		Short: "Fetch the forecast once",
		Long:  "Fetch and normalize the forecast for the stored or configured location, then print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			client := openmeteo.NewClient(openmeteo.Config{
				ForecastURL:   cfg.Upstream.ForecastURL,
				AirQualityURL: cfg.Upstream.AirQualityURL,
				GeocodingURL:  cfg.Upstream.GeocodingURL,
				Timeout:       cfg.Upstream.Timeout,
				ForecastDays:  cfg.Upstream.ForecastDays,
			})

			location := forecast.LocationSelection{
				Name:      cfg.Location.Name,
				Country:   cfg.Location.Country,
				Latitude:  cfg.Location.Latitude,
				Longitude: cfg.Location.Longitude,
			}
			if db, err := storage.NewDatabase(cfg.Database.Path); err == nil {
				if stored, err := db.LoadLastLocation(); err == nil && stored != nil {
					location = *stored
				}
				db.Close()
			}

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			bundle, err := client.FetchBundle(ctx, location.Latitude, location.Longitude)
			if err != nil {
				return fmt.Errorf("failed to fetch forecast: %w", err)
			}

			report := forecast.BuildReport(location, bundle, time.Now())
			output, _ := json.MarshalIndent(report, "", "  ")
			fmt.Println(string(output))

			return nil
		},
	}
}

func searchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "search [city]",
		Short: "Look up a city",
		Long:  "Geocode a city name and print the candidate locations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			client := openmeteo.NewClient(openmeteo.Config{
				GeocodingURL: cfg.Upstream.GeocodingURL,
				Timeout:      cfg.Upstream.Timeout,
			})
			searcher := search.NewSearcher(client, cfg.Search.RatePerSecond, cfg.Search.Burst, cfg.Search.MaxResults)

			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()

			locations, err := searcher.Search(ctx, args[0])
			if err != nil {
				return fmt.Errorf("search failed: %w", err)
			}
			if len(locations) == 0 {
				fmt.Println("No locations found")
				return nil
			}

			for _, loc := range locations {
				fmt.Printf("  %s, %s (%.5f, %.5f)\n", loc.Name, loc.Country, loc.Latitude, loc.Longitude)
			}

			return nil
		},
	}
}

// startupLocation prefers the persisted last city; absent on first run is
// not an error and falls back to the configured default.
func startupLocation(cfg *config.Config, db *storage.Database) forecast.LocationSelection {
	if db != nil {
		if stored, err := db.LoadLastLocation(); err != nil {
			log.Printf("Warning: failed to load last location: %v", err)
		} else if stored != nil {
			log.Printf("Loaded last location: %s, %s", stored.Name, stored.Country)
			return *stored
		}
	}

	return forecast.LocationSelection{
		Name:      cfg.Location.Name,
		Country:   cfg.Location.Country,
		Latitude:  cfg.Location.Latitude,
		Longitude: cfg.Location.Longitude,
	}
}
